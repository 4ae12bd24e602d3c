// Package batch drives the pull of an ordered list of images, one at a time,
// and aggregates per-image outcomes into a summary. Images are deliberately
// processed sequentially: warming a shared cache with concurrent pulls of the
// same images is exactly the contention this tool exists to avoid.
package batch

import (
	"prepull/impl/imageref"
	"prepull/impl/pull"
	"prepull/impl/registry"

	log "github.com/sirupsen/logrus"
)

// Puller pulls one image with retries. Satisfied by 'pull.Puller'.
type Puller interface {
	PullImage(spec imageref.ImageSpec, locator string) (pull.Outcome, error)
}

// Reporter receives digest resolution failures for display.
type Reporter interface {
	ResolveFailed(name string, reference string, err error)
}

// Config has the knobs the runner needs from the program configuration.
type Config struct {
	Prefix        string
	UseDigest     bool
	StopOnFailure bool
}

// Summary aggregates the outcomes of one batch run. Succeeded is true iff
// at least one outcome was produced and every produced outcome succeeded.
type Summary struct {
	Outcomes  []pull.Outcome
	Succeeded bool
}

// Runner iterates the image list in order and produces a 'Summary'.
type Runner struct {
	puller   Puller
	resolver registry.Resolver
	reporter Reporter
	cfg      Config
}

// NewRunner returns a 'Runner' struct from the passed args.
func NewRunner(puller Puller, resolver registry.Resolver, reporter Reporter, cfg Config) *Runner {
	return &Runner{
		puller:   puller,
		resolver: resolver,
		reporter: reporter,
		cfg:      cfg,
	}
}

// Run processes every image spec in order. If stop-on-failure is configured
// then the loop terminates at the first failed outcome and unprocessed images
// are simply absent from the summary. A non-nil error means the external pull
// tool could not be launched - the batch is abandoned because retrying an
// unlaunchable command cannot succeed.
func (r *Runner) Run(specs []imageref.ImageSpec) (Summary, error) {
	summary := Summary{}
	for _, spec := range specs {
		outcome, err := r.runOne(spec)
		if err != nil {
			return Summary{}, err
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
		if r.cfg.StopOnFailure && !outcome.Succeeded {
			log.Warnf("stopping after failure for %s", spec.Name)
			break
		}
	}
	summary.Succeeded = len(summary.Outcomes) > 0
	for _, outcome := range summary.Outcomes {
		if !outcome.Succeeded {
			summary.Succeeded = false
			break
		}
	}
	return summary, nil
}

// runOne pulls one image, first substituting a digest-qualified reference for
// the tag if so configured. A digest resolution failure is a failed outcome
// with zero pull attempts consumed - consistent with a pull failure as far as
// stop-on-failure is concerned.
func (r *Runner) runOne(spec imageref.ImageSpec) (pull.Outcome, error) {
	toPull := spec
	if r.cfg.UseDigest && spec.Type == imageref.ByTag {
		resolved, err := r.resolver.Resolve(spec.Reference)
		if err != nil {
			log.Errorf("unable to resolve a digest for %s: %s", spec.Reference, err)
			r.reporter.ResolveFailed(spec.Name, spec.Reference, err)
			return pull.Outcome{Spec: spec, Succeeded: false, AttemptsUsed: 0}, nil
		}
		toPull = imageref.New(spec.Name, resolved)
	}
	return r.puller.PullImage(spec, toPull.Locator(r.cfg.Prefix))
}
