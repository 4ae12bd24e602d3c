package pull

import (
	"prepull/impl/imageref"

	log "github.com/sirupsen/logrus"
)

// Reporter receives user-facing pull results. The pull attempt loop calls the
// summary line methods exactly once per image, and 'ShowAttempts' at most once
// per image according to the configured display policy.
type Reporter interface {
	PullSucceeded(locator string, attempts int)
	PullFailed(locator string, attempts int)
	ShowAttempts(results []AttemptResult, failed bool)
}

// Outcome has the final result for one image after the attempt loop stops.
type Outcome struct {
	Spec         imageref.ImageSpec
	Succeeded    bool
	AttemptsUsed int
}

// Puller drives an 'Invoker' up to a maximum attempt count per image. There is
// no delay between attempts: the expected failure mode is contention on a
// shared cache, which resolves as soon as the competing pull completes.
type Puller struct {
	invoker       Invoker
	maxAttempts   int
	showOnFailure bool
	showOnSuccess bool
	reporter      Reporter
}

// NewPuller returns a 'Puller' struct from the passed args. The maxAttempts
// arg must be at least one - the command line parser enforces that.
func NewPuller(invoker Invoker, maxAttempts int, showOnFailure bool, showOnSuccess bool, reporter Reporter) *Puller {
	return &Puller{
		invoker:       invoker,
		maxAttempts:   maxAttempts,
		showOnFailure: showOnFailure,
		showOnSuccess: showOnSuccess,
		reporter:      reporter,
	}
}

// PullImage repeatedly invokes the external pull tool with the passed locator
// until an attempt succeeds or the attempt budget is exhausted, and returns an
// 'Outcome' for the passed image spec. A non-nil error means the tool could
// not be launched, which the caller must treat as fatal.
func (p *Puller) PullImage(spec imageref.ImageSpec, locator string) (Outcome, error) {
	results := []AttemptResult{}
	for attempt := 1; ; attempt++ {
		result, err := p.invoker.Pull(locator)
		if err != nil {
			return Outcome{}, err
		}
		results = append(results, result)
		if result.Succeeded {
			p.reporter.PullSucceeded(locator, attempt)
			if p.showOnSuccess {
				p.reporter.ShowAttempts(results, false)
			}
			return Outcome{Spec: spec, Succeeded: true, AttemptsUsed: attempt}, nil
		}
		log.Warnf("attempt %d of %d failed for %s: exit code %d", attempt, p.maxAttempts, locator, result.ExitCode)
		if attempt >= p.maxAttempts {
			p.reporter.PullFailed(locator, attempt)
			if p.showOnFailure {
				p.reporter.ShowAttempts(results, true)
			}
			return Outcome{Spec: spec, Succeeded: false, AttemptsUsed: attempt}, nil
		}
	}
}
