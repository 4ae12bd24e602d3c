package subcmd

import (
	"fmt"
	"os"
	"time"

	"prepull/impl/batch"
	"prepull/impl/config"
	"prepull/impl/imagelist"
	"prepull/impl/pull"
	"prepull/impl/registry"
	"prepull/impl/report"

	log "github.com/sirupsen/logrus"
)

const defaultPrefix = "docker://"

// Pull runs one batch: every image in the configured image file is pulled
// with retries, in file order, one at a time. The returned summary carries
// the overall success flag that decides the process exit status.
func Pull() (batch.Summary, error) {
	cfg := config.Get()
	if cfg.ImageFile == "" {
		return batch.Summary{}, fmt.Errorf("no image list specified - use --image-file")
	}
	if cfg.UseDigest && cfg.Prefix != defaultPrefix {
		return batch.Summary{}, fmt.Errorf("--use-digest only works with the %q prefix", defaultPrefix)
	}
	specs, err := imagelist.Load(cfg.ImageFile)
	if err != nil {
		return batch.Summary{}, err
	}

	console := report.NewConsole(os.Stdout)
	puller := pull.NewPuller(
		pull.NewSingularityInvoker(cfg.SingularityExe),
		int(cfg.MaxAttempts),
		cfg.ShowOutputOnFailure,
		cfg.ShowOutputOnSuccess,
		console)
	runner := batch.NewRunner(puller, registry.NewHTTPResolver(), console, batch.Config{
		Prefix:        cfg.Prefix,
		UseDigest:     cfg.UseDigest,
		StopOnFailure: cfg.StopOnFailure,
	})

	start := time.Now()
	summary, err := runner.Run(specs)
	if err != nil {
		return batch.Summary{}, err
	}
	log.Infof("processed %d of %d image(s) in %s", len(summary.Outcomes), len(specs), time.Since(start))
	return summary, nil
}
