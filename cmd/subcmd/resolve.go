package subcmd

import (
	"fmt"

	"prepull/impl/config"
	"prepull/impl/imagelist"
	"prepull/impl/imageref"
	"prepull/impl/registry"

	log "github.com/sirupsen/logrus"
)

// Resolve resolves every tag reference in the configured image file to its
// digest-qualified form and prints one 'name reference' line per image.
// References that are already digest-qualified are printed as-is.
func Resolve() error {
	cfg := config.Get()
	if cfg.ImageFile == "" {
		return fmt.Errorf("no image list specified - use --image-file")
	}
	specs, err := imagelist.Load(cfg.ImageFile)
	if err != nil {
		return err
	}
	resolver := registry.NewHTTPResolver()
	failures := 0
	for _, spec := range specs {
		if spec.Type == imageref.ByDigest {
			fmt.Printf("%s %s\n", spec.Name, spec.Reference)
			continue
		}
		resolved, err := resolver.Resolve(spec.Reference)
		if err != nil {
			log.Errorf("unable to resolve a digest for %s: %s", spec.Reference, err)
			failures++
			continue
		}
		fmt.Printf("%s %s\n", spec.Name, resolved)
	}
	if failures != 0 {
		return fmt.Errorf("failed to resolve %d of %d reference(s)", failures, len(specs))
	}
	return nil
}
