package imagelist

import (
	"fmt"
	"os"

	"prepull/impl/imageref"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML image list in the passed file and returns it as an ordered
// slice of 'ImageSpec' structs. Two list shapes are supported: a mapping of
// name to image reference, or a sequence of bare reference strings (in which
// case the name is the reference itself). Entry order in the file is preserved.
func Load(imageFile string) ([]imageref.ImageSpec, error) {
	contents, err := os.ReadFile(imageFile)
	if err != nil {
		return nil, fmt.Errorf("error reading image list file: %s", imageFile)
	}
	specs, err := Parse(contents)
	if err != nil {
		return nil, fmt.Errorf("error parsing image list file %s: %s", imageFile, err)
	}
	log.Infof("loaded %d image(s) from file: %s", len(specs), imageFile)
	return specs, nil
}

// Parse parses the YAML image list in the passed bytes. The yaml document is
// walked as a node tree rather than unmarshaled into a map so that mapping
// entries keep the order they have in the file.
func Parse(contents []byte) ([]imageref.ImageSpec, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(contents, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("image list is empty")
	}
	doc := root.Content[0]
	specs := []imageref.ImageSpec{}
	switch doc.Kind {
	case yaml.MappingNode:
		// mapping nodes alternate key, value in the content array
		for i := 0; i < len(doc.Content)-1; i += 2 {
			key := doc.Content[i]
			val := doc.Content[i+1]
			if err := mustBeString(val); err != nil {
				return nil, err
			}
			specs = append(specs, imageref.New(key.Value, val.Value))
		}
	case yaml.SequenceNode:
		for _, val := range doc.Content {
			if err := mustBeString(val); err != nil {
				return nil, err
			}
			specs = append(specs, imageref.New(val.Value, val.Value))
		}
	default:
		return nil, fmt.Errorf("image list must be a mapping or a sequence")
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("image list is empty")
	}
	return specs, nil
}

// mustBeString returns an error unless the passed node is a string scalar.
func mustBeString(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode || node.Tag != "!!str" {
		return fmt.Errorf("'%s' is not a string", node.Value)
	}
	return nil
}
