package imagelist

import (
	"os"
	"path/filepath"
	"testing"

	"prepull/impl/imageref"
)

var mapList = `
alpine: alpine:latest
debian: debian:stretch-slim
samtools: quay.io/biocontainers/samtools:1.2-0
`

var seqList = `
- alpine:latest
- debian:stretch-slim
`

// Test that a mapping list parses in file order with names from the keys
func TestParseMapping(t *testing.T) {
	specs, err := Parse([]byte(mapList))
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}
	expect := []imageref.ImageSpec{
		imageref.New("alpine", "alpine:latest"),
		imageref.New("debian", "debian:stretch-slim"),
		imageref.New("samtools", "quay.io/biocontainers/samtools:1.2-0"),
	}
	if len(specs) != len(expect) {
		t.Fatalf("expected %d specs, got %d", len(expect), len(specs))
	}
	for i, spec := range specs {
		if spec != expect[i] {
			t.Errorf("spec %d: expected %v, got %v", i, expect[i], spec)
		}
	}
}

// Test that a sequence list parses with the reference doubling as the name
func TestParseSequence(t *testing.T) {
	specs, err := Parse([]byte(seqList))
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}
	if len(specs) != 2 {
		t.Fatalf("expected 2 specs, got %d", len(specs))
	}
	if specs[0].Name != "alpine:latest" || specs[0].Reference != "alpine:latest" {
		t.Fail()
	}
	if specs[1].Name != "debian:stretch-slim" {
		t.Fail()
	}
}

// Test that non-string entries are rejected
func TestParseNonString(t *testing.T) {
	if _, err := Parse([]byte("- 1234")); err == nil {
		t.Fail()
	}
	if _, err := Parse([]byte("alpine: [a, b]")); err == nil {
		t.Fail()
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse([]byte("")); err == nil {
		t.Fail()
	}
	if _, err := Parse([]byte("[]")); err == nil {
		t.Fail()
	}
}

func TestLoadFile(t *testing.T) {
	td, err := os.MkdirTemp("", "")
	if err != nil {
		t.Fail()
	}
	defer os.RemoveAll(td)
	listFile := filepath.Join(td, "images.yaml")
	os.WriteFile(listFile, []byte(seqList), 0644)
	specs, err := Load(listFile)
	if err != nil || len(specs) != 2 {
		t.Fail()
	}
	if _, err := Load(filepath.Join(td, "nosuchfile.yaml")); err == nil {
		t.Fail()
	}
}
