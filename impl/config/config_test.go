package config

import (
	"os"
	"path/filepath"
	"testing"
)

var testCfg = `
---
logLevel: info
logFile: /foo/bar/baz.log
imageFile: /foo/images.yaml
maxAttempts: 5
prefix: docker://
stopOnFailure: true
showOutputOnFailure: true
showOutputOnSuccess: false
singularityExe: /opt/singularity/bin/singularity
useDigest: true
`

var expectConfig = Configuration{
	LogLevel:            "info",
	LogFile:             "/foo/bar/baz.log",
	ImageFile:           "/foo/images.yaml",
	MaxAttempts:         5,
	Prefix:              "docker://",
	StopOnFailure:       true,
	ShowOutputOnFailure: true,
	ShowOutputOnSuccess: false,
	SingularityExe:      "/opt/singularity/bin/singularity",
	UseDigest:           true,
}

// Test loading and parsing a configuration file
func TestLoadConfigFile(t *testing.T) {
	td, err := os.MkdirTemp("", "")
	if err != nil {
		t.Fail()
	}
	defer os.RemoveAll(td)
	cfgFile := filepath.Join(td, "config.yaml")
	os.WriteFile(cfgFile, []byte(testCfg), 0644)
	Set(Configuration{})
	if err := Load(cfgFile); err != nil {
		t.Fatalf("load error: %s", err)
	}
	if Get() != expectConfig {
		t.Fatalf("expected %+v, got %+v", expectConfig, Get())
	}
}

// Test that cmdline values override file values, and file values survive
// defaults that the user did not specify on the command line
func TestMerge(t *testing.T) {
	Set(expectConfig)
	fromCmdline := FromCmdLine{Command: "pull", MaxAttempts: true, LogLevel: true}
	parsed := Configuration{
		LogLevel:       "debug",
		MaxAttempts:    10,
		Prefix:         "docker://",
		SingularityExe: "singularity",
	}
	Merge(fromCmdline, parsed)
	cfg := Get()
	// overridden on the command line
	if cfg.MaxAttempts != 10 || cfg.LogLevel != "debug" {
		t.Fatalf("cmdline overrides not applied: %+v", cfg)
	}
	// from the config file
	if cfg.SingularityExe != "/opt/singularity/bin/singularity" || !cfg.StopOnFailure {
		t.Fatalf("file values not preserved: %+v", cfg)
	}
}

func TestLoadMissing(t *testing.T) {
	if err := Load("/no/such/config.yaml"); err == nil {
		t.Fail()
	}
}

func TestBadYaml(t *testing.T) {
	if err := SetConfigFromStr([]byte("maxAttempts: [not an int]")); err == nil {
		t.Fail()
	}
}
