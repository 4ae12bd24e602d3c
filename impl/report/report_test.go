package report

import (
	"bytes"
	"strings"
	"testing"

	"prepull/impl/pull"
)

func TestSummaryLines(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf)
	console.DisableColor()

	console.PullSucceeded("docker://alpine:latest", 1)
	console.PullFailed("docker://debian:stretch-slim", 3)
	out := buf.String()
	if !strings.Contains(out, "Successfully pulled 'docker://alpine:latest' in 1 attempt\n") {
		t.Errorf("missing success line: %q", out)
	}
	if !strings.Contains(out, "Failed to pull 'docker://debian:stretch-slim' after 3 attempts\n") {
		t.Errorf("missing failure line: %q", out)
	}
}

func TestShowAttempts(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf)
	console.DisableColor()

	console.ShowAttempts([]pull.AttemptResult{
		{Succeeded: false, Stdout: "out one", Stderr: "err one", ExitCode: 255},
		{Succeeded: true, Stdout: "out two", Stderr: "err two"},
	}, false)
	out := buf.String()
	for _, want := range []string{"Attempt 1:", "Attempt 2:", "out one", "err one", "out two", "err two", "STDOUT:", "STDERR:"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output: %q", want, out)
		}
	}
	if !strings.HasPrefix(out, rule) {
		t.Error("missing leading rule")
	}
}
