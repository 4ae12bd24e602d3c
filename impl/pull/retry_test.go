package pull

import (
	"fmt"
	"testing"

	"prepull/impl/imageref"
)

// scriptedInvoker returns canned results: one entry from 'exitCodes' per call,
// in order. A zero exit code is a success.
type scriptedInvoker struct {
	exitCodes []int
	calls     int
}

func (s *scriptedInvoker) Pull(locator string) (AttemptResult, error) {
	if s.calls >= len(s.exitCodes) {
		return AttemptResult{}, fmt.Errorf("unexpected call %d", s.calls+1)
	}
	rc := s.exitCodes[s.calls]
	s.calls++
	return AttemptResult{
		Succeeded: rc == 0,
		Stdout:    fmt.Sprintf("stdout %d", s.calls),
		Stderr:    fmt.Sprintf("stderr %d", s.calls),
		ExitCode:  rc,
	}, nil
}

// recordingReporter records which reporter methods were invoked.
type recordingReporter struct {
	succeeded  int
	failed     int
	shown      int
	shownCount int
	lastFailed bool
}

func (r *recordingReporter) PullSucceeded(locator string, attempts int) { r.succeeded++ }
func (r *recordingReporter) PullFailed(locator string, attempts int)    { r.failed++ }
func (r *recordingReporter) ShowAttempts(results []AttemptResult, failed bool) {
	r.shown++
	r.shownCount = len(results)
	r.lastFailed = failed
}

var testSpec = imageref.New("alpine", "alpine:latest")

// Test that success on attempt k consumes exactly k attempts
func TestSucceedsMidway(t *testing.T) {
	invoker := &scriptedInvoker{exitCodes: []int{1, 1, 0}}
	reporter := &recordingReporter{}
	puller := NewPuller(invoker, 5, false, false, reporter)
	outcome, err := puller.PullImage(testSpec, "docker://alpine:latest")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !outcome.Succeeded || outcome.AttemptsUsed != 3 {
		t.Fatalf("expected success in 3 attempts, got %+v", outcome)
	}
	if invoker.calls != 3 {
		t.Errorf("expected 3 invocations, got %d", invoker.calls)
	}
	if reporter.succeeded != 1 || reporter.failed != 0 || reporter.shown != 0 {
		t.Errorf("unexpected reporting: %+v", reporter)
	}
}

// Test that an image whose every attempt fails consumes exactly maxAttempts
func TestExhaustsRetries(t *testing.T) {
	invoker := &scriptedInvoker{exitCodes: []int{1, 1, 1}}
	reporter := &recordingReporter{}
	puller := NewPuller(invoker, 3, true, false, reporter)
	outcome, err := puller.PullImage(testSpec, "docker://alpine:latest")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if outcome.Succeeded || outcome.AttemptsUsed != 3 {
		t.Fatalf("expected failure after 3 attempts, got %+v", outcome)
	}
	if reporter.failed != 1 || reporter.succeeded != 0 {
		t.Errorf("unexpected reporting: %+v", reporter)
	}
	// show-output-on-failure displays the full attempt history
	if reporter.shown != 1 || reporter.shownCount != 3 || !reporter.lastFailed {
		t.Errorf("unexpected display: %+v", reporter)
	}
}

// Test that the display policy shows output on success only when configured
func TestShowOnSuccess(t *testing.T) {
	invoker := &scriptedInvoker{exitCodes: []int{0}}
	reporter := &recordingReporter{}
	puller := NewPuller(invoker, 3, false, true, reporter)
	outcome, _ := puller.PullImage(testSpec, "docker://alpine:latest")
	if !outcome.Succeeded || outcome.AttemptsUsed != 1 {
		t.Fail()
	}
	if reporter.shown != 1 || reporter.shownCount != 1 || reporter.lastFailed {
		t.Errorf("unexpected display: %+v", reporter)
	}
}

// Test that maxAttempts of one means a single attempt
func TestSingleAttempt(t *testing.T) {
	invoker := &scriptedInvoker{exitCodes: []int{1}}
	puller := NewPuller(invoker, 1, false, false, &recordingReporter{})
	outcome, _ := puller.PullImage(testSpec, "docker://alpine:latest")
	if outcome.Succeeded || outcome.AttemptsUsed != 1 || invoker.calls != 1 {
		t.Fail()
	}
}
