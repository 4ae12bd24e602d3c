package pull

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"

	log "github.com/sirupsen/logrus"
)

// AttemptResult has the result of one invocation of the external pull tool.
type AttemptResult struct {
	Succeeded bool
	Stdout    string
	Stderr    string
	ExitCode  int
}

// Invoker runs one pull attempt for the passed source locator (e.g.
// 'docker://alpine:latest'), blocking until the external process exits. A
// nonzero exit from the tool is a normal 'AttemptResult' - the returned error
// is non-nil only if the tool could not be started at all, which is fatal to
// the caller since retrying an unlaunchable command cannot succeed.
type Invoker interface {
	Pull(locator string) (AttemptResult, error)
}

// singularityInvoker invokes 'singularity pull' (or whatever executable it is
// configured with.)
type singularityInvoker struct {
	exe string
}

// NewSingularityInvoker returns an 'Invoker' that runs the passed executable.
func NewSingularityInvoker(exe string) Invoker {
	return &singularityInvoker{exe: exe}
}

// Pull runs '<exe> pull <locator>' capturing both output streams. Run reaps
// the child on every path so nothing is left behind under the retry loop.
func (s *singularityInvoker) Pull(locator string) (AttemptResult, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(s.exe, "pull", locator)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	log.Debugf("running: %s pull %s", s.exe, locator)
	err := cmd.Run()
	result := AttemptResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		result.Succeeded = true
		return result, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	return AttemptResult{}, fmt.Errorf("unable to run %q: %s", s.exe, err)
}
