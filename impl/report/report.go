// Package report owns the user-facing console output: one colored summary
// line per image, and optionally the captured output of every attempt. The
// logger is for operators tailing progress; this package is what a human
// watching the terminal reads.
package report

import (
	"fmt"
	"io"
	"strings"

	"prepull/impl/pull"

	"github.com/labstack/gommon/color"
)

// rule visually separates captured singularity output from the tool's own
// output, same width as the classic terminal
var rule = strings.Repeat("_", 79)

// Console writes colored, human-readable pull results to a writer. It
// implements the reporter interfaces of the pull and batch packages.
type Console struct {
	colorer *color.Color
}

// NewConsole returns a 'Console' writing to the passed writer.
func NewConsole(w io.Writer) *Console {
	c := color.New()
	c.SetOutput(w)
	return &Console{colorer: c}
}

// DisableColor turns off ANSI escapes, for tests and dumb terminals.
func (c *Console) DisableColor() {
	c.colorer.Disable()
}

// PullSucceeded prints the green per-image success line.
func (c *Console) PullSucceeded(locator string, attempts int) {
	c.colorer.Println(c.colorer.Green(fmt.Sprintf("Successfully pulled '%s' in %d %s", locator, attempts, plural(attempts))))
}

// PullFailed prints the red per-image failure line.
func (c *Console) PullFailed(locator string, attempts int) {
	c.colorer.Println(c.colorer.Red(fmt.Sprintf("Failed to pull '%s' after %d %s", locator, attempts, plural(attempts))))
}

// ResolveFailed prints the red line for an image whose digest could not be
// retrieved from the registry.
func (c *Console) ResolveFailed(name string, reference string, err error) {
	c.colorer.Println(c.colorer.Red(fmt.Sprintf("Couldn't retrieve a digest for '%s': %s", reference, err)))
}

// ShowAttempts prints the captured stdout and stderr of each attempt inside a
// delimited block. The final attempt is colored blue if it succeeded so it is
// easy to pick out from the failed attempts, which are yellow.
func (c *Console) ShowAttempts(results []pull.AttemptResult, failed bool) {
	c.colorer.Println(rule)
	for i, result := range results {
		paint := c.colorer.Yellow
		if i == len(results)-1 && !failed {
			paint = c.colorer.Blue
		}
		c.colorer.Println(c.colorer.Magenta(fmt.Sprintf("Attempt %d:", i+1)))
		c.colorer.Println(paint("STDERR:"))
		c.colorer.Println(result.Stderr)
		c.colorer.Println(paint("STDOUT:"))
		c.colorer.Println(result.Stdout)
	}
	c.colorer.Println(rule)
}

func plural(attempts int) string {
	if attempts == 1 {
		return "attempt"
	}
	return "attempts"
}
