// WHY: the event file is line-delimited JSON, one event per line.
// Parsing happens line-by-line and failures are attributed to the
// offending line number before any state mutation occurs, the same
// validate-then-construct discipline the teacher's ingress path uses.
package runner

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/donizo/truth-engine/internal/pricing"
)

// InvalidEventError is raised when a line in an events file fails to
// decode or fails shape validation. Line is 1-indexed. Cause is
// preserved and inspectable via errors.Cause/errors.Unwrap.
type InvalidEventError struct {
	Line  int
	cause error
}

func (e *InvalidEventError) Error() string {
	return fmt.Sprintf("invalid event at line %d: %v", e.Line, e.cause)
}

func (e *InvalidEventError) Unwrap() error { return e.cause }

// Cause lets github.com/pkg/errors' errors.Cause reach the underlying error.
func (e *InvalidEventError) Cause() error { return e.cause }

// ReadEvents reads every non-blank line of path as a JSON event,
// returning them in file order. Blank lines are skipped but still
// count toward line numbers reported in errors (the line number is the
// true line in the file, not the ordinal among events).
func ReadEvents(path string) ([]pricing.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open events file")
	}
	defer f.Close()

	var events []pricing.Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		ev, perr := pricing.ParseEvent([]byte(line))
		if perr != nil {
			return nil, &InvalidEventError{Line: lineNo, cause: perr}
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "read events file")
	}

	return events, nil
}
