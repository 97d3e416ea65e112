// WHY: the audit log is append-only and line-delimited like the
// events file it mirrors — one canonical JSON object per processed
// event, in processing order.
package runner

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/donizo/truth-engine/internal/pricing"
)

// AuditWriter appends canonical-JSON audit records to a file, one per
// line, flushing eagerly so a crash mid-run leaves a truncated but
// parseable log rather than a buffered-and-lost tail.
type AuditWriter struct {
	f *os.File
	w *bufio.Writer
}

// NewAuditWriter truncates (or creates) path and returns a writer over
// it.
func NewAuditWriter(path string) (*AuditWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "create audit file directory")
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "create audit file")
	}
	return &AuditWriter{f: f, w: bufio.NewWriter(f)}, nil
}

// Write appends one audit record as a single canonical-JSON line.
func (a *AuditWriter) Write(rec pricing.AuditRecord) error {
	b, err := rec.CanonicalJSON()
	if err != nil {
		return errors.Wrap(err, "encode audit record")
	}
	if _, err := a.w.Write(b); err != nil {
		return errors.Wrap(err, "write audit record")
	}
	if err := a.w.WriteByte('\n'); err != nil {
		return errors.Wrap(err, "write audit record")
	}
	if err := a.w.Flush(); err != nil {
		return errors.Wrap(err, "flush audit record")
	}
	return nil
}

// Close flushes buffered output and closes the underlying file.
func (a *AuditWriter) Close() error {
	if err := a.w.Flush(); err != nil {
		a.f.Close()
		return errors.Wrap(err, "flush audit file")
	}
	return a.f.Close()
}
