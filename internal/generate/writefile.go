package generate

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/donizo/truth-engine/internal/pricing"
)

// WriteEventsFile writes events to path as line-delimited JSON, one
// object per line with alphabetically sorted keys, matching the
// convention the events file format already requires of its readers.
func WriteEventsFile(path string, events []pricing.Event) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create output directory")
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create events file")
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, ev := range events {
		line, err := canonicalEventJSON(ev)
		if err != nil {
			return errors.Wrap(err, "encode event")
		}
		if _, err := w.Write(line); err != nil {
			return errors.Wrap(err, "write event")
		}
		if err := w.WriteByte('\n'); err != nil {
			return errors.Wrap(err, "write event")
		}
	}
	return w.Flush()
}

// canonicalEventJSON marshals ev with lexicographically sorted top
// level keys, mirroring the original generator's json.dumps(...,
// sort_keys=True).
func canonicalEventJSON(ev pricing.Event) ([]byte, error) {
	asMap := map[string]any{
		"event_id":    ev.EventID,
		"timestamp":   ev.Timestamp,
		"item_id":     ev.ItemID,
		"source":      ev.Source,
		"price_cents": ev.PriceCents,
		"outcome":     ev.Outcome,
	}
	if ev.Meta != nil {
		asMap["meta"] = ev.Meta
	} else {
		asMap["meta"] = map[string]any{}
	}
	return json.Marshal(asMap)
}
