// WHY: the audit record is the user-facing proof of what the kernel
// did. Every field the kernel computed during Process is copied in
// here verbatim — nothing is re-derived by a reader.
package pricing

import "encoding/json"

// InputsSeen always carries exactly three keys, each either an
// integer or null, per spec.md §4.4.
type InputsSeen struct {
	HistoricCents *int64 `json:"historic_cents"`
	SupplierCents *int64 `json:"supplier_cents"`
	HumanCents    *int64 `json:"human_cents"`
}

// AuditRecord is the immutable, one-per-event output of the kernel.
type AuditRecord struct {
	EventID           string     `json:"event_id"`
	Timestamp         int64      `json:"timestamp"`
	ItemID            string     `json:"item_id"`
	InputsSeen        InputsSeen `json:"inputs_seen"`
	FinalPriceCents   int64      `json:"final_price_cents"`
	Decision          Decision   `json:"decision"`
	BiasAppliedCents  int64      `json:"bias_applied_cents"`
	Flags             []string   `json:"flags"`
	RulesHash         string     `json:"rules_hash"`
}

// CanonicalJSON marshals the record with sorted keys and minimal
// separators, suitable for one audit-log line. Go's encoding/json
// emits struct fields in declaration order (not sorted) but sorts map
// keys, so both the record and its inputs_seen object are routed
// through maps before marshaling, regardless of struct layout.
func (r AuditRecord) CanonicalJSON() ([]byte, error) {
	inputs := map[string]*int64{
		"historic_cents": r.InputsSeen.HistoricCents,
		"human_cents":    r.InputsSeen.HumanCents,
		"supplier_cents": r.InputsSeen.SupplierCents,
	}
	// Route through a map so the emitted object has lexicographically
	// sorted top-level keys, as spec.md's audit log interface requires.
	asMap := map[string]any{
		"bias_applied_cents": r.BiasAppliedCents,
		"decision":           r.Decision,
		"event_id":           r.EventID,
		"final_price_cents":  r.FinalPriceCents,
		"flags":              r.Flags,
		"inputs_seen":        inputs,
		"item_id":            r.ItemID,
		"rules_hash":         r.RulesHash,
		"timestamp":          r.Timestamp,
	}
	return json.Marshal(asMap)
}
