// WHY: typed errors let callers (the runner, the CLI, tests) recover
// structured detail with errors.As instead of string-matching
// messages. Every kind here is fatal to the run — none is retried.
package pricing

import "fmt"

// DuplicateEventIDError is raised when an event_id repeats within a
// single kernel lifetime.
type DuplicateEventIDError struct {
	EventID string
	Ordinal int64
}

func (e *DuplicateEventIDError) Error() string {
	return fmt.Sprintf("duplicate event_id %q (event #%d)", e.EventID, e.Ordinal)
}

// NegativePriceError is raised when an event's price_cents is negative.
type NegativePriceError struct {
	EventID string
	Value   int64
}

func (e *NegativePriceError) Error() string {
	return fmt.Sprintf("negative price_cents (%d) in event %q", e.Value, e.EventID)
}

// OutcomeForNonHumanError is raised when a non-HUMAN event carries a
// non-NONE outcome.
type OutcomeForNonHumanError struct {
	EventID string
	Outcome Outcome
}

func (e *OutcomeForNonHumanError) Error() string {
	return fmt.Sprintf("non-HUMAN event %q has outcome %q (must be NONE)", e.EventID, e.Outcome)
}

// StateCorruptionError is raised when a loaded state file's stored
// hash disagrees with the recomputed fingerprint.
type StateCorruptionError struct {
	Expected string
	Stored   string
}

func (e *StateCorruptionError) Error() string {
	return fmt.Sprintf("state file is corrupted: expected hash %s, got %s", e.Expected, e.Stored)
}
