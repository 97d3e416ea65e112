// WHY: RulesState is the one structure that survives across runs.
// Everything else (the price cache, the seen-event-ID set) is rebuilt
// every invocation; this is the durable partition.
package pricing

// ItemState is the persisted, per-item learned bias.
type ItemState struct {
	BiasCents                int64   `json:"bias_cents"`
	LastUpdatedTS            int64   `json:"last_updated_ts"`
	AcceptedHumanDeltasCents []int64 `json:"accepted_human_deltas_cents"`
}

// MaxDeltaHistory is the maximum number of accepted-human deltas kept
// per item; older entries are dropped oldest-first.
const MaxDeltaHistory = 5

// RulesState is the persistent root: a version tag, the per-item
// learned state, and the fingerprint of everything except itself.
type RulesState struct {
	Version   int                  `json:"version"`
	Items     map[string]ItemState `json:"items"`
	StateHash string               `json:"state_hash"`
}

// NewEmptyRulesState returns version-1 state with no items. Its
// StateHash is left blank; callers that need a populated hash (e.g.
// the store on a missing-file load) must call Fingerprint and assign
// it explicitly. Kernel.Process and Store.Save assign it themselves.
func NewEmptyRulesState() *RulesState {
	return &RulesState{
		Version: 1,
		Items:   make(map[string]ItemState),
	}
}

// recordLearning appends delta to item's history (creating the item
// if needed), trims to the last MaxDeltaHistory entries oldest-first,
// and recomputes BiasCents as the integer-truncated median. It returns
// the new bias.
func (s *RulesState) recordLearning(itemID string, delta, eventTS int64) int64 {
	item, ok := s.Items[itemID]
	if !ok {
		item = ItemState{AcceptedHumanDeltasCents: []int64{}}
	}

	item.AcceptedHumanDeltasCents = append(item.AcceptedHumanDeltasCents, delta)
	if n := len(item.AcceptedHumanDeltasCents); n > MaxDeltaHistory {
		item.AcceptedHumanDeltasCents = item.AcceptedHumanDeltasCents[n-MaxDeltaHistory:]
	}
	item.BiasCents = medianTruncated(item.AcceptedHumanDeltasCents)
	item.LastUpdatedTS = eventTS

	s.Items[itemID] = item
	return item.BiasCents
}
