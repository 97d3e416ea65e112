// WHY: the kernel is the single chokepoint for an event: validate,
// update the cache, judge, maybe learn, always re-hash. No step may
// run out of this order, and no step may be skipped.
package pricing

const (
	decayThresholdSeconds = 604800 // 7 days
	circuitBreakerRatio   = 150    // percent
)

// Kernel is a single-run, single-threaded decision engine. It owns
// the persistent RulesState, the ephemeral price Cache, and the set of
// event IDs seen so far in this process's lifetime.
type Kernel struct {
	State *RulesState
	cache *Cache

	seen    map[string]struct{}
	counter int64
}

// NewKernel constructs a kernel over an already-loaded state. The
// price cache always starts empty — it is never persisted, so every
// new Kernel rebuilds it from the event stream it's about to process.
func NewKernel(state *RulesState) *Kernel {
	return &Kernel{
		State: state,
		cache: NewCache(),
		seen:  make(map[string]struct{}),
	}
}

// Process consumes one event and returns its audit record, mutating
// the kernel's RulesState in place when learning fires.
//
// Order, per spec.md §4.4, is fixed:
//  1. validate (duplicate id, negative price, outcome/source pairing)
//  2. update the price cache (SUPPLIER/HISTORIC only)
//  3. compute Rule A candidate eligibility + inputs_seen
//  4. compute Rule D decay (display-only, never persisted)
//  5. compute Rule E circuit breaker
//  6. walk the Rule B decision tree, running Rule C learning when it fires
//  7. recompute the state fingerprint and emit the audit record
func (k *Kernel) Process(ev Event) (AuditRecord, error) {
	k.counter++

	if _, dup := k.seen[ev.EventID]; dup {
		return AuditRecord{}, &DuplicateEventIDError{EventID: ev.EventID, Ordinal: k.counter}
	}
	if ev.PriceCents < 0 {
		return AuditRecord{}, &NegativePriceError{EventID: ev.EventID, Value: ev.PriceCents}
	}
	if ev.Source != SourceHuman && ev.Outcome != OutcomeNone {
		return AuditRecord{}, &OutcomeForNonHumanError{EventID: ev.EventID, Outcome: ev.Outcome}
	}
	k.seen[ev.EventID] = struct{}{}

	switch ev.Source {
	case SourceSupplier:
		k.cache.UpdateSupplier(ev.ItemID, ev.PriceCents, ev.Timestamp)
	case SourceHistoric:
		k.cache.UpdateHistoric(ev.ItemID, ev.PriceCents, ev.Timestamp)
	}

	cands := candidates{}
	cands.supplierEligible, cands.supplierPrice = k.cache.supplierEligible(ev.ItemID, ev.Timestamp)
	cands.historicEligible, cands.historicPrice = k.cache.historicEligible(ev.ItemID)
	humanEligible := ev.Source == SourceHuman

	inputs := buildInputsSeen(k.cache.Get(ev.ItemID), ev)

	bias := int64(0)
	if item, ok := k.State.Items[ev.ItemID]; ok {
		bias = item.BiasCents
		if ev.Timestamp-item.LastUpdatedTS > decayThresholdSeconds {
			bias = floorDiv2(bias)
		}
	}

	flags := []string{}
	anomalous := false
	// Open question (spec.md §9): a supplier price of exactly 0 is
	// treated as if no supplier existed, for the circuit breaker and
	// for learning ONLY. It remains eligible for candidate
	// selection/the decision tree.
	if humanEligible && cands.supplierEligible && cands.supplierPrice > 0 {
		if ev.PriceCents*100 > cands.supplierPrice*circuitBreakerRatio {
			anomalous = true
			flags = append(flags, "ANOMALY_REJECTED")
		}
	}

	var final int64
	var decision Decision

	switch {
	case humanEligible && !anomalous:
		switch ev.Outcome {
		case OutcomeQuoteAccepted:
			final = ev.PriceCents
			decision = DecisionUsedHuman
			flags = append(flags, "HUMAN_OVERRIDE_ACCEPTED")

			if cands.supplierEligible && cands.supplierPrice > 0 {
				delta := ev.PriceCents - cands.supplierPrice
				bias = k.State.recordLearning(ev.ItemID, delta, ev.Timestamp)
			}
		case OutcomeQuoteRejected:
			flags = append(flags, "HUMAN_REJECTED")
			final, decision = fallback(cands, bias)
		default: // NONE
			final, decision = fallback(cands, bias)
		}
	default:
		// Anomalous human event, or non-human event: no learning.
		final, decision = fallback(cands, bias)
	}

	hash, err := Fingerprint(k.State)
	if err != nil {
		return AuditRecord{}, err
	}
	k.State.StateHash = hash

	return AuditRecord{
		EventID:          ev.EventID,
		Timestamp:        ev.Timestamp,
		ItemID:           ev.ItemID,
		InputsSeen:       inputs,
		FinalPriceCents:  final,
		Decision:         decision,
		BiasAppliedCents: bias,
		Flags:            flags,
		RulesHash:        hash,
	}, nil
}

func buildInputsSeen(c *ItemPriceCache, ev Event) InputsSeen {
	var in InputsSeen
	if c != nil {
		if c.Historic != nil {
			v := c.Historic.PriceCents
			in.HistoricCents = &v
		}
		if c.Supplier != nil {
			v := c.Supplier.PriceCents
			in.SupplierCents = &v
		}
	}
	if ev.Source == SourceHuman {
		v := ev.PriceCents
		in.HumanCents = &v
	}
	return in
}
