// Package r3decayfloordivision conformance-tests Rule D: a bias
// halves toward negative infinity once the gap since last update
// exceeds 604800 seconds, and the decayed value never touches the
// persisted bias.
package r3decayfloordivision

import (
	"testing"

	"github.com/donizo/truth-engine/internal/pricing"
)

func TestDecayFloorsTowardNegativeInfinity(t *testing.T) {
	state := pricing.NewEmptyRulesState()
	state.Items["item"] = pricing.ItemState{BiasCents: -301, LastUpdatedTS: 0}
	k := pricing.NewKernel(state)

	rec, err := k.Process(pricing.Event{
		EventID: "q1", Timestamp: 604801, ItemID: "item", Source: pricing.SourceHistoric, PriceCents: 1,
		Outcome: pricing.OutcomeNone,
	})
	if err != nil {
		t.Fatalf("FAIL: %v", err)
	}
	if rec.BiasAppliedCents != -151 {
		t.Fatalf("FAIL: decayed bias = %d, want -151 (floor(-301/2))", rec.BiasAppliedCents)
	}
	t.Log("PASS: -301 decays to -151, flooring toward negative infinity")

	if state.Items["item"].BiasCents != -301 {
		t.Fatal("FAIL: persisted bias must never be mutated by display-only decay")
	}
	t.Log("PASS: persisted bias is untouched by decay")
}

func TestNoDecayAtExactlyTheThreshold(t *testing.T) {
	state := pricing.NewEmptyRulesState()
	state.Items["item"] = pricing.ItemState{BiasCents: -301, LastUpdatedTS: 0}
	k := pricing.NewKernel(state)

	rec, err := k.Process(pricing.Event{
		EventID: "q1", Timestamp: 604800, ItemID: "item", Source: pricing.SourceHistoric, PriceCents: 1,
		Outcome: pricing.OutcomeNone,
	})
	if err != nil {
		t.Fatalf("FAIL: %v", err)
	}
	if rec.BiasAppliedCents != -301 {
		t.Fatalf("FAIL: bias must not decay at exactly the 604800s threshold, got %d", rec.BiasAppliedCents)
	}
	t.Log("PASS: no decay applied at exactly the threshold")
}
