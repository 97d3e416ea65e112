// Package r2circuitbreaker conformance-tests the circuit breaker's
// strict >150% boundary: exactly 150% of the fresh supplier price is
// not an anomaly; a single cent above it is.
package r2circuitbreaker

import (
	"testing"

	"github.com/donizo/truth-engine/internal/pricing"
)

func hasFlag(flags []string, flag string) bool {
	for _, f := range flags {
		if f == flag {
			return true
		}
	}
	return false
}

func TestCircuitBreakerBoundary(t *testing.T) {
	k := pricing.NewKernel(pricing.NewEmptyRulesState())
	k.Process(pricing.Event{EventID: "s1", Timestamp: 0, ItemID: "item", Source: pricing.SourceSupplier, PriceCents: 1000, Outcome: pricing.OutcomeNone})

	atBoundary := pricing.Event{EventID: "h1", Timestamp: 1, ItemID: "item", Source: pricing.SourceHuman, PriceCents: 1500, Outcome: pricing.OutcomeQuoteAccepted}
	rec, err := k.Process(atBoundary)
	if err != nil {
		t.Fatalf("FAIL: %v", err)
	}
	if hasFlag(rec.Flags, "ANOMALY_REJECTED") {
		t.Fatal("FAIL: exactly 150% must not trip the circuit breaker")
	}
	t.Log("PASS: human price at exactly 150% of supplier is not anomalous")

	k2 := pricing.NewKernel(pricing.NewEmptyRulesState())
	k2.Process(pricing.Event{EventID: "s2", Timestamp: 0, ItemID: "item", Source: pricing.SourceSupplier, PriceCents: 1000, Outcome: pricing.OutcomeNone})

	pastBoundary := pricing.Event{EventID: "h2", Timestamp: 1, ItemID: "item", Source: pricing.SourceHuman, PriceCents: 1501, Outcome: pricing.OutcomeQuoteAccepted}
	rec2, err := k2.Process(pastBoundary)
	if err != nil {
		t.Fatalf("FAIL: %v", err)
	}
	if !hasFlag(rec2.Flags, "ANOMALY_REJECTED") {
		t.Fatal("FAIL: 150.1% of supplier price must trip the circuit breaker")
	}
	t.Log("PASS: human price one cent past 150% trips the circuit breaker")
}
