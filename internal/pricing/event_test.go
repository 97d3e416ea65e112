package pricing

import "testing"

func TestParseEventValid(t *testing.T) {
	raw := []byte(`{"event_id":"e1","timestamp":1000,"item_id":"copper_pipe_15mm","source":"SUPPLIER","price_cents":1200,"outcome":"NONE"}`)
	ev, err := ParseEvent(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.EventID != "e1" || ev.Source != SourceSupplier || ev.PriceCents != 1200 {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.Outcome != OutcomeNone {
		t.Fatalf("expected default outcome NONE, got %q", ev.Outcome)
	}
}

func TestParseEventMissingOutcomeDefaultsToNone(t *testing.T) {
	raw := []byte(`{"event_id":"e2","timestamp":1,"item_id":"x","source":"HISTORIC","price_cents":10}`)
	ev, err := ParseEvent(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Outcome != OutcomeNone {
		t.Fatalf("expected NONE, got %q", ev.Outcome)
	}
}

func TestParseEventRejectsMissingEventID(t *testing.T) {
	raw := []byte(`{"timestamp":1,"item_id":"x","source":"HUMAN","price_cents":10}`)
	if _, err := ParseEvent(raw); err == nil {
		t.Fatal("expected error for missing event_id")
	}
}

func TestParseEventRejectsMissingItemID(t *testing.T) {
	raw := []byte(`{"event_id":"e3","timestamp":1,"source":"HUMAN","price_cents":10}`)
	if _, err := ParseEvent(raw); err == nil {
		t.Fatal("expected error for missing item_id")
	}
}

func TestParseEventRejectsInvalidSource(t *testing.T) {
	raw := []byte(`{"event_id":"e4","timestamp":1,"item_id":"x","source":"ROBOT","price_cents":10}`)
	if _, err := ParseEvent(raw); err == nil {
		t.Fatal("expected error for invalid source")
	}
}

func TestParseEventRejectsInvalidOutcome(t *testing.T) {
	raw := []byte(`{"event_id":"e5","timestamp":1,"item_id":"x","source":"HUMAN","price_cents":10,"outcome":"MAYBE"}`)
	if _, err := ParseEvent(raw); err == nil {
		t.Fatal("expected error for invalid outcome")
	}
}

func TestParseEventRejectsMalformedJSON(t *testing.T) {
	if _, err := ParseEvent([]byte(`{not json`)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestParseEventDoesNotRejectOutcomeOnNonHuman(t *testing.T) {
	// This is deliberately permissive: the source/outcome pairing
	// invariant is the kernel's job (OutcomeForNonHumanError), not
	// ParseEvent's.
	raw := []byte(`{"event_id":"e6","timestamp":1,"item_id":"x","source":"SUPPLIER","price_cents":10,"outcome":"QUOTE_ACCEPTED"}`)
	ev, err := ParseEvent(raw)
	if err != nil {
		t.Fatalf("ParseEvent should accept this shape: %v", err)
	}
	if ev.Outcome != OutcomeQuoteAccepted {
		t.Fatalf("expected outcome preserved, got %q", ev.Outcome)
	}
}
