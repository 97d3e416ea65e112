// WHY: the runner is the only place that owns a logger, a store, and a
// kernel all at once — Run and Replay are both "load state, walk
// events, save state" with the file used as a source of truth swapped.
package runner

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/donizo/truth-engine/internal/pricing"
)

// Run processes every event in eventsPath through a fresh kernel
// seeded from statePath (or a fresh empty state if statePath doesn't
// exist yet), appends one audit record per event to auditPath, saves
// the final state back to statePath, and returns the final state hash.
func Run(log *zap.Logger, eventsPath, statePath, auditPath string) (string, error) {
	events, err := ReadEvents(eventsPath)
	if err != nil {
		return "", err
	}
	log.Info("loaded events", zap.Int("count", len(events)), zap.String("path", eventsPath))

	store := pricing.NewStore(statePath)
	state, err := store.Load()
	if err != nil {
		return "", errors.Wrap(err, "load state")
	}

	aw, err := NewAuditWriter(auditPath)
	if err != nil {
		return "", err
	}

	kernel := pricing.NewKernel(state)

	for _, ev := range events {
		rec, err := kernel.Process(ev)
		if err != nil {
			aw.Close()
			return "", errors.Wrapf(err, "event %s", ev.EventID)
		}
		logDecision(log, ev, rec)

		if err := aw.Write(rec); err != nil {
			aw.Close()
			return "", err
		}
	}

	if err := aw.Close(); err != nil {
		return "", err
	}

	hash, err := store.Save(state)
	if err != nil {
		return "", errors.Wrap(err, "save state")
	}
	log.Info("run complete", zap.String("final_state_hash", hash))

	return hash, nil
}

// Replay re-runs eventsPath starting from a fresh empty state —
// ignoring whatever already exists at statePath — and compares the
// final fingerprint against expectedHash. State and audit records are
// still written to statePath/auditPath for inspection, exactly as in
// Run; only the starting state differs.
func Replay(log *zap.Logger, eventsPath, statePath, auditPath, expectedHash string) (bool, string, error) {
	events, err := ReadEvents(eventsPath)
	if err != nil {
		return false, "", err
	}
	log.Info("replaying events", zap.Int("count", len(events)), zap.String("path", eventsPath))

	state := pricing.NewEmptyRulesState()

	aw, err := NewAuditWriter(auditPath)
	if err != nil {
		return false, "", err
	}

	kernel := pricing.NewKernel(state)

	for _, ev := range events {
		rec, err := kernel.Process(ev)
		if err != nil {
			aw.Close()
			return false, "", errors.Wrapf(err, "event %s", ev.EventID)
		}
		logDecision(log, ev, rec)

		if err := aw.Write(rec); err != nil {
			aw.Close()
			return false, "", err
		}
	}

	if err := aw.Close(); err != nil {
		return false, "", err
	}

	store := pricing.NewStore(statePath)
	hash, err := store.Save(state)
	if err != nil {
		return false, "", errors.Wrap(err, "save state")
	}

	match := hash == expectedHash
	if match {
		log.Info("replay matched", zap.String("hash", hash))
	} else {
		log.Warn("replay mismatch", zap.String("got", hash), zap.String("expected", expectedHash))
	}

	return match, hash, nil
}

func logDecision(log *zap.Logger, ev pricing.Event, rec pricing.AuditRecord) {
	switch ev.Source {
	case pricing.SourceSupplier:
		log.Debug("supplier price cached", zap.String("item_id", ev.ItemID), zap.Int64("price_cents", ev.PriceCents))
	case pricing.SourceHistoric:
		log.Debug("historic price cached", zap.String("item_id", ev.ItemID), zap.Int64("price_cents", ev.PriceCents))
	}

	for _, flag := range rec.Flags {
		switch flag {
		case "ANOMALY_REJECTED":
			log.Warn("circuit breaker tripped", zap.String("item_id", ev.ItemID), zap.String("event_id", ev.EventID))
		case "HUMAN_OVERRIDE_ACCEPTED":
			log.Info("accepted human quote recorded as learning input",
				zap.String("item_id", ev.ItemID), zap.Int64("bias_cents", rec.BiasAppliedCents))
		}
	}
}
