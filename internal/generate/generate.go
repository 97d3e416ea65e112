// WHY: ported phase-for-phase from the original Python generator so
// every scenario the kernel's rules depend on (conflicting sources,
// learning curves, decay gaps, circuit-breaker anomalies) shows up in
// the synthetic stream without hand-authoring fixtures. The PRNG
// itself is Go's, not Python's — the two never produce the same
// bytes for the same seed, but either one is internally deterministic,
// which is the only property a fixture generator needs.
package generate

import (
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/donizo/truth-engine/internal/pricing"
)

const (
	hour = 3600
	day  = 86400

	baseTime = 1700000000 // ~Nov 2023, matches the original fixture's epoch
)

type item struct {
	id       string
	base     int64
	supplier string
}

// items mirrors the original generator's construction-material catalog.
var items = []item{
	{"copper_pipe_15mm", 1200, "point_p"},
	{"pvc_pipe_32mm", 800, "cedeo"},
	{"steel_beam_ipn200", 15000, "descours"},
	{"cement_bag_25kg", 650, "bigmat"},
	{"electrical_cable_2_5mm", 350, "rexel"},
	{"insulation_panel_100mm", 2200, "isover"},
	{"roof_tile_clay", 180, "terreal"},
	{"plasterboard_13mm", 450, "placo"},
}

// rawEvent is the mutable construction form; pricing.Event is built
// from it once timestamp-sorting is final.
type rawEvent struct {
	eventID    string
	timestamp  int64
	itemID     string
	source     pricing.Source
	priceCents int64
	outcome    pricing.Outcome
	supplier   string
}

// generator bundles the seeded RNG with the accumulating event list so
// each phase method can append without threading rng/events through
// every call.
type generator struct {
	rng    *rand.Rand
	events []rawEvent
	now    int64
}

func newGenerator(seed int64) *generator {
	return &generator{
		rng: rand.New(rand.NewSource(seed)),
		now: baseTime,
	}
}

// randID draws 16 random bytes from the seeded RNG and shapes them
// into a version-4 UUID, the Go analogue of the original's
// uuid.UUID(int=rng.getrandbits(128), version=4).
func (g *generator) randID() string {
	var b [16]byte
	g.rng.Read(b[:])
	id, _ := uuid.FromBytes(b[:])
	id.SetVersion(4)
	id.SetVariant(uuid.RFC4122)
	return id.String()
}

func (g *generator) intn(n int64) int64 {
	if n <= 0 {
		return 0
	}
	return int64(g.rng.Int63n(n))
}

// between returns a uniform int64 in [lo, hi], inclusive, swapping the
// bounds if lo > hi (several of the original's ranges can invert for
// small bases, e.g. base // 20 == 0).
func (g *generator) between(lo, hi int64) int64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + g.intn(hi-lo+1)
}

func (g *generator) emit(itemID string, source pricing.Source, price, ts int64, outcome pricing.Outcome, supplier string) {
	g.events = append(g.events, rawEvent{
		eventID:    g.randID(),
		timestamp:  ts,
		itemID:     itemID,
		source:     source,
		priceCents: price,
		outcome:    outcome,
		supplier:   supplier,
	})
}

func (g *generator) choice() item {
	return items[g.intn(int64(len(items)))]
}

// Generate produces a deterministic synthetic event stream of at least
// count events, reproducing every scenario the engine's rules act on:
// multi-source conflicts, a learning curve, a decay gap, and
// circuit-breaker anomalies.
func Generate(count int, seed int64) []pricing.Event {
	g := newGenerator(seed)

	g.phaseHistoricSeed()
	g.phaseSupplierAndStandard()
	g.phaseLearningCurve()
	g.phaseDecayGap()
	g.phaseCircuitBreaker()
	g.phaseFill(count)

	sort.SliceStable(g.events, func(i, j int) bool {
		if g.events[i].timestamp != g.events[j].timestamp {
			return g.events[i].timestamp < g.events[j].timestamp
		}
		return g.events[i].eventID < g.events[j].eventID
	})

	out := make([]pricing.Event, len(g.events))
	for i, re := range g.events {
		var meta map[string]any
		if re.supplier != "" {
			meta = map[string]any{"supplier": re.supplier}
		}
		out[i] = pricing.Event{
			EventID:    re.eventID,
			Timestamp:  re.timestamp,
			ItemID:     re.itemID,
			Source:     re.source,
			PriceCents: re.priceCents,
			Outcome:    re.outcome,
			Meta:       meta,
		}
	}
	return out
}

// phaseHistoricSeed lays down a handful of historic prices per item,
// ~80 events total.
func (g *generator) phaseHistoricSeed() {
	for _, it := range items {
		n := g.between(5, 12)
		for i := int64(0); i < n; i++ {
			noise := g.between(-it.base/20, it.base/20)
			g.emit(it.id, pricing.SourceHistoric, it.base+noise, g.now, pricing.OutcomeNone, "")
			g.now += g.between(60, hour)
		}
	}
}

// phaseSupplierAndStandard generates ~200 supplier quotes, some paired
// with a conflicting historic read shortly after.
func (g *generator) phaseSupplierAndStandard() {
	for i := 0; i < 200; i++ {
		it := g.choice()

		supplierNoise := g.between(0, it.base/5)
		supplierPrice := it.base + supplierNoise
		g.emit(it.id, pricing.SourceSupplier, supplierPrice, g.now, pricing.OutcomeNone, it.supplier)
		g.now += g.between(30, hour/2)

		if g.rng.Float64() < 0.3 {
			historicNoise := g.between(-it.base/10, it.base/10)
			g.emit(it.id, pricing.SourceHistoric, it.base+historicNoise, g.now, pricing.OutcomeNone, "")
			g.now += g.between(10, 300)
		}

		g.now += g.between(60, hour)
	}
}

// phaseLearningCurve drives a handful of items through repeated
// supplier-quote/human-override cycles so their learned bias
// accumulates a clear rolling-window history: 4 items x 15 cycles,
// 120 events.
func (g *generator) phaseLearningCurve() {
	n := len(items)
	if n > 4 {
		n = 4
	}
	perm := g.rng.Perm(len(items))
	learningItems := make([]item, n)
	for i := 0; i < n; i++ {
		learningItems[i] = items[perm[i]]
	}

	for _, it := range learningItems {
		for cycle := 0; cycle < 15; cycle++ {
			supplierPrice := it.base + g.between(it.base/20, it.base/5)
			g.emit(it.id, pricing.SourceSupplier, supplierPrice, g.now, pricing.OutcomeNone, it.supplier)
			g.now += g.between(60, 600)

			humanMarkup := g.between(it.base/10, it.base/3)
			humanPrice := supplierPrice + humanMarkup
			outcome := pricing.OutcomeQuoteRejected
			if g.rng.Float64() < 0.75 {
				outcome = pricing.OutcomeQuoteAccepted
			}
			g.emit(it.id, pricing.SourceHuman, humanPrice, g.now, outcome, "")
			g.now += g.between(300, hour)
		}
	}
}

// phaseDecayGap jumps the clock forward 8 days and emits 100
// supplier/historic pairs (200 events) so the kernel's decay rule has
// a clear >7-day gap to act on.
func (g *generator) phaseDecayGap() {
	g.now += 8 * day

	for i := 0; i < 100; i++ {
		it := g.choice()

		supplierPrice := it.base + g.between(0, it.base/5)
		g.emit(it.id, pricing.SourceSupplier, supplierPrice, g.now, pricing.OutcomeNone, it.supplier)
		g.now += g.between(60, hour/2)

		g.emit(it.id, pricing.SourceHistoric, it.base+g.between(-50, 50), g.now, pricing.OutcomeNone, "")
		g.now += g.between(60, hour)
	}
}

// phaseCircuitBreaker emits ~50 accepted human quotes priced well
// above twice the current supplier price, guaranteed to trip Rule E.
func (g *generator) phaseCircuitBreaker() {
	for i := 0; i < 50; i++ {
		it := g.choice()

		supplierPrice := it.base + g.between(0, it.base/10)
		g.emit(it.id, pricing.SourceSupplier, supplierPrice, g.now, pricing.OutcomeNone, it.supplier)
		g.now += g.between(30, 300)

		anomalyPrice := supplierPrice*2 + g.between(100, 500)
		g.emit(it.id, pricing.SourceHuman, anomalyPrice, g.now, pricing.OutcomeQuoteAccepted, "")
		g.now += g.between(60, hour)
	}
}

// phaseFill tops the stream up to count with a mix of all three
// sources and outcomes.
func (g *generator) phaseFill(count int) {
	sources := []pricing.Source{pricing.SourceHistoric, pricing.SourceSupplier, pricing.SourceSupplier, pricing.SourceHuman}
	outcomes := []pricing.Outcome{pricing.OutcomeQuoteAccepted, pricing.OutcomeQuoteRejected, pricing.OutcomeNone}

	for len(g.events) < count {
		it := g.choice()
		source := sources[g.intn(int64(len(sources)))]
		noise := g.between(-it.base/10, it.base/5)
		price := it.base + noise
		if price < 1 {
			price = 1
		}

		outcome := pricing.OutcomeNone
		supplier := ""
		if source == pricing.SourceSupplier {
			supplier = it.supplier
		}
		if source == pricing.SourceHuman {
			outcome = outcomes[g.intn(int64(len(outcomes)))]
		}

		g.emit(it.id, source, price, g.now, outcome, supplier)
		g.now += g.between(30, hour)
	}
}
