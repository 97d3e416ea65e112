// WHY: the price cache is ephemeral — rebuilt from the event stream
// every run, never persisted, never part of the state fingerprint.
// Splitting it from RulesState is what keeps replay meaningful: if the
// cache leaked into the hash, two honest replays of the same file
// could diverge on cache-population order instead of on the numbers
// that actually matter.
package pricing

// PriceEntry is the latest observed price for one source/item pair.
type PriceEntry struct {
	PriceCents int64
	Timestamp  int64
}

// ItemPriceCache holds the latest supplier and historic price seen for
// one item. Either field may be unset (nil).
type ItemPriceCache struct {
	Supplier *PriceEntry
	Historic *PriceEntry
}

// Cache is the process-lifetime, per-item latest-price index. It is
// never written to disk and is rebuilt from scratch at the start of
// every run.
type Cache struct {
	items map[string]*ItemPriceCache
}

// NewCache creates an empty price cache.
func NewCache() *Cache {
	return &Cache{items: make(map[string]*ItemPriceCache)}
}

func (c *Cache) entry(itemID string) *ItemPriceCache {
	e, ok := c.items[itemID]
	if !ok {
		e = &ItemPriceCache{}
		c.items[itemID] = e
	}
	return e
}

// UpdateSupplier overwrites the latest supplier entry for an item.
func (c *Cache) UpdateSupplier(itemID string, priceCents, timestamp int64) {
	c.entry(itemID).Supplier = &PriceEntry{PriceCents: priceCents, Timestamp: timestamp}
}

// UpdateHistoric overwrites the latest historic entry for an item.
func (c *Cache) UpdateHistoric(itemID string, priceCents, timestamp int64) {
	c.entry(itemID).Historic = &PriceEntry{PriceCents: priceCents, Timestamp: timestamp}
}

// Get returns the cache entry for an item, or nil if nothing has been
// observed for it yet. The returned value must not be mutated.
func (c *Cache) Get(itemID string) *ItemPriceCache {
	return c.items[itemID]
}

const supplierFreshnessSeconds = 3600

// supplierEligible reports whether the cached supplier price is fresh
// enough (within one hour) to be used as a candidate for eventTS, and
// what that price is.
func (c *Cache) supplierEligible(itemID string, eventTS int64) (eligible bool, priceCents int64) {
	e := c.items[itemID]
	if e == nil || e.Supplier == nil {
		return false, 0
	}
	if eventTS-e.Supplier.Timestamp <= supplierFreshnessSeconds {
		return true, e.Supplier.PriceCents
	}
	return false, 0
}

// historicEligible reports whether a historic price exists for the
// item (no age limit applies) and what that price is.
func (c *Cache) historicEligible(itemID string) (eligible bool, priceCents int64) {
	e := c.items[itemID]
	if e == nil || e.Historic == nil {
		return false, 0
	}
	return true, e.Historic.PriceCents
}
