package gbif

import "sync"

// NameCache memoizes vernacular names by species key and translations of
// higher taxa for one fetch session. Create it per session and pass it to
// Fetcher.Vernacular and taxon.Translator.Enrich.
type NameCache struct {
	mu    sync.Mutex
	names map[int]string
	taxa  map[string]string
}

// NewNameCache creates an empty cache.
func NewNameCache() *NameCache {
	return &NameCache{
		names: make(map[int]string),
		taxa:  make(map[string]string),
	}
}

// Get returns a memoized name. The second value tells if the key was
// looked up before, even if no name was found.
func (c *NameCache) Get(speciesKey int) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res, ok := c.names[speciesKey]
	return res, ok
}

// Set memoizes a name, an empty name marks a miss.
func (c *NameCache) Set(speciesKey int, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names[speciesKey] = name
}

// Taxon returns a memoized translation of a higher taxon.
func (c *NameCache) Taxon(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res, ok := c.taxa[key]
	return res, ok
}

// SetTaxon memoizes a translation of a higher taxon.
func (c *NameCache) SetTaxon(key, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.taxa[key] = name
}

// Len returns the number of memoized species keys.
func (c *NameCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.names)
}
