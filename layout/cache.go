package layout

// cacheKey 由文本与所有影响字形度量的格式字段组成。颜色、描边与装饰线不影响测量。
type cacheKey struct {
	text    string
	family  string
	size    float64
	weight  string
	style   string
	variant string
}

func newCacheKey(text string, f ResolvedFormat) cacheKey {
	return cacheKey{
		text:    text,
		family:  f.Family,
		size:    f.Size,
		weight:  f.Weight,
		style:   f.Style,
		variant: f.Variant,
	}
}

// CacheEntry is a cached measurement and the format used to take it.
type CacheEntry struct {
	Metrics Metrics
	Format  ResolvedFormat
}

// MetricsCache memoizes measurements by (text, metric-affecting format fields).
// It is not safe for concurrent use; callers sharing one across goroutines must
// serialize access. Reset it whenever the measurement surface changes.
type MetricsCache struct {
	entries map[cacheKey]CacheEntry
	hits    int
	misses  int
}

// NewMetricsCache returns an empty cache.
func NewMetricsCache() *MetricsCache {
	return &MetricsCache{entries: map[cacheKey]CacheEntry{}}
}

// Get looks up the measurement of text in format f.
func (c *MetricsCache) Get(text string, f ResolvedFormat) (CacheEntry, bool) {
	e, ok := c.entries[newCacheKey(text, f)]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return e, ok
}

// Put stores a measurement of text in format f.
func (c *MetricsCache) Put(text string, f ResolvedFormat, m Metrics) {
	c.entries[newCacheKey(text, f)] = CacheEntry{Metrics: m, Format: f}
}

// Len returns the number of cached measurements.
func (c *MetricsCache) Len() int { return len(c.entries) }

// Stats returns the lookup hit and miss counts since the last Reset.
func (c *MetricsCache) Stats() (hits, misses int) { return c.hits, c.misses }

// Reset drops every entry.
func (c *MetricsCache) Reset() {
	clear(c.entries)
	c.hits, c.misses = 0, 0
}

// measure 读穿缓存：命中则直接返回，否则调用后端并写入。
func (c *MetricsCache) measure(m Measurer, text string, f ResolvedFormat) (Metrics, error) {
	if e, ok := c.Get(text, f); ok {
		return e.Metrics, nil
	}
	metrics, err := m.Measure(text, f.Font())
	if err != nil {
		return Metrics{}, err
	}
	c.Put(text, f, metrics)
	return metrics, nil
}
