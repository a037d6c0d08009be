package aggregate

import "sort"

// Entry is one key and its count
type Entry struct {
	Key   string
	Count int
}

// Counter counts string keys and remembers the order keys were first seen.
// The zero value is ready to use. Not safe for concurrent use
type Counter struct {
	idx     map[string]int
	entries []Entry
}

// Inc adds n to key, registering it on first sight
func (c *Counter) Inc(key string, n int) {
	if c.idx == nil {
		c.idx = make(map[string]int)
	}
	if i, ok := c.idx[key]; ok {
		c.entries[i].Count += n
		return
	}
	c.idx[key] = len(c.entries)
	c.entries = append(c.entries, Entry{Key: key, Count: n})
}

// Get returns the count for key, 0 when unseen
func (c *Counter) Get(key string) int {
	if i, ok := c.idx[key]; ok {
		return c.entries[i].Count
	}
	return 0
}

// Len is the number of distinct keys
func (c *Counter) Len() int { return len(c.entries) }

// Sum is the total over all keys
func (c *Counter) Sum() int {
	n := 0
	for _, e := range c.entries {
		n += e.Count
	}
	return n
}

// Keys returns the keys in first-seen order
func (c *Counter) Keys() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Key
	}
	return out
}

// Entries returns a copy of all entries in first-seen order
func (c *Counter) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Top returns the k highest counts, descending. Equal counts keep first-seen order.
// k <= 0 or k > Len returns every entry
func (c *Counter) Top(k int) []Entry {
	out := c.Entries()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if k > 0 && k < len(out) {
		out = out[:k]
	}
	return out
}

// Max returns the first-seen key with the highest count. ok is false when the counter is empty
func (c *Counter) Max() (Entry, bool) {
	if len(c.entries) == 0 {
		return Entry{}, false
	}
	best := c.entries[0]
	for _, e := range c.entries[1:] {
		if e.Count > best.Count {
			best = e
		}
	}
	return best, true
}

// Merge adds every count of o into c. Keys c has not seen are appended in o's order
func (c *Counter) Merge(o *Counter) {
	if o == nil {
		return
	}
	for _, e := range o.entries {
		c.Inc(e.Key, e.Count)
	}
}
