package nbt

// Compound is an insertion-ordered string-keyed mapping of tags. The
// wire format is order-sensitive, so a plain map won't do: Keys
// iterates in the order entries were read or Set.
type Compound struct {
	keys []string
	m    map[string]any
}

// NewCompound returns an empty compound.
func NewCompound() *Compound {
	return &Compound{m: make(map[string]any)}
}

// Len returns the number of entries.
func (c *Compound) Len() int { return len(c.keys) }

// Keys returns the keys in insertion order. The returned slice is
// shared; callers must not modify it.
func (c *Compound) Keys() []string { return c.keys }

// Get returns the value for key and whether it was present.
func (c *Compound) Get(key string) (any, bool) {
	v, ok := c.m[key]
	return v, ok
}

// Has returns true if the compound has a value for key.
func (c *Compound) Has(key string) bool {
	_, ok := c.m[key]
	return ok
}

// Set inserts or replaces the value for key. A new key appends to the
// iteration order; replacing keeps the original position.
func (c *Compound) Set(key string, v any) {
	if c.m == nil {
		c.m = make(map[string]any)
	}
	if _, ok := c.m[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.m[key] = v
}

// Delete removes key if present.
func (c *Compound) Delete(key string) {
	if _, ok := c.m[key]; !ok {
		return
	}
	delete(c.m, key)
	for i, k := range c.keys {
		if k == key {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
}

// Range calls fn for each entry in insertion order until fn returns
// false.
func (c *Compound) Range(fn func(key string, v any) bool) {
	for _, k := range c.keys {
		if !fn(k, c.m[k]) {
			return
		}
	}
}

// GetString returns the value of key as a string, or "".
func (c *Compound) GetString(key string) string {
	if v, ok := c.m[key].(string); ok {
		return v
	}
	return ""
}

// GetByte returns the value of key as an int8, or 0. A bool stored by
// the caller reads as 0/1.
func (c *Compound) GetByte(key string) int8 {
	switch v := c.m[key].(type) {
	case int8:
		return v
	case bool:
		if v {
			return 1
		}
	}
	return 0
}

// GetInt returns the value of key as an int32, or 0.
func (c *Compound) GetInt(key string) int32 {
	v, _ := c.m[key].(int32)
	return v
}

// GetLong returns the value of key as an int64, or 0.
func (c *Compound) GetLong(key string) int64 {
	v, _ := c.m[key].(int64)
	return v
}

// GetFloat returns the value of key as a float64, converting from
// float32 if needed, or 0.
func (c *Compound) GetFloat(key string) float64 {
	switch v := c.m[key].(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	}
	return 0
}

// GetCompound returns the value of key as a *Compound, or nil.
func (c *Compound) GetCompound(key string) *Compound {
	v, _ := c.m[key].(*Compound)
	return v
}

// GetList returns the value of key as a []any, or nil.
func (c *Compound) GetList(key string) []any {
	v, _ := c.m[key].([]any)
	return v
}

// GetStrings returns the value of key as a string slice. Non-string
// elements are skipped.
func (c *Compound) GetStrings(key string) []string {
	l := c.GetList(key)
	ss := make([]string, 0, len(l))
	for _, x := range l {
		if s, ok := x.(string); ok {
			ss = append(ss, s)
		}
	}
	return ss
}
