package queue

// ConfigHeaders is the header row of the config section.
var ConfigHeaders = []string{"Key", "Value", "Opt"}

// AliasKey is the config key under which command aliases are stored.
// Value holds the alias name and Opt its expansion.
const AliasKey = "alias"

// ConfigEntry is one key/value/option triple. The record store never
// interprets entries; they belong to the command layer.
type ConfigEntry struct {
	Key   string
	Value string
	Opt   string
}

// Serialize returns the entry as a config row.
func (e ConfigEntry) Serialize() []string {
	return []string{e.Key, e.Value, e.Opt}
}

// DeserializeConfigEntry parses a config row, padding short rows.
func DeserializeConfigEntry(row []string) ConfigEntry {
	cells := make([]string, len(ConfigHeaders))
	copy(cells, row)
	return ConfigEntry{Key: cells[0], Value: cells[1], Opt: cells[2]}
}

// ConfigList is the ordered list of config entries of a collection.
// Keys may repeat; only an exact key and value pair is a duplicate.
type ConfigList []ConfigEntry

// Add appends an entry. Fails with DuplicateConfigError if an entry with the
// same key and value already exists.
func (l *ConfigList) Add(e ConfigEntry) error {
	if _, ok := l.Lookup(e.Key, e.Value); ok {
		return &DuplicateConfigError{Key: e.Key, Value: e.Value}
	}
	*l = append(*l, e)
	return nil
}

// Get returns the first entry with key.
func (l ConfigList) Get(key string) (ConfigEntry, bool) {
	for _, e := range l {
		if e.Key == key {
			return e, true
		}
	}
	return ConfigEntry{}, false
}

// All returns every entry with key, in order.
func (l ConfigList) All(key string) []ConfigEntry {
	var out []ConfigEntry
	for _, e := range l {
		if e.Key == key {
			out = append(out, e)
		}
	}
	return out
}

// Lookup returns the entry with key and value.
func (l ConfigList) Lookup(key, value string) (ConfigEntry, bool) {
	for _, e := range l {
		if e.Key == key && e.Value == value {
			return e, true
		}
	}
	return ConfigEntry{}, false
}

// Apply calls fn with the first entry for key, if there is one.
func (l ConfigList) Apply(key string, fn func(ConfigEntry)) bool {
	e, ok := l.Get(key)
	if ok {
		fn(e)
	}
	return ok
}

// Remove deletes entries with key. A non-empty value restricts removal to
// entries with that value. Returns the number of entries removed.
func (l *ConfigList) Remove(key, value string) int {
	kept := (*l)[:0]
	removed := 0
	for _, e := range *l {
		if e.Key == key && (value == "" || e.Value == value) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	*l = kept
	return removed
}
