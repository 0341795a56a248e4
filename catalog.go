package transcache

import "maps"

// contextSeparator joins a message context and its msgid in entry keys, the
// same way gettext does inside .mo files.
const contextSeparator = "\x04"

// Catalog is the set of translated strings and headers of one domain/locale.
type Catalog struct {
	// Entries maps an entry key (see EntryKey) to its translations:
	// the singular form first, followed by plural forms.
	Entries map[string][]string `json:"entries"`
	Headers map[string]string   `json:"headers"`
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		Entries: make(map[string][]string),
		Headers: make(map[string]string),
	}
}

// EntryKey builds the lookup key of a message with an optional context.
func EntryKey(context, msgid string) string {
	if context == "" {
		return msgid
	}
	return context + contextSeparator + msgid
}

// Translate returns the singular translation of msgid.
func (c *Catalog) Translate(msgid string) (string, bool) {
	return c.TranslatePlural(EntryKey("", msgid), 0)
}

// TranslatePlural returns the translation at plural index n of the entry
// stored under key.
func (c *Catalog) TranslatePlural(key string, n int) (string, bool) {
	if c == nil {
		return "", false
	}
	forms, ok := c.Entries[key]
	if !ok || n < 0 || n >= len(forms) {
		return "", false
	}
	return forms[n], true
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Entries)
}

// MergeOnto returns a new catalog holding every entry of base plus every
// entry of c, with c winning on overlapping keys. Headers come from c,
// falling back to base when c has none.
func (c *Catalog) MergeOnto(base *Catalog) *Catalog {
	merged := NewCatalog()
	if base != nil {
		maps.Copy(merged.Entries, base.Entries)
	}
	maps.Copy(merged.Entries, c.Entries)

	switch {
	case len(c.Headers) > 0:
		maps.Copy(merged.Headers, c.Headers)
	case base != nil:
		maps.Copy(merged.Headers, base.Headers)
	}
	return merged
}
