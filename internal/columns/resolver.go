// =============================================================================
// CSV to Zefania Converter - Column Resolver
// =============================================================================
//
// The resolver maps the actual header row of an input file onto the logical
// fields the converter needs:
//
//   book_number  (required)
//   chapter      (required)
//   verse        (required)
//   text         (required)
//   book_name    (optional)
//
// MATCHING:
//   Each logical field has an ordered list of acceptable spellings. In the
//   default (flexible) mode, both the spellings and the actual headers are
//   normalized (lower-cased, everything except ASCII letters and digits
//   removed) before comparing, so "Book Number", "book_number" and
//   "BOOK-NUMBER" are the same key. The first spelling that matches wins.
//   When several headers share a key, the last of them is used.
//
//   In strict mode, spellings must equal the header exactly.
//
// =============================================================================

package columns

import (
	"strings"

	"github.com/ginjaninja78/csv2zefania/internal/types"
)

// Logical field names.
const (
	BookNumber = "book_number"
	Chapter    = "chapter"
	Verse      = "verse"
	Text       = "text"
	BookName   = "book_name"
)

// RequiredFields lists the fields that must resolve, in resolution order.
var RequiredFields = []string{BookNumber, Chapter, Verse, Text}

// DefaultSynonyms returns the built-in header spellings for every field.
func DefaultSynonyms() map[string][]string {
	return map[string][]string{
		BookNumber: {"Book Number", "book"},
		Chapter:    {"Chapter", "chapter"},
		Verse:      {"Verse", "verse"},
		Text:       {"Text", "text"},
		BookName:   {"Book Name", "book_name", "bname"},
	}
}

// =============================================================================
// MAPPING
// =============================================================================

// Column is a resolved header: its position and its spelling in the input.
type Column struct {
	Index  int
	Header string
}

// Mapping is the result of resolving a header row.
type Mapping struct {
	BookNumber Column
	Chapter    Column
	Verse      Column
	Text       Column

	// BookName is nil when the optional column is not present.
	BookName *Column
}

// Lookup returns the resolved column for a logical field.
func (m *Mapping) Lookup(field string) (Column, bool) {
	switch field {
	case BookNumber:
		return m.BookNumber, true
	case Chapter:
		return m.Chapter, true
	case Verse:
		return m.Verse, true
	case Text:
		return m.Text, true
	case BookName:
		if m.BookName == nil {
			return Column{}, false
		}
		return *m.BookName, true
	}
	return Column{}, false
}

// =============================================================================
// RESOLVER
// =============================================================================

// Resolver resolves header rows against a set of synonyms.
type Resolver struct {
	synonyms map[string][]string
	strict   bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithStrict disables header normalization.
func WithStrict(strict bool) Option {
	return func(r *Resolver) {
		r.strict = strict
	}
}

// WithExtraSynonyms prepends spellings to the built-in lists, so configured
// spellings take precedence over the defaults.
func WithExtraSynonyms(extra map[string][]string) Option {
	return func(r *Resolver) {
		for field, spellings := range extra {
			merged := make([]string, 0, len(spellings)+len(r.synonyms[field]))
			merged = append(merged, spellings...)
			merged = append(merged, r.synonyms[field]...)
			r.synonyms[field] = merged
		}
	}
}

// NewResolver creates a Resolver with the default synonyms and any options.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{synonyms: DefaultSynonyms()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve maps headers onto the logical fields.
//
// RETURNS:
//   - The Mapping on success.
//   - A *types.MissingColumnError naming the first required field that could
//     not be matched.
func (r *Resolver) Resolve(headers []string) (*Mapping, error) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		// The last of several headers with the same key wins.
		index[r.key(h)] = i
	}

	pick := func(field string) (Column, bool) {
		for _, candidate := range r.synonyms[field] {
			if i, ok := index[r.key(candidate)]; ok {
				return Column{Index: i, Header: headers[i]}, true
			}
		}
		return Column{}, false
	}

	resolved := make(map[string]Column, len(RequiredFields))
	for _, field := range RequiredFields {
		col, ok := pick(field)
		if !ok {
			return nil, &types.MissingColumnError{Field: field, Tried: r.synonyms[field]}
		}
		resolved[field] = col
	}

	mapping := &Mapping{
		BookNumber: resolved[BookNumber],
		Chapter:    resolved[Chapter],
		Verse:      resolved[Verse],
		Text:       resolved[Text],
	}
	if col, ok := pick(BookName); ok {
		mapping.BookName = &col
	}

	return mapping, nil
}

func (r *Resolver) key(header string) string {
	if r.strict {
		return header
	}
	return NormalizeKey(header)
}

// NormalizeKey lower-cases s and drops every character that is not an ASCII
// letter or digit.
func NormalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
