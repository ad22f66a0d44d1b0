// =============================================================================
// CSV to Zefania Converter - Strong's Number Normalizer
// =============================================================================
//
// Verse text may carry inline lexical references in one of two spellings:
//
//   {(H1234)}   parenthesized, as produced by some exports
//   {H1234}     canonical
//
// Normalize rewrites the first form into the second. The letter is always
// H (Hebrew) or G (Greek) followed by one or more digits; anything else is
// left exactly as it was.
//
// =============================================================================

package strongs

import "regexp"

var (
	// parenthesizedRef matches {(H1234)} and {(G26)}.
	parenthesizedRef = regexp.MustCompile(`\{\(([HG])(\d+)\)\}`)

	// canonicalRef matches {H1234} and {G26}.
	canonicalRef = regexp.MustCompile(`\{([HG]\d+)\}`)
)

// Normalize rewrites every {(H1234)} into {H1234}. The function is total and
// idempotent.
func Normalize(text string) string {
	return parenthesizedRef.ReplaceAllString(text, "{${1}${2}}")
}

// Extract returns the Strong's numbers referenced by text, in order of
// appearance. The text is normalized first, so both spellings are found.
//
// EXAMPLE:
//   Extract("In the beginning{H7225} God{(H430)}") -> ["H7225", "H430"]
func Extract(text string) []string {
	matches := canonicalRef.FindAllStringSubmatch(Normalize(text), -1)
	if len(matches) == 0 {
		return nil
	}

	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, m[1])
	}
	return refs
}
