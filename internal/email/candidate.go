package email

import "regexp"

// candidateRegex matches local@domain.tld shaped substrings: local part is
// 1-64 characters from the usual address alphabet, domain is letters,
// digits, dots and hyphens, and the top-level segment is 2-24 letters.
//
// Design decision: RE2 has no lookbehind/lookahead, so the "must not touch
// another local-part character" boundary rule is enforced separately in
// ExtractCandidates by inspecting the bytes adjacent to each match rather
// than in the pattern itself.
var candidateRegex = regexp.MustCompile(`[A-Za-z0-9._%+\-]{1,64}@[A-Za-z0-9.\-]+\.[A-Za-z]{2,24}`)

// isLocalPartByte reports whether b belongs to the local-part alphabet.
func isLocalPartByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '.', b == '_', b == '%', b == '+', b == '-':
		return true
	}
	return false
}

// ExtractCandidates scans text for email-shaped substrings and returns
// them in match order. Matches immediately preceded or followed by another
// local-part character are rejected at the boundary, so fragments embedded
// inside longer non-email tokens never surface as candidates.
//
// Candidates are raw: they still go through Clean before they count.
func ExtractCandidates(text string) []string {
	indexes := candidateRegex.FindAllStringIndex(text, -1)
	if len(indexes) == 0 {
		return nil
	}

	candidates := make([]string, 0, len(indexes))
	for _, idx := range indexes {
		start, end := idx[0], idx[1]
		if start > 0 && isLocalPartByte(text[start-1]) {
			continue
		}
		if end < len(text) && isLocalPartByte(text[end]) {
			continue
		}
		candidates = append(candidates, text[start:end])
	}
	return candidates
}
