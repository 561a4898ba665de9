package email

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// Rejection errors for the cleaning pipeline. A rejected candidate is
// dropped silently by callers; these errors exist so each step is
// independently testable, not for user-visible reporting.
var (
	// ErrNoAddress is returned when no local@domain structure remains.
	ErrNoAddress = errors.New("candidate does not match address grammar")

	// ErrWhitespace is returned when whitespace survives the unwrap step.
	ErrWhitespace = errors.New("candidate contains whitespace")

	// ErrEmptyLocal is returned when artifact stripping consumes the
	// entire local part.
	ErrEmptyLocal = errors.New("local part empty after cleaning")

	// ErrBadLocal is returned when the local part contains characters
	// outside the address alphabet.
	ErrBadLocal = errors.New("local part contains invalid characters")

	// ErrBadDomain is returned when the domain has no TLD, a malformed
	// TLD, doubled dots, or leading/trailing punctuation.
	ErrBadDomain = errors.New("domain is malformed")
)

// grammarRegex is the canonical local@domain grammar re-checked mid-pipeline
// after the text-level repairs have run.
var grammarRegex = regexp.MustCompile(`^([A-Za-z0-9._%+\-]{1,64})@([A-Za-z0-9.\-]{1,253})$`)

// localPartRegex validates the local part after artifact stripping.
var localPartRegex = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+$`)

// tldRegex validates the top-level segment: 2-24 letters, nothing else.
var tldRegex = regexp.MustCompile(`^[A-Za-z]{2,24}$`)

// percentWhitespace lists percent-encoded whitespace sequences that markup
// mangling can glue onto the front of a local part.
var percentWhitespace = []string{"%20", "%09", "%0a", "%0d"}

// leadingDigitsPercent matches a "20%"-style glue artifact: a run of digits
// and a percent sign stuck to the front of the local part.
var leadingDigitsPercent = regexp.MustCompile(`^[0-9]+%`)

// Clean runs a raw candidate through the cleaning pipeline and returns the
// canonical local@domain string, or an error describing why the candidate
// was rejected. Each step is a potential outright rejection; none of them
// panic or log.
//
// The steps are order-sensitive text heuristics with no formal grammar, so
// they are kept as separate functions that the pipeline composes. Clean is
// idempotent on its own output.
func Clean(candidate string) (string, error) {
	s := unwrapPunctuation(candidate)
	s = stripLabelGlue(s)

	if strings.ContainsFunc(s, unicode.IsSpace) {
		return "", ErrWhitespace
	}

	m := grammarRegex.FindStringSubmatch(s)
	if m == nil {
		return "", ErrNoAddress
	}
	local, domain := m[1], m[2]

	local, err := stripLocalArtifacts(local)
	if err != nil {
		return "", err
	}

	if err := validateDomain(domain); err != nil {
		return "", err
	}

	return local + "@" + domain, nil
}

// unwrapPunctuation trims whitespace, then strips a run of wrapping
// punctuation and brackets from the start and a run of trailing
// punctuation from the end. Addresses routinely arrive as "(info@x.com)",
// "<info@x.com>," or "info@x.com." in prose.
func unwrapPunctuation(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, `<([{"'`+"`“”‘’«")
	s = strings.TrimRight(s, `>)]}"'`+"`“”‘’».,;:!?")
	return s
}

// stripLabelGlue removes an "email:"/"e-mail:"-style label glued directly
// onto the front of the local part with no separating whitespace, e.g.
// "Email:info@example.com" or "e-mail-info@example.com". We look for the
// last occurrence of the label before the @ and cut everything up through
// the label plus any immediately following ':', '-', or '_'.
func stripLabelGlue(s string) string {
	at := strings.IndexByte(s, '@')
	if at <= 0 {
		return s
	}

	head := strings.ToLower(s[:at])
	cut := -1
	for _, label := range []string{"e-mail", "email"} {
		if idx := strings.LastIndex(head, label); idx >= 0 {
			end := idx + len(label)
			if end > cut {
				cut = end
			}
		}
	}
	if cut < 0 || cut >= at {
		return s
	}

	for cut < at && (s[cut] == ':' || s[cut] == '-' || s[cut] == '_') {
		cut++
	}
	return s[cut:]
}

// stripLocalArtifacts removes percent-encoding debris from the front of
// the local part: first any run of percent-encoded whitespace sequences,
// then a separate "digits%" glue artifact (a stray "20%" prefix left by
// truncated encoding). The stripped local part is re-validated against the
// address alphabet.
func stripLocalArtifacts(local string) (string, error) {
	for {
		lower := strings.ToLower(local)
		stripped := false
		for _, seq := range percentWhitespace {
			if strings.HasPrefix(lower, seq) {
				local = local[len(seq):]
				stripped = true
				break
			}
		}
		if !stripped {
			break
		}
	}

	if m := leadingDigitsPercent.FindString(local); m != "" {
		local = local[len(m):]
	}

	if local == "" {
		return "", ErrEmptyLocal
	}
	if !localPartRegex.MatchString(local) {
		return "", ErrBadLocal
	}
	return local, nil
}

// validateDomain rejects domains without a plausible TLD or with
// structural defects the grammar regex cannot see.
func validateDomain(domain string) error {
	dot := strings.LastIndexByte(domain, '.')
	if dot < 0 || dot == len(domain)-1 {
		return ErrBadDomain
	}
	if !tldRegex.MatchString(domain[dot+1:]) {
		return ErrBadDomain
	}
	if strings.Contains(domain, "..") {
		return ErrBadDomain
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") ||
		strings.HasPrefix(domain, "-") || strings.HasSuffix(domain, "-") {
		return ErrBadDomain
	}
	return nil
}
