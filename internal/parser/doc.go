// Package parser extracts email candidates and outbound links from HTML.
//
// # Extraction sources
//
// Candidates come from three sources, scanned in confidence order:
//
//  1. mailto: anchors - the address is taken directly from the href, so
//     these bypass the regex entirely.
//  2. meta tag content attributes, regex-scanned.
//  3. Body text, collected from text-bearing leaf nodes as separate
//     tokens. Tokens are never concatenated across nodes: two adjacent
//     but unrelated fragments (a label and an address with no separating
//     whitespace in the source markup) must not glue into a single false
//     match. When a document has no text nodes at all, the whole body
//     text collapsed to single spaces is scanned as a fallback.
//
// Each source short-circuits once the crawl's stop condition holds, so no
// work is wasted after the budgets are exhausted.
//
// Design decision: We parse with goquery (over golang.org/x/net/html)
// rather than regex over raw markup because it tolerates the malformed
// HTML that is normal on the open web and gives us a real node tree for
// the leaf-token walk.
package parser
