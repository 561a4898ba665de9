package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/mailsift/mailsift/internal/email"
)

// Result holds everything extracted from one page.
type Result struct {
	// Candidates are raw email-candidate strings in extraction order.
	// They still go through email.Clean before they count.
	Candidates []string

	// Links are the raw href values of crawlable anchors, unresolved;
	// the frontier normalizes them against the base origin.
	Links []string

	// Title is the page title, kept for debug logging only.
	Title string
}

// skipSchemes are anchor schemes that never lead to a crawlable page.
// mailto: anchors are consumed by candidate extraction instead.
var skipSchemes = []string{"javascript:", "tel:", "mailto:"}

// Parse extracts candidates and links from HTML content. The stop
// callback is the caller's mid-parse stop condition (for the crawler,
// the email budget): each extraction source checks it and bails out once
// it reports true. Passing nil means "never stop early".
//
// Parse never fails on malformed markup - the HTML parser produces a
// best-effort tree for any input - so the only way to get an empty Result
// is an effectively empty document.
func Parse(content string, stop func() bool) *Result {
	if stop == nil {
		stop = func() bool { return false }
	}

	result := &Result{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return result
	}

	result.Title = strings.TrimSpace(doc.Find("title").First().Text())

	// Highest-confidence source first: mailto links carry the address in
	// the markup itself.
	if !stop() {
		result.Candidates = append(result.Candidates, mailtoAddresses(doc)...)
	}

	// Meta tags (description, author, og:* and friends) frequently carry
	// contact addresses in their content attributes.
	if !stop() {
		result.Candidates = append(result.Candidates, metaCandidates(doc)...)
	}

	// Body text last: the broadest and noisiest source.
	if !stop() {
		result.Candidates = append(result.Candidates, textCandidates(doc)...)
	}

	result.Links = crawlableLinks(doc)
	return result
}

// mailtoAddresses returns the address portion of every mailto: anchor,
// with the scheme prefix and any query string (subject=, body=) stripped.
func mailtoAddresses(doc *goquery.Document) []string {
	var addrs []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if !strings.HasPrefix(strings.ToLower(href), "mailto:") {
			return
		}
		addr := href[len("mailto:"):]
		if i := strings.IndexByte(addr, '?'); i >= 0 {
			addr = addr[:i]
		}
		if addr != "" {
			addrs = append(addrs, addr)
		}
	})
	return addrs
}

// metaCandidates regex-scans the content attribute of every meta tag.
func metaCandidates(doc *goquery.Document) []string {
	var candidates []string
	doc.Find("meta[content]").Each(func(_ int, s *goquery.Selection) {
		content, _ := s.Attr("content")
		candidates = append(candidates, email.ExtractCandidates(content)...)
	})
	return candidates
}

// textCandidates walks the body collecting text strictly from text-bearing
// leaf nodes as separate tokens and regex-scans each token on its own.
// If the document has no text nodes, the whole body text collapsed to
// single spaces is scanned instead.
func textCandidates(doc *goquery.Document) []string {
	body := doc.Find("body")
	if body.Length() == 0 {
		return nil
	}

	var tokens []string
	for _, node := range body.Nodes {
		collectTextTokens(node, &tokens)
	}

	if len(tokens) == 0 {
		collapsed := strings.Join(strings.Fields(body.Text()), " ")
		if collapsed == "" {
			return nil
		}
		tokens = []string{collapsed}
	}

	var candidates []string
	for _, token := range tokens {
		candidates = append(candidates, email.ExtractCandidates(token)...)
	}
	return candidates
}

// collectTextTokens appends each non-blank text node under n as its own
// token. Script and style text is markup plumbing, not page text.
func collectTextTokens(n *html.Node, tokens *[]string) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
		return
	}
	if n.Type == html.TextNode {
		if token := strings.TrimSpace(n.Data); token != "" {
			*tokens = append(*tokens, token)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectTextTokens(c, tokens)
	}
}

// crawlableLinks returns every anchor href that could lead to another
// page. Scheme filtering happens here; domain filtering and
// normalization belong to the frontier.
func crawlableLinks(doc *goquery.Document) []string {
	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || href == "#" {
			return
		}
		lower := strings.ToLower(href)
		for _, scheme := range skipSchemes {
			if strings.HasPrefix(lower, scheme) {
				return
			}
		}
		links = append(links, href)
	})
	return links
}
