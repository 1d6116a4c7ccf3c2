package websearch

import "strings"

// Static reputation lists. Membership is substring-based so subdomains
// like en.wikipedia.org match their parent host.
var highReputationHosts = []string{
	"wikipedia.org",
	"nature.com",
	"sciencedirect.com",
	"britannica.com",
	"arxiv.org",
	"ieee.org",
	"acm.org",
	"github.com",
	"stackoverflow.com",
}

var mediumReputationHosts = []string{
	"nytimes.com",
	"bbc.com",
	"theguardian.com",
	"reuters.com",
	"economist.com",
	"medium.com",
	"reddit.com",
}

// Credibility score tiers.
const (
	credibilityKnowledgeGraph = 0.95
	credibilityHigh           = 0.9
	credibilityEdu            = 0.85
	credibilityGov            = 0.8
	credibilityMedium         = 0.75
	credibilityOrg            = 0.7
	credibilityDefault        = 0.5
)

// CredibilityScore rates a result's source deterministically from its
// domain. Knowledge-graph results are trusted regardless of domain.
func CredibilityScore(domain string, kind ResultKind) float64 {
	if kind == KindKnowledgeGraph {
		return credibilityKnowledgeGraph
	}

	d := strings.ToLower(domain)
	for _, host := range highReputationHosts {
		if strings.Contains(d, host) {
			return credibilityHigh
		}
	}
	for _, host := range mediumReputationHosts {
		if strings.Contains(d, host) {
			return credibilityMedium
		}
	}

	switch {
	case strings.HasSuffix(d, ".edu"):
		return credibilityEdu
	case strings.HasSuffix(d, ".gov"):
		return credibilityGov
	case strings.HasSuffix(d, ".org"):
		return credibilityOrg
	}
	return credibilityDefault
}

// Relevance scoring weights.
const (
	relevanceTitleHit   = 0.4
	relevanceSnippetHit = 0.2
	relevanceCoverage   = 0.4
)

// RelevanceScore rates how well a result matches the query tokens.
// Answer-box results are maximally relevant by construction.
func RelevanceScore(query, title, snippet string, kind ResultKind) float64 {
	if kind == KindAnswerBox {
		return 1.0
	}

	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return 0
	}

	lowerTitle := strings.ToLower(title)
	lowerSnippet := strings.ToLower(snippet)

	var score float64
	matched := 0
	for _, tok := range tokens {
		if strings.Contains(lowerTitle, tok) {
			score += relevanceTitleHit
			matched++
		}
		if strings.Contains(lowerSnippet, tok) {
			score += relevanceSnippetHit
			matched++
		}
	}

	score += float64(matched) / float64(len(tokens)*2) * relevanceCoverage

	if score > 1 {
		return 1
	}
	if score < 0 {
		return 0
	}
	return score
}

// rankingScore orders results: relevance dominates, credibility breaks in.
func rankingScore(r WebSearchResult) float64 {
	return 0.6*r.RelevanceScore + 0.4*r.CredibilityScore
}

// domainOf extracts the bare host from a URL, dropping scheme, path and
// a leading www.
func domainOf(rawURL string) string {
	s := rawURL
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.Index(s, "@"); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.Index(s, ":"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimPrefix(strings.ToLower(s), "www.")
}
