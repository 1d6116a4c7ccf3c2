package websearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredibilityScore(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		kind   ResultKind
		want   float64
	}{
		{"high reputation list", "wikipedia.org", KindOrganic, 0.9},
		{"subdomain of listed host", "en.wikipedia.org", KindOrganic, 0.9},
		{"nature journal", "nature.com", KindOrganic, 0.9},
		{"medium reputation list", "bbc.com", KindOrganic, 0.75},
		{"unlisted edu", "cs.stanford.edu", KindOrganic, 0.85},
		{"unlisted gov", "nasa.gov", KindOrganic, 0.8},
		{"unlisted org", "example.org", KindOrganic, 0.7},
		{"unknown domain", "randomblog.io", KindOrganic, 0.5},
		{"knowledge graph trumps domain", "randomblog.io", KindKnowledgeGraph, 0.95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CredibilityScore(tt.domain, tt.kind))
		})
	}
}

func TestRelevanceScoreTokenHits(t *testing.T) {
	// Both tokens in title: 2×0.4 plus coverage 2/(2×2)×0.4 = 1.0 clamped.
	score := RelevanceScore("climate change", "Climate Change Explained", "", KindOrganic)
	assert.Equal(t, 1.0, score)

	// One token in snippet only: 0.2 + 1/(2×2)×0.4 = 0.3.
	score = RelevanceScore("climate change", "Unrelated", "effects of climate policy", KindOrganic)
	assert.InDelta(t, 0.3, score, 1e-9)

	// No hits at all.
	assert.Equal(t, 0.0, RelevanceScore("climate change", "pasta", "recipes", KindOrganic))
}

func TestRelevanceScoreClamped(t *testing.T) {
	// Every token hits both fields; the raw sum exceeds 1 and is clamped.
	score := RelevanceScore("go maps slices", "go maps slices", "go maps slices", KindOrganic)
	assert.Equal(t, 1.0, score)
}

func TestRelevanceScoreAnswerBoxFixed(t *testing.T) {
	assert.Equal(t, 1.0, RelevanceScore("anything", "", "", KindAnswerBox))
}

func TestRelevanceScoreEmptyQuery(t *testing.T) {
	assert.Equal(t, 0.0, RelevanceScore("   ", "title", "snippet", KindOrganic))
}

func TestHighCredibilityTitleMatch(t *testing.T) {
	// An organic nature.com result whose title carries both query tokens.
	rel := RelevanceScore("gene editing", "Gene editing milestones", "CRISPR overview", KindOrganic)
	cred := CredibilityScore("nature.com", KindOrganic)

	assert.Equal(t, 0.9, cred)
	assert.GreaterOrEqual(t, rel, 0.8)
}

func TestDomainOf(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.wikipedia.org/wiki/Go", "wikipedia.org"},
		{"http://example.com:8080/path?q=1", "example.com"},
		{"nature.com/articles/x", "nature.com"},
		{"https://sub.example.org", "sub.example.org"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domainOf(tt.url), tt.url)
	}
}
