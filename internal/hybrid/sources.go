package hybrid

import (
	"fmt"

	"github.com/fathom-search/fathom/internal/retrieval"
	"github.com/fathom-search/fathom/internal/websearch"
)

// Source assembly constants.
const (
	// documentSnippetLen is how much document content a source carries.
	documentSnippetLen = 300

	// documentURLScheme anchors citations of local documents.
	documentURLScheme = "fathom://document/"

	// documentDomain labels local provenance in source lists.
	documentDomain = "local"

	// documentCredibility is the fixed trust score for local documents.
	documentCredibility = 0.8
)

// documentsToSources converts fused document results into citation
// sources numbered from 1.
func documentsToSources(results []*retrieval.SearchResult) []Source {
	sources := make([]Source, 0, len(results))
	for i, r := range results {
		doc := r.Document
		sources = append(sources, Source{
			ID:               doc.ID,
			Label:            fmt.Sprintf("[%d] %s", i+1, doc.Title),
			Title:            doc.Title,
			URL:              documentURLScheme + doc.ID,
			Domain:           documentDomain,
			Snippet:          snippetOf(doc.Content),
			Kind:             "document",
			CredibilityScore: documentCredibility,
			RelevanceScore:   r.Score,
		})
	}
	return sources
}

// webResultsToSources converts web results into citation sources whose
// numbering continues from startIndex. Organic results are relabeled as
// plain web sources; other kinds keep their origin.
func webResultsToSources(results []websearch.WebSearchResult, startIndex int) []Source {
	sources := make([]Source, 0, len(results))
	for i, r := range results {
		kind := string(r.Kind)
		if r.Kind == websearch.KindOrganic {
			kind = "web"
		}
		sources = append(sources, Source{
			ID:               r.ID,
			Label:            fmt.Sprintf("[%d] %s - %s", startIndex+i+1, r.Title, r.Domain),
			Title:            r.Title,
			URL:              r.URL,
			Domain:           r.Domain,
			Snippet:          r.Snippet,
			Kind:             kind,
			PublishDate:      r.PublishDate,
			CredibilityScore: r.CredibilityScore,
			RelevanceScore:   r.RelevanceScore,
		})
	}
	return sources
}

// snippetOf truncates content to the source snippet length, marking the
// cut with an ellipsis. The limit counts characters, not bytes, so a cut
// never splits a multi-byte rune.
func snippetOf(content string) string {
	runes := []rune(content)
	if len(runes) <= documentSnippetLen {
		return content
	}
	return string(runes[:documentSnippetLen]) + "..."
}
