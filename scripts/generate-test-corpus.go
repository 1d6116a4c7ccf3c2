//go:build ignore

// Generates a synthetic document corpus for exercising fathom at scale.
// Usage: go run scripts/generate-test-corpus.go -docs 1000 -output testdata/corpus
//
// Each document is a small markdown file whose title and body are built
// from topic word lists, so sparse retrieval has realistic token overlap
// to chew on. Deterministic for a given seed.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

var (
	numDocs   = flag.Int("docs", 1000, "number of documents to generate")
	outputDir = flag.String("output", "testdata/corpus", "output directory")
	seed      = flag.Int64("seed", 42, "random seed")
)

var topics = map[string][]string{
	"distributed systems": {"consensus", "replication", "partition", "quorum", "leader election", "gossip", "vector clocks"},
	"machine learning":    {"embeddings", "gradient descent", "transformer", "attention", "fine-tuning", "overfitting", "regularization"},
	"databases":           {"index", "transaction", "isolation level", "write-ahead log", "compaction", "query planner", "B-tree"},
	"networking":          {"congestion control", "handshake", "routing", "latency", "packet loss", "multiplexing", "backpressure"},
	"security":            {"key exchange", "certificate", "threat model", "sandboxing", "least privilege", "audit log", "rotation"},
	"climate science":     {"carbon cycle", "albedo", "ocean acidification", "feedback loop", "emission scenario", "permafrost", "radiative forcing"},
}

var sentenceShapes = []string{
	"Understanding %s is central to modern %s practice.",
	"This note surveys how %s interacts with %s under real workloads.",
	"A common failure mode involves %s degrading when %s is misconfigured.",
	"We compare approaches to %s and their tradeoffs against %s.",
	"Recent work revisits %s with an emphasis on %s.",
}

func main() {
	flag.Parse()
	rng := rand.New(rand.NewSource(*seed))

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "cannot create %s: %v\n", *outputDir, err)
		os.Exit(1)
	}

	topicNames := make([]string, 0, len(topics))
	for name := range topics {
		topicNames = append(topicNames, name)
	}
	// Map iteration order is random; sort for determinism.
	sortStrings(topicNames)

	for i := 0; i < *numDocs; i++ {
		topic := topicNames[rng.Intn(len(topicNames))]
		terms := topics[topic]
		title := fmt.Sprintf("%s: %s and %s",
			strings.Title(topic), terms[rng.Intn(len(terms))], terms[rng.Intn(len(terms))])

		var body strings.Builder
		body.WriteString("# " + title + "\n\n")
		paragraphs := 2 + rng.Intn(4)
		for p := 0; p < paragraphs; p++ {
			sentences := 3 + rng.Intn(4)
			for s := 0; s < sentences; s++ {
				shape := sentenceShapes[rng.Intn(len(sentenceShapes))]
				body.WriteString(fmt.Sprintf(shape,
					terms[rng.Intn(len(terms))], terms[rng.Intn(len(terms))]))
				body.WriteString(" ")
			}
			body.WriteString("\n\n")
		}

		name := filepath.Join(*outputDir, fmt.Sprintf("doc-%04d.md", i))
		if err := os.WriteFile(name, []byte(body.String()), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "cannot write %s: %v\n", name, err)
			os.Exit(1)
		}
	}

	fmt.Printf("generated %d documents in %s (seed %d)\n", *numDocs, *outputDir, *seed)
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
