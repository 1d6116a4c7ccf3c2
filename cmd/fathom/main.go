// Fathom is a hybrid search engine combining local document retrieval
// with live web search.
package main

import (
	"os"

	"github.com/fathom-search/fathom/cmd/fathom/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
