// Package configs provides the embedded configuration template written
// by `fathom init`. Embedding at build time keeps the template available
// in every distribution, source builds included.
package configs

import _ "embed"

// ConfigTemplate is the annotated starter configuration created at
// ~/.fathom/fathom.yaml. Every value mirrors a built-in default, so the
// file is safe to trim down to only the keys being changed.
//
//go:embed fathom.example.yaml
var ConfigTemplate string
