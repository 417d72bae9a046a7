// Package content implements the site content document: the embedded
// default document, merging stored documents with those defaults to
// tolerate additive schema drift, and bulk-rewriting of stale media URLs.
package content

import (
	_ "embed"
	"encoding/json"

	"github.com/rs/zerolog/log"
)

//go:embed defaults.json
var defaultsJSON []byte

// Document is the untyped nested site content structure. Its shape is not
// enforced server-side; sections are records of scalar strings and ordered
// lists of sub-records.
type Document = map[string]any

// Defaults returns a fresh deep copy of the embedded default document.
// Callers may mutate the result freely.
func Defaults() Document {
	var doc Document
	if err := json.Unmarshal(defaultsJSON, &doc); err != nil {
		// the embedded document is validated by tests; failing to parse
		// it means a broken build
		log.Fatal().Err(err).Msg("embedded default site document is invalid")
	}

	return doc
}
