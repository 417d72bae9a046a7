package content

import (
	"dario.cat/mergo"

	"github.com/rs/zerolog/log"
)

// MergeWithDefaults deep-merges a stored document onto the default
// document. Any field absent or empty in the stored document keeps its
// default value; nested maps merge recursively. This tolerates additive
// schema evolution without server-side migration: a document written by an
// older editor still renders with every newer field defined.
//
// Given defaults {a:{b:1,c:2}} and stored {a:{b:5}} the result is
// {a:{b:5,c:2}}.
func MergeWithDefaults(doc Document) Document {
	if doc == nil {
		return Defaults()
	}

	merged := deepCopy(doc)

	if err := mergo.Map(&merged, Defaults()); err != nil {
		// mergo only fails on type mismatches between the two maps;
		// the stored document wins in that case
		log.Error().Err(err).Msg("failed to merge site document with defaults")
		return merged
	}

	return merged
}

// deepCopy copies a document so merge results never alias the input.
func deepCopy(doc Document) Document {
	out := make(Document, len(doc))

	for k, v := range doc {
		out[k] = copyValue(v)
	}

	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopy(t)
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = copyValue(e)
		}
		return s
	default:
		return v
	}
}
