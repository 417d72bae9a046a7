package content

import (
	"strings"
)

// RewriteBaseURL walks a document and replaces every occurrence of oldBase
// with newBase inside string values at any depth, returning the rewritten
// value and the number of strings touched.
//
// Upload URLs are baked into the document as absolute URLs at upload time,
// so a hostname change strands every previously stored media reference.
// This walk backs the rewrite-urls maintenance command that fixes those
// references up after a move.
func RewriteBaseURL(v any, oldBase, newBase string) (any, int) {
	switch t := v.(type) {
	case string:
		if strings.Contains(t, oldBase) {
			return strings.ReplaceAll(t, oldBase, newBase), 1
		}
		return t, 0
	case []any:
		count := 0
		out := make([]any, len(t))
		for i, e := range t {
			rewritten, n := RewriteBaseURL(e, oldBase, newBase)
			out[i] = rewritten
			count += n
		}
		return out, count
	case map[string]any:
		count := 0
		out := make(map[string]any, len(t))
		for k, e := range t {
			rewritten, n := RewriteBaseURL(e, oldBase, newBase)
			out[k] = rewritten
			count += n
		}
		return out, count
	default:
		return v, 0
	}
}
