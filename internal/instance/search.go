package instance

import (
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/studiowebux/launcher/internal/types"
)

type instanceSource []types.Instance

func (s instanceSource) String(i int) string { return s[i].Name }
func (s instanceSource) Len() int            { return len(s) }

// Search returns the instances whose name fuzzily matches query, best match first.
// An empty query returns the list unchanged.
func Search(list []types.Instance, query string) []types.Instance {
	query = strings.TrimSpace(query)
	if query == "" {
		return list
	}

	matches := fuzzy.FindFrom(query, instanceSource(list))
	out := make([]types.Instance, 0, len(matches))
	for _, m := range matches {
		out = append(out, list[m.Index])
	}
	return out
}
