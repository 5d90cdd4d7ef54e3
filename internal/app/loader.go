package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"jeopardy-game/internal/domain"
)

// RoutingLoader picks a loader by identifier prefix ("db:", "builtin:") and
// falls back to a default, typically the file loader.
type RoutingLoader struct {
	fallback QuestionLoader
	routes   map[string]QuestionLoader
}

func NewRoutingLoader(fallback QuestionLoader) *RoutingLoader {
	return &RoutingLoader{fallback: fallback, routes: make(map[string]QuestionLoader)}
}

// Route sends identifiers starting with prefix to l, with the prefix removed.
func (r *RoutingLoader) Route(prefix string, l QuestionLoader) *RoutingLoader {
	if prefix != "" && l != nil {
		r.routes[strings.ToLower(prefix)] = l
	}
	return r
}

func (r *RoutingLoader) Load(ctx context.Context, identifier string) ([]domain.Question, error) {
	lower := strings.ToLower(identifier)

	prefixes := make([]string, 0, len(r.routes))
	for p := range r.routes {
		prefixes = append(prefixes, p)
	}
	// Longest prefix wins.
	sort.Slice(prefixes, func(i, j int) bool { return len(prefixes[i]) > len(prefixes[j]) })
	for _, p := range prefixes {
		if strings.HasPrefix(lower, p) {
			return r.routes[p].Load(ctx, identifier[len(p):])
		}
	}

	if r.fallback == nil {
		return nil, fmt.Errorf("load %q: %w", identifier, domain.ErrUnsupportedSource)
	}
	return r.fallback.Load(ctx, identifier)
}
