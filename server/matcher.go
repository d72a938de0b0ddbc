package server

import (
	"strings"
)

// MatchResult contains the result of path matching including extracted parameters
type MatchResult struct {
	Matches    bool
	PathParams map[string]string
}

// matchPathPatternWithParams checks if the request path matches a route
// pattern and extracts any path parameters. Patterns and paths are split on
// "/"; a pattern matches when it has the same number of segments and every
// segment is either literal-equal or a {name} capture. No regex, no
// wildcards, no trailing-slash tolerance.
func matchPathPatternWithParams(pattern, requestPath string) MatchResult {
	result := MatchResult{
		Matches:    false,
		PathParams: make(map[string]string),
	}

	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(requestPath, "/")

	if len(patternParts) != len(pathParts) {
		return result
	}

	for i, part := range patternParts {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			paramName := strings.TrimPrefix(strings.TrimSuffix(part, "}"), "{")
			result.PathParams[paramName] = pathParts[i]
			continue
		}
		if part != pathParts[i] {
			return result
		}
	}

	result.Matches = true
	return result
}

// extractPathParameters returns the {name} bindings for a pattern/path pair,
// or an empty map when the shapes don't line up.
func extractPathParameters(pattern, path string) map[string]string {
	match := matchPathPatternWithParams(pattern, path)
	if !match.Matches {
		return map[string]string{}
	}
	return match.PathParams
}
