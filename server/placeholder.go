package server

import (
	"encoding/json"
	"strings"
)

// Resolver maps a placeholder's content (the text between the braces) to a
// replacement value. The second return is false when the resolver declines,
// leaving the placeholder untouched.
type Resolver func(placeholder string) (interface{}, bool)

// SubstitutePlaceholders walks a JSON tree and rewrites {…} tokens inside
// string leaves. Object keys, array shapes, and non-string scalars pass
// through unchanged.
//
// A string that is exactly one placeholder ("{X}") is replaced by the
// resolved value as-is, preserving its JSON type — this is how a single
// placeholder can expand to a whole array or object. Any other string is
// scanned left to right and resolved placeholders are spliced in as text;
// the result stays a string.
func SubstitutePlaceholders(value interface{}, resolver Resolver) interface{} {
	switch v := value.(type) {
	case string:
		return substituteString(v, resolver)
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for key, elem := range v {
			result[key] = SubstitutePlaceholders(elem, resolver)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, elem := range v {
			result[i] = SubstitutePlaceholders(elem, resolver)
		}
		return result
	default:
		return value
	}
}

func substituteString(s string, resolver Resolver) interface{} {
	// Whole-string replacement keeps the replacement's JSON type.
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		if replacement, ok := resolver(s[1 : len(s)-1]); ok {
			return replacement
		}
	}

	// Embedded substitution: splice resolved placeholders into the host
	// string. An unmatched "{" terminates the scan.
	result := s
	start := 0
	for {
		openPos := strings.Index(result[start:], "{")
		if openPos < 0 {
			break
		}
		openPos += start

		closePos := strings.Index(result[openPos:], "}")
		if closePos < 0 {
			break
		}
		closePos += openPos

		content := result[openPos+1 : closePos]
		replacement, ok := resolver(content)
		if !ok {
			start = closePos + 1
			continue
		}

		placeholder := result[openPos : closePos+1]
		replacementStr := stringifyReplacement(replacement)
		result = strings.ReplaceAll(result, placeholder, replacementStr)
		start = openPos + len(replacementStr)
	}

	return result
}

// stringifyReplacement renders a resolved value for splicing into a host
// string: strings use their raw text, everything else its JSON encoding.
func stringifyReplacement(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	data, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return string(data)
}
