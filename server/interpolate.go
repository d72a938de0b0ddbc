package server

import (
	"strings"
)

// replacePathParameters substitutes {path.NAME} placeholders using the
// bindings captured at match time. A literal textual replace runs first so a
// path parameter embedded in a larger string (including inside a
// cross-reference placeholder) is expanded; the placeholder pass then covers
// whole-string values. Already-substituted text is not re-expanded.
func replacePathParameters(value interface{}, pathParams map[string]string) interface{} {
	preprocessed := preprocessPathParameters(value, pathParams)

	return SubstitutePlaceholders(preprocessed, func(placeholder string) (interface{}, bool) {
		name, ok := strings.CutPrefix(placeholder, "path.")
		if !ok {
			return nil, false
		}
		v, ok := pathParams[name]
		return v, ok
	})
}

func preprocessPathParameters(value interface{}, pathParams map[string]string) interface{} {
	switch v := value.(type) {
	case string:
		result := v
		for name, paramValue := range pathParams {
			result = strings.ReplaceAll(result, "{path."+name+"}", paramValue)
		}
		return result
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for key, elem := range v {
			result[key] = preprocessPathParameters(elem, pathParams)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, elem := range v {
			result[i] = preprocessPathParameters(elem, pathParams)
		}
		return result
	default:
		return value
	}
}

// interpolatePayload substitutes {payload.NAME} placeholders from the request
// payload, falling back to the configured defaults when the payload lacks the
// field. Unresolvable placeholders pass through unchanged.
func interpolatePayload(value interface{}, payload interface{}, defaults map[string]interface{}) interface{} {
	payloadObj, _ := payload.(map[string]interface{})

	return SubstitutePlaceholders(value, func(placeholder string) (interface{}, bool) {
		field, ok := strings.CutPrefix(placeholder, "payload.")
		if !ok {
			return nil, false
		}
		if payloadObj != nil {
			if v, ok := payloadObj[field]; ok {
				return v, true
			}
		}
		if defaults != nil {
			if v, ok := defaults[field]; ok {
				return v, true
			}
		}
		return nil, false
	})
}
