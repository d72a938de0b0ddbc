package server

import (
	"strings"
)

// resolveCrossReferences walks a JSON tree and resolves {objects.…}
// placeholders against the object store. Only whole-string leaves are
// considered; a string that fails to resolve passes through unchanged.
// Resolution is read-only.
func resolveCrossReferences(value interface{}, store *Store) interface{} {
	switch v := value.(type) {
	case string:
		if resolved, ok := resolveReferenceString(v, store); ok {
			return resolved
		}
		return v
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for key, elem := range v {
			result[key] = resolveCrossReferences(elem, store)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, elem := range v {
			result[i] = resolveCrossReferences(elem, store)
		}
		return result
	default:
		return value
	}
}

// resolveReferenceString interprets the four cross-reference forms:
//
//	{objects.TYPE}                bucket contents as an array
//	{objects.TYPE.FIELD.PATH}     per-object field values (missing → omitted)
//	{objects.TYPE[ID]}            single object data by id
//	{objects.TYPE[ID].FIELD.PATH} field of a single object
//
// The bare-bucket form is tried first; when the literal bucket name (which
// may itself contain dots) is absent, detection falls through to the
// field-projection form with the first dot-segment as the bucket.
func resolveReferenceString(s string, store *Store) (interface{}, bool) {
	if strings.HasPrefix(s, "{objects.") && strings.HasSuffix(s, "}") {
		objectType := s[9 : len(s)-1]
		if list, ok := store.ListObjects(objectType); ok {
			data := make([]interface{}, 0, len(list))
			for _, obj := range list {
				data = append(data, obj.Data)
			}
			return data, true
		}
	}

	if strings.HasPrefix(s, "{objects.") && strings.HasSuffix(s, "}") && strings.Count(s, ".") >= 2 {
		content := s[9 : len(s)-1]
		parts := strings.SplitN(content, ".", 2)
		if len(parts) == 2 {
			objectType := parts[0]
			fieldPath := parts[1]

			if list, ok := store.ListObjects(objectType); ok {
				values := make([]interface{}, 0, len(list))
				for _, obj := range list {
					if v, ok := extractFieldValue(obj.Data, fieldPath); ok {
						values = append(values, v)
					}
				}
				return values, true
			}
		}
	}

	if strings.HasPrefix(s, "{objects.") && strings.Contains(s, "[") && strings.HasSuffix(s, "]}") {
		content := s[9 : len(s)-2]
		if bracketPos := strings.Index(content, "["); bracketPos >= 0 {
			objectType := content[:bracketPos]
			id := content[bracketPos+1:]

			if obj, ok := store.FindObject(objectType, id); ok {
				return obj.Data, true
			}
		}
	}

	if strings.HasPrefix(s, "{objects.") && strings.Contains(s, "[") && strings.Contains(s, "].") && strings.HasSuffix(s, "}") {
		content := s[9 : len(s)-1]
		bracketPos := strings.Index(content, "[")
		closeBracket := strings.Index(content, "]")
		if bracketPos >= 0 && closeBracket >= 0 {
			objectType := content[:bracketPos]
			id := content[bracketPos+1 : closeBracket]
			fieldPath := content[closeBracket+2:]

			if obj, ok := store.FindObject(objectType, id); ok {
				if v, ok := extractFieldValue(obj.Data, fieldPath); ok {
					return v, true
				}
			}
		}
	}

	return nil, false
}

// extractFieldValue walks a dot-separated path through nested JSON objects.
// The walk fails when any intermediate node is not an object or the key is
// absent.
func extractFieldValue(data interface{}, fieldPath string) (interface{}, bool) {
	current := data
	for _, part := range strings.Split(fieldPath, ".") {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
