package openapi

import (
	"sort"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/uuid"

	"stubnest/models"
)

const maxSampleDepth = 3

// ImportRoutes loads an OpenAPI 3 document and converts every operation into
// a template-mode route: the declared example body when present, otherwise a
// value synthesized from the response schema.
func ImportRoutes(filePath string) ([]models.Route, error) {
	spec, err := ParseSpec(filePath)
	if err != nil {
		return nil, err
	}
	return ConvertRoutes(spec), nil
}

// ConvertRoutes converts a parsed spec into routes, sorted by path then
// method so import order is deterministic.
func ConvertRoutes(spec *openapi3.T) []models.Route {
	operations := ExtractOperations(spec)

	sort.Slice(operations, func(i, j int) bool {
		if operations[i].Path != operations[j].Path {
			return operations[i].Path < operations[j].Path
		}
		return operations[i].Method < operations[j].Method
	})

	routes := make([]models.Route, 0, len(operations))
	for _, op := range operations {
		status, response := pickResponse(op.Operation)
		routes = append(routes, models.Route{
			Path:   op.Path,
			Method: op.Method,
			Response: &models.ResponseTemplate{
				Status: status,
				Body:   responseBody(response),
			},
		})
	}

	return routes
}

// pickResponse chooses the lowest declared 2xx status (else 200) and returns
// the matching response definition.
func pickResponse(op *openapi3.Operation) (int, *openapi3.Response) {
	if op.Responses == nil {
		return 200, nil
	}

	best := 0
	var bestResponse *openapi3.Response
	for statusStr, ref := range op.Responses.Map() {
		if ref == nil || ref.Value == nil {
			continue
		}
		status, err := strconv.Atoi(statusStr)
		if err != nil || status < 200 || status > 299 {
			continue
		}
		if best == 0 || status < best {
			best = status
			bestResponse = ref.Value
		}
	}

	if best == 0 {
		return 200, nil
	}
	return best, bestResponse
}

// responseBody builds a JSON template body for a response definition.
func responseBody(response *openapi3.Response) interface{} {
	if response == nil {
		return map[string]interface{}{"status": "ok"}
	}

	media := response.Content.Get("application/json")
	if media == nil {
		return map[string]interface{}{"status": "ok"}
	}

	if media.Example != nil {
		return media.Example
	}
	if media.Schema != nil && media.Schema.Value != nil {
		return sampleFromSchema(media.Schema.Value, 0)
	}

	return map[string]interface{}{"status": "ok"}
}

// sampleFromSchema synthesizes a representative value for a schema: examples
// win, then enums, then a type-appropriate sample. Recursion is depth-capped.
func sampleFromSchema(schema *openapi3.Schema, depth int) interface{} {
	if schema == nil || depth > maxSampleDepth {
		return nil
	}

	if schema.Example != nil {
		return schema.Example
	}
	if len(schema.Enum) > 0 {
		return schema.Enum[0]
	}

	types := schema.Type.Slice()
	typ := ""
	if len(types) > 0 {
		typ = types[0]
	} else if len(schema.Properties) > 0 {
		typ = "object"
	}

	switch typ {
	case "object":
		obj := make(map[string]interface{}, len(schema.Properties))
		for name, propRef := range schema.Properties {
			if propRef == nil || propRef.Value == nil {
				continue
			}
			obj[name] = sampleFromSchema(propRef.Value, depth+1)
		}
		return obj
	case "array":
		if schema.Items == nil || schema.Items.Value == nil {
			return []interface{}{}
		}
		return []interface{}{sampleFromSchema(schema.Items.Value, depth+1)}
	case "string":
		switch schema.Format {
		case "uuid":
			return uuid.New().String()
		case "date-time":
			return "1970-01-01T00:00:00Z"
		case "email":
			return "user@example.com"
		default:
			return "string"
		}
	case "integer":
		return 0
	case "number":
		return 0.0
	case "boolean":
		return true
	default:
		return nil
	}
}
