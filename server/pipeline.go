package server

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"stubnest/models"
)

// processResponse computes the response body for a matched route. The stage
// order is load-bearing: path parameters may appear inside cross-reference
// placeholders, and variables must exist before the generated id becomes the
// storage key. Do not reorder.
func processResponse(store *Store, cfg *models.Config, route *models.Route, path string, payload interface{}, headers map[string]string) interface{} {
	pathParams := extractPathParameters(route.Path, path)

	if route.LuaScript != "" {
		req := &models.ScriptRequest{
			Method:     route.Method,
			Path:       path,
			Headers:    headers,
			Body:       payload,
			PathParams: pathParams,
		}

		result, err := executeLuaScript(route.LuaScript, store, req)
		if err != nil {
			log.Printf("Lua script error on %s %s: %v", route.Method, path, err)
			return map[string]interface{}{"error": "Failed to execute Lua script", "status": 500}
		}
		return result
	}

	if route.Response == nil {
		return map[string]interface{}{"error": "No response template defined", "status": 500}
	}

	body := deepCopyValue(route.Response.Body)

	body = replacePathParameters(body, pathParams)
	body = resolveCrossReferences(body, store)

	method := strings.ToUpper(route.Method)

	if method == "POST" && len(route.Variables) > 0 {
		generatedVars := make(map[string]interface{}, len(route.Variables))
		for name, varConfig := range route.Variables {
			generatedVars[name] = generateVariableValue(&varConfig)
		}

		body = replaceVariables(body, generatedVars)

		if payload != nil {
			body = interpolatePayload(body, payload, cfg.Defaults)
		}

		if idValue, ok := generatedVars["id"]; ok {
			storageKey := route.Path + "_" + stringifyID(idValue)
			store.PutKeyed(storageKey, body)

			if route.ObjectName != "" && route.ShouldStoreObject() {
				store.AppendObject(route.ObjectName, models.StoredObject{
					Id:   stringifyID(idValue),
					Data: body,
				})
			}
		}
	}

	// GET auto-retrieval: a cached POST body keyed on the path's last
	// segment short-circuits the rest of the pipeline.
	if method == "GET" && strings.Contains(path, "/") {
		pathParts := strings.Split(path, "/")
		id := pathParts[len(pathParts)-1]
		storageKey := strings.Join(pathParts[:len(pathParts)-1], "/") + "_" + id

		if stored, ok := store.GetKeyed(storageKey); ok {
			return stored
		}
	}

	if payload != nil {
		body = interpolatePayload(body, payload, cfg.Defaults)
	}

	return body
}

// stringifyID renders a generated id for use in a storage key: strings keep
// their raw text, anything else uses its JSON encoding.
func stringifyID(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case int64:
		return fmt.Sprintf("%d", v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
