package openapi

import (
	"fmt"
	"os"

	"github.com/getkin/kin-openapi/openapi3"
)

// OperationInfo pairs one HTTP operation with its path.
type OperationInfo struct {
	Method    string
	Path      string
	Operation *openapi3.Operation
}

// ParseSpec loads and parses an OpenAPI 3 specification from a file.
func ParseSpec(filePath string) (*openapi3.T, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI spec: %w", err)
	}

	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI spec: %w", err)
	}

	return doc, nil
}

// ExtractOperations extracts all operations from the OpenAPI spec. OpenAPI
// path templating ({param} segments) matches the route pattern syntax
// verbatim, so paths carry over unchanged.
func ExtractOperations(spec *openapi3.T) []OperationInfo {
	var operations []OperationInfo

	for path, pathItem := range spec.Paths.Map() {
		if pathItem == nil {
			continue
		}

		for method, operation := range pathItem.Operations() {
			if operation == nil {
				continue
			}

			operations = append(operations, OperationInfo{
				Method:    method,
				Path:      path,
				Operation: operation,
			})
		}
	}

	return operations
}
