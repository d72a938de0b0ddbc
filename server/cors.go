package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dop251/goja"

	"stubnest/models"
)

// CORSProcessor handles CORS header evaluation with JavaScript support
type CORSProcessor struct {
	config *models.CORSConfig
}

// NewCORSProcessor creates a new CORS processor. A nil config disables CORS.
func NewCORSProcessor(config *models.CORSConfig) *CORSProcessor {
	return &CORSProcessor{config: config}
}

// Enabled reports whether CORS handling is configured and switched on.
func (cp *CORSProcessor) Enabled() bool {
	return cp.config != nil && cp.config.Enabled
}

// OptionsStatus returns the status for an OPTIONS request matching no route.
func (cp *CORSProcessor) OptionsStatus() int {
	if cp.config != nil && cp.config.OptionsDefaultStatus != 0 {
		return cp.config.OptionsDefaultStatus
	}
	return http.StatusNoContent
}

// ProcessCORS evaluates CORS configuration and returns headers to set.
// Evaluation errors log and skip the header; they never fail the request.
func (cp *CORSProcessor) ProcessCORS(r *http.Request) map[string]string {
	if !cp.Enabled() {
		return nil
	}

	headers := make(map[string]string)
	reqContext := cp.buildRequestContext(r)

	mode := cp.config.Mode
	if mode == "" {
		mode = models.CORSModeHeaders
	}

	switch mode {
	case models.CORSModeHeaders:
		for _, headerExpr := range cp.config.HeaderExpressions {
			value, err := cp.evaluateHeaderExpression(headerExpr.Expression, reqContext)
			if err != nil {
				log.Printf("CORS header expression error for '%s': %v", headerExpr.Name, err)
				continue
			}
			if value != "" {
				headers[headerExpr.Name] = value
			}
		}

	case models.CORSModeScript:
		scriptHeaders, err := cp.evaluateScript(cp.config.Script, reqContext)
		if err != nil {
			log.Printf("CORS script execution error: %v", err)
			return headers
		}
		headers = scriptHeaders
	}

	return headers
}

// buildRequestContext creates a request context object for CORS scripts
func (cp *CORSProcessor) buildRequestContext(r *http.Request) map[string]interface{} {
	return map[string]interface{}{
		"method":  r.Method,
		"path":    r.URL.Path,
		"origin":  r.Header.Get("Origin"),
		"headers": r.Header,
	}
}

// evaluateHeaderExpression evaluates a single header expression
func (cp *CORSProcessor) evaluateHeaderExpression(expression string, reqContext map[string]interface{}) (string, error) {
	vm := goja.New()
	vm.Set("request", reqContext)
	cp.addHelperFunctions(vm, reqContext)

	resultChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				errChan <- fmt.Errorf("script panic: %v", r)
			}
		}()

		value, err := vm.RunString(expression)
		if err != nil {
			errChan <- err
			return
		}

		resultChan <- value.String()
	}()

	select {
	case result := <-resultChan:
		return result, nil
	case err := <-errChan:
		return "", err
	case <-time.After(1 * time.Second):
		vm.Interrupt("header expression evaluation timeout")
		return "", fmt.Errorf("header expression evaluation timeout")
	}
}

// evaluateScript evaluates a CORS script and returns the headers it set on
// the headers object.
func (cp *CORSProcessor) evaluateScript(script string, reqContext map[string]interface{}) (map[string]string, error) {
	vm := goja.New()
	vm.Set("request", reqContext)
	cp.addHelperFunctions(vm, reqContext)

	headersObj := vm.NewObject()
	vm.Set("headers", headersObj)

	resultChan := make(chan map[string]string, 1)
	errChan := make(chan error, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				errChan <- fmt.Errorf("script panic: %v", r)
			}
		}()

		if _, err := vm.RunString(script); err != nil {
			errChan <- err
			return
		}

		headers := make(map[string]string)
		headersValue := vm.Get("headers")
		if headersValue != nil && !goja.IsUndefined(headersValue) && !goja.IsNull(headersValue) {
			obj := headersValue.ToObject(vm)
			for _, key := range obj.Keys() {
				value := obj.Get(key)
				if value != nil && !goja.IsUndefined(value) {
					headers[key] = value.String()
				}
			}
		}

		resultChan <- headers
	}()

	select {
	case result := <-resultChan:
		return result, nil
	case err := <-errChan:
		return nil, err
	case <-time.After(2 * time.Second):
		vm.Interrupt("CORS script execution timeout")
		return nil, fmt.Errorf("CORS script execution timeout")
	}
}

// addHelperFunctions adds helper functions to the VM
func (cp *CORSProcessor) addHelperFunctions(vm *goja.Runtime, reqContext map[string]interface{}) {
	// matchOrigin(pattern) - Check if origin matches pattern (supports wildcards)
	vm.Set("matchOrigin", func(pattern string) bool {
		origin, ok := reqContext["origin"].(string)
		if !ok || origin == "" {
			return false
		}

		if pattern == "*" {
			return true
		}
		if pattern == origin {
			return true
		}

		// Wildcard prefix match (e.g., "https://*.example.com")
		if strings.Contains(pattern, "*") {
			parts := strings.Split(pattern, "*")
			if len(parts) == 2 {
				return strings.HasPrefix(origin, parts[0]) && strings.HasSuffix(origin, parts[1])
			}
		}

		return false
	})

	// allowOrigins([...origins]) - Check if origin is in allowed list
	vm.Set("allowOrigins", func(call goja.FunctionCall) goja.Value {
		origin, ok := reqContext["origin"].(string)
		if !ok || origin == "" {
			return vm.ToValue(false)
		}

		for _, arg := range call.Arguments {
			if arg.String() == origin {
				return vm.ToValue(true)
			}
		}

		return vm.ToValue(false)
	})

	// getOrigin() - Get the request origin
	vm.Set("getOrigin", func() string {
		origin, _ := reqContext["origin"].(string)
		return origin
	})

	// getHeader(name) - Get a request header
	vm.Set("getHeader", func(name string) string {
		headers, ok := reqContext["headers"].(http.Header)
		if ok {
			return headers.Get(name)
		}
		return ""
	})
}
