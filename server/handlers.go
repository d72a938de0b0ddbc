package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"stubnest/logger"
	"stubnest/models"
)

// ResponseHandler resolves incoming requests against the route catalogue and
// runs the response pipeline. The catalogue is immutable after load; all
// mutable state lives in the Store.
type ResponseHandler struct {
	config        *models.Config
	store         *Store
	corsProcessor *CORSProcessor
	logger        *logger.Logger
}

// NewResponseHandler creates a handler over a loaded config and the given
// store.
func NewResponseHandler(config *models.Config, store *Store, lg *logger.Logger) *ResponseHandler {
	if lg == nil {
		lg = logger.NewLogger("server", logger.INFO, 1000)
	}
	return &ResponseHandler{
		config:        config,
		store:         store,
		corsProcessor: NewCORSProcessor(config.CORS),
		logger:        lg,
	}
}

// HandleRequest serves one HTTP request end to end.
func (h *ResponseHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	requestPath := r.URL.Path

	corsHeaders := h.corsProcessor.ProcessCORS(r)
	for name, value := range corsHeaders {
		w.Header().Set(name, value)
	}

	// Built-in control endpoint, checked before the catalogue.
	if r.Method == http.MethodPost && requestPath == "/state/clear" {
		h.store.ClearAll()
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":  "cleared",
			"message": "All stored state has been cleared",
		})
		return
	}

	var payload interface{}
	if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if len(bodyBytes) > 0 {
			if err := json.Unmarshal(bodyBytes, &payload); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
		}
	}

	route := h.findMatchingRoute(r.Method, requestPath)
	if route == nil {
		// An unmatched preflight still gets the evaluated CORS headers.
		if r.Method == http.MethodOptions && h.corsProcessor.Enabled() {
			w.WriteHeader(h.corsProcessor.OptionsStatus())
			return
		}
		h.logger.Debug("No route matched %s %s", r.Method, requestPath)
		w.WriteHeader(http.StatusNotFound)
		return
	}

	headers := make(map[string]string, len(r.Header))
	for name, values := range r.Header {
		if len(values) > 0 {
			headers[name] = values[0]
		}
	}

	response := processResponse(h.store, h.config, route, requestPath, payload, headers)

	status, body := resolveStatus(route, response)
	h.logger.Info("%s %s -> %d", r.Method, requestPath, status)
	writeJSON(w, status, body)
}

// findMatchingRoute walks the catalogue in declaration order; the first
// route whose method and path pattern both match wins.
func (h *ResponseHandler) findMatchingRoute(method, path string) *models.Route {
	for i := range h.config.Routes {
		route := &h.config.Routes[i]
		if !strings.EqualFold(route.Method, method) {
			continue
		}
		if route.Path == path || matchPathPatternWithParams(route.Path, path).Matches {
			return route
		}
	}
	return nil
}

// resolveStatus applies the status contract: a top-level integer "status"
// field in the computed body wins (its "body" field, if any, overrides the
// HTTP body), then the route template's status, then 200.
func resolveStatus(route *models.Route, response interface{}) (int, interface{}) {
	if obj, ok := response.(map[string]interface{}); ok {
		if status, ok := numericStatus(obj["status"]); ok {
			body := response
			if override, ok := obj["body"]; ok {
				body = override
			}
			return status, body
		}
	}

	if route.Response != nil && route.Response.Status != 0 {
		return route.Response.Status, response
	}

	return http.StatusOK, response
}

// numericStatus extracts an HTTP status from a body's top-level status
// field. JSON decoding yields float64, YAML templates and Lua results yield
// int/int64. Out-of-range codes collapse to 500.
func numericStatus(value interface{}) (int, bool) {
	var status int
	switch v := value.(type) {
	case float64:
		status = int(v)
	case int:
		status = v
	case int64:
		status = int(v)
	default:
		return 0, false
	}
	if status < 100 || status > 599 {
		return http.StatusInternalServerError, true
	}
	return status, true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response body: %v", err)
	}
}
