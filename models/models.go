package models

// Variable type constants
const (
	VarTypeUUID    = "uuid"    // Random v4 UUID string
	VarTypeInteger = "integer" // Pseudo-random integer in [min, max]
	VarTypeString  = "string"  // "{prefix}generated_{random}" string
)

// CORSMode constants for CORS configuration modes
const (
	CORSModeHeaders = "headers" // Use header list with JavaScript expressions
	CORSModeScript  = "script"  // Use custom JavaScript script
)

// Config is the route catalogue loaded at startup. It is immutable after load.
type Config struct {
	Routes   []Route                `json:"routes" yaml:"routes"`
	Defaults map[string]interface{} `json:"defaults,omitempty" yaml:"defaults,omitempty"` // Fallback values for payload interpolation
	CORS     *CORSConfig            `json:"cors,omitempty" yaml:"cors,omitempty"`
	HTTP2    bool                   `json:"http2_enabled,omitempty" yaml:"http2_enabled,omitempty"` // Serve cleartext HTTP/2 (h2c)
}

// Route declares a (path pattern, method) pair plus a response recipe.
// Path patterns use {name} segments (e.g. /orders/{id}). Routes are matched
// in declaration order; the first match wins.
type Route struct {
	Path      string                    `json:"path" yaml:"path"`
	Method    string                    `json:"method" yaml:"method"` // Compared case-insensitively
	Response  *ResponseTemplate         `json:"response,omitempty" yaml:"response,omitempty"`
	Variables map[string]VariableConfig `json:"variables,omitempty" yaml:"variables,omitempty"`
	LuaScript string                    `json:"lua_script,omitempty" yaml:"lua_script,omitempty"` // If present, template mode is bypassed
	// Name for this object type (e.g. "orders", "users")
	ObjectName string `json:"object_name,omitempty" yaml:"object_name,omitempty"`
	// Whether to store this response for cross-references (default true)
	StoreObject *bool `json:"store_object,omitempty" yaml:"store_object,omitempty"`
}

// ShouldStoreObject returns whether POST responses are appended to the object
// store (defaults to true if not set).
func (r *Route) ShouldStoreObject() bool {
	return r.StoreObject == nil || *r.StoreObject
}

// ResponseTemplate is a JSON body template with an optional status override.
type ResponseTemplate struct {
	Status int         `json:"status,omitempty" yaml:"status,omitempty"`
	Body   interface{} `json:"body" yaml:"body"`
}

// VariableConfig declares a typed random variable generated for POST responses.
type VariableConfig struct {
	Type    string      `json:"type" yaml:"type"` // "uuid", "integer", "string"
	Default interface{} `json:"default,omitempty" yaml:"default,omitempty"`
	// String type parameters
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	// Integer type parameters
	Min *int64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max *int64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// StoredObject is one entry in an object bucket. Data holds the full response
// body the POST produced; Id is the generated "id" variable stringified.
type StoredObject struct {
	Id   string      `json:"id"`
	Data interface{} `json:"data"`
}

// ScriptRequest is the request view handed to Lua scripts as the `request`
// global.
type ScriptRequest struct {
	Method     string
	Path       string
	Headers    map[string]string
	Body       interface{} // nil when the request carried no JSON body
	PathParams map[string]string
}

// CORSHeader represents a single CORS header with JavaScript expression
type CORSHeader struct {
	Name       string `json:"name" yaml:"name"`             // Header name (e.g., "Access-Control-Allow-Origin")
	Expression string `json:"expression" yaml:"expression"` // JavaScript expression to evaluate
}

// CORSConfig stores global CORS configuration
type CORSConfig struct {
	Enabled              bool         `json:"enabled" yaml:"enabled"`
	Mode                 string       `json:"mode,omitempty" yaml:"mode,omitempty"` // "headers" or "script"
	HeaderExpressions    []CORSHeader `json:"header_expressions,omitempty" yaml:"header_expressions,omitempty"`
	Script               string       `json:"script,omitempty" yaml:"script,omitempty"`
	OptionsDefaultStatus int          `json:"options_default_status,omitempty" yaml:"options_default_status,omitempty"` // Default status for unmatched OPTIONS
}
