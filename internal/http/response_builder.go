package http

import (
	"encoding/json"
	"net/http"
	"time"
)

// JSONResponseBuilder provides a fluent API for the operational JSON endpoints.
type JSONResponseBuilder struct {
	fields     map[string]any
	statusCode int
}

// NewJSONResponse creates a builder with a 200 status and a timestamp field.
func NewJSONResponse() *JSONResponseBuilder {
	return &JSONResponseBuilder{
		fields:     map[string]any{"timestamp": time.Now().UTC().Format(time.RFC3339)},
		statusCode: http.StatusOK,
	}
}

// Status sets the HTTP status code for the response.
func (b *JSONResponseBuilder) Status(code int) *JSONResponseBuilder {
	b.statusCode = code
	return b
}

// Field sets a top-level field of the JSON body.
func (b *JSONResponseBuilder) Field(name string, value any) *JSONResponseBuilder {
	b.fields[name] = value
	return b
}

// Write sends the built response to the http.ResponseWriter.
func (b *JSONResponseBuilder) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(b.statusCode)
	_ = json.NewEncoder(w).Encode(b.fields)
}
