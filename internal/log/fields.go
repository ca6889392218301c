package log

// Common field names for structured logging
const (
	FieldComponent    = "component"
	FieldRequestID    = "request_id"
	FieldClientIP     = "client_ip"
	FieldMethod       = "method"
	FieldPath         = "path"
	FieldQuery        = "query"
	FieldStatusCode   = "status_code"
	FieldDuration     = "duration_ms"
	FieldUserAgent    = "user_agent"
	FieldReferer      = "referer"
	FieldSuccess      = "success"
	FieldError        = "error"
	FieldErrorKind    = "error_kind"
	FieldOperation    = "operation"
	FieldTemplate     = "template"
	FieldInvestorID   = "investor_id"
	FieldPage         = "page"
	FieldAssetClass   = "asset_class"
	FieldRows         = "rows"
	FieldUpstreamURL  = "upstream_url"
	FieldUpstreamCode = "upstream_status"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentUpstream  = "upstream"
	ComponentSecurity  = "security"
	ComponentRateLimit = "rate_limit"
	ComponentTemplate  = "template"
)

// Operations defines standard operation names
const (
	OpListInvestors   = "list_investors"
	OpListCommitments = "list_commitments"
	OpPing            = "ping"
	OpRender          = "render"
	OpShutdown        = "shutdown"
	OpStartup         = "startup"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeNetwork  = "network_error"
	ErrorTypeUpstream = "upstream_status_error"
	ErrorTypeDecode   = "decode_error"
	ErrorTypeTimeout  = "timeout_error"
	ErrorTypeNotFound = "not_found_error"
	ErrorTypeInternal = "internal_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithRequestID adds request ID field
func (f LogFields) WithRequestID(requestID string) LogFields {
	f[FieldRequestID] = requestID
	return f
}

// WithClientIP adds client IP field
func (f LogFields) WithClientIP(ip string) LogFields {
	f[FieldClientIP] = ip
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithCommitmentQuery adds the commitment page selection
func (f LogFields) WithCommitmentQuery(investorID string, page int, assetClass string) LogFields {
	f[FieldInvestorID] = investorID
	f[FieldPage] = page
	f[FieldAssetClass] = assetClass
	return f
}

// WithTemplate adds the template name
func (f LogFields) WithTemplate(name string) LogFields {
	f[FieldTemplate] = name
	return f
}

// WithUpstream adds upstream failure details
func (f LogFields) WithUpstream(errorType, url string, status int) LogFields {
	f[FieldErrorKind] = errorType
	if url != "" {
		f[FieldUpstreamURL] = url
	}
	if status != 0 {
		f[FieldUpstreamCode] = status
	}
	return f
}

// WithHTTPRequest adds HTTP request fields
func (f LogFields) WithHTTPRequest(method, path, query, userAgent, referer string) LogFields {
	f[FieldMethod] = method
	f[FieldPath] = path
	f[FieldQuery] = query
	f[FieldUserAgent] = userAgent
	f[FieldReferer] = referer
	return f
}

// WithHTTPResponse adds HTTP response fields
func (f LogFields) WithHTTPResponse(statusCode int, durationMs int64, success bool) LogFields {
	f[FieldStatusCode] = statusCode
	f[FieldDuration] = durationMs
	f[FieldSuccess] = success
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
