package constants

// contextKey keeps these keys from colliding with other packages that use the
// same string values.
type contextKey string

const (
	// HeaderXRequestId is the HTTP header and gRPC metadata key carrying the
	// caller's request id.
	HeaderXRequestId = "x-request-id"

	// ContextKeyRequestID stores the request id in a context.Context.
	ContextKeyRequestID contextKey = HeaderXRequestId
)
