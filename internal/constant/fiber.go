package constant

const (
	ContextKeyRequestID = "requestid"

	RequestIDHeader = "X-Cardrank-Request-ID"
)
