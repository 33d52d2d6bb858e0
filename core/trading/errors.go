package trading

import (
	"fmt"
	"strings"
)

// APIError is one (code, message) pair from a Trading API response.
type APIError struct {
	Code    string
	Message string
}

func (e APIError) String() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// TransportError reports a network or HTTP-level failure of one call.
type TransportError struct {
	// Call is the Trading API call name.
	Call string
	// StatusCode is set when the endpoint answered with a non-2xx status.
	StatusCode int
	// Err is the underlying failure when no usable response arrived.
	Err error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Call, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Call, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError reports a response whose Ack was not accepted. It carries
// the error details the endpoint returned.
type ProtocolError struct {
	// Call is the Trading API call name.
	Call string
	// Ack is the acknowledgment the endpoint reported.
	Ack string
	// Errors holds the (code, message) pairs from the response.
	Errors []APIError
}

func (e *ProtocolError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("%s failed: ack %s", e.Call, e.Ack)
	}
	msgs := make([]string, len(e.Errors))
	for i, apiErr := range e.Errors {
		msgs[i] = apiErr.String()
	}
	return fmt.Sprintf("%s failed: %s", e.Call, strings.Join(msgs, "; "))
}

// ackAccepted reports whether an Ack means the call went through.
// "Warning" responses still carry usable data.
func ackAccepted(ack string) bool {
	return ack == "Success" || ack == "Warning"
}
