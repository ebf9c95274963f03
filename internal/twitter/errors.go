package twitter

import "fmt"

// NetworkError wraps a transport-level failure: no HTTP response was
// received at all (DNS, connection reset, timeout).
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("twitter: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RemoteAPIError is a non-2xx response from the API. The raw body is kept
// for caller inspection and logging.
type RemoteAPIError struct {
	StatusCode int
	Body       string
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("twitter: API error (status %d): %s", e.StatusCode, e.Body)
}

// ProtocolError means the server answered 2xx but the body was missing an
// expected field, e.g. an access-token response without oauth_token.
type ProtocolError struct {
	Msg string
}

func (e *ProtocolError) Error() string {
	return "twitter: protocol error: " + e.Msg
}

// InvalidStateError is returned before any I/O when an operation is invoked
// out of order, e.g. AuthorizeURL before a request token exists, or a media
// upload with an empty payload.
type InvalidStateError struct {
	Msg string
}

func (e *InvalidStateError) Error() string {
	return "twitter: invalid state: " + e.Msg
}
