package odoo

import "errors"

// ConnectionError covers timeouts and network-level failures reaching Odoo.
// Potentially transient; callers decide whether to retry.
type ConnectionError struct {
	Message string
	Err     error
}

func (e *ConnectionError) Error() string {
	return "odoo connection error: " + e.Message
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ClientError is a 4xx from Odoo: the request was malformed or rejected.
// Not retryable without changing the payload.
type ClientError struct {
	Message string
}

func (e *ClientError) Error() string {
	return "odoo client error: " + e.Message
}

// ServerError is a 5xx from Odoo.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return "odoo server error: " + e.Message
}

// IsTransient reports whether err is a network-level failure worth retrying.
func IsTransient(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}
