package client

import "errors"

var (
	ErrUnavailable = errors.New("server unavailable")
	ErrRejected    = errors.New("request rejected")
	ErrNotAList    = errors.New("response data is not a list")
)

// BusinessError carries the message of a non-success envelope. It matches
// ErrRejected with errors.Is.
type BusinessError struct {
	Message string
}

func (e *BusinessError) Error() string {
	if e.Message == "" {
		return ErrRejected.Error()
	}
	return e.Message
}

func (e *BusinessError) Is(target error) bool {
	return target == ErrRejected
}
