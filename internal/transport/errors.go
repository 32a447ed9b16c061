package transport

import (
	"errors"
	"net"
	"net/textproto"
	"strconv"
)

// Error wraps a delivery failure with classification metadata.
type Error struct {
	// Code is the SMTP status code reported by the server (e.g., "550"),
	// or empty when the failure happened before a server response.
	Code string
	// Message is the error description.
	Message string
	// Permanent indicates the error will not succeed on retry.
	Permanent bool
}

func (e *Error) Error() string {
	if e.Code != "" {
		return "smtp " + e.Code + ": " + e.Message
	}
	return e.Message
}

// IsPermanent returns true if the error is a permanent failure that will
// not succeed on retry.
func IsPermanent(err error) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Permanent
	}
	return false
}

// Classify builds an Error from an SMTP delivery failure. Server replies
// carry their status code (5xx permanent, 4xx transient); dial and network
// failures classify as transient with no code. Returns nil for a nil error.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var te *Error
	if errors.As(err, &te) {
		return te
	}

	var proto *textproto.Error
	if errors.As(err, &proto) {
		return &Error{
			Code:      strconv.Itoa(proto.Code),
			Message:   proto.Msg,
			Permanent: proto.Code >= 500,
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return &Error{
			Message:   netErr.Error(),
			Permanent: false,
		}
	}

	// Unknown errors are treated as transient to avoid misreporting
	// recoverable conditions as permanent.
	return &Error{
		Message:   err.Error(),
		Permanent: false,
	}
}
