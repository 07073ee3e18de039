package remote

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates the TV did not answer in time
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates nothing listens on the remote port (TV off or no remote API)
	ErrTypeConnectionRefused
	// ErrTypeUnauthorized indicates the pairing request was denied on the TV
	ErrTypeUnauthorized
	// ErrTypeProtocol indicates an unexpected message from the TV
	ErrTypeProtocol
	// ErrTypeInvalidMAC indicates Wake-on-LAN was asked for a device without a MAC
	ErrTypeInvalidMAC
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeUnauthorized:
		return "Unauthorized"
	case ErrTypeProtocol:
		return "Protocol Error"
	case ErrTypeInvalidMAC:
		return "Invalid MAC"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error represents an error that occurred while talking to a TV
type Error struct {
	Type      ErrorType // Category of error
	Message   string    // Human-readable error message
	Err       error     // Underlying error (if any)
	DeviceIP  string    // TV address (for context)
	Retryable bool      // Whether the error is retryable
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError analyzes a transport error and returns a typed Error
func ClassifyNetworkError(err error, deviceIP string) *Error {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) {
		return &Error{
			Type:      ErrTypeTimeout,
			Message:   "TV did not respond in time",
			Err:       err,
			DeviceIP:  deviceIP,
			Retryable: true,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return &Error{
			Type:      ErrTypeConnectionRefused,
			Message:   "TV refused connection",
			Err:       err,
			DeviceIP:  deviceIP,
			Retryable: true,
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return ClassifyNetworkError(urlErr.Err, deviceIP)
	}

	return &Error{
		Type:      ErrTypeNetwork,
		Message:   "Network error occurred",
		Err:       err,
		DeviceIP:  deviceIP,
		Retryable: true,
	}
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(message, deviceIP string, err error) *Error {
	classified := ClassifyNetworkError(err, deviceIP)
	if classified == nil {
		classified = &Error{Type: ErrTypeNetwork, DeviceIP: deviceIP, Retryable: true}
	}
	classified.Message = message
	return classified
}

// NewProtocolError creates an error for an unexpected TV message
func NewProtocolError(message string, err error) *Error {
	return &Error{
		Type:    ErrTypeProtocol,
		Message: message,
		Err:     err,
	}
}

// IsUnauthorized checks if an error is a denied pairing
func IsUnauthorized(err error) bool {
	var remoteErr *Error
	return errors.As(err, &remoteErr) && remoteErr.Type == ErrTypeUnauthorized
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	var remoteErr *Error
	if errors.As(err, &remoteErr) {
		return remoteErr.Retryable
	}
	return false
}

// TroubleshootingHint returns a short suggestion for the user
func TroubleshootingHint(err error) string {
	var remoteErr *Error
	if !errors.As(err, &remoteErr) {
		return ""
	}

	var b strings.Builder
	switch remoteErr.Type {
	case ErrTypeConnectionRefused, ErrTypeTimeout:
		b.WriteString("Make sure the TV is on and connected to the same network.")
	case ErrTypeUnauthorized:
		b.WriteString("Accept the connection request on the TV, or allow it under ")
		b.WriteString("Settings > General > External Device Manager > Device Connection Manager.")
	case ErrTypeInvalidMAC:
		b.WriteString("The TV did not report its MAC address, so it cannot be woken up remotely.")
	default:
		b.WriteString("Check your network connection and try again.")
	}
	return b.String()
}
