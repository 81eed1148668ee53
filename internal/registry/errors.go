package registry

import (
	"errors"
	"fmt"

	"github.com/fleuristes/fleur/internal/messages"
)

// TransportError reports a failed request or a non-2xx response.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(messages.RegistryTransportFmt, e.URL, e.Err)
	}
	return fmt.Sprintf(messages.RegistryStatusFmt, e.URL, e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError reports a registry body that is not valid JSON.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf(messages.RegistryParseBareFmt, e.Err)
	}
	return fmt.Sprintf(messages.RegistryParseFmt, e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports a registry entry missing a required field. Index is
// -1 when the document itself has the wrong shape.
type ValidationError struct {
	Index  int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Index < 0:
		return e.Reason
	case e.Field != "":
		return fmt.Sprintf(messages.RegistryFieldMissingFmt, e.Index, e.Field)
	default:
		return fmt.Sprintf(messages.RegistryEntryInvalidFmt, e.Index, e.Reason)
	}
}

// IsTransportError reports whether err wraps a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsParseError reports whether err wraps a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsValidationError reports whether err wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
