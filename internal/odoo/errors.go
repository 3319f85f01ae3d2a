package odoo

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Client-side sentinels for the Odoo error families the CLI maps to exit
// codes.
var (
	// ErrAuthenticationFailed marks a rejected login.
	ErrAuthenticationFailed = errors.New("odoo: authentication failed")

	// ErrInvalidModel marks a model name the server does not know.
	ErrInvalidModel = errors.New("odoo: invalid model")

	// ErrInvalidMethod marks a method that does not exist on the model.
	ErrInvalidMethod = errors.New("odoo: invalid method for the model")

	// ErrAccessDenied marks an operation the authenticated user may not
	// perform.
	ErrAccessDenied = errors.New("odoo: access denied")

	// ErrRPC is the generic failure for XML-RPC calls that cannot be
	// classified more specifically. The underlying error is wrapped.
	ErrRPC = errors.New("odoo: XML-RPC call failed")

	// ErrInvalidResponse marks a response that is not in the expected
	// format.
	ErrInvalidResponse = errors.New("odoo: invalid RPC response")
)

// FaultError is a structured server fault. The kolo client flattens faults
// into strings, so code and message are recovered by parsing.
type FaultError struct {
	OriginalError error
	Code          int
	Message       string
}

func (e *FaultError) Error() string {
	if e.OriginalError != nil {
		return fmt.Sprintf("%s: %s (original: %v)", ErrRPC, e.Message, e.OriginalError)
	}
	return fmt.Sprintf("%s: %s", ErrRPC, e.Message)
}

func (e *FaultError) Unwrap() error { return e.OriginalError }

var faultRe = regexp.MustCompile(`Fault (\d+): '(.*?)'`)

// parseRPCError classifies a raw kolo/xmlrpc error into one of the
// sentinel families, falling back to a FaultError with whatever code and
// message could be recovered.
func parseRPCError(err error) error {
	if err == nil {
		return nil
	}

	errMsg := err.Error()
	faultCode := 0
	faultMessage := errMsg

	if matches := faultRe.FindStringSubmatch(errMsg); len(matches) == 3 {
		if code, cerr := strconv.Atoi(matches[1]); cerr == nil {
			faultCode = code
		}
		faultMessage = matches[2]
	} else if strings.HasPrefix(errMsg, "XML-RPC fault: ") {
		faultMessage = strings.TrimPrefix(errMsg, "XML-RPC fault: ")
	}

	// Message heuristics come first so the caller gets the most specific
	// sentinel available.
	switch {
	case strings.Contains(faultMessage, "The model does not exist"),
		strings.Contains(faultMessage, "No model named"),
		strings.Contains(faultMessage, "not found in registry"):
		return fmt.Errorf("%w: %s (original: %w)", ErrInvalidModel, faultMessage, err)

	case strings.Contains(faultMessage, "Object has no method"),
		strings.Contains(faultMessage, "method does not exist"),
		strings.Contains(faultMessage, "has no attribute"):
		return fmt.Errorf("%w: %s (original: %w)", ErrInvalidMethod, faultMessage, err)

	case strings.Contains(faultMessage, "Access denied"),
		strings.Contains(faultMessage, "Access Denied"),
		strings.Contains(faultMessage, "AccessError"):
		return fmt.Errorf("%w: %s (original: %w)", ErrAccessDenied, faultMessage, err)
	}

	return &FaultError{
		OriginalError: err,
		Code:          faultCode,
		Message:       faultMessage,
	}
}
