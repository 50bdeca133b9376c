package proof

import (
	"net/http"

	"idproof/pkg/reasoncodes"
)

// ProofError carries the failure class of a rejected submission. The class
// decides both the HTTP status and the reason code persisted with the
// failure row.
type ProofError struct {
	Reason reasoncodes.ReasonCode
	Msg    string
	Err    error
}

func (e *ProofError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ProofError) Unwrap() error {
	return e.Err
}

func validationError(msg string, err error) *ProofError {
	return &ProofError{Reason: reasoncodes.ErrValidation, Msg: msg, Err: err}
}

func policyError(msg string) *ProofError {
	return &ProofError{Reason: reasoncodes.ErrPolicy, Msg: msg}
}

func cryptographicError(msg string, err error) *ProofError {
	return &ProofError{Reason: reasoncodes.ErrCryptographic, Msg: msg, Err: err}
}

func replayError(msg string, err error) *ProofError {
	return &ProofError{Reason: reasoncodes.ErrReplay, Msg: msg, Err: err}
}

func upstreamError(msg string, err error) *ProofError {
	return &ProofError{Reason: reasoncodes.ErrUpstreamUnavailable, Msg: msg, Err: err}
}

// HttpStatus maps a failure class to its transport status.
func (e *ProofError) HttpStatus() int {
	switch e.Reason {
	case reasoncodes.ErrValidation:
		return http.StatusBadRequest
	case reasoncodes.ErrPolicy:
		return http.StatusForbidden
	case reasoncodes.ErrCryptographic:
		return http.StatusUnprocessableEntity
	case reasoncodes.ErrReplay:
		return http.StatusConflict
	case reasoncodes.ErrUpstreamUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
