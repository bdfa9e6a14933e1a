package errors

import "net/http"

// ErrorCode is the machine readable half of an Error; it is sent on the wire as a number
type ErrorCode uint16

// Codes are append only
const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodePanic
	ErrorCodeUnavailable
	ErrorCodeTooManyRequests
	ErrorCodeInvalidArgument
	ErrorCodeValidation
	ErrorCodeJSON
	ErrorCodeNotFound
	ErrorCodeDuplicateKey
	ErrorCodeDB

	// ErrorCodeModelUnavailable means the classifier or vectorizer artifacts did not load
	ErrorCodeModelUnavailable

	// ErrorCodeClassificationFailed means inference raised or the breaker refused it
	ErrorCodeClassificationFailed
)

type codeInfo struct {
	name   string
	status int
}

var codes = [...]codeInfo{
	ErrorCodeUnknown:              {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:                {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:          {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeTooManyRequests:      {"too_many_requests", http.StatusTooManyRequests},
	ErrorCodeInvalidArgument:      {"invalid_argument", http.StatusUnprocessableEntity},
	ErrorCodeValidation:           {"validation", http.StatusBadRequest},
	ErrorCodeJSON:                 {"json", http.StatusBadRequest},
	ErrorCodeNotFound:             {"not_found", http.StatusNotFound},
	ErrorCodeDuplicateKey:         {"duplicate_key", http.StatusConflict},
	ErrorCodeDB:                   {"db", http.StatusInternalServerError},
	ErrorCodeModelUnavailable:     {"model_unavailable", http.StatusInternalServerError},
	ErrorCodeClassificationFailed: {"classification_failed", http.StatusInternalServerError},
}

func (c ErrorCode) info() codeInfo {
	if int(c) < len(codes) {
		return codes[c]
	}
	return codes[ErrorCodeUnknown]
}

// String is the log name of the code
func (c ErrorCode) String() string { return c.info().name }

// Status is the http status an error with this code is answered with
func (c ErrorCode) Status() int { return c.info().status }
