package net

import (
	"encoding/json"
	"net/http"

	perr "reviewsentry/internal/platform/errors"
)

// Wire is the body of every json response. Data is set on success,
// Code and Error on failure
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

func head(status int, reqID string) Wire {
	return Wire{StatusCode: status, Status: http.StatusText(status), RequestID: reqID}
}

// Reply wraps data; a zero status is 200
func Reply(status int, data any, reqID string) (int, Wire) {
	if status == 0 {
		status = http.StatusOK
	}
	w := head(status, reqID)
	w.Data = data
	return status, w
}

// Error answers with the status of err's code. A nil err is a bare 200
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return Reply(0, nil, reqID)
	}
	status := perr.HTTPStatus(err)
	e := perr.WireFrom(err)
	w := head(status, reqID)
	w.Code, w.Error = e.Code, e.Message
	return status, w
}

// WriteJSON encodes v after the header; encode errors mean the client went away
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
