// Package http adapts return-style handlers onto net/http with a consistent JSON envelope.
package http

import (
	stdhttp "net/http"

	pnet "reviewsentry/internal/platform/net"
)

// Envelope is the response body every endpoint writes
type Envelope = pnet.Wire

// Response is what return-style handlers hand back.
// A Body that is an error becomes the error envelope with its mapped status.
// Flat success bodies are written as-is for endpoints whose payload shape is fixed by clients.
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
	Flat   bool
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	if resp.Status == stdhttp.StatusNoContent {
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}

	reqID := pnet.RequestID(r.Context())
	if err, ok := resp.Body.(error); ok && err != nil {
		status, body := pnet.Error(err, reqID)
		pnet.WriteJSON(w, status, body)
		return
	}
	if resp.Flat {
		status := resp.Status
		if status == 0 {
			status = stdhttp.StatusOK
		}
		pnet.WriteJSON(w, status, resp.Body)
		return
	}
	status, body := pnet.Reply(resp.Status, resp.Body, reqID)
	pnet.WriteJSON(w, status, body)
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error returns a response that maps err to status and envelope
func Error(err error) Response { return Response{Body: err} }

// Flat returns a 200 response whose body is data itself, without the envelope
func Flat(data any) Response {
	return Response{Status: stdhttp.StatusOK, Body: data, Flat: true}
}

// Message returns a flat 200 response {"message": msg}, for empty states
func Message(msg string) Response {
	return Flat(map[string]string{"message": msg})
}
