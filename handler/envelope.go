package handler

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform shape of every JSON response body.
// Successful responses carry Data; failures carry a user-facing Error
// message and a stable machine-readable Code.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// jsonResponse implements Response for envelope rendering.
type jsonResponse struct {
	status  int
	headers http.Header
	body    Envelope
}

func (j *jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	for k, v := range j.headers {
		for _, s := range v {
			w.Header().Add(k, s)
		}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures a JSON response.
type JSONOption func(*jsonResponse)

// WithJSONStatus sets a custom HTTP status code.
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		if status > 0 {
			r.status = status
		}
	}
}

// WithHeader adds a response header.
func WithHeader(key, value string) JSONOption {
	return func(r *jsonResponse) {
		if r.headers == nil {
			r.headers = make(http.Header)
		}
		r.headers.Add(key, value)
	}
}

// JSON creates a successful envelope response, 200 OK unless overridden.
//
//	return handler.JSON(checkoutResponse{SessionID: s.ID, URL: s.URL})
//	// {"success":true,"data":{"sessionId":"...","url":"..."}}
func JSON(data any, opts ...JSONOption) Response {
	r := &jsonResponse{
		status: http.StatusOK,
		body:   Envelope{Success: true, Data: data},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError creates a failed envelope response.
//
//	// {"success":false,"error":"Too many requests.","code":"quota_exceeded"}
func JSONError(status int, message, code string, opts ...JSONOption) Response {
	r := &jsonResponse{
		status: status,
		body:   Envelope{Success: false, Error: message, Code: code},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// errorResponse defers to the Wrap error handler.
type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

// Error returns a Response that hands err to the configured ErrorHandler,
// which classifies it and renders the failed envelope.
func Error(err error) Response {
	return errorResponse{err: err}
}
