package jsonrpcx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/danghamo/zoo/internal/domain/shared"
)

// Version is the only protocol version accepted
const Version = "2.0"

// maxBodyBytes caps a request body
const maxBodyBytes = 1 << 20

// Request represents a JSON-RPC 2.0 request
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      any             `json:"id,omitempty"`
}

// RequestT documents a request with typed params
type RequestT[T any] struct {
	JSONRPC string `json:"jsonrpc" example:"2.0"`
	Method  string `json:"method"`
	Params  T      `json:"params"`
	ID      any    `json:"id,omitempty"`
}

// Response represents a JSON-RPC 2.0 response
type Response struct {
	JSONRPC string `json:"jsonrpc"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
	ID      any    `json:"id,omitempty"`
}

// ResponseT documents a successful response with a typed result
type ResponseT[T any] struct {
	JSONRPC string `json:"jsonrpc" example:"2.0"`
	Result  T      `json:"result"`
	ID      any    `json:"id,omitempty"`
}

// ErrorResponse documents an error response
type ErrorResponse struct {
	JSONRPC string `json:"jsonrpc" example:"2.0"`
	Error   Error  `json:"error"`
	ID      any    `json:"id,omitempty"`
}

// Error represents a JSON-RPC 2.0 error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Notification is a server-initiated JSON-RPC 2.0 message without an id
type Notification struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// NewNotification creates a notification for method
func NewNotification(method string, params any) Notification {
	return Notification{JSONRPC: Version, Method: method, Params: params}
}

// JSON-RPC 2.0 error codes
const (
	ParseError     = -32700
	InvalidRequest = -32600
	MethodNotFound = -32601
	InvalidParams  = -32602
	InternalError  = -32603
)

// Application error codes
const (
	Unauthorized     = -32001
	NotFound         = -32004
	InvalidOperation = -32005
	RateLimited      = -32029
)

// CodeFor maps a domain error to an error code
func CodeFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return NotFound
	case errors.Is(err, shared.ErrInvalidInput):
		return InvalidParams
	case errors.Is(err, shared.ErrInvalidOperation):
		return InvalidOperation
	default:
		return InternalError
	}
}

// ParseRequest parses a JSON-RPC 2.0 request from the HTTP request body
func ParseRequest(r *http.Request) (*Request, error) {
	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}

	if req.JSONRPC != Version {
		return nil, fmt.Errorf("unsupported jsonrpc version %q", req.JSONRPC)
	}

	return &req, nil
}

// DecodeParams unmarshals the request params into v. Missing params leave v untouched.
func DecodeParams(req *Request, v any) error {
	trimmed := bytes.TrimSpace(req.Params)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return json.Unmarshal(trimmed, v)
}

// Success sends a successful JSON-RPC 2.0 response
func Success(w http.ResponseWriter, id any, result any) {
	Write(w, Response{
		JSONRPC: Version,
		Result:  result,
		ID:      id,
	})
}

type errorKey struct{}

// errorSlot lets handlers deeper in the chain report an error to ErrorAdapter
// even when a middleware in between replaced the request
type errorSlot struct {
	response *Response
}

// WithErrorSlot returns a context that collects errors reported by WithError
func WithErrorSlot(ctx context.Context) context.Context {
	return context.WithValue(ctx, errorKey{}, &errorSlot{})
}

// WithError records an error response for the error adapter middleware
func WithError(r *http.Request, id any, code int, message string) {
	response := &Response{
		JSONRPC: Version,
		Error: &Error{
			Code:    code,
			Message: message,
		},
		ID: id,
	}

	if slot, ok := r.Context().Value(errorKey{}).(*errorSlot); ok {
		slot.response = response
		return
	}

	slot := &errorSlot{response: response}
	*r = *r.WithContext(context.WithValue(r.Context(), errorKey{}, slot))
}

// WithDomainError records err with the code CodeFor assigns it
func WithDomainError(r *http.Request, id any, err error) {
	WithError(r, id, CodeFor(err), err.Error())
}

// ErrorFrom returns the error response recorded in ctx
func ErrorFrom(ctx context.Context) (*Response, bool) {
	slot, ok := ctx.Value(errorKey{}).(*errorSlot)
	if !ok || slot.response == nil {
		return nil, false
	}
	return slot.response, true
}

// ErrorAdapter interface for middleware to send error responses
type ErrorAdapter interface {
	SendError(w http.ResponseWriter, id any, code int, message string)
}

// errorAdapter is the private implementation of ErrorAdapter
type errorAdapter struct{}

// NewErrorAdapter creates a new error adapter for middleware use
func NewErrorAdapter() ErrorAdapter {
	return &errorAdapter{}
}

// SendError sends an error JSON-RPC 2.0 response
func (ea *errorAdapter) SendError(w http.ResponseWriter, id any, code int, message string) {
	Write(w, Response{
		JSONRPC: Version,
		Error: &Error{
			Code:    code,
			Message: message,
		},
		ID: id,
	})
}

// Write sends a JSON-RPC 2.0 response (always HTTP 200)
func Write(w http.ResponseWriter, response Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_ = json.NewEncoder(w).Encode(response)
}
