package handlers

import (
	"net/http"

	"github.com/danghamo/zoo/internal/api/jsonrpcx"
)

// decodeCall checks the HTTP method, parses the JSON-RPC envelope and decodes
// its params into params. On failure it records the error and returns false.
func decodeCall(r *http.Request, params any) (*jsonrpcx.Request, bool) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return nil, false
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return nil, false
	}

	if params != nil {
		if err := jsonrpcx.DecodeParams(req, params); err != nil {
			jsonrpcx.WithError(r, req.ID, jsonrpcx.InvalidParams, "Invalid params")
			return nil, false
		}
	}

	return req, true
}

// EnclosureParams names an enclosure
type EnclosureParams struct {
	EnclosureID string `json:"enclosure_id" example:"E1"`
}

// AnimalRef names an animal by its enclosure and name
type AnimalRef struct {
	EnclosureID string `json:"enclosure_id" example:"E1"`
	Name        string `json:"name" example:"lion1"`
}
