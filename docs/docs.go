// Package docs registers the OpenAPI description served under /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/zoo.Info": {"post": {"tags": ["zoo"], "summary": "Zoo summary", "parameters": [{"$ref": "#/parameters/call"}], "responses": {"200": {"$ref": "#/responses/result"}}}},
        "/api/v1/zoo.Report": {"post": {"tags": ["zoo"], "summary": "Rendered zoo report", "parameters": [{"$ref": "#/parameters/call"}], "responses": {"200": {"$ref": "#/responses/result"}}}},
        "/api/v1/zoo.Roster": {"post": {"tags": ["zoo"], "summary": "Employees in hiring order", "parameters": [{"$ref": "#/parameters/call"}], "responses": {"200": {"$ref": "#/responses/result"}}}},
        "/api/v1/zoo.Census": {"post": {"tags": ["zoo"], "summary": "Latest occupancy census", "parameters": [{"$ref": "#/parameters/call"}], "responses": {"200": {"$ref": "#/responses/result"}}}},
        "/api/v1/enclosure.Open": {"post": {"tags": ["enclosure"], "summary": "Open an enclosure", "parameters": [{"$ref": "#/parameters/call"}], "responses": {"200": {"$ref": "#/responses/result"}}}},
        "/api/v1/enclosure.List": {"post": {"tags": ["enclosure"], "summary": "List enclosures", "parameters": [{"$ref": "#/parameters/call"}], "responses": {"200": {"$ref": "#/responses/result"}}}},
        "/api/v1/enclosure.Animals": {"post": {"tags": ["enclosure"], "summary": "Animals in an enclosure", "parameters": [{"$ref": "#/parameters/call"}], "responses": {"200": {"$ref": "#/responses/result"}}}},
        "/api/v1/enclosure.Describe": {"post": {"tags": ["enclosure"], "summary": "Enclosure member listing", "parameters": [{"$ref": "#/parameters/call"}], "responses": {"200": {"$ref": "#/responses/result"}}}},
        "/api/v1/enclosure.Admit": {"post": {"tags": ["enclosure"], "summary": "Admit an animal", "parameters": [{"$ref": "#/parameters/call"}], "responses": {"200": {"$ref": "#/responses/result"}}}},
        "/api/v1/enclosure.Release": {"post": {"tags": ["enclosure"], "summary": "Release an animal", "parameters": [{"$ref": "#/parameters/call"}], "responses": {"200": {"$ref": "#/responses/result"}}}},
        "/api/v1/staff.HireVeterinarian": {"post": {"tags": ["staff"], "summary": "Hire a veterinarian", "parameters": [{"$ref": "#/parameters/call"}], "responses": {"200": {"$ref": "#/responses/result"}}}},
        "/api/v1/staff.HireZookeeper": {"post": {"tags": ["staff"], "summary": "Hire a zookeeper", "parameters": [{"$ref": "#/parameters/call"}], "responses": {"200": {"$ref": "#/responses/result"}}}},
        "/api/v1/auth.Login": {"post": {"tags": ["auth"], "summary": "Issue a staff token", "parameters": [{"$ref": "#/parameters/call"}], "responses": {"200": {"$ref": "#/responses/result"}}}},
        "/api/v1/auth.Refresh": {"post": {"tags": ["auth"], "summary": "Refresh a staff token", "parameters": [{"$ref": "#/parameters/call"}], "responses": {"200": {"$ref": "#/responses/result"}}}},
        "/api/v1/care.Treat": {"post": {"tags": ["care"], "summary": "Treat an animal", "security": [{"BearerAuth": []}], "parameters": [{"$ref": "#/parameters/call"}], "responses": {"200": {"$ref": "#/responses/result"}}}},
        "/api/v1/care.Feed": {"post": {"tags": ["care"], "summary": "Feed an animal", "security": [{"BearerAuth": []}], "parameters": [{"$ref": "#/parameters/call"}], "responses": {"200": {"$ref": "#/responses/result"}}}},
        "/api/v1/care.Move": {"post": {"tags": ["care"], "summary": "Move an animal", "security": [{"BearerAuth": []}], "parameters": [{"$ref": "#/parameters/call"}], "responses": {"200": {"$ref": "#/responses/result"}}}},
        "/api/v1/stream/events": {"get": {"tags": ["stream"], "summary": "Server-sent zoo notifications", "produces": ["text/event-stream"], "parameters": [{"type": "string", "name": "enclosure", "in": "query", "description": "Comma separated enclosure IDs"}], "responses": {"200": {"description": "event stream"}}}}
    },
    "parameters": {
        "call": {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/jsonrpcx.Request"}}
    },
    "responses": {
        "result": {"description": "JSON-RPC response", "schema": {"$ref": "#/definitions/jsonrpcx.Response"}}
    },
    "definitions": {
        "jsonrpcx.Request": {
            "type": "object",
            "properties": {
                "jsonrpc": {"type": "string", "example": "2.0"},
                "method": {"type": "string"},
                "params": {"type": "object"},
                "id": {}
            }
        },
        "jsonrpcx.Error": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {}
            }
        },
        "jsonrpcx.Response": {
            "type": "object",
            "properties": {
                "jsonrpc": {"type": "string", "example": "2.0"},
                "result": {},
                "error": {"$ref": "#/definitions/jsonrpcx.Error"},
                "id": {}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Zoo API",
	Description:      "JSON-RPC 2.0 API for running a zoo: enclosures, animals, staff and care.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
