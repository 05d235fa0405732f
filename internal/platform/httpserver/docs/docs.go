// Package docs registers the OpenAPI document served under /swagger/.
// Regenerate with: swag init -g cmd/api/main.go -o internal/platform/httpserver/docs
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
        "/jwt": {
            "post": {
                "tags": ["session-token"],
                "summary": "Issue session token",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/sessionhttp.IssueTokenRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/sessionhttp.IssueTokenResponse"}}}
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["authorization"],
                "summary": "List users",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}
            },
            "post": {
                "tags": ["authorization"],
                "summary": "Register user",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/users/admin/{email}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["authorization"],
                "summary": "Check admin role",
                "parameters": [{"type": "string", "name": "email", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/users/instructor/{email}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["authorization"],
                "summary": "Check instructor role",
                "parameters": [{"type": "string", "name": "email", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/instructors": {
            "get": {"tags": ["classes"], "summary": "List instructors", "responses": {"200": {"description": "OK"}}}
        },
        "/addClass": {
            "get": {"tags": ["classes"], "summary": "List all classes", "responses": {"200": {"description": "OK"}}},
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["classes"],
                "summary": "Create class",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}
            }
        },
        "/addClass/{id}": {
            "get": {"tags": ["classes"], "summary": "Get class", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["classes"], "summary": "Set class status", "responses": {"200": {"description": "OK"}}}
        },
        "/updateMyClass/{id}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["classes"], "summary": "Update own class", "responses": {"200": {"description": "OK"}}}
        },
        "/addFeedback/{id}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["classes"], "summary": "Leave admin feedback", "responses": {"200": {"description": "OK"}}}
        },
        "/topClass": {
            "get": {
                "tags": ["classes"],
                "summary": "Top approved classes",
                "parameters": [
                    {"type": "string", "name": "sortBy", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/selects": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["selections"], "summary": "List own selections", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["selections"], "summary": "Add selection", "responses": {"200": {"description": "OK"}}}
        },
        "/selects/{id}": {
            "get": {"tags": ["selections"], "summary": "Get selection", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["selections"], "summary": "Remove selection", "responses": {"200": {"description": "OK"}}}
        },
        "/create-payment-intent": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["payments"],
                "summary": "Create payment intent",
                "responses": {"200": {"description": "OK"}, "502": {"description": "Bad Gateway"}}
            }
        },
        "/payments": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["payments"], "summary": "Complete payment", "responses": {"200": {"description": "OK"}}}
        },
        "/payments/{email}": {
            "get": {"tags": ["payments"], "summary": "Payment history", "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "sessionhttp.IssueTokenRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "name": {"type": "string"}}
        },
        "sessionhttp.IssueTokenResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "expires_at": {"type": "string"}}
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
	Title:            "Fluent Academy API",
	Description:      "Class marketplace: catalog, selections, payments and enrollment.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
