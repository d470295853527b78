// Package api holds the OpenAPI document served at /docs.
//
// Run "swag init --output api --outputTypes go" to regenerate it from the
// annotations of the handlers.
package api

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
        "/": {
            "get": {"tags": ["General"], "summary": "API root", "responses": {"200": {"description": "OK"}}},
            "options": {"tags": ["General"], "summary": "Allowed HTTP verbs", "responses": {"204": {"description": "No Content"}}}
        },
        "/version": {
            "get": {"tags": ["General"], "summary": "API version", "responses": {"200": {"description": "OK"}}},
            "options": {"tags": ["General"], "summary": "Allowed HTTP verbs", "responses": {"204": {"description": "No Content"}}}
        },
        "/healthz": {
            "get": {"tags": ["General"], "summary": "Get health", "responses": {"204": {"description": "No Content"}, "500": {"description": "Internal Server Error"}}},
            "options": {"tags": ["General"], "summary": "Allowed HTTP verbs", "responses": {"204": {"description": "No Content"}}}
        },
        "/webhooks/resend": {
            "post": {"tags": ["Webhooks"], "summary": "Receive inbound email", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}, "503": {"description": "Service Unavailable"}}},
            "options": {"tags": ["Webhooks"], "summary": "Allowed HTTP verbs", "responses": {"204": {"description": "No Content"}}}
        },
        "/auth/dev-login": {
            "post": {"tags": ["Auth"], "summary": "Development login", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "options": {"tags": ["Auth"], "summary": "Allowed HTTP verbs", "responses": {"204": {"description": "No Content"}}}
        },
        "/auth/me": {
            "get": {"tags": ["Auth"], "summary": "Get logged in user", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}},
            "patch": {"tags": ["Auth"], "summary": "Update logged in user", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}},
            "options": {"tags": ["Auth"], "summary": "Allowed HTTP verbs", "responses": {"204": {"description": "No Content"}}}
        },
        "/auth/logout": {
            "post": {"tags": ["Auth"], "summary": "Logout", "responses": {"204": {"description": "No Content"}}},
            "options": {"tags": ["Auth"], "summary": "Allowed HTTP verbs", "responses": {"204": {"description": "No Content"}}}
        },
        "/vendor-cache": {
            "get": {"tags": ["Vendor Cache"], "summary": "Get vendor cache entries", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}},
            "options": {"tags": ["Vendor Cache"], "summary": "Allowed HTTP verbs", "responses": {"204": {"description": "No Content"}}}
        },
        "/feedback": {
            "post": {"tags": ["Feedback"], "summary": "Propose a category", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}, "503": {"description": "Service Unavailable"}}},
            "options": {"tags": ["Feedback"], "summary": "Allowed HTTP verbs", "responses": {"204": {"description": "No Content"}}}
        },
        "/feedback/approve": {
            "post": {"tags": ["Feedback"], "summary": "Approve a category", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}},
            "options": {"tags": ["Feedback"], "summary": "Allowed HTTP verbs", "responses": {"204": {"description": "No Content"}}}
        },
        "/dashboard/summary": {
            "get": {"tags": ["Dashboard"], "summary": "Get spending summary", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}},
            "options": {"tags": ["Dashboard"], "summary": "Allowed HTTP verbs", "responses": {"204": {"description": "No Content"}}}
        },
        "/dashboard/alerts": {
            "get": {"tags": ["Dashboard"], "summary": "Get budget alerts", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}},
            "options": {"tags": ["Dashboard"], "summary": "Allowed HTTP verbs", "responses": {"204": {"description": "No Content"}}}
        },
        "/categories": {
            "get": {"tags": ["Categories"], "summary": "Get categories", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}},
            "post": {"tags": ["Categories"], "summary": "Create category", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}},
            "options": {"tags": ["Categories"], "summary": "Allowed HTTP verbs", "responses": {"204": {"description": "No Content"}}}
        },
        "/categories/{id}": {
            "get": {"tags": ["Categories"], "summary": "Get category", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["Categories"], "summary": "Update category", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "options": {"tags": ["Categories"], "summary": "Allowed HTTP verbs", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/budgets": {
            "get": {"tags": ["Budgets"], "summary": "Get budgets", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}},
            "put": {"tags": ["Budgets"], "summary": "Set budget", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}},
            "options": {"tags": ["Budgets"], "summary": "Allowed HTTP verbs", "responses": {"204": {"description": "No Content"}}}
        },
        "/transactions": {
            "get": {"tags": ["Transactions"], "summary": "Get transactions", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}},
            "post": {"tags": ["Transactions"], "summary": "Create transaction", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}},
            "options": {"tags": ["Transactions"], "summary": "Allowed HTTP verbs", "responses": {"204": {"description": "No Content"}}}
        },
        "/transactions/{id}": {
            "get": {"tags": ["Transactions"], "summary": "Get transaction", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["Transactions"], "summary": "Update transaction", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "options": {"tags": ["Transactions"], "summary": "Allowed HTTP verbs", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
