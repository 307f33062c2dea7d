// Package docs holds the OpenAPI descriptor served at /swagger. Regenerate with
// `swag init -g cmd/journal_backend/main.go -o cmd/docs`.
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
        "/auth/signup": {"post": {"tags": ["auth"], "summary": "Create a password account", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}},
        "/auth/signin": {"post": {"tags": ["auth"], "summary": "Sign in with email and password", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "429": {"description": "Too Many Requests"}}}},
        "/auth/google": {"post": {"tags": ["auth"], "summary": "Sign in with a Google ID token", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/auth/google/exchange-code": {"post": {"tags": ["auth"], "summary": "Sign in with a Google authorization code", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "502": {"description": "Bad Gateway"}}}},
        "/auth/signout": {"post": {"tags": ["auth"], "summary": "Sign out", "responses": {"204": {"description": "No Content"}}}},
        "/journals": {"get": {"security": [{"BearerAuth": []}], "tags": ["journals"], "summary": "List journals", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/journals/{date}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["journals"], "summary": "Get a journal", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["journals"], "summary": "Ensure a journal exists", "responses": {"204": {"description": "No Content"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["journals"], "summary": "Hide a journal", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/journals/{date}/unhide": {"post": {"security": [{"BearerAuth": []}], "tags": ["journals"], "summary": "Restore a hidden journal", "responses": {"204": {"description": "No Content"}}}},
        "/journals/{date}/with-entry": {"post": {"security": [{"BearerAuth": []}], "tags": ["journals"], "summary": "Start a day with its first entry", "responses": {"201": {"description": "Created"}}}},
        "/journals/{date}/entries": {"post": {"security": [{"BearerAuth": []}], "tags": ["entries"], "summary": "Add an entry", "responses": {"201": {"description": "Created"}, "429": {"description": "Entry cool-down active"}}}},
        "/journals/{date}/entries/{entryID}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["entries"], "summary": "Save an entry", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["entries"], "summary": "Delete an entry", "responses": {"204": {"description": "No Content"}}}
        },
        "/journal/analyze": {"post": {"security": [{"BearerAuth": []}], "tags": ["analysis"], "summary": "Analyze text for burnout", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "502": {"description": "Analysis service unavailable"}}}},
        "/live/session": {"post": {"security": [{"BearerAuth": []}], "tags": ["analysis"], "summary": "Start a live coach session", "responses": {"200": {"description": "OK"}, "502": {"description": "Bad Gateway"}}}},
        "/quizzes": {"post": {"security": [{"BearerAuth": []}], "tags": ["quizzes"], "summary": "Submit a burnout questionnaire", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/quizzes/stats": {"get": {"security": [{"BearerAuth": []}], "tags": ["quizzes"], "summary": "Questionnaire history", "responses": {"200": {"description": "OK"}}}},
        "/quizzes/questions": {"get": {"security": [{"BearerAuth": []}], "tags": ["quizzes"], "summary": "Questionnaire content", "responses": {"200": {"description": "OK"}}}},
        "/profile": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["profile"], "summary": "Get profile preferences", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["profile"], "summary": "Update profile preferences", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["profile"], "summary": "Delete account", "responses": {"204": {"description": "No Content"}}}
        },
        "/uploads": {"post": {"security": [{"BearerAuth": []}], "tags": ["media"], "summary": "Request an upload URL", "responses": {"201": {"description": "Created"}, "503": {"description": "Uploads not configured"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the session token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Burnout Journal API",
	Description:      "Journaling backend with burnout analysis and live coaching.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
