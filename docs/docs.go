// Package docs registers the OpenAPI description of the reference backend
// with swag so echo-swagger can serve it under /swagger/.
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
        "/auth/email/login": {
            "post": {"tags": ["auth"], "summary": "Login", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/loginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/authResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}}}
        },
        "/auth/email/register": {
            "post": {"tags": ["auth"], "summary": "Register a new user", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/registerRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/authResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}}}}
        },
        "/auth/logout": {
            "post": {"tags": ["auth"], "summary": "Logout", "responses": {"200": {"description": "OK"}}}
        },
        "/auth/telegram/link": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Link a Telegram account",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}}}
        },
        "/profile": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["profile"], "summary": "Current profile",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["profile"], "summary": "Update profile",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}}}
        },
        "/profile/avatar": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["profile"], "summary": "Update avatar", "responses": {"200": {"description": "OK"}}}
        },
        "/projects": {
            "get": {"tags": ["projects"], "summary": "Projects of the active launch", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["projects"], "summary": "Publish a project",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}}}
        },
        "/projects/{id}": {
            "get": {"tags": ["projects"], "summary": "Get a project",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}}}
        },
        "/projects/{id}/vote": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["votes"], "summary": "Like a project",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["votes"], "summary": "Withdraw a like",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/projects/{id}/comments": {
            "get": {"tags": ["comments"], "summary": "Comments on a project, newest first",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["comments"], "summary": "Comment on a project",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"201": {"description": "Created"}}}
        },
        "/comments/{id}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["comments"], "summary": "Edit a comment",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["comments"], "summary": "Delete a comment",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/users/{id}/projects": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["projects"], "summary": "Projects published by a user",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/votes": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["votes"], "summary": "Likes of the current user", "responses": {"200": {"description": "OK"}}}
        },
        "/images/upload": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["images"], "summary": "Upload an image", "consumes": ["multipart/form-data"],
                "parameters": [{"type": "file", "in": "formData", "name": "image", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/images/{filename}": {
            "get": {"tags": ["images"], "summary": "Fetch an uploaded image",
                "parameters": [{"type": "string", "in": "path", "name": "filename", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/stats": {
            "get": {"tags": ["stats"], "summary": "Site-wide counters", "responses": {"200": {"description": "OK"}}}
        },
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        }
    },
    "definitions": {
        "errorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "loginRequest": {"type": "object", "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "registerRequest": {"type": "object", "required": ["email", "password", "username"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string", "minLength": 6}, "username": {"type": "string", "minLength": 2}}},
        "authResponse": {"type": "object", "properties": {"token": {"type": "string"}, "user": {"type": "object"}}}
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
	Title:            "Startup Showcase reference API",
	Description:      "In-memory implementation of the showcase backend used by scout devserver.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
