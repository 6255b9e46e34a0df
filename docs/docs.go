// Package docs holds the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/server/main.go
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
        "/": {
            "get": {"produces": ["text/html"], "tags": ["accounts"], "summary": "Landing page",
                "responses": {"200": {"description": "OK"}, "303": {"description": "See Other"}}}
        },
        "/register": {
            "post": {"consumes": ["application/x-www-form-urlencoded"], "produces": ["text/html"], "tags": ["accounts"], "summary": "Register a client account",
                "parameters": [
                    {"type": "string", "description": "Display name", "name": "name", "in": "formData", "required": true},
                    {"type": "string", "description": "Login handle", "name": "handle", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {"303": {"description": "See Other"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/login": {
            "post": {"consumes": ["application/x-www-form-urlencoded"], "produces": ["text/html"], "tags": ["accounts"], "summary": "Log in",
                "parameters": [
                    {"type": "string", "description": "Login handle", "name": "handle", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {"303": {"description": "See Other"}, "401": {"description": "Unauthorized"}}}
        },
        "/logout": {
            "get": {"tags": ["accounts"], "summary": "Log out", "responses": {"303": {"description": "See Other"}}}
        },
        "/profile": {
            "get": {"produces": ["text/html"], "tags": ["accounts"], "summary": "Profile form", "responses": {"200": {"description": "OK"}}}
        },
        "/editprofile": {
            "post": {"consumes": ["application/x-www-form-urlencoded"], "produces": ["text/html"], "tags": ["accounts"], "summary": "Edit profile",
                "parameters": [
                    {"type": "string", "description": "New display name", "name": "name", "in": "formData", "required": true},
                    {"type": "string", "description": "New login handle", "name": "handle", "in": "formData", "required": true}
                ],
                "responses": {"303": {"description": "See Other"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/staff": {
            "get": {"produces": ["text/html"], "tags": ["staff"], "summary": "Staff access gate", "responses": {"200": {"description": "OK"}}}
        },
        "/addstaff": {
            "post": {"consumes": ["application/x-www-form-urlencoded"], "produces": ["text/html"], "tags": ["staff"], "summary": "Elevate to staff",
                "parameters": [
                    {"type": "string", "description": "Shared staff secret", "name": "secret", "in": "formData", "required": true},
                    {"type": "string", "description": "Display name", "name": "name", "in": "formData"},
                    {"type": "string", "description": "Login handle", "name": "handle", "in": "formData"},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData"}
                ],
                "responses": {"200": {"description": "OK"}, "303": {"description": "See Other"}, "409": {"description": "Conflict"}}}
        },
        "/listings": {
            "get": {"produces": ["text/html"], "tags": ["listings"], "summary": "Browse listings", "responses": {"200": {"description": "OK"}}}
        },
        "/listings/{id}/image": {
            "get": {"produces": ["image/png", "image/jpeg"], "tags": ["listings"], "summary": "Listing photo",
                "parameters": [{"type": "string", "description": "Listing ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/addlisting": {
            "get": {"produces": ["text/html"], "tags": ["listings"], "summary": "Add-listing form", "responses": {"200": {"description": "OK"}}},
            "post": {"consumes": ["multipart/form-data"], "produces": ["text/html"], "tags": ["listings"], "summary": "Create a listing",
                "parameters": [
                    {"type": "string", "description": "Animal name", "name": "name", "in": "formData", "required": true},
                    {"type": "string", "description": "Description", "name": "description", "in": "formData", "required": true},
                    {"type": "string", "description": "Birth date (YYYY-MM-DD)", "name": "birth_date", "in": "formData"},
                    {"type": "file", "description": "Photo", "name": "image", "in": "formData"}
                ],
                "responses": {"303": {"description": "See Other"}, "400": {"description": "Bad Request"}}}
        },
        "/remove": {
            "post": {"consumes": ["application/x-www-form-urlencoded"], "tags": ["listings"], "summary": "Remove a listing",
                "parameters": [{"type": "string", "description": "Listing ID", "name": "id", "in": "formData", "required": true}],
                "responses": {"303": {"description": "See Other"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}
        },
        "/adopt": {
            "post": {"consumes": ["application/x-www-form-urlencoded"], "tags": ["adoptions"], "summary": "Request an adoption",
                "parameters": [{"type": "string", "description": "Listing ID", "name": "id", "in": "formData", "required": true}],
                "responses": {"303": {"description": "See Other"}, "404": {"description": "Not Found"}}}
        },
        "/adoptions": {
            "get": {"produces": ["text/html"], "tags": ["adoptions"], "summary": "My adoption requests", "responses": {"200": {"description": "OK"}}}
        },
        "/requests": {
            "get": {"produces": ["text/html"], "tags": ["adoptions"], "summary": "Pending requests", "responses": {"200": {"description": "OK"}}}
        },
        "/approve": {
            "post": {"consumes": ["application/x-www-form-urlencoded"], "tags": ["adoptions"], "summary": "Approve a request",
                "parameters": [{"type": "string", "description": "Adoption request ID", "name": "id", "in": "formData", "required": true}],
                "responses": {"303": {"description": "See Other"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}
        },
        "/deny": {
            "post": {"consumes": ["application/x-www-form-urlencoded"], "tags": ["adoptions"], "summary": "Deny a request",
                "parameters": [{"type": "string", "description": "Adoption request ID", "name": "id", "in": "formData", "required": true}],
                "responses": {"303": {"description": "See Other"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}
        },
        "/health": {
            "get": {"produces": ["application/json"], "tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {"produces": ["application/json"], "tags": ["health"], "summary": "Readiness probe",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Adoption Site",
	Description:      "Server-rendered animal adoption site: accounts, listings and the adoption workflow.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
