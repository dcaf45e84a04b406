// Package docs holds the OpenAPI description served at /swagger/.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/handlers.liveReport"}
                    }
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/handlers.readyReport"}
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {"$ref": "#/definitions/handlers.readyReport"}
                    }
                }
            }
        },
        "/account/login": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["text/html"],
                "tags": ["account"],
                "summary": "Log in and receive the jwt session cookie",
                "parameters": [
                    {"type": "string", "name": "account_email", "in": "formData", "required": true},
                    {"type": "string", "name": "account_password", "in": "formData", "required": true}
                ],
                "responses": {
                    "303": {"description": "Logged in, redirect to /account/"},
                    "400": {"description": "Invalid credentials or form"}
                }
            }
        },
        "/account/register": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["text/html"],
                "tags": ["account"],
                "summary": "Register a new account",
                "parameters": [
                    {"type": "string", "name": "account_firstname", "in": "formData", "required": true},
                    {"type": "string", "name": "account_lastname", "in": "formData", "required": true},
                    {"type": "string", "name": "account_email", "in": "formData", "required": true},
                    {"type": "string", "name": "account_password", "in": "formData", "required": true},
                    {"enum": ["Client", "Employee", "Admin"], "type": "string", "name": "account_type", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Registered, login page rendered"},
                    "400": {"description": "Validation failed"},
                    "500": {"description": "Password could not be processed"},
                    "501": {"description": "Registration failed"}
                }
            }
        },
        "/account/logout": {
            "get": {
                "tags": ["account"],
                "summary": "Clear the session cookie",
                "responses": {
                    "303": {"description": "Redirect to /"}
                }
            }
        }
    },
    "definitions": {
        "handlers.checkReport": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "latency_ms": {"type": "integer"},
                "status": {"type": "string"}
            }
        },
        "handlers.liveReport": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "uptime": {"type": "string"}
            }
        },
        "handlers.readyReport": {
            "type": "object",
            "properties": {
                "checks": {
                    "type": "object",
                    "additionalProperties": {"$ref": "#/definitions/handlers.checkReport"}
                },
                "status": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "CSE Motors",
	Description:      "Vehicle dealership site: accounts, inventory and reviews.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
