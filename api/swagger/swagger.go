package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "GradeTrack API",
        "description": "Student grade tracker: subjects, assessments, todos and computed grade reports",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Accounts and sessions"},
        {"name": "Subjects", "description": "Subjects owned by the signed-in student"},
        {"name": "Assessments", "description": "Recorded quizzes, exams and projects"},
        {"name": "Todos", "description": "Study tasks"},
        {"name": "Grades", "description": "Computed grade reports and exports"}
    ],
    "paths": {
        "/health": {
            "get": {"summary": "Health check", "responses": {"200": {"description": "OK"}}}
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "A dependency is unavailable"}
                }
            }
        },
        "/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Create an account",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/TokenResponse"}},
                    "409": {"description": "Email already registered", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Sign in",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TokenResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Rotate a refresh token",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/TokenResponse"}}}
            }
        },
        "/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Revoke one refresh token or every session",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/user": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current user profile",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/subjects": {
            "get": {
                "tags": ["Subjects"],
                "summary": "List subjects",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Subjects"],
                "summary": "Create a subject",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/subjects/search": {
            "get": {
                "tags": ["Subjects"],
                "summary": "Search subjects by name",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "name", "in": "query", "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/subjects/{id}": {
            "get": {"tags": ["Subjects"], "summary": "Get a subject", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "put": {"tags": ["Subjects"], "summary": "Update a subject", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Subjects"], "summary": "Delete a subject and its assessments", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "Deleted"}}}
        },
        "/assessments": {
            "get": {
                "tags": ["Assessments"],
                "summary": "List assessments",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "subject_id", "in": "query", "type": "string"},
                    {"name": "quarter", "in": "query", "type": "string", "enum": ["preliminary", "midterm", "pre_final", "final"]},
                    {"name": "activity", "in": "query", "type": "string", "enum": ["quiz", "exam", "project"]},
                    {"name": "mode", "in": "query", "type": "string", "enum": ["f2f", "online"]}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {"tags": ["Assessments"], "summary": "Record an assessment", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/assessments/quarter/{quarter}": {
            "get": {"tags": ["Assessments"], "summary": "Assessments of one quarter", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/assessments/activities/{quarter}/{subjectId}": {
            "get": {"tags": ["Assessments"], "summary": "Assessments of one subject in one quarter", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/assessments/{id}": {
            "get": {"tags": ["Assessments"], "summary": "Get an assessment", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Assessments"], "summary": "Update an assessment", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Assessments"], "summary": "Delete an assessment", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "Deleted"}}}
        },
        "/todos": {
            "get": {"tags": ["Todos"], "summary": "List todos", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Todos"], "summary": "Create a todo", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/todos/{id}": {
            "get": {"tags": ["Todos"], "summary": "Get a todo", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Todos"], "summary": "Update a todo", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Todos"], "summary": "Delete a todo", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "Deleted"}}}
        },
        "/grades/{quarter}/{subjectId}": {
            "get": {"tags": ["Grades"], "summary": "Scope report for one subject and quarter", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/grades/{quarter}/{subjectId}/{activity}": {
            "get": {"tags": ["Grades"], "summary": "Single activity breakdown", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/grades/quarter/{quarter}": {
            "get": {"tags": ["Grades"], "summary": "Quarter report across subjects", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/grades/subject/{subjectId}": {
            "get": {"tags": ["Grades"], "summary": "Subject report across quarters", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/grades/overall": {
            "get": {"tags": ["Grades"], "summary": "Overall report", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/grades/export": {
            "get": {
                "tags": ["Grades"],
                "summary": "Download the grade sheet",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [{"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf", "xlsx"]}],
                "responses": {"200": {"description": "File"}, "503": {"description": "Exports disabled"}}
            }
        },
        "/grades/export/share": {
            "post": {
                "tags": ["Grades"],
                "summary": "Store the grade sheet behind an expiring link",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf", "xlsx"]}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/exports/{token}": {
            "get": {
                "tags": ["Grades"],
                "summary": "Download a shared grade sheet",
                "responses": {"200": {"description": "File"}, "403": {"description": "Invalid link"}, "410": {"description": "Link expired"}}
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "required": ["name", "email", "password"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "TokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "refresh_token": {"type": "string"},
                "token_type": {"type": "string"},
                "expires_in": {"type": "integer"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
