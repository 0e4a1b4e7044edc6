package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Academy API",
        "description": "Course catalog and enrollment service with a Redis-backed listing cache",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": ["http"],
    "securityDefinitions": {"BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}},
    "tags": [
        {"name": "Authentication", "description": "Registration, login and tokens"},
        {"name": "Users", "description": "Admin user management"},
        {"name": "Courses", "description": "Course catalog and cached listings"},
        {"name": "Enrollments", "description": "Enrollment lifecycle and transcripts"},
        {"name": "System", "description": "Metrics and cache maintenance"}
    ],
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register student account",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "consumes": ["application/json"],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/RegisterRequest"}
                    }
                ]
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "consumes": ["application/json"],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/LoginRequest"}
                    }
                ]
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user profile",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "security": [{"BearerAuth": []}]
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Refresh access token",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "security": [{"BearerAuth": []}]
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "type", "in": "query", "type": "string", "description": "aluno, professor or admin"}],
                "security": [{"BearerAuth": []}]
            },
            "post": {
                "tags": ["Users"],
                "summary": "Create user",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "consumes": ["application/json"],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreateUserRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/users/{id}": {
            "get": {
                "tags": ["Users"],
                "summary": "Get user",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "security": [{"BearerAuth": []}]
            },
            "put": {
                "tags": ["Users"],
                "summary": "Update user",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/UpdateUserRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            },
            "delete": {
                "tags": ["Users"],
                "summary": "Delete user",
                "produces": ["application/json"],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Create course",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "consumes": ["application/json"],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreateCourseRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/courses/active": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses that have not ended",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            }
        },
        "/courses/date-range": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses inside a date window",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "startDate", "in": "query", "type": "string", "required": true},
                    {"name": "endDate", "in": "query", "type": "string", "required": true}
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/courses/paginated": {
            "get": {
                "tags": ["Courses"],
                "summary": "Paginated course listing",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "description": "Served from the listing cache when available. X-Cache reports HIT or MISS.",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer", "description": "1-100, default 25"},
                    {"name": "search", "in": "query", "type": "string", "description": "Case-insensitive name filter"}
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/courses/with-enrollment": {
            "get": {
                "tags": ["Courses"],
                "summary": "Courses with the caller's enrollment",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "security": [{"BearerAuth": []}]
            }
        },
        "/courses/paginated/with-enrollment": {
            "get": {
                "tags": ["Courses"],
                "summary": "Paginated courses with the caller's enrollment",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer", "description": "1-100, default 25"},
                    {"name": "search", "in": "query", "type": "string", "description": "Case-insensitive name filter"}
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/courses/{id}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get course",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "security": [{"BearerAuth": []}]
            },
            "put": {
                "tags": ["Courses"],
                "summary": "Update course",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/UpdateCourseRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            },
            "delete": {
                "tags": ["Courses"],
                "summary": "Delete course",
                "produces": ["application/json"],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/enrollments": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List enrollments",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            },
            "post": {
                "tags": ["Enrollments"],
                "summary": "Enroll in a course",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "description": "enroll_date defaults to now, status to in_progress and user_id to the caller.",
                "consumes": ["application/json"],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreateEnrollmentRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/enrollments/status": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List enrollments by status",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {
                        "name": "status",
                        "in": "query",
                        "type": "string",
                        "required": true,
                        "description": "in_progress, concluded, canceled or fail"
                    }
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/enrollments/user/{userId}": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List a user's enrollments",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "userId", "in": "path", "required": true, "type": "integer"}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/enrollments/user/{userId}/courses": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "Courses a user is enrolled in",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "userId", "in": "path", "required": true, "type": "integer"}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/enrollments/course/{courseId}": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List a course's enrollments",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "parameters": [{"name": "courseId", "in": "path", "required": true, "type": "integer"}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/enrollments/{id}": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "Get enrollment",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "security": [{"BearerAuth": []}]
            },
            "put": {
                "tags": ["Enrollments"],
                "summary": "Update enrollment",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/UpdateEnrollmentRequest"}
                    }
                ],
                "security": [{"BearerAuth": []}]
            },
            "delete": {
                "tags": ["Enrollments"],
                "summary": "Delete enrollment",
                "produces": ["application/json"],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/enrollments/{id}/conclude": {
            "patch": {
                "tags": ["Enrollments"],
                "summary": "Mark enrollment concluded",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/enrollments/{id}/cancel": {
            "patch": {
                "tags": ["Enrollments"],
                "summary": "Cancel enrollment",
                "description": "Allowed for the enrollment's owner and for admins.",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": ["System"],
                "summary": "Metrics snapshot",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "security": [{"BearerAuth": []}]
            }
        },
        "/enrollments/user/{userId}/courses/export": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "Export a user's transcript",
                "produces": ["text/csv", "application/pdf"],
                "responses": {
                    "200": {"description": "Transcript file", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "userId", "in": "path", "required": true, "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "description": "csv (default) or pdf"}
                ],
                "security": [{"BearerAuth": []}]
            }
        },
        "/cache": {
            "delete": {
                "tags": ["System"],
                "summary": "Drop cached entries",
                "produces": ["application/json"],
                "parameters": [{"name": "pattern", "in": "query", "type": "string", "description": "Redis glob, defaults to *"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "security": [{"BearerAuth": []}]
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["login", "password"],
            "properties": {"login": {"type": "string"}, "password": {"type": "string"}}
        },
        "RegisterRequest": {
            "type": "object",
            "required": ["name", "email", "login", "password"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string", "format": "email"},
                "login": {"type": "string"},
                "password": {"type": "string", "minLength": 6}
            }
        },
        "CreateUserRequest": {
            "type": "object",
            "required": ["name", "email", "login", "password", "type"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string", "format": "email"},
                "login": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "type": {"type": "string", "enum": ["aluno", "professor", "admin"]}
            }
        },
        "UpdateUserRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string", "format": "email"},
                "login": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "type": {"type": "string", "enum": ["aluno", "professor", "admin"]}
            }
        },
        "CreateCourseRequest": {
            "type": "object",
            "required": ["name", "description", "start_date", "end_date"],
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "cover": {"type": "string"},
                "start_date": {"type": "string", "format": "date-time"},
                "end_date": {"type": "string", "format": "date-time"}
            }
        },
        "UpdateCourseRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "cover": {"type": "string"},
                "start_date": {"type": "string", "format": "date-time"},
                "end_date": {"type": "string", "format": "date-time"}
            }
        },
        "CreateEnrollmentRequest": {
            "type": "object",
            "required": ["course_id"],
            "properties": {
                "course_id": {"type": "integer"},
                "user_id": {"type": "integer"},
                "enroll_date": {"type": "string", "format": "date-time"},
                "conclusion_date": {"type": "string", "format": "date-time"},
                "status": {"type": "string", "enum": ["in_progress", "concluded", "canceled", "fail"]}
            }
        },
        "UpdateEnrollmentRequest": {
            "type": "object",
            "properties": {
                "course_id": {"type": "integer"},
                "user_id": {"type": "integer"},
                "enroll_date": {"type": "string", "format": "date-time"},
                "conclusion_date": {"type": "string", "format": "date-time"},
                "clear_conclusion_date": {"type": "boolean"},
                "status": {"type": "string", "enum": ["in_progress", "concluded", "canceled", "fail"]}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"},
                "has_next": {"type": "boolean"},
                "has_prev": {"type": "boolean"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}, "status": {"type": "integer"}}
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
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
