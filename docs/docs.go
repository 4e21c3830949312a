// Package docs holds the OpenAPI description served at /swagger. It is
// regenerated from the handler annotations with
// swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "basePath": "{{.BasePath}}",
    "host": "{{.Host}}",
    "info": {
        "contact": {
            "name": "Training & Placement Cell"
        },
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "paths": {
        "/admin/activity-logs": {
            "get": {
                "parameters": [
                    {
                        "default": 1,
                        "description": "Page number",
                        "in": "query",
                        "name": "page",
                        "required": false,
                        "type": "integer"
                    },
                    {
                        "default": 10,
                        "description": "Page size",
                        "in": "query",
                        "name": "size",
                        "required": false,
                        "type": "integer"
                    },
                    {
                        "description": "Action, e.g. STUDENT VERIFICATION",
                        "in": "query",
                        "name": "action",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Actor user ID",
                        "in": "query",
                        "name": "actorId",
                        "required": false,
                        "type": "integer"
                    },
                    {
                        "description": "STUDENT, COMPANY, JAF, APPLICATION, USER or SETTINGS",
                        "in": "query",
                        "name": "entityType",
                        "required": false,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Activity log",
                "tags": [
                    "admin"
                ]
            }
        },
        "/admin/applications/{id}/status": {
            "patch": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Application ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "New status",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "409": {
                        "description": "Invalid transition"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Update application status",
                "tags": [
                    "admin"
                ]
            }
        },
        "/admin/companies": {
            "get": {
                "parameters": [
                    {
                        "default": 1,
                        "description": "Page number",
                        "in": "query",
                        "name": "page",
                        "required": false,
                        "type": "integer"
                    },
                    {
                        "default": 10,
                        "description": "Page size",
                        "in": "query",
                        "name": "size",
                        "required": false,
                        "type": "integer"
                    },
                    {
                        "description": "PENDING, VERIFIED or REJECTED",
                        "in": "query",
                        "name": "status",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Name or email",
                        "in": "query",
                        "name": "search",
                        "required": false,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "List companies",
                "tags": [
                    "admin"
                ]
            }
        },
        "/admin/companies/bulk-verification": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Companies and action",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Bulk verify or reject companies",
                "tags": [
                    "admin"
                ]
            }
        },
        "/admin/companies/{id}": {
            "get": {
                "parameters": [
                    {
                        "description": "Company ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Get company",
                "tags": [
                    "admin"
                ]
            }
        },
        "/admin/dashboard": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Dashboard",
                "tags": [
                    "admin"
                ]
            }
        },
        "/admin/jafs": {
            "get": {
                "parameters": [
                    {
                        "default": 1,
                        "description": "Page number",
                        "in": "query",
                        "name": "page",
                        "required": false,
                        "type": "integer"
                    },
                    {
                        "default": 10,
                        "description": "Page size",
                        "in": "query",
                        "name": "size",
                        "required": false,
                        "type": "integer"
                    },
                    {
                        "description": "PENDING_REVIEW, APPROVED or REJECTED",
                        "in": "query",
                        "name": "status",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "OPEN, CLOSED or CANCELLED",
                        "in": "query",
                        "name": "jobStatus",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Company ID",
                        "in": "query",
                        "name": "companyId",
                        "required": false,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "List JAFs",
                "tags": [
                    "admin"
                ]
            }
        },
        "/admin/jafs/bulk-review": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Forms and action",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Bulk review JAFs",
                "tags": [
                    "admin"
                ]
            }
        },
        "/admin/jafs/{id}": {
            "get": {
                "parameters": [
                    {
                        "description": "JAF ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Get JAF",
                "tags": [
                    "admin"
                ]
            }
        },
        "/admin/jafs/{id}/applications": {
            "get": {
                "parameters": [
                    {
                        "description": "JAF ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "List applications of a JAF",
                "tags": [
                    "admin"
                ]
            }
        },
        "/admin/jafs/{id}/approve": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "JAF ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Remarks",
                        "in": "body",
                        "name": "request",
                        "required": false,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Approved"
                    },
                    "409": {
                        "description": "Already reviewed"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Approve JAF",
                "tags": [
                    "admin"
                ]
            }
        },
        "/admin/jafs/{id}/reject": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "JAF ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Remarks",
                        "in": "body",
                        "name": "request",
                        "required": false,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Rejected"
                    },
                    "409": {
                        "description": "Already reviewed"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Reject JAF",
                "tags": [
                    "admin"
                ]
            }
        },
        "/admin/reject-company": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Company and remarks",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Company rejected"
                    },
                    "409": {
                        "description": "Invalid transition"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Reject company",
                "tags": [
                    "admin"
                ]
            }
        },
        "/admin/reject-student": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Student and remarks",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Student rejected"
                    },
                    "404": {
                        "description": "Not found"
                    },
                    "409": {
                        "description": "Invalid transition"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Reject student",
                "tags": [
                    "admin"
                ]
            }
        },
        "/admin/students": {
            "get": {
                "parameters": [
                    {
                        "default": 1,
                        "description": "Page number",
                        "in": "query",
                        "name": "page",
                        "required": false,
                        "type": "integer"
                    },
                    {
                        "default": 10,
                        "description": "Page size",
                        "in": "query",
                        "name": "size",
                        "required": false,
                        "type": "integer"
                    },
                    {
                        "description": "PENDING, VERIFIED or REJECTED",
                        "in": "query",
                        "name": "status",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Branch",
                        "in": "query",
                        "name": "branch",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Degree",
                        "in": "query",
                        "name": "degree",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Graduation year",
                        "in": "query",
                        "name": "batch",
                        "required": false,
                        "type": "integer"
                    },
                    {
                        "description": "Name, email or roll number",
                        "in": "query",
                        "name": "search",
                        "required": false,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Not an administrator"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "List students",
                "tags": [
                    "admin"
                ]
            }
        },
        "/admin/students/bulk-verification": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "Items that are missing or cannot change are reported in failed; the rest commit together",
                "parameters": [
                    {
                        "description": "Students and action",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Validation failed"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Bulk verify or reject students",
                "tags": [
                    "admin"
                ]
            }
        },
        "/admin/students/export": {
            "get": {
                "parameters": [
                    {
                        "description": "PENDING, VERIFIED or REJECTED",
                        "in": "query",
                        "name": "status",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Branch",
                        "in": "query",
                        "name": "branch",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Graduation year",
                        "in": "query",
                        "name": "batch",
                        "required": false,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Export students",
                "tags": [
                    "admin"
                ]
            }
        },
        "/admin/students/{id}": {
            "get": {
                "parameters": [
                    {
                        "description": "Student ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Get student",
                "tags": [
                    "admin"
                ]
            }
        },
        "/admin/users/{id}": {
            "delete": {
                "parameters": [
                    {
                        "description": "User ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Deactivated"
                    },
                    "404": {
                        "description": "Not found"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Deactivate user",
                "tags": [
                    "admin"
                ]
            }
        },
        "/admin/verify-company": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Company",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Company verified"
                    },
                    "404": {
                        "description": "Not found"
                    },
                    "409": {
                        "description": "Already verified"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Verify company",
                "tags": [
                    "admin"
                ]
            }
        },
        "/admin/verify-student": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Student",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Student verified"
                    },
                    "404": {
                        "description": "Not found"
                    },
                    "409": {
                        "description": "Already verified"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Verify student",
                "tags": [
                    "admin"
                ]
            }
        },
        "/auth/login": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "Authenticates a user, returns a token pair and sets the HttpOnly session cookie",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Login successful"
                    },
                    "400": {
                        "description": "Validation failed"
                    },
                    "401": {
                        "description": "Invalid credentials"
                    },
                    "403": {
                        "description": "Account disabled"
                    },
                    "500": {
                        "description": "Internal server error"
                    }
                },
                "summary": "User login",
                "tags": [
                    "auth"
                ]
            }
        },
        "/auth/logout": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "Revokes the given refresh token, or every token of the user when none is given, and clears the session cookie",
                "parameters": [
                    {
                        "description": "Refresh token",
                        "in": "body",
                        "name": "request",
                        "required": false,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Logged out"
                    },
                    "401": {
                        "description": "Authentication required"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Logout",
                "tags": [
                    "auth"
                ]
            }
        },
        "/auth/me": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Authentication required"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Current user",
                "tags": [
                    "auth"
                ]
            }
        },
        "/auth/refresh": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "Revokes the given refresh token and issues a new pair",
                "parameters": [
                    {
                        "description": "Refresh token",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Token refreshed"
                    },
                    "401": {
                        "description": "Invalid refresh token"
                    }
                },
                "summary": "Refresh access token",
                "tags": [
                    "auth"
                ]
            }
        },
        "/auth/register/company": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "Creates a company account pending email and admin verification. A verification code is emailed.",
                "parameters": [
                    {
                        "description": "Company registration",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Registration successful"
                    },
                    "400": {
                        "description": "Validation failed"
                    },
                    "409": {
                        "description": "Email already registered"
                    },
                    "500": {
                        "description": "Internal server error"
                    }
                },
                "summary": "Register a company",
                "tags": [
                    "auth"
                ]
            }
        },
        "/auth/register/student": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "Creates a student account pending email and admin verification. A verification code is emailed.",
                "parameters": [
                    {
                        "description": "Student registration",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Registration successful"
                    },
                    "400": {
                        "description": "Validation failed"
                    },
                    "409": {
                        "description": "Email or roll number already registered"
                    },
                    "500": {
                        "description": "Internal server error"
                    }
                },
                "summary": "Register a student",
                "tags": [
                    "auth"
                ]
            }
        },
        "/auth/resend-otp": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Email",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Code sent if the account exists"
                    },
                    "409": {
                        "description": "Email already verified"
                    },
                    "429": {
                        "description": "Too many requests"
                    }
                },
                "summary": "Resend verification code",
                "tags": [
                    "auth"
                ]
            }
        },
        "/auth/verify-otp": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "Confirms the email address with the 6 digit code sent at registration",
                "parameters": [
                    {
                        "description": "Email and code",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Email verified"
                    },
                    "400": {
                        "description": "Invalid or expired code"
                    },
                    "409": {
                        "description": "Email already verified"
                    }
                },
                "summary": "Verify email",
                "tags": [
                    "auth"
                ]
            }
        },
        "/company/applications/{id}/status": {
            "patch": {
                "consumes": [
                    "application/json"
                ],
                "description": "Forward moves only; REJECTED is allowed from any non-final status",
                "parameters": [
                    {
                        "description": "Application ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "New status",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Not the owning company"
                    },
                    "409": {
                        "description": "Invalid transition"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Update application status",
                "tags": [
                    "company"
                ]
            }
        },
        "/company/jaf": {
            "get": {
                "parameters": [
                    {
                        "default": 1,
                        "description": "Page number",
                        "in": "query",
                        "name": "page",
                        "required": false,
                        "type": "integer"
                    },
                    {
                        "default": 10,
                        "description": "Page size",
                        "in": "query",
                        "name": "size",
                        "required": false,
                        "type": "integer"
                    },
                    {
                        "description": "PENDING_REVIEW, APPROVED or REJECTED",
                        "in": "query",
                        "name": "status",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "OPEN, CLOSED or CANCELLED",
                        "in": "query",
                        "name": "jobStatus",
                        "required": false,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "List own JAFs",
                "tags": [
                    "company"
                ]
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "The company must be verified. eligibleBatches, eligibleBranches, eligibleDegrees and selectionProcess must be non-empty; a JNF needs ctc and an INF needs stipend.",
                "parameters": [
                    {
                        "description": "Job announcement form",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Validation failed"
                    },
                    "403": {
                        "description": "Company not verified"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Create JAF",
                "tags": [
                    "company"
                ]
            }
        },
        "/company/jaf/{id}": {
            "get": {
                "parameters": [
                    {
                        "description": "JAF ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Get own JAF",
                "tags": [
                    "company"
                ]
            },
            "put": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "JAF ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Job announcement form",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Validation failed"
                    },
                    "409": {
                        "description": "Already reviewed"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Update JAF",
                "tags": [
                    "company"
                ]
            }
        },
        "/company/jaf/{id}/applications": {
            "get": {
                "parameters": [
                    {
                        "description": "JAF ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "List applicants",
                "tags": [
                    "company"
                ]
            }
        },
        "/company/jaf/{id}/applications/export": {
            "get": {
                "parameters": [
                    {
                        "description": "JAF ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Export applicants",
                "tags": [
                    "company"
                ]
            }
        },
        "/company/jaf/{id}/job-status": {
            "patch": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "JAF ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "New job status",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "409": {
                        "description": "Invalid transition"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Change job status",
                "tags": [
                    "company"
                ]
            }
        },
        "/company/profile": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Not a company"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Get company profile",
                "tags": [
                    "company"
                ]
            },
            "put": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Profile",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Validation failed"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Update company profile",
                "tags": [
                    "company"
                ]
            }
        },
        "/contact": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Message",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Message sent"
                    },
                    "400": {
                        "description": "Validation failed"
                    },
                    "429": {
                        "description": "Too many requests"
                    }
                },
                "summary": "Contact the placement cell",
                "tags": [
                    "contact"
                ]
            }
        },
        "/notifications/ws": {
            "get": {
                "description": "Upgrades the connection to a WebSocket that receives the caller's notifications (verification decisions, application status changes). Browsers may pass the access token in the token query parameter.",
                "parameters": [
                    {
                        "description": "Access token",
                        "in": "query",
                        "name": "token",
                        "required": false,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "101": {
                        "description": "Switching Protocols to WebSocket"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Subscribe to notifications",
                "tags": [
                    "notifications"
                ]
            }
        },
        "/student/academics": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Get academics",
                "tags": [
                    "student"
                ]
            },
            "put": {
                "consumes": [
                    "application/json"
                ],
                "description": "Percentages must lie in [0,100], CGPA in [0,10], active backlogs may not exceed total backlogs",
                "parameters": [
                    {
                        "description": "Academics",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Validation failed"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Update academics",
                "tags": [
                    "student"
                ]
            }
        },
        "/student/applications": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "My applications",
                "tags": [
                    "student"
                ]
            }
        },
        "/student/documents": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "List documents",
                "tags": [
                    "student"
                ]
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Document",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Validation failed"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Attach document",
                "tags": [
                    "student"
                ]
            }
        },
        "/student/documents/requirements": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Document checklist",
                "tags": [
                    "student"
                ]
            }
        },
        "/student/documents/{id}": {
            "delete": {
                "parameters": [
                    {
                        "description": "Document ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Delete document",
                "tags": [
                    "student"
                ]
            }
        },
        "/student/experience": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "List experience",
                "tags": [
                    "student"
                ]
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Experience",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Validation failed"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Add experience",
                "tags": [
                    "student"
                ]
            }
        },
        "/student/experience/{id}": {
            "delete": {
                "parameters": [
                    {
                        "description": "Experience ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Delete experience",
                "tags": [
                    "student"
                ]
            },
            "put": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Experience ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Experience",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Update experience",
                "tags": [
                    "student"
                ]
            }
        },
        "/student/jobs": {
            "get": {
                "description": "Only approved, open JAFs of verified companies whose deadline has not passed are listed",
                "parameters": [
                    {
                        "default": 1,
                        "description": "Page number",
                        "in": "query",
                        "name": "page",
                        "required": false,
                        "type": "integer"
                    },
                    {
                        "default": 10,
                        "description": "Page size",
                        "in": "query",
                        "name": "size",
                        "required": false,
                        "type": "integer"
                    },
                    {
                        "description": "JNF or INF",
                        "in": "query",
                        "name": "formType",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Title or company",
                        "in": "query",
                        "name": "search",
                        "required": false,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "List jobs",
                "tags": [
                    "student"
                ]
            }
        },
        "/student/jobs/{id}": {
            "get": {
                "parameters": [
                    {
                        "description": "JAF ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Get job",
                "tags": [
                    "student"
                ]
            }
        },
        "/student/jobs/{id}/apply": {
            "post": {
                "parameters": [
                    {
                        "description": "JAF ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Not verified or not eligible"
                    },
                    "404": {
                        "description": "Job not found"
                    },
                    "409": {
                        "description": "Already applied"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Apply for a job",
                "tags": [
                    "student"
                ]
            }
        },
        "/student/personal-details": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Get personal details",
                "tags": [
                    "student"
                ]
            },
            "put": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Personal details",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Validation failed"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Update personal details",
                "tags": [
                    "student"
                ]
            }
        },
        "/student/profile": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Authentication required"
                    },
                    "403": {
                        "description": "Not a student"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Get student profile",
                "tags": [
                    "student"
                ]
            },
            "put": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Profile",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Validation failed"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Update student profile",
                "tags": [
                    "student"
                ]
            }
        },
        "/super-admin/admins": {
            "get": {
                "parameters": [
                    {
                        "default": 1,
                        "description": "Page number",
                        "in": "query",
                        "name": "page",
                        "required": false,
                        "type": "integer"
                    },
                    {
                        "default": 10,
                        "description": "Page size",
                        "in": "query",
                        "name": "size",
                        "required": false,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Not a super administrator"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "List administrators",
                "tags": [
                    "super-admin"
                ]
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Administrator",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "409": {
                        "description": "Email already exists"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Create administrator",
                "tags": [
                    "super-admin"
                ]
            }
        },
        "/super-admin/admins/{id}": {
            "delete": {
                "description": "Sets deleted_at, clears is_active and writes the activity log in one transaction",
                "parameters": [
                    {
                        "description": "User ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Deleted"
                    },
                    "400": {
                        "description": "Cannot delete yourself"
                    },
                    "404": {
                        "description": "Not found"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Delete administrator",
                "tags": [
                    "super-admin"
                ]
            },
            "put": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "User ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Administrator",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Update administrator",
                "tags": [
                    "super-admin"
                ]
            }
        },
        "/super-admin/settings": {
            "get": {
                "description": "The SMTP password is never returned",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Get settings",
                "tags": [
                    "super-admin"
                ]
            },
            "put": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Settings",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Validation failed"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Update settings",
                "tags": [
                    "super-admin"
                ]
            }
        },
        "/super-admin/settings/test-email": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Recipient",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Sent"
                    },
                    "400": {
                        "description": "Email is not configured or delivery failed"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Send test email",
                "tags": [
                    "super-admin"
                ]
            }
        },
        "/upload": {
            "post": {
                "consumes": [
                    "multipart/form-data"
                ],
                "description": "Accepts PDF, JPEG, PNG or WEBP. The type is detected from content, not the extension.",
                "parameters": [
                    {
                        "description": "File",
                        "in": "formData",
                        "name": "file",
                        "required": true,
                        "type": "file"
                    },
                    {
                        "description": "Sub folder, e.g. resumes",
                        "in": "formData",
                        "name": "folder",
                        "required": false,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Missing file or unsupported type"
                    },
                    "413": {
                        "description": "File too large"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Upload file",
                "tags": [
                    "upload"
                ]
            }
        }
    },
    "schemes": {{ marshal .Schemes }},
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Bearer access token. Browsers may rely on the session cookie instead.",
            "in": "header",
            "name": "Authorization",
            "type": "apiKey"
        }
    },
    "swagger": "2.0"
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Training & Placement Cell API",
	Description:      "API of the college training and placement portal",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
