package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "ProjecTrack API",
        "description": "University project tracking: groups, proposals, milestones and document submissions",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Signup and login"},
        {"name": "Profile", "description": "Current user profile"},
        {"name": "Groups", "description": "Group creation and membership"},
        {"name": "Invitations", "description": "Group invitation workflow"},
        {"name": "Projects", "description": "Project proposals and views"},
        {"name": "Proposals", "description": "Supervisor decision queue"},
        {"name": "Milestones", "description": "Project milestone tracking"},
        {"name": "Submissions", "description": "Project document uploads"}
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/auth/signup": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a student or teacher account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SignupRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email or roll number already in use"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate and receive a bearer token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/profile": {
            "get": {
                "tags": ["Profile"],
                "summary": "Get the current user's profile",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Profile"],
                "summary": "Partially update the current user's profile",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email or roll number already in use"}
                }
            }
        },
        "/groups": {
            "post": {
                "tags": ["Groups"],
                "summary": "Create a group (student only, caller becomes leader)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateGroupRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Group name already taken"}
                }
            },
            "get": {
                "tags": ["Groups"],
                "summary": "List groups the caller leads or belongs to",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/groups/{groupId}/invitations": {
            "post": {
                "tags": ["Groups"],
                "summary": "Invite a student by email (leader only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "groupId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/InviteMemberRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "An invitation for this student already exists"}
                }
            }
        },
        "/groups/invitations/pending": {
            "get": {
                "tags": ["Invitations"],
                "summary": "List the caller's pending invitations, newest first",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/groups/invitations/{invitationId}/respond": {
            "patch": {
                "tags": ["Invitations"],
                "summary": "Accept or reject an invitation (recipient only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "invitationId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RespondInvitationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Invitation already answered"}
                }
            }
        },
        "/projects": {
            "post": {
                "tags": ["Projects"],
                "summary": "Propose a project (group leader only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProposeProjectRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Group already has a project"}
                }
            }
        },
        "/projects/proposals/my": {
            "get": {
                "tags": ["Proposals"],
                "summary": "List proposals assigned to the calling supervisor",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Teacher only"}
                }
            }
        },
        "/projects/{projectId}": {
            "get": {
                "tags": ["Projects"],
                "summary": "Project detail with roster, supervisor and progress",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "projectId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Participants only"}
                }
            }
        },
        "/projects/{projectId}/status": {
            "patch": {
                "tags": ["Proposals"],
                "summary": "Approve or reject a proposal (assigned supervisor only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "projectId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DecideProjectRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Proposal already decided"}
                }
            }
        },
        "/projects/{projectId}/report": {
            "get": {
                "tags": ["Projects"],
                "summary": "Export the milestone report as CSV or PDF",
                "security": [{"BearerAuth": []}],
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"name": "projectId", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Report file"}
                }
            }
        },
        "/projects/{projectId}/milestones": {
            "get": {
                "tags": ["Milestones"],
                "summary": "List milestones in creation order (group members only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "projectId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Milestones"],
                "summary": "Add a milestone (group members only, workable project)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "projectId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateMilestoneRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/milestones/{milestoneId}": {
            "patch": {
                "tags": ["Milestones"],
                "summary": "Partially update a milestone (group members only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "milestoneId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateMilestoneRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/submissions/project/{projectId}": {
            "get": {
                "tags": ["Submissions"],
                "summary": "List submissions newest first (members and supervisor)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "projectId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Submissions"],
                "summary": "Upload a PDF document (group members only, workable project)",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "projectId", "in": "path", "required": true, "type": "string"},
                    {"name": "projectDocument", "in": "formData", "required": true, "type": "file"},
                    {"name": "description", "in": "formData", "type": "string"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing file, wrong type or too large"}
                }
            }
        },
        "/submissions/{submissionId}/download": {
            "get": {
                "tags": ["Submissions"],
                "summary": "Download a submitted document (members and supervisor)",
                "security": [{"BearerAuth": []}],
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"name": "submissionId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Document file"}
                }
            }
        }
    },
    "definitions": {
        "SignupRequest": {
            "type": "object",
            "required": ["name", "email", "password", "role"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["STUDENT", "TEACHER"]},
                "roll_number": {"type": "string"},
                "program": {"type": "string"},
                "year": {"type": "integer"},
                "department": {"type": "string"},
                "areas_of_expertise": {"type": "array", "items": {"type": "string"}}
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
        "UpdateProfileRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "roll_number": {"type": "string"},
                "program": {"type": "string"},
                "year": {"type": "integer"},
                "department": {"type": "string"},
                "areas_of_expertise": {"type": "array", "items": {"type": "string"}}
            }
        },
        "CreateGroupRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"}
            }
        },
        "InviteMemberRequest": {
            "type": "object",
            "required": ["invited_user_email"],
            "properties": {
                "invited_user_email": {"type": "string"}
            }
        },
        "RespondInvitationRequest": {
            "type": "object",
            "required": ["action"],
            "properties": {
                "action": {"type": "string", "enum": ["ACCEPT", "REJECT"]}
            }
        },
        "ProposeProjectRequest": {
            "type": "object",
            "required": ["group_id", "title", "description", "supervisor_id"],
            "properties": {
                "group_id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "supervisor_id": {"type": "string"}
            }
        },
        "DecideProjectRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["APPROVED", "REJECTED"]},
                "rejection_reason": {"type": "string"}
            }
        },
        "CreateMilestoneRequest": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "due_date": {"type": "string"}
            }
        },
        "UpdateMilestoneRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "due_date": {"type": "string"},
                "is_completed": {"type": "boolean"}
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
