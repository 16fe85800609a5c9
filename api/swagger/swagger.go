package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Admission Planner API",
        "description": "Program matching, eligibility, document and timeline planning for prospective students",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Search", "description": "Keyword normalization and synonym expansion"},
        {"name": "Programs", "description": "Catalog search and program details"},
        {"name": "Planner", "description": "Eligibility, document checklist and preparation timeline"},
        {"name": "Observability", "description": "Health, readiness and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {"tags": ["Observability"], "summary": "Health check", "responses": {"200": {"description": "OK"}}}
        },
        "/ready": {
            "get": {"tags": ["Observability"], "summary": "Readiness check including the catalog database", "responses": {"200": {"description": "Ready"}, "503": {"description": "Database unreachable"}}}
        },
        "/metrics": {
            "get": {"tags": ["Observability"], "summary": "Prometheus metrics", "produces": ["text/plain"], "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/metrics/summary": {
            "get": {"tags": ["Observability"], "summary": "Engine counters snapshot", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/search/expand": {
            "post": {
                "tags": ["Search"],
                "summary": "Expand search keywords with synonyms",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExpandSearchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/programs/search": {
            "post": {
                "tags": ["Programs"],
                "summary": "Match programs against a student profile",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProgramSearchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/programs/{id}": {
            "get": {
                "tags": ["Programs"],
                "summary": "Get program details with verification status",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Program not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/programs/{id}/eligibility": {
            "post": {
                "tags": ["Planner"],
                "summary": "Evaluate eligibility for a program",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Program not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/programs/{id}/documents": {
            "post": {
                "tags": ["Planner"],
                "summary": "Resolve the document checklist for a program",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Program not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/programs/{id}/documents/export": {
            "post": {
                "tags": ["Planner"],
                "summary": "Download the document checklist",
                "consumes": ["application/json"],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "File download", "schema": {"type": "file"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Program not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/programs/{id}/timeline": {
            "post": {
                "tags": ["Planner"],
                "summary": "Build a preparation timeline for a program",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TimelineRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Program not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/programs/{id}/timeline/export": {
            "post": {
                "tags": ["Planner"],
                "summary": "Download the preparation timeline",
                "consumes": ["application/json"],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TimelineRequest"}}
                ],
                "responses": {
                    "200": {"description": "File download", "schema": {"type": "file"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Program not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LocalizedText": {
            "type": "object",
            "properties": {
                "en": {"type": "string"},
                "tr": {"type": "string"}
            }
        },
        "EnglishScore": {
            "type": "object",
            "required": ["test", "score"],
            "properties": {
                "test": {"type": "string", "enum": ["ielts", "toefl"]},
                "score": {"type": "number", "minimum": 0, "maximum": 120}
            }
        },
        "StudentProfile": {
            "type": "object",
            "required": ["current_level", "desired_level"],
            "properties": {
                "nationality": {"type": "string"},
                "current_level": {"type": "string", "enum": ["high_school", "associate", "bachelor", "master", "phd"]},
                "desired_level": {"type": "string", "enum": ["associate", "bachelor", "master", "phd"]},
                "gpa": {"type": "number", "minimum": 0, "maximum": 100},
                "english_score": {"$ref": "#/definitions/EnglishScore"},
                "turkish_level": {"type": "string", "enum": ["A1", "A2", "B1", "B2", "C1", "C2"]},
                "has_portfolio": {"type": "boolean"},
                "work_experience_years": {"type": "number", "minimum": 0, "maximum": 60},
                "major_keywords": {"type": "array", "items": {"type": "string"}},
                "preferred_language": {"type": "string", "enum": ["en", "tr", "ar", "mixed", "any"]},
                "preferred_city": {"type": "string"},
                "budget_min": {"type": "number", "minimum": 0},
                "budget_max": {"type": "number", "minimum": 0}
            }
        },
        "SearchFilters": {
            "type": "object",
            "properties": {
                "degree_level": {"type": "string", "enum": ["associate", "bachelor", "master", "phd"]},
                "language": {"type": "string", "enum": ["en", "tr", "ar", "mixed", "any"]},
                "city": {"type": "string"},
                "tuition_min": {"type": "number"},
                "tuition_max": {"type": "number"},
                "keywords": {"type": "array", "items": {"type": "string"}}
            }
        },
        "ExpandSearchRequest": {
            "type": "object",
            "required": ["keywords"],
            "properties": {
                "keywords": {"type": "array", "minItems": 1, "maxItems": 20, "items": {"type": "string"}}
            }
        },
        "ProgramSearchRequest": {
            "type": "object",
            "properties": {
                "profile": {"$ref": "#/definitions/StudentProfile"},
                "filters": {"$ref": "#/definitions/SearchFilters"}
            }
        },
        "ProfileRequest": {
            "type": "object",
            "properties": {
                "profile": {"$ref": "#/definitions/StudentProfile"}
            }
        },
        "TimelineRequest": {
            "type": "object",
            "properties": {
                "profile": {"$ref": "#/definitions/StudentProfile"},
                "intake_target": {"type": "string"}
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
