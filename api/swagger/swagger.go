package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "OpportuneX API",
        "description": "Hackathon and competition listings aggregator",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Events", "description": "Listing feed, submission and export"},
        {"name": "Scheduler", "description": "Scrape scheduler control plane"},
        {"name": "Saved", "description": "Per-user bookmarks"}
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/events": {
            "get": {
                "tags": ["Events"],
                "summary": "List events",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "platform", "in": "query", "type": "string"},
                    {"name": "sortBy", "in": "query", "type": "string"},
                    {"name": "free", "in": "query", "type": "boolean"},
                    {"name": "online", "in": "query", "type": "boolean"},
                    {"name": "beginner", "in": "query", "type": "boolean"},
                    {"name": "prize", "in": "query", "type": "boolean"},
                    {"name": "location", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/EventPage"}}
                }
            },
            "post": {
                "tags": ["Events"],
                "summary": "Submit an event manually",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/scrape": {
            "get": {
                "tags": ["Events"],
                "summary": "Queue a background scrape",
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Queue full", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Events"],
                "summary": "Queue a background scrape",
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Queue full", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/export": {
            "get": {
                "tags": ["Events"],
                "summary": "Export the event feed",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "description": "csv or pdf"}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/scheduler/status": {
            "get": {
                "tags": ["Scheduler"],
                "summary": "Scheduler status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SchedulerStatus"}}
                }
            }
        },
        "/scheduler/start": {
            "post": {
                "tags": ["Scheduler"],
                "summary": "Start the scheduler",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SchedulerStatus"}}
                }
            }
        },
        "/scheduler/stop": {
            "post": {
                "tags": ["Scheduler"],
                "summary": "Stop the scheduler",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SchedulerStatus"}}
                }
            }
        },
        "/scheduler/trigger": {
            "post": {
                "tags": ["Scheduler"],
                "summary": "Run one scrape cycle now",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ScrapeSummary"}},
                    "409": {"description": "Scrape already in progress", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/saved": {
            "get": {
                "tags": ["Saved"],
                "summary": "List saved events",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Saved"],
                "summary": "Save an event",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/saved/{key}": {
            "delete": {
                "tags": ["Saved"],
                "summary": "Remove a saved event",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "key", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Removed"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Event": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "type": {"type": "string"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "deadline": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "hostedBy": {"type": "string"},
                "verified": {"type": "boolean"},
                "redirectURL": {"type": "string"}
            }
        },
        "EventPage": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/Event"}},
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "total": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "CreateEventRequest": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "type": {"type": "string"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "deadline": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "hostedBy": {"type": "string"},
                "verified": {"type": "boolean"},
                "redirectURL": {"type": "string"}
            }
        },
        "ScrapeSummary": {
            "type": "object",
            "properties": {
                "scraped": {"type": "integer"},
                "saved": {"type": "integer"}
            }
        },
        "SchedulerStatus": {
            "type": "object",
            "properties": {
                "isRunning": {"type": "boolean"},
                "isCurrentlyScraping": {"type": "boolean"},
                "lastRunTime": {"type": "string"},
                "nextRunTime": {"type": "string"},
                "schedule": {"type": "string"}
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
