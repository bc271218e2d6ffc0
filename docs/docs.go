// Package docs registers the Swagger specification served at /swagger.
// Maintained by hand; regenerate with swag init if the annotations drift.
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
        "/cameras": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cameras"],
                "summary": "List all cameras",
                "description": "Gets all registered cameras keyed by camera id",
                "responses": {
                    "200": {"description": "Cameras by id"},
                    "500": {"description": "Internal server error"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cameras"],
                "summary": "Register a new camera",
                "description": "Creates a camera with a unique, immutable camera_id",
                "responses": {
                    "201": {"description": "Camera created"},
                    "400": {"description": "Invalid request body"},
                    "409": {"description": "Camera id already exists"},
                    "500": {"description": "Internal server error"}
                }
            }
        },
        "/cameras/nearby": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cameras"],
                "summary": "Find cameras near a point",
                "description": "Returns cameras within the given radius of lat/lon",
                "parameters": [
                    {"type": "number", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "name": "lon", "in": "query", "required": true},
                    {"type": "number", "name": "radius", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Nearby cameras"},
                    "400": {"description": "Invalid coordinates"},
                    "500": {"description": "Internal server error"}
                }
            }
        },
        "/cameras/{id}": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cameras"],
                "summary": "Update a camera",
                "description": "Merges the supplied nickname/lat/lon into an existing camera",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Updated camera"},
                    "400": {"description": "Invalid request body"},
                    "404": {"description": "Camera not found"},
                    "500": {"description": "Internal server error"}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["cameras"],
                "summary": "Delete a camera",
                "description": "Removes a camera from the registry; its detections are retained",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "Camera deleted"},
                    "404": {"description": "Camera not found"},
                    "500": {"description": "Internal server error"}
                }
            }
        },
        "/detections": {
            "get": {
                "produces": ["application/json"],
                "tags": ["detections"],
                "summary": "List all detections",
                "description": "Gets every stored detection for the maintenance grid",
                "responses": {
                    "200": {"description": "All detections"},
                    "500": {"description": "Internal server error"}
                }
            }
        },
        "/detections/reassign": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["detections"],
                "summary": "Re-assign detections to another camera",
                "description": "Re-ingests the matching detections under a new camera id (data hygiene)",
                "responses": {
                    "200": {"description": "Number of reassigned rows"},
                    "400": {"description": "Invalid request or unknown camera"},
                    "500": {"description": "Internal server error"}
                }
            }
        },
        "/ingest": {
            "post": {
                "consumes": ["text/plain"],
                "tags": ["ingest"],
                "summary": "Ingest detection rows",
                "description": "Accepts a CSV payload of classified detections and commits it as one atomic batch",
                "parameters": [
                    {"type": "string", "name": "Authorization", "in": "header", "required": true}
                ],
                "responses": {
                    "204": {"description": "Batch committed"},
                    "400": {"description": "Malformed CSV or unknown camera ids"},
                    "401": {"description": "Missing or invalid token"},
                    "500": {"description": "Internal server error"}
                }
            }
        },
        "/rollups": {
            "get": {
                "produces": ["application/json"],
                "tags": ["rollups"],
                "summary": "Aggregate detections per camera",
                "description": "Computes total, buck/doe percentages, last-seen and predominant heading per camera over the filtered detection slice",
                "parameters": [
                    {"type": "string", "name": "cameras", "in": "query"},
                    {"type": "string", "name": "start_date", "in": "query"},
                    {"type": "string", "name": "end_date", "in": "query"},
                    {"type": "integer", "name": "start_hour", "in": "query"},
                    {"type": "integer", "name": "end_hour", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Rollups keyed by camera id"},
                    "400": {"description": "Invalid filter parameter"},
                    "500": {"description": "Internal server error"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "TrailMap API",
	Description:      "Detection ingestion and aggregation service for wildlife trail cameras.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
