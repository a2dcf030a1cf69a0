package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the record service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>business-tracker — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "business-tracker", "version": "v1.0.0" },
  "components": {
    "schemas": {
      "Business": { "type": "object", "additionalProperties": true, "properties": { "id": { "type": "integer" }, "createdAt": { "type": "string", "format": "date-time" } } },
      "Envelope": { "type": "object", "properties": { "status": { "type": "string", "enum": ["success", "error"] }, "message": { "type": "string" }, "error": { "type": "string" } } }
    },
    "parameters": {
      "BusinessID": { "name": "business_id", "in": "path", "required": true, "schema": { "type": "integer" } }
    }
  },
  "paths": {
    "/": { "get": { "summary": "Service banner", "responses": { "200": { "description": "running" } } } },
    "/api/health": { "get": { "summary": "Liveness check (does not touch the database)", "responses": { "200": { "description": "ok" } } } },
    "/api/test-connection": { "get": { "summary": "Connect to and ping MongoDB", "responses": { "200": { "description": "connected" }, "500": { "description": "connection failed" } } } },
    "/api/businesses": {
      "get": { "summary": "List all businesses", "responses": { "200": { "description": "{status, data: Business[]}" }, "500": { "description": "store error" } } },
      "post": {
        "summary": "Create a business (createdAt defaults to now, UTC)",
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Business" } } } },
        "responses": { "201": { "description": "{status, message, id}" }, "400": { "description": "body is not a JSON object" }, "409": { "description": "duplicate id (uniqueness enforced)" }, "500": { "description": "store error" } }
      }
    },
    "/api/businesses/{business_id}": {
      "put": {
        "summary": "Merge fields into the business with this id",
        "parameters": [ { "$ref": "#/components/parameters/BusinessID" } ],
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Business" } } } },
        "responses": { "200": { "description": "updated" }, "400": { "description": "non-integer id or empty body" }, "404": { "description": "Business not found" }, "500": { "description": "store error" } }
      },
      "delete": {
        "summary": "Delete the business with this id",
        "parameters": [ { "$ref": "#/components/parameters/BusinessID" } ],
        "responses": { "200": { "description": "deleted" }, "400": { "description": "non-integer id" }, "404": { "description": "Business not found" }, "500": { "description": "store error" } }
      }
    },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "text exposition format" } } } }
  }
}`
