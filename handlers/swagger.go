package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRoutes) {
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
    <title>ideagen API - Swagger</title>
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
  "info": { "title": "ideagen", "version": "v0.1.0" },
  "components": {
    "schemas": {
      "SavedIdea": {"type":"object","properties":{"id":{"type":"string"},"title":{"type":"string"},"content":{"type":"string"},"category":{"type":"string"},"timestamp":{"type":"integer","format":"int64"},"sessionId":{"type":"string"}}},
      "Error": {"type":"object","properties":{"error":{"type":"string"},"kind":{"type":"string"}}}
    }
  },
  "paths": {
    "/api/generate-idea": {
      "post": {
        "summary": "Stream a generated idea as plain text",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"apiKey":{"type":"string"},"messages":{"type":"array","items":{"type":"object","properties":{"role":{"type":"string"},"content":{"type":"string"}}}}}}}}},
        "responses": { "200": { "description": "text/plain stream" }, "400": { "description": "invalid body or category" }, "401": { "description": "missing or rejected API key" }, "403": { "description": "API key lacks permission" }, "504": { "description": "upstream timed out" } }
      }
    },
    "/api/saved-ideas": {
      "get": { "summary": "List a session's saved ideas", "parameters": [{"name":"sessionId","in":"query","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "ideas, newest first" }, "400": { "description": "missing sessionId" } } },
      "post": { "summary": "Save an idea, or remove it if the session already holds the same content", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"sessionId":{"type":"string"},"idea":{"$ref":"#/components/schemas/SavedIdea"}}}}}}, "responses": { "200": { "description": "Idea saved / Idea removed" }, "400": { "description": "missing fields" } } },
      "delete": { "summary": "Delete a saved idea by id", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"sessionId":{"type":"string"},"ideaId":{"type":"string"}}}}}}, "responses": { "200": { "description": "Idea deleted" }, "400": { "description": "missing fields" } } }
    },
    "/api/validate-api-key": {
      "post": { "summary": "Check an OpenRouter API key", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"apiKey":{"type":"string"}}}}}}, "responses": { "200": { "description": "key valid" }, "400": { "description": "malformed key" }, "401": { "description": "key rejected" }, "403": { "description": "model family unavailable" } } }
    },
    "/api/categories": {
      "get": { "summary": "List idea categories", "responses": { "200": { "description": "categories in display order" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "text exposition" } } } }
  }
}`
