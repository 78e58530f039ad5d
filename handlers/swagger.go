package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>paperpress — Swagger</title>
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
  "info": { "title": "paperpress", "version": "v0.1.0" },
  "paths": {
    "/render": {
      "post": {
        "summary": "Render a PDF from a template; the outcome is POSTed to the callback URL",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["template_url","output_filename","callback_url"],"properties":{"template_url":{"type":"string"},"assets_urls":{"type":"array","items":{"type":"string"}},"variables":{},"output_filename":{"type":"string"},"callback_url":{"type":"string"},"no_escape_latex":{"type":"boolean"}}}}}},
        "responses": { "200": { "description": "job accepted" }, "400": { "description": "invalid document spec" } }
      }
    },
    "/preview": {
      "post": {
        "summary": "Expand a template and return the result without typesetting",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["template_url"],"properties":{"template_url":{"type":"string"},"variables":{},"no_escape_latex":{"type":"boolean"}}}}}},
        "responses": { "200": { "description": "expanded template text" }, "400": { "description": "invalid document spec" }, "422": { "description": "fetch or expansion failed" } }
      }
    },
    "/healthz": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } }
  }
}`
