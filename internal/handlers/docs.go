package handlers

import (
	"net/http"
)

// OpenAPISpec serves the OpenAPI 3.0 description of the status API
func (h *StatusHandler) OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	spec := map[string]interface{}{
		"openapi": "3.0.0",
		"info": map[string]interface{}{
			"title":       "Measurement Generator Status API",
			"description": "Live progress and health of a running test data build",
			"version":     "1.0.0",
		},
		"paths": map[string]interface{}{
			"/api/progress": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Get generation progress",
					"description": "Completed and total batches for the current run",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Progress snapshot",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]string{"$ref": "#/components/schemas/Progress"},
								},
							},
						},
					},
				},
			},
			"/health": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "Health check",
					"responses": map[string]interface{}{
						"200": map[string]string{"description": "Healthy"},
						"503": map[string]string{"description": "A dependency such as the station catalogue is unreachable"},
					},
				},
			},
			"/metrics": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "Prometheus metrics",
					"responses": map[string]interface{}{
						"200": map[string]string{"description": "Prometheus text exposition format"},
					},
				},
			},
		},
		"components": map[string]interface{}{
			"schemas": map[string]interface{}{
				"Progress": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"run_id":            map[string]string{"type": "string", "format": "uuid"},
						"completed_batches": map[string]string{"type": "integer"},
						"total_batches":     map[string]string{"type": "integer"},
						"percent":           map[string]string{"type": "number"},
						"done":              map[string]string{"type": "boolean"},
					},
				},
			},
		},
	}

	h.sendJSON(w, spec, http.StatusOK)
}
