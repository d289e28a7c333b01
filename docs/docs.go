// Package docs registra la especificación OpenAPI servida en /swagger.
// Se mantiene a mano: cada operación repite el @Summary y el @Description de su handler.
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
        "/api/dashboard": {
            "get": {
                "description": "Calcula en paralelo las métricas de ` + "`metrics`" + ` (separadas por coma). Cada métrica que falla trae su propio objeto de error; las demás no se ven afectadas.",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Varias métricas en un request",
                "parameters": [
                    {"type": "string", "description": "Métricas separadas por coma", "name": "metrics", "in": "query", "required": true},
                    {"type": "integer", "description": "Días hacia atrás para consultas_periodo", "name": "days", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "metrics vacío / days inválido", "schema": {"$ref": "#/definitions/analytics.errorResponse"}}
                }
            }
        },
        "/api/dashboard/{metric}": {
            "get": {
                "description": "Calcula una métrica del dashboard sobre un snapshot del almacén.",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Métrica del dashboard",
                "parameters": [
                    {"type": "string", "description": "Nombre de la métrica", "name": "metric", "in": "path", "required": true},
                    {"type": "integer", "description": "Días hacia atrás para consultas_periodo", "name": "days", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "métrica desconocida / days inválido", "schema": {"$ref": "#/definitions/analytics.errorResponse"}},
                    "500": {"description": "error del almacén", "schema": {"$ref": "#/definitions/analytics.errorResponse"}}
                }
            }
        },
        "/dashboard-api/": {
            "get": {
                "description": "Calcula una métrica por nombre. Sin ` + "`type`" + ` devuelve overview. ` + "`days`" + ` sólo aplica a consultas_periodo (default 7).",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Métrica del dashboard (contrato legado)",
                "parameters": [
                    {"type": "string", "description": "Nombre de la métrica (overview, consultas_periodo, especies_racas, ...)", "name": "type", "in": "query"},
                    {"type": "integer", "description": "Días hacia atrás para consultas_periodo", "name": "days", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "métrica desconocida / days inválido", "schema": {"$ref": "#/definitions/analytics.errorResponse"}},
                    "500": {"description": "error del almacén", "schema": {"$ref": "#/definitions/analytics.errorResponse"}}
                }
            }
        },
        "/api/tips/random": {
            "get": {
                "description": "Devuelve la dica vigente. La misma dica se mantiene durante el TTL configurado (5s por defecto).",
                "produces": ["application/json"],
                "tags": ["tips"],
                "summary": "Dica aleatoria de cuidados con mascotas",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/tips.tipResponse"}}
                }
            }
        }
    },
    "definitions": {
        "analytics.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "tips.tipResponse": {
            "type": "object",
            "properties": {
                "tip": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pet Clinic Analytics API",
	Description:      "Métricas agregadas del dashboard de la clínica veterinaria.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
