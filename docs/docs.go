// Package docs holds the OpenAPI document served under /swagger when the
// binary is built with the swagger tag. The document is maintained by hand and
// must list the same responses as the @Failure annotations in internal/httpapi.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {"name": "aigateway maintainers"},
        "license": {"name": "MIT", "url": "https://opensource.org/licenses/MIT"},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/images/generate": {
            "post": {
                "description": "Composes the prompt for the requested style, calls the image provider and returns inline PNG data.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["images"],
                "summary": "Generate images",
                "parameters": [{"description": "Generation request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.GenerationRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.GenerationResult"}},
                    "400": {"description": "Provider rejected the request (other provider 4xx/5xx statuses are relayed the same way)", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "408": {"description": "Request Timeout", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "502": {"description": "Provider answered with a non-error, non-200 status", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "503": {"description": "Provider unavailable after retry, or server shutting down", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/api/images/models": {"get": {"produces": ["application/json"], "tags": ["images"], "summary": "List image models", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ImageModelsResponse"}}}}},
        "/api/images/sizes": {"get": {"produces": ["application/json"], "tags": ["images"], "summary": "List image sizes", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.SizesResponse"}}}}},
        "/api/images/styles": {"get": {"produces": ["application/json"], "tags": ["images"], "summary": "List image styles", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StylesResponse"}}}}},
        "/api/images/health": {
            "get": {
                "description": "Runs a minimal generation against the provider.",
                "produces": ["application/json"],
                "tags": ["images"],
                "summary": "Image provider health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ServiceHealth"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/api/chat/message": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Send a chat message",
                "parameters": [{"description": "Chat request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.ChatRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ChatResponse"}},
                    "408": {"description": "Request Timeout", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "503": {"description": "Server shutting down", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/api/chat/models": {"get": {"produces": ["application/json"], "tags": ["chat"], "summary": "List chat models", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ChatModelsResponse"}}}}},
        "/api/chat/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Chat provider health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ServiceHealth"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/health": {"get": {"produces": ["application/json"], "tags": ["health"], "summary": "Application health", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.AppHealth"}}}}}
    },
    "definitions": {
        "types.GenerationRequest": {
            "type": "object",
            "required": ["prompt"],
            "properties": {
                "prompt": {"type": "string", "maxLength": 1000, "example": "a cat"},
                "negative_prompt": {"type": "string", "maxLength": 500, "example": "text, watermark"},
                "size": {"type": "string", "enum": ["512x512", "768x768", "1024x1024"], "example": "768x768"},
                "style": {"type": "string", "enum": ["realistic", "artistic", "cartoon", "abstract"], "example": "realistic"},
                "model": {"type": "string", "example": "sdxl"},
                "num_images": {"type": "integer", "minimum": 1, "maximum": 4, "example": 1},
                "guidance_scale": {"type": "number", "minimum": 1, "maximum": 20, "example": 7.5},
                "steps": {"type": "integer", "minimum": 10, "maximum": 50, "example": 20},
                "seed": {"type": "integer", "example": 42}
            }
        },
        "types.GeneratedImage": {
            "type": "object",
            "properties": {
                "image_url": {"type": "string"},
                "image_data": {"type": "string"},
                "original_size_bytes": {"type": "integer", "example": 1048576},
                "prompt": {"type": "string", "example": "a cat, cartoon style, animated, colorful, stylized"},
                "negative_prompt": {"type": "string"},
                "generation_params": {"type": "object", "additionalProperties": true},
                "timestamp": {"type": "string"},
                "image_id": {"type": "string", "example": "img_1700000000"}
            }
        },
        "types.GenerationResult": {
            "type": "object",
            "properties": {
                "images": {"type": "array", "items": {"$ref": "#/definitions/types.GeneratedImage"}},
                "generation_time": {"type": "number", "example": 12.5},
                "model_info": {"type": "object", "additionalProperties": true},
                "request_id": {"type": "string", "example": "req_1700000000"}
            }
        },
        "types.ImageModel": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "sdxl"},
                "provider_id": {"type": "string", "example": "stabilityai/stable-diffusion-xl-base-1.0"},
                "name": {"type": "string", "example": "Stable Diffusion XL"},
                "description": {"type": "string"},
                "max_resolution": {"type": "string", "example": "1024x1024"},
                "strengths": {"type": "array", "items": {"type": "string"}}
            }
        },
        "types.ImageModelsResponse": {
            "type": "object",
            "properties": {
                "models": {"type": "array", "items": {"$ref": "#/definitions/types.ImageModel"}},
                "default_model": {"type": "string", "example": "sdxl"}
            }
        },
        "types.SizeOption": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "dimensions": {"type": "string"}}},
        "types.SizesResponse": {"type": "object", "properties": {"sizes": {"type": "array", "items": {"$ref": "#/definitions/types.SizeOption"}}, "default_size": {"type": "string", "example": "768x768"}}},
        "types.StyleOption": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "description": {"type": "string"}}},
        "types.StylesResponse": {"type": "object", "properties": {"styles": {"type": "array", "items": {"$ref": "#/definitions/types.StyleOption"}}, "default_style": {"type": "string", "example": "realistic"}}},
        "types.ChatMessage": {
            "type": "object",
            "required": ["role", "content"],
            "properties": {
                "role": {"type": "string", "enum": ["user", "assistant", "system"]},
                "content": {"type": "string"},
                "timestamp": {"type": "string"},
                "metadata": {"type": "object", "additionalProperties": true}
            }
        },
        "types.ChatRequest": {
            "type": "object",
            "required": ["message"],
            "properties": {
                "message": {"type": "string", "maxLength": 2000, "example": "Tell me a joke"},
                "conversation_history": {"type": "array", "items": {"$ref": "#/definitions/types.ChatMessage"}},
                "max_tokens": {"type": "integer", "minimum": 1, "maximum": 4000, "example": 1000},
                "temperature": {"type": "number", "minimum": 0, "maximum": 2, "example": 0.7}
            }
        },
        "types.ChatResponse": {
            "type": "object",
            "properties": {
                "response": {"type": "string"},
                "conversation_id": {"type": "string"},
                "timestamp": {"type": "string"},
                "tokens_used": {"type": "integer", "example": 42},
                "model_info": {"type": "object", "additionalProperties": true}
            }
        },
        "types.ChatModel": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "description": {"type": "string"}, "max_tokens": {"type": "integer"}, "supports_conversation": {"type": "boolean"}}},
        "types.ChatModelsResponse": {"type": "object", "properties": {"models": {"type": "array", "items": {"$ref": "#/definitions/types.ChatModel"}}, "default_model": {"type": "string"}}},
        "types.ServiceHealth": {"type": "object", "properties": {"status": {"type": "string", "example": "healthy"}, "service": {"type": "string", "example": "huggingface"}}},
        "types.AppHealth": {"type": "object", "properties": {"status": {"type": "string"}, "app_name": {"type": "string"}, "version": {"type": "string"}, "debug": {"type": "boolean"}}},
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Validation error"},
                "detail": {"type": "string", "example": "prompt is required"},
                "error_code": {"type": "string", "example": "validation_error"},
                "timestamp": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "aigateway API",
	Description:      "HTTP gateway for image generation and chat backed by hosted AI providers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
