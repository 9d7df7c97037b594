// Package docs holds the Swagger 2.0 document served under /swagger/.
// Regenerate with `swag init -g cmd/api/main.go`; docs_test.go checks it
// against the handler annotations.
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
		"/api/campaigns": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Campaigns"
				],
				"summary": "List campaigns",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/models.Campaign"
							}
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Campaigns"
				],
				"summary": "Create campaign draft",
				"parameters": [
					{
						"description": "Campaign draft",
						"name": "campaign",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.CampaignDraft"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/models.Campaign"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/campaigns/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Campaigns"
				],
				"summary": "Get campaign",
				"parameters": [
					{
						"type": "integer",
						"description": "Campaign ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.Campaign"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"put": {
				"description": "Partial update: only fields present in the body change.",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Campaigns"
				],
				"summary": "Update campaign",
				"parameters": [
					{
						"type": "integer",
						"description": "Campaign ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Fields to change",
						"name": "campaign",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.CampaignDraft"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.Campaign"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"description": "Idempotent; deleting an unknown id also returns 204.",
				"tags": [
					"Campaigns"
				],
				"summary": "Delete campaign",
				"parameters": [
					{
						"type": "integer",
						"description": "Campaign ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/products": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Products"
				],
				"summary": "List products",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/models.Product"
							}
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Products"
				],
				"summary": "Create product",
				"parameters": [
					{
						"description": "Product",
						"name": "product",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.ProductDraft"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/models.Product"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/products/images": {
			"post": {
				"consumes": [
					"multipart/form-data"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Products"
				],
				"summary": "Upload product image",
				"parameters": [
					{
						"type": "file",
						"description": "Image file",
						"name": "file",
						"in": "formData",
						"required": true
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/services.UploadedObject"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"413": {
						"description": "Request Entity Too Large",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/products/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Products"
				],
				"summary": "Get product",
				"parameters": [
					{
						"type": "integer",
						"description": "Product ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.Product"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/health": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Health"
				],
				"summary": "Service and storage health",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handlers.HealthResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/handlers.HealthResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"handlers.ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				},
				"message": {
					"type": "string"
				},
				"errors": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/schema.FieldError"
					}
				}
			}
		},
		"handlers.HealthResponse": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				},
				"storage": {
					"$ref": "#/definitions/handlers.StorageHealth"
				}
			}
		},
		"handlers.StorageHealth": {
			"type": "object",
			"properties": {
				"backend": {
					"type": "string"
				},
				"status": {
					"type": "string"
				},
				"error": {
					"type": "string"
				}
			}
		},
		"models.Campaign": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				},
				"marketingGoal": {
					"type": "string"
				},
				"optimizationTarget": {
					"type": "string"
				},
				"priority": {
					"type": "string"
				},
				"promotionScenario": {
					"type": "string"
				},
				"placements": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"deviceTypes": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"productId": {
					"type": "integer"
				},
				"originalPrice": {
					"type": "string",
					"example": "1000.50"
				},
				"currentPrice": {
					"type": "string",
					"example": "1000.50"
				},
				"hasTimeLimitedDiscount": {
					"type": "boolean"
				},
				"discountPercentage": {
					"type": "integer"
				},
				"hasFullReduction": {
					"type": "boolean"
				},
				"fullReductionThreshold": {
					"type": "string",
					"example": "1000.50"
				},
				"fullReductionAmount": {
					"type": "string",
					"example": "1000.50"
				},
				"ageRange": {
					"type": "string"
				},
				"gender": {
					"type": "string"
				},
				"location": {
					"type": "string"
				},
				"interests": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"behaviors": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"campaignType": {
					"type": "string"
				},
				"startTime": {
					"type": "string"
				},
				"endTime": {
					"type": "string"
				},
				"totalBudget": {
					"type": "string",
					"example": "1000.50"
				},
				"dailyBudget": {
					"type": "string",
					"example": "1000.50"
				},
				"biddingStrategy": {
					"type": "string"
				},
				"clickBid": {
					"type": "string",
					"example": "1000.50"
				},
				"weeklySchedule": {
					"type": "array",
					"items": {
						"type": "boolean"
					}
				},
				"status": {
					"type": "string",
					"enum": [
						"draft",
						"submitted"
					]
				},
				"createdAt": {
					"type": "string"
				},
				"updatedAt": {
					"type": "string"
				}
			}
		},
		"models.CampaignDraft": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"marketingGoal": {
					"type": "string"
				},
				"optimizationTarget": {
					"type": "string"
				},
				"priority": {
					"type": "string"
				},
				"promotionScenario": {
					"type": "string"
				},
				"placements": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"deviceTypes": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"productId": {
					"type": "integer"
				},
				"originalPrice": {
					"type": "string",
					"example": "1000.50"
				},
				"currentPrice": {
					"type": "string",
					"example": "1000.50"
				},
				"hasTimeLimitedDiscount": {
					"type": "boolean"
				},
				"discountPercentage": {
					"type": "integer"
				},
				"hasFullReduction": {
					"type": "boolean"
				},
				"fullReductionThreshold": {
					"type": "string",
					"example": "1000.50"
				},
				"fullReductionAmount": {
					"type": "string",
					"example": "1000.50"
				},
				"ageRange": {
					"type": "string"
				},
				"gender": {
					"type": "string"
				},
				"location": {
					"type": "string"
				},
				"interests": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"behaviors": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"campaignType": {
					"type": "string"
				},
				"startTime": {
					"type": "string"
				},
				"endTime": {
					"type": "string"
				},
				"totalBudget": {
					"type": "string",
					"example": "1000.50"
				},
				"dailyBudget": {
					"type": "string",
					"example": "1000.50"
				},
				"biddingStrategy": {
					"type": "string"
				},
				"clickBid": {
					"type": "string",
					"example": "1000.50"
				},
				"weeklySchedule": {
					"type": "array",
					"items": {
						"type": "boolean"
					}
				},
				"status": {
					"type": "string",
					"enum": [
						"draft",
						"submitted"
					]
				}
			}
		},
		"models.Product": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"image": {
					"type": "string"
				},
				"originalPrice": {
					"type": "string",
					"example": "1000.50"
				},
				"currentPrice": {
					"type": "string",
					"example": "1000.50"
				},
				"category": {
					"type": "string"
				}
			}
		},
		"models.ProductDraft": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"image": {
					"type": "string"
				},
				"originalPrice": {
					"type": "string",
					"example": "1000.50"
				},
				"currentPrice": {
					"type": "string",
					"example": "1000.50"
				},
				"category": {
					"type": "string"
				}
			}
		},
		"schema.FieldError": {
			"type": "object",
			"properties": {
				"path": {
					"type": "string"
				},
				"message": {
					"type": "string"
				},
				"received": {
					"type": "string"
				},
				"expected": {
					"type": "string"
				}
			}
		},
		"services.UploadedObject": {
			"type": "object",
			"properties": {
				"key": {
					"type": "string"
				},
				"url": {
					"type": "string"
				}
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
	Title:            "Campaign API",
	Description:      "Draft and submit advertising campaigns through a five-step wizard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
