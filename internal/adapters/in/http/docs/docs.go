// Package docs registers the Swagger description served at /swagger/.
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
        "/api/v1/checkout": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Start a checkout session for an item",
                "parameters": [
                    {"description": "Item and buyer", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.StartCheckoutRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.Session"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/api/v1/checkout/{sessionId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Get a checkout session",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Session ID", "name": "sessionId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.Session"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            },
            "delete": {
                "tags": ["checkout"],
                "summary": "Discard a checkout session",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Session ID", "name": "sessionId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/api/v1/checkout/{sessionId}/advance": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Move the session to a step",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Session ID", "name": "sessionId", "in": "path", "required": true},
                    {"description": "Target step", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.AdvanceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.Session"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.Session"}}
                }
            }
        },
        "/api/v1/checkout/{sessionId}/delivery": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Choose a delivery option",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Session ID", "name": "sessionId", "in": "path", "required": true},
                    {"description": "Option", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.SelectDeliveryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.Session"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.Session"}}
                }
            }
        },
        "/api/v1/checkout/{sessionId}/address/edit": {
            "post": {
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Reopen address entry",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Session ID", "name": "sessionId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.Session"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.Session"}}
                }
            }
        },
        "/api/v1/checkout/{sessionId}/address": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Replace the buyer's delivery address",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Session ID", "name": "sessionId", "in": "path", "required": true},
                    {"description": "Address", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.Address"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.Session"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.Session"}}
                }
            }
        },
        "/api/v1/checkout/{sessionId}/error": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Clear the error shown on the session",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Session ID", "name": "sessionId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.Session"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/api/v1/checkout/{sessionId}/payment": {
            "post": {
                "produces": ["application/json"],
                "tags": ["payment"],
                "summary": "Begin the payment for the session",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Session ID", "name": "sessionId", "in": "path", "required": true}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/http.PaymentRequest"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/api/v1/checkout/{sessionId}/payment/callback": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["payment"],
                "summary": "Report the gateway outcome for the session's payment",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Session ID", "name": "sessionId", "in": "path", "required": true},
                    {"description": "Gateway outcome", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.PaymentCallback"}}
                ],
                "responses": {
                    "202": {"description": "Accepted"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/api/v1/fallback-orders": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List fallback orders awaiting finalisation",
                "parameters": [
                    {"maximum": 500, "minimum": 1, "type": "integer", "default": 50, "description": "Maximum rows", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/http.Order"}}}
                }
            }
        },
        "/api/v1/orders/{reference}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Find the order recorded for a payment reference",
                "parameters": [
                    {"type": "string", "description": "Payment reference", "name": "reference", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.Order"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/api/v1/carts/{userId}/size": {
            "get": {
                "produces": ["application/json"],
                "tags": ["carts"],
                "summary": "Number of items in a user's cart",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "User ID", "name": "userId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.CartSize"}}
                }
            }
        }
    },
    "definitions": {
        "http.Address": {
            "type": "object",
            "properties": {
                "street": {"type": "string"},
                "city": {"type": "string"},
                "province": {"type": "string"},
                "postalCode": {"type": "string"},
                "country": {"type": "string"},
                "additionalInfo": {"type": "string"}
            }
        },
        "http.AdvanceRequest": {
            "type": "object",
            "properties": {
                "step": {"type": "string", "enum": ["summary", "delivery", "payment", "confirmation"]}
            }
        },
        "http.CartSize": {
            "type": "object",
            "properties": {"size": {"type": "integer"}}
        },
        "http.Confirmation": {
            "type": "object",
            "properties": {
                "orderId": {"type": "string"},
                "paymentReference": {"type": "string"},
                "totalPaid": {"type": "string"},
                "status": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "http.DeliveryOption": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "courierId": {"type": "string"},
                "serviceName": {"type": "string"},
                "providerName": {"type": "string"},
                "price": {"type": "string"},
                "priceExclVat": {"type": "string"},
                "estimatedDays": {"type": "integer"},
                "zone": {"type": "string"},
                "estimate": {"type": "boolean"},
                "collectionCutoff": {"type": "string"},
                "label": {"type": "string"}
            }
        },
        "http.Error": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "kind": {"type": "string"},
                "message": {"type": "string"},
                "retryable": {"type": "boolean"}
            }
        },
        "http.Item": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "sellerId": {"type": "string"},
                "title": {"type": "string"},
                "price": {"type": "string"},
                "weightKg": {"type": "number"}
            }
        },
        "http.Order": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "paymentReference": {"type": "string"},
                "buyerId": {"type": "string"},
                "sellerId": {"type": "string"},
                "itemId": {"type": "string"},
                "amount": {"type": "string"},
                "deliveryPrice": {"type": "string"},
                "deliveryMethod": {"type": "string"},
                "status": {"type": "string"},
                "source": {"type": "string"},
                "finalised": {"type": "boolean"},
                "createdAt": {"type": "string"}
            }
        },
        "http.PaymentCallback": {
            "type": "object",
            "properties": {
                "outcome": {"type": "string", "enum": ["success", "error", "closed"]},
                "reference": {"type": "string"},
                "status": {"type": "string"},
                "transactionId": {"type": "string"},
                "error": {}
            }
        },
        "http.PaymentRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "amount": {"type": "integer"},
                "reference": {"type": "string"},
                "metadata": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "http.SelectDeliveryRequest": {
            "type": "object",
            "properties": {"optionId": {"type": "string"}}
        },
        "http.Session": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "step": {"type": "string"},
                "completedSteps": {"type": "array", "items": {"type": "string"}},
                "item": {"$ref": "#/definitions/http.Item"},
                "sellerAddress": {"$ref": "#/definitions/http.Address"},
                "buyerAddress": {"$ref": "#/definitions/http.Address"},
                "addressEntry": {"type": "boolean"},
                "deliveryOptions": {"type": "array", "items": {"$ref": "#/definitions/http.DeliveryOption"}},
                "selectedDelivery": {"$ref": "#/definitions/http.DeliveryOption"},
                "paymentReference": {"type": "string"},
                "paymentStatus": {"type": "string"},
                "confirmation": {"$ref": "#/definitions/http.Confirmation"},
                "needsSupport": {"type": "boolean"},
                "loading": {"type": "boolean"},
                "error": {"$ref": "#/definitions/http.Error"},
                "warning": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "http.StartCheckoutRequest": {
            "type": "object",
            "properties": {
                "itemId": {"type": "string", "format": "uuid"},
                "buyerId": {"type": "string", "format": "uuid"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Checkout API",
	Description:      "Marketplace checkout sessions, payment callbacks and order lookup.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
