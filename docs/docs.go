// Package docs registers the Swagger document of the walletlink HTTP API.
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
        "/chat/action": {
            "post": {
                "description": "Starts an import or token session, or answers directly",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Menu button press",
                "parameters": [
                    {"description": "User and action", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.ActionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Reply"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/chat/message": {
            "post": {
                "description": "Routes a message to the user's pending session; ignored without one",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Free text message",
                "parameters": [
                    {"description": "User and text", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.MessageRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Reply"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/market": {
            "get": {
                "description": "SOL price, 24h change, market cap and 24h volume in USD",
                "produces": ["application/json"],
                "tags": ["market"],
                "summary": "SOL market data",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.MarketData"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/classify": {
            "post": {
                "description": "Tells whether text is an address, a private key, a mnemonic or invalid",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Classify input",
                "parameters": [
                    {"description": "Text to classify", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.ClassifyRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ClassifyResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/derive": {
            "post": {
                "description": "Derives the Solana public key of a seed phrase or private key. Nothing is stored.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Derive public key",
                "parameters": [
                    {"description": "Secret and optional source (seed_phrase or private_key)", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.DeriveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.DeriveResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/{userID}": {
            "get": {
                "description": "Address, SOL balance and SOL market data of a user's linked wallet",
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Wallet dashboard",
                "parameters": [
                    {"type": "integer", "description": "Telegram user id", "name": "userID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.DashboardResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["wallet"],
                "summary": "Unlink wallet",
                "parameters": [
                    {"type": "integer", "description": "Telegram user id", "name": "userID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/{userID}/qr": {
            "get": {
                "produces": ["image/png"],
                "tags": ["wallet"],
                "summary": "Wallet address QR code",
                "parameters": [
                    {"type": "integer", "description": "Telegram user id", "name": "userID", "in": "path", "required": true},
                    {"type": "integer", "description": "Image size in pixels", "name": "size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/{userID}/secret": {
            "get": {
                "description": "Returns the seed phrase or private key a user imported",
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Reveal stored secret",
                "parameters": [
                    {"type": "integer", "description": "Telegram user id", "name": "userID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SecretResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "model.ActionRequest": {
            "type": "object",
            "properties": {
                "action": {"type": "string"},
                "userId": {"type": "integer"}
            }
        },
        "model.ClassifyRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"}
            }
        },
        "model.ClassifyResponse": {
            "type": "object",
            "properties": {
                "byteLength": {"type": "integer"},
                "kind": {"type": "string"},
                "reason": {"type": "string"},
                "wordCount": {"type": "integer"}
            }
        },
        "model.DashboardResponse": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "balanceAvailable": {"type": "boolean"},
                "lamports": {"type": "integer"},
                "market": {"$ref": "#/definitions/model.MarketData"},
                "shortAddress": {"type": "string"},
                "sol": {"type": "string"},
                "solscanUrl": {"type": "string"},
                "usdValue": {"type": "string"}
            }
        },
        "model.DeriveRequest": {
            "type": "object",
            "properties": {
                "source": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "model.DeriveResponse": {
            "type": "object",
            "properties": {
                "publicKey": {"type": "string"},
                "source": {"type": "string"}
            }
        },
        "model.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "model.MarketData": {
            "type": "object",
            "properties": {
                "change24h": {"type": "number"},
                "marketCap": {"type": "number"},
                "price": {"type": "number"},
                "volume24h": {"type": "number"}
            }
        },
        "model.MessageRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"},
                "userId": {"type": "integer"},
                "username": {"type": "string"}
            }
        },
        "model.Reply": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "dashboard": {"$ref": "#/definitions/model.DashboardResponse"},
                "newUser": {"type": "boolean"},
                "publicKey": {"type": "string"},
                "status": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "model.SecretResponse": {
            "type": "object",
            "properties": {
                "importKind": {"type": "string"},
                "secret": {"type": "string"}
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
	Title:            "Wallet Link API",
	Description:      "Links Solana wallets to chat users from a seed phrase or private key.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
