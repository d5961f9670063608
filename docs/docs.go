// Package docs is generated by swaggo/swag from the annotations in
// cmd/product and internal/product/delivery/http. Regenerate with
// `swag init -g cmd/product/docs.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Catalog Team",
            "email": "catalog@tair.dev"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/products": {
            "get": {
                "description": "Filters APPROVED products; every parameter is optional",
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "Search approved products",
                "parameters": [
                    {"type": "string", "description": "Name substring, case-insensitive", "name": "keyword", "in": "query"},
                    {"type": "integer", "description": "Category ID", "name": "categoryId", "in": "query"},
                    {"type": "integer", "description": "Minimum price", "name": "minPrice", "in": "query"},
                    {"type": "integer", "description": "Maximum price", "name": "maxPrice", "in": "query"},
                    {"type": "number", "description": "Minimum average rating", "name": "minRating", "in": "query"},
                    {"type": "string", "description": "price_asc | price_desc | rating_desc | rating_asc", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.ProductView"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.Response"}}
                }
            }
        },
        "/api/products/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Categories"],
                "summary": "Category hierarchy",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.CategoryNode"}}}
                }
            }
        },
        "/api/products/seller": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "List products visible to the requester",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.ProductView"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/http.Response"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["Products"],
                "summary": "Create a product in PENDING state",
                "parameters": [
                    {"description": "Product fields", "name": "product", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/http.Response"}}
                }
            }
        },
        "/api/products/{productId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "Approved product detail",
                "parameters": [
                    {"type": "integer", "description": "Product ID", "name": "productId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ProductView"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.Response"}}
                }
            }
        },
        "/api/search/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Search"],
                "summary": "Search approved products by keyword",
                "parameters": [
                    {"type": "string", "description": "Keyword", "name": "keyword", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.ProductView"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.Response"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        }
    },
    "definitions": {
        "domain.CategoryNode": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "children": {"type": "array", "items": {"$ref": "#/definitions/domain.CategoryLeaf"}}
            }
        },
        "domain.CategoryLeaf": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "domain.ProductView": {
            "type": "object",
            "properties": {
                "productId": {"type": "integer"},
                "name": {"type": "string"},
                "price": {"type": "integer"},
                "discountPrice": {"type": "integer"},
                "status": {"type": "string"},
                "categoryId": {"type": "integer"},
                "userId": {"type": "integer"},
                "stockQuantity": {"type": "integer"},
                "salesCount": {"type": "integer"},
                "categoryName": {"type": "string"},
                "categoryPath": {"type": "array", "items": {"type": "string"}},
                "userName": {"type": "string"},
                "brand": {"type": "string"},
                "reviewCount": {"type": "integer"},
                "averageRating": {"type": "number"}
            }
        },
        "http.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {},
                "error": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Bearer token. Query parameters userId, adminId and role are read only when no token is sent.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"description": "Listing lifecycle and seller inventory", "name": "Products"},
        {"description": "Keyword search, filters and autocomplete", "name": "Search"},
        {"description": "Category tree", "name": "Categories"},
        {"name": "Health"}
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8081",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Catalog Service API",
	Description:      "Seller listings, buyer search and product reviews. List and detail\nresponses carry the category path, seller name and live rating.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
