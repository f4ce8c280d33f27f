// Package swagger holds the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/start.go -o docs/swagger --packageName swagger
package swagger

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
        "/catalog/sync": {
            "post": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Pull the WooCommerce catalog and converge the local mirror. Joins a run already in progress.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "Trigger Synchronization",
                "responses": {
                    "200": {
                        "description": "Sync Report",
                        "schema": {
                            "$ref": "#/definitions/reconcile.Report"
                        }
                    },
                    "409": {
                        "description": "Run in progress on another instance",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "502": {
                        "description": "Remote catalog failure",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Mirror write failure",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                }
            }
        },
        "/catalog/sync/plan": {
            "get": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Pull the remote catalog and compute the actions a run would take, without writing.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "Preview Synchronization",
                "parameters": [
                    {
                        "type": "boolean",
                        "description": "Include per-record actions",
                        "name": "detail",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Plan",
                        "schema": {
                            "$ref": "#/definitions/reconcile.Plan"
                        }
                    },
                    "502": {
                        "description": "Remote catalog failure",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/catalog/sync/history": {
            "get": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Archived sync reports, newest first.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "Sync History",
                "parameters": [
                    {
                        "type": "integer",
                        "default": 20,
                        "description": "Maximum reports",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Reports",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/reconcile.Report"
                            }
                        }
                    },
                    "404": {
                        "description": "Archive disabled",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/catalog/stats": {
            "get": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Mirror size, remote size, category count and the last report.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "Catalog Stats",
                "responses": {
                    "200": {
                        "description": "Stats",
                        "schema": {
                            "$ref": "#/definitions/catalog.Stats"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/catalog/products": {
            "get": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Mirrored products with decoded categories, optionally filtered by category name.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "List Products",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Case-insensitive category name or slug fragment",
                        "name": "category",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Products",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/models.ProductView"
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/catalog/categories": {
            "get": {
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "description": "Distinct categories across the mirror, sorted by name.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "List Categories",
                "responses": {
                    "200": {
                        "description": "Categories",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/models.Category"
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "catalog.Stats": {
            "type": "object",
            "properties": {
                "database_count": {
                    "type": "integer"
                },
                "remote_count": {
                    "type": "integer"
                },
                "remote_error": {
                    "type": "string"
                },
                "category_count": {
                    "type": "integer"
                },
                "last_sync": {
                    "$ref": "#/definitions/reconcile.Report"
                }
            }
        },
        "models.Category": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "slug": {
                    "type": "string"
                }
            }
        },
        "models.ProductView": {
            "type": "object",
            "properties": {
                "shop_id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "price": {
                    "type": "integer"
                },
                "link": {
                    "type": "string"
                },
                "categories": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Category"
                    }
                },
                "downloadable": {
                    "type": "boolean"
                }
            }
        },
        "reconcile.Action": {
            "type": "object",
            "properties": {
                "type": {
                    "type": "string"
                },
                "key": {
                    "type": "string"
                }
            }
        },
        "reconcile.Plan": {
            "type": "object",
            "properties": {
                "adapter": {
                    "type": "string"
                },
                "deletes": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/reconcile.Action"
                    }
                },
                "inserts": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/reconcile.Action"
                    }
                },
                "updates": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/reconcile.Action"
                    }
                },
                "skipped_keys": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "summary": {
                    "$ref": "#/definitions/reconcile.PlanSummary"
                }
            }
        },
        "reconcile.PlanSummary": {
            "type": "object",
            "properties": {
                "remote_count": {
                    "type": "integer"
                },
                "mirror_count": {
                    "type": "integer"
                },
                "inserts": {
                    "type": "integer"
                },
                "updates": {
                    "type": "integer"
                },
                "deletes": {
                    "type": "integer"
                },
                "unchanged": {
                    "type": "integer"
                },
                "skipped": {
                    "type": "integer"
                }
            }
        },
        "reconcile.Report": {
            "type": "object",
            "properties": {
                "inserted": {
                    "type": "integer"
                },
                "updated": {
                    "type": "integer"
                },
                "deleted": {
                    "type": "integer"
                },
                "unchanged": {
                    "type": "integer"
                },
                "skipped": {
                    "type": "integer"
                },
                "remote_count": {
                    "type": "integer"
                },
                "mirror_count": {
                    "type": "integer"
                },
                "duration_ms": {
                    "type": "integer"
                },
                "started_at": {
                    "type": "string"
                },
                "finished_at": {
                    "type": "string"
                }
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Catalog Sync API",
	Description:      "API for synchronizing and querying the WooCommerce product mirror.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
