// Package docs holds the Swagger document served under /swagger. It mirrors the
// handler annotations; regenerate it with swag whenever a route changes.
package docs

import "github.com/swaggo/swag"

//go:generate swag init --dir ../.. --generalInfo cmd/ledger_backend/main.go --output . --outputTypes go

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
        "/accounts": {
            "get": {
                "summary": "List active accounts",
                "description": "Lists active accounts ordered by code, optionally of one type",
                "tags": [
                    "accounts"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Account type",
                        "name": "type",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListAccountsResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid account type",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to list accounts",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "post": {
                "summary": "Create a new account",
                "description": "Adds an account to the chart of accounts. Codes are unique.",
                "tags": [
                    "accounts"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Account details",
                        "name": "account",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateAccountRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.AccountResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid input format or validation error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Duplicate code or unknown parent",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to create account",
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
        "/accounts/code/{code}": {
            "get": {
                "summary": "Get an account by code",
                "tags": [
                    "accounts"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Account code",
                        "name": "code",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.AccountResponse"
                        }
                    },
                    "404": {
                        "description": "Account not found",
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
        "/accounts/{id}": {
            "get": {
                "summary": "Get an account by ID",
                "tags": [
                    "accounts"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Account ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.AccountResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Account not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to retrieve account",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "put": {
                "summary": "Update an account",
                "description": "Renames an account or changes its description. Code and type are immutable.",
                "tags": [
                    "accounts"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Account ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Fields to update",
                        "name": "account",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.UpdateAccountRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.AccountResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Account not found",
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
        "/accounts/{id}/activate": {
            "post": {
                "summary": "Activate an account",
                "tags": [
                    "accounts"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Account ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Account not found",
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
        "/accounts/{id}/balance": {
            "get": {
                "summary": "Get an account balance",
                "description": "Balance of posted entries on the account's normal side. Pass asOf, or from and to, to restrict by entry date.",
                "tags": [
                    "accounts"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Account ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Balance as of date (YYYY-MM-DD)",
                        "name": "asOf",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Range start (YYYY-MM-DD)",
                        "name": "from",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Range end (YYYY-MM-DD)",
                        "name": "to",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.AccountBalanceResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid dates",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Account not found",
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
        "/accounts/{id}/deactivate": {
            "post": {
                "summary": "Deactivate an account",
                "description": "Marks an account inactive. Its balance must be zero.",
                "tags": [
                    "accounts"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Account ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Account not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Account has a non-zero balance",
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
        "/bank-accounts": {
            "get": {
                "summary": "List bank accounts",
                "tags": [
                    "bank"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Only active accounts",
                        "name": "active",
                        "in": "query",
                        "type": "boolean"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListBankAccountsResponse"
                        }
                    }
                }
            },
            "post": {
                "summary": "Register a bank account",
                "description": "The bank account mirrors an active ASSET account of the ledger",
                "tags": [
                    "bank"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Bank account details",
                        "name": "account",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateBankAccountRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.BankAccountResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Unknown or unsuitable GL account",
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
        "/bank-accounts/{id}": {
            "get": {
                "summary": "Get a bank account",
                "tags": [
                    "bank"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Bank account ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.BankAccountResponse"
                        }
                    },
                    "404": {
                        "description": "Bank account not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "put": {
                "summary": "Update a bank account",
                "tags": [
                    "bank"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Bank account ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Fields to change",
                        "name": "account",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.UpdateBankAccountRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.BankAccountResponse"
                        }
                    },
                    "422": {
                        "description": "Bank account not found",
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
        "/bank-accounts/{id}/reconciliation": {
            "get": {
                "summary": "Compare the GL balance with the reconciled bank balance",
                "tags": [
                    "bank"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Bank account ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.ReconciliationSummary"
                        }
                    },
                    "422": {
                        "description": "Bank account not found",
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
        "/bank-accounts/{id}/statements": {
            "get": {
                "summary": "List statement lines of a bank account",
                "tags": [
                    "bank"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Bank account ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "First statement date (YYYY-MM-DD)",
                        "name": "startDate",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Last statement date (YYYY-MM-DD)",
                        "name": "endDate",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Only unreconciled lines",
                        "name": "unreconciled",
                        "in": "query",
                        "type": "boolean"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListStatementLinesResponse"
                        }
                    },
                    "404": {
                        "description": "Bank account not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "post": {
                "summary": "Import bank statement lines",
                "tags": [
                    "bank"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Bank account ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Statement lines",
                        "name": "statement",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ImportStatementRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListStatementLinesResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Unknown or inactive bank account",
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
        "/bank-statements/{id}/matches": {
            "get": {
                "summary": "List journal lines a statement line could match",
                "description": "Posted lines of the bank's GL account within 7 days of the transaction date",
                "tags": [
                    "bank"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Statement line ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListMatchCandidatesResponse"
                        }
                    },
                    "422": {
                        "description": "Statement line not found",
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
        "/bank-statements/{id}/reconcile": {
            "post": {
                "summary": "Reconcile a statement line against a journal line",
                "tags": [
                    "bank"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Statement line ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Journal line to match",
                        "name": "match",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ReconcileRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.StatementLineResponse"
                        }
                    },
                    "422": {
                        "description": "Amount mismatch or line already reconciled",
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
        "/bank-statements/{id}/unreconcile": {
            "post": {
                "summary": "Clear the match of a statement line",
                "tags": [
                    "bank"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Statement line ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.StatementLineResponse"
                        }
                    },
                    "422": {
                        "description": "Statement line not found",
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
        "/currencies": {
            "get": {
                "summary": "List currencies",
                "tags": [
                    "currencies"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListCurrenciesResponse"
                        }
                    }
                }
            },
            "post": {
                "summary": "Register a currency",
                "description": "Registering a base currency demotes the previous base and fixes the new rate at 1",
                "tags": [
                    "currencies"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Currency details",
                        "name": "currency",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateCurrencyRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.CurrencyResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Currency code already exists",
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
        "/currencies/base": {
            "get": {
                "summary": "Get the base currency",
                "tags": [
                    "currencies"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.CurrencyResponse"
                        }
                    },
                    "404": {
                        "description": "No base currency",
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
        "/currencies/convert": {
            "get": {
                "summary": "Convert an amount between currencies",
                "tags": [
                    "currencies"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Amount",
                        "name": "amount",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Source currency code",
                        "name": "from",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Target currency code, base when omitted",
                        "name": "to",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ConversionResponse"
                        }
                    },
                    "404": {
                        "description": "Currency not found",
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
        "/currencies/{code}": {
            "get": {
                "summary": "Get a currency by code",
                "tags": [
                    "currencies"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Currency code",
                        "name": "code",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.CurrencyResponse"
                        }
                    },
                    "404": {
                        "description": "Currency not found",
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
        "/currencies/{code}/base": {
            "post": {
                "summary": "Make a currency the base currency",
                "tags": [
                    "currencies"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Currency code",
                        "name": "code",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.CurrencyResponse"
                        }
                    },
                    "404": {
                        "description": "Currency not found",
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
        "/currencies/{code}/exchange-rate": {
            "put": {
                "summary": "Update an exchange rate",
                "description": "The rate is units of the currency per one unit of the base currency",
                "tags": [
                    "currencies"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Currency code",
                        "name": "code",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "New rate",
                        "name": "rate",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.UpdateExchangeRateRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.CurrencyResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid rate",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Currency not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Base currency",
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
        "/customers": {
            "get": {
                "summary": "List customers",
                "tags": [
                    "customers"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.CustomerResponse"
                            }
                        }
                    }
                }
            },
            "post": {
                "summary": "Create a customer",
                "tags": [
                    "customers"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Customer details",
                        "name": "customer",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateCustomerRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.CustomerResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Customer code already exists",
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
        "/customers/{id}": {
            "get": {
                "summary": "Get a customer",
                "tags": [
                    "customers"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Customer ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.CustomerResponse"
                        }
                    },
                    "404": {
                        "description": "Customer not found",
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
        "/fiscal-years": {
            "get": {
                "summary": "List fiscal years",
                "tags": [
                    "fiscal-years"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.FiscalYearResponse"
                            }
                        }
                    }
                }
            },
            "post": {
                "summary": "Open a fiscal year",
                "tags": [
                    "fiscal-years"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Name and date range",
                        "name": "fiscalYear",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateFiscalYearRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.FiscalYearResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Overlapping or duplicate year",
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
        "/fiscal-years/for-date": {
            "get": {
                "summary": "Find the fiscal year containing a date",
                "tags": [
                    "fiscal-years"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Date (YYYY-MM-DD)",
                        "name": "asOf",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.FiscalYearResponse"
                        }
                    },
                    "404": {
                        "description": "No fiscal year contains the date",
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
        "/fiscal-years/{id}": {
            "get": {
                "summary": "Get a fiscal year",
                "tags": [
                    "fiscal-years"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Fiscal year ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.FiscalYearResponse"
                        }
                    },
                    "404": {
                        "description": "Fiscal year not found",
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
        "/fiscal-years/{id}/close": {
            "post": {
                "summary": "Close a fiscal year",
                "description": "Closed years reject postings when the fiscal year guard is enabled",
                "tags": [
                    "fiscal-years"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Fiscal year ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.FiscalYearResponse"
                        }
                    },
                    "422": {
                        "description": "Already closed",
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
        "/healthz": {
            "get": {
                "summary": "Liveness probe",
                "tags": [
                    "root"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
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
        "/invoices": {
            "get": {
                "summary": "List invoices",
                "tags": [
                    "invoices"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Invoice status",
                        "name": "status",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Customer ID",
                        "name": "customerID",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListInvoicesResponse"
                        }
                    }
                }
            },
            "post": {
                "summary": "Create a draft invoice",
                "tags": [
                    "invoices"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Invoice and items",
                        "name": "invoice",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateInvoiceRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.InvoiceResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Unknown customer",
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
        "/invoices/mark-overdue": {
            "post": {
                "summary": "Reclassify overdue invoices",
                "description": "Moves sent invoices due before today to OVERDUE",
                "tags": [
                    "invoices"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.MarkOverdueResponse"
                        }
                    }
                }
            }
        },
        "/invoices/{id}": {
            "get": {
                "summary": "Get an invoice",
                "tags": [
                    "invoices"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Invoice ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.InvoiceResponse"
                        }
                    },
                    "404": {
                        "description": "Invoice not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "put": {
                "summary": "Update a draft invoice",
                "tags": [
                    "invoices"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Invoice ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Replacement fields and items",
                        "name": "invoice",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.UpdateInvoiceRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.InvoiceResponse"
                        }
                    },
                    "422": {
                        "description": "Invoice is not a draft",
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
        "/invoices/{id}/cancel": {
            "post": {
                "summary": "Cancel an invoice",
                "description": "Cancels an unpaid invoice and voids its posted receivable entry",
                "tags": [
                    "invoices"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Invoice ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.InvoiceResponse"
                        }
                    },
                    "422": {
                        "description": "Invoice is paid or already cancelled",
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
        "/invoices/{id}/pay": {
            "post": {
                "summary": "Record payment of an invoice",
                "description": "Posts debit cash / credit receivables for the invoice total on the payment date",
                "tags": [
                    "invoices"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Invoice ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Payment date",
                        "name": "payment",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.MarkInvoicePaidRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.InvoiceResponse"
                        }
                    },
                    "422": {
                        "description": "Invoice is not sent or overdue",
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
        "/invoices/{id}/send": {
            "post": {
                "summary": "Send an invoice",
                "description": "Posts debit receivables / credit revenue for the invoice total and marks it sent",
                "tags": [
                    "invoices"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Invoice ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.InvoiceResponse"
                        }
                    },
                    "422": {
                        "description": "Invoice is not a draft",
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
        "/journal-entries": {
            "get": {
                "summary": "List journal entries",
                "description": "Lists entries newest first with token pagination",
                "tags": [
                    "journal-entries"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Entry status",
                        "name": "status",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Earliest entry date (YYYY-MM-DD)",
                        "name": "fromDate",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Latest entry date (YYYY-MM-DD)",
                        "name": "toDate",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Page size",
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "description": "Token from the previous page",
                        "name": "nextToken",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListJournalEntriesResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid query",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "post": {
                "summary": "Create a journal entry",
                "description": "Creates a balanced draft entry. With post=true the entry is posted in the same transaction.",
                "tags": [
                    "journal-entries"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Entry and lines",
                        "name": "entry",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateJournalEntryRequest"
                        }
                    },
                    {
                        "description": "Post immediately",
                        "name": "post",
                        "in": "query",
                        "type": "boolean"
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.JournalEntryResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Unbalanced entry or unusable account",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to create journal entry",
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
        "/journal-entries/number/{number}": {
            "get": {
                "summary": "Get a journal entry by number",
                "tags": [
                    "journal-entries"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Entry number, e.g. JE-202601-0001",
                        "name": "number",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.JournalEntryResponse"
                        }
                    },
                    "404": {
                        "description": "Entry not found",
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
        "/journal-entries/{id}": {
            "delete": {
                "summary": "Delete a draft journal entry",
                "tags": [
                    "journal-entries"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Entry ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Entry not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Entry is not a draft",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "get": {
                "summary": "Get a journal entry",
                "tags": [
                    "journal-entries"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Entry ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.JournalEntryResponse"
                        }
                    },
                    "404": {
                        "description": "Entry not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "put": {
                "summary": "Update a draft journal entry",
                "tags": [
                    "journal-entries"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Entry ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Replacement fields and lines",
                        "name": "entry",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.UpdateJournalEntryRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.JournalEntryResponse"
                        }
                    },
                    "404": {
                        "description": "Entry not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Entry is not a draft",
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
        "/journal-entries/{id}/post": {
            "post": {
                "summary": "Post a draft journal entry",
                "tags": [
                    "journal-entries"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Entry ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.JournalEntryResponse"
                        }
                    },
                    "404": {
                        "description": "Entry not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Entry cannot be posted",
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
        "/journal-entries/{id}/void": {
            "post": {
                "summary": "Void a posted journal entry",
                "tags": [
                    "journal-entries"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Entry ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.JournalEntryResponse"
                        }
                    },
                    "404": {
                        "description": "Entry not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Entry cannot be voided",
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
        "/reports/balance-sheet": {
            "get": {
                "summary": "Generate balance sheet report",
                "description": "Assets, liabilities, equity and retained earnings as of a date",
                "tags": [
                    "reports"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Report date (YYYY-MM-DD)",
                        "name": "asOf",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.BalanceSheetResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to generate report",
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
        "/reports/dashboard": {
            "get": {
                "summary": "Ledger dashboard",
                "description": "Totals, month-to-date income, cash and receivables, drafts and overdue invoices",
                "tags": [
                    "reports"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Report date (YYYY-MM-DD)",
                        "name": "asOf",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Dashboard"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
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
        "/reports/general-ledger/{accountID}": {
            "get": {
                "summary": "Generate general ledger for an account",
                "tags": [
                    "reports"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Account ID",
                        "name": "accountID",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Start date (YYYY-MM-DD)",
                        "name": "from",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "End date (YYYY-MM-DD)",
                        "name": "to",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.GeneralLedgerResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Account not found",
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
        "/reports/profit-and-loss": {
            "get": {
                "summary": "Generate profit and loss report",
                "description": "Revenue and expense activity for a period, both dates inclusive",
                "tags": [
                    "reports"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Start date (YYYY-MM-DD)",
                        "name": "from",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "End date (YYYY-MM-DD)",
                        "name": "to",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ProfitAndLossResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to generate report",
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
        "/reports/trial-balance": {
            "get": {
                "summary": "Generate trial balance report",
                "description": "Lists every account with a non-zero balance as of a date in debit and credit columns. Inactive accounts still holding a balance on that date are included; zero-balance accounts are omitted.",
                "tags": [
                    "reports"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Report date (YYYY-MM-DD)",
                        "name": "asOf",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.TrialBalanceResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to generate report",
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
        "domain.Dashboard": {
            "type": "object",
            "properties": {
                "asOfDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "totalAssets": {
                    "type": "string",
                    "example": "0.00"
                },
                "totalLiabilities": {
                    "type": "string",
                    "example": "0.00"
                },
                "totalEquity": {
                    "type": "string",
                    "example": "0.00"
                },
                "monthRevenue": {
                    "type": "string",
                    "example": "0.00"
                },
                "monthExpenses": {
                    "type": "string",
                    "example": "0.00"
                },
                "monthNetIncome": {
                    "type": "string",
                    "example": "0.00"
                },
                "cashBalance": {
                    "type": "string",
                    "example": "0.00"
                },
                "receivablesBalance": {
                    "type": "string",
                    "example": "0.00"
                },
                "pendingDraftEntries": {
                    "type": "integer"
                },
                "overdueInvoices": {
                    "type": "integer"
                },
                "overdueAmount": {
                    "type": "string",
                    "example": "0.00"
                }
            }
        },
        "domain.GeneralLedgerLine": {
            "type": "object",
            "properties": {
                "entryID": {
                    "type": "string"
                },
                "entryNumber": {
                    "type": "string"
                },
                "entryDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "reference": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "debit": {
                    "type": "string",
                    "example": "0.00"
                },
                "credit": {
                    "type": "string",
                    "example": "0.00"
                },
                "runningBalance": {
                    "type": "string",
                    "example": "0.00"
                }
            }
        },
        "domain.ReconciliationSummary": {
            "type": "object",
            "properties": {
                "bankAccountID": {
                    "type": "string"
                },
                "openingBalance": {
                    "type": "string",
                    "example": "0.00"
                },
                "reconciledBalance": {
                    "type": "string",
                    "example": "0.00",
                    "description": "opening + reconciled lines"
                },
                "glBalance": {
                    "type": "string",
                    "example": "0.00"
                },
                "difference": {
                    "type": "string",
                    "example": "0.00",
                    "description": "GL minus reconciled"
                },
                "unreconciledCount": {
                    "type": "integer"
                }
            }
        },
        "dto.AccountAmountResponse": {
            "type": "object",
            "properties": {
                "accountID": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "amount": {
                    "type": "string",
                    "example": "0.00"
                }
            }
        },
        "dto.AccountBalanceResponse": {
            "type": "object",
            "properties": {
                "accountID": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                },
                "balance": {
                    "type": "string",
                    "example": "0.00"
                },
                "asOfDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "startDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "endDate": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "dto.AccountResponse": {
            "type": "object",
            "properties": {
                "accountID": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "accountType": {
                    "type": "string"
                },
                "normalBalance": {
                    "type": "string"
                },
                "parentAccountID": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "currencyCode": {
                    "type": "string"
                },
                "isActive": {
                    "type": "boolean"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "createdBy": {
                    "type": "string"
                },
                "lastUpdatedAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "lastUpdatedBy": {
                    "type": "string"
                }
            }
        },
        "dto.BalanceSheetResponse": {
            "type": "object",
            "properties": {
                "asOf": {
                    "type": "string"
                },
                "assets": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.AccountAmountResponse"
                    }
                },
                "liabilities": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.AccountAmountResponse"
                    }
                },
                "equity": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.AccountAmountResponse"
                    }
                },
                "totalAssets": {
                    "type": "string",
                    "example": "0.00"
                },
                "totalLiabilities": {
                    "type": "string",
                    "example": "0.00"
                },
                "totalEquity": {
                    "type": "string",
                    "example": "0.00"
                },
                "priorPeriodEarnings": {
                    "type": "string",
                    "example": "0.00"
                },
                "currentPeriodEarnings": {
                    "type": "string",
                    "example": "0.00"
                },
                "retainedEarnings": {
                    "type": "string",
                    "example": "0.00"
                },
                "isBalanced": {
                    "type": "boolean"
                }
            }
        },
        "dto.BankAccountResponse": {
            "type": "object",
            "properties": {
                "bankAccountID": {
                    "type": "string"
                },
                "accountName": {
                    "type": "string"
                },
                "bankName": {
                    "type": "string"
                },
                "accountNumber": {
                    "type": "string"
                },
                "currencyCode": {
                    "type": "string"
                },
                "glAccountID": {
                    "type": "string"
                },
                "openingBalance": {
                    "type": "string",
                    "example": "0.00"
                },
                "isActive": {
                    "type": "boolean"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "createdBy": {
                    "type": "string"
                }
            }
        },
        "dto.ConversionResponse": {
            "type": "object",
            "properties": {
                "amount": {
                    "type": "string",
                    "example": "0.00"
                },
                "from": {
                    "type": "string"
                },
                "to": {
                    "type": "string"
                },
                "converted": {
                    "type": "string",
                    "example": "0.00"
                }
            }
        },
        "dto.CreateAccountRequest": {
            "type": "object",
            "required": [
                "code",
                "name",
                "accountType"
            ],
            "properties": {
                "code": {
                    "type": "string",
                    "maxLength": 20
                },
                "name": {
                    "type": "string",
                    "maxLength": 100
                },
                "accountType": {
                    "type": "string",
                    "enum": [
                        "ASSET",
                        "LIABILITY",
                        "EQUITY",
                        "REVENUE",
                        "EXPENSE"
                    ]
                },
                "parentAccountID": {
                    "type": "string",
                    "description": "Optional"
                },
                "description": {
                    "type": "string",
                    "maxLength": 500
                },
                "currencyCode": {
                    "type": "string",
                    "minLength": 3,
                    "maxLength": 3,
                    "description": "Optional, must be registered"
                }
            }
        },
        "dto.CreateBankAccountRequest": {
            "type": "object",
            "required": [
                "accountName",
                "glAccountID"
            ],
            "properties": {
                "accountName": {
                    "type": "string",
                    "maxLength": 100
                },
                "bankName": {
                    "type": "string",
                    "maxLength": 100
                },
                "accountNumber": {
                    "type": "string",
                    "maxLength": 50
                },
                "currencyCode": {
                    "type": "string",
                    "minLength": 3,
                    "maxLength": 3
                },
                "glAccountID": {
                    "type": "string",
                    "description": "Active ASSET account"
                },
                "openingBalance": {
                    "type": "string",
                    "example": "0.00"
                }
            }
        },
        "dto.CreateCurrencyRequest": {
            "type": "object",
            "required": [
                "code",
                "name"
            ],
            "properties": {
                "code": {
                    "type": "string",
                    "minLength": 3,
                    "maxLength": 3
                },
                "name": {
                    "type": "string",
                    "maxLength": 50
                },
                "symbol": {
                    "type": "string",
                    "maxLength": 5
                },
                "exchangeRate": {
                    "type": "string",
                    "example": "0.00"
                },
                "isBase": {
                    "type": "boolean"
                }
            }
        },
        "dto.CreateCustomerRequest": {
            "type": "object",
            "required": [
                "code",
                "name"
            ],
            "properties": {
                "code": {
                    "type": "string",
                    "maxLength": 20
                },
                "name": {
                    "type": "string",
                    "maxLength": 200
                },
                "email": {
                    "type": "string"
                },
                "address": {
                    "type": "string",
                    "maxLength": 500
                }
            }
        },
        "dto.CreateFiscalYearRequest": {
            "type": "object",
            "required": [
                "name",
                "startDate",
                "endDate"
            ],
            "properties": {
                "name": {
                    "type": "string",
                    "maxLength": 50
                },
                "startDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "endDate": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "dto.CreateInvoiceRequest": {
            "type": "object",
            "required": [
                "customerID",
                "invoiceDate",
                "dueDate",
                "items"
            ],
            "properties": {
                "customerID": {
                    "type": "string"
                },
                "currencyCode": {
                    "type": "string",
                    "minLength": 3,
                    "maxLength": 3
                },
                "invoiceDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "dueDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.InvoiceItemRequest"
                    }
                },
                "taxAmount": {
                    "type": "string",
                    "example": "0.00"
                },
                "notes": {
                    "type": "string",
                    "maxLength": 1000
                }
            }
        },
        "dto.CreateJournalEntryRequest": {
            "type": "object",
            "required": [
                "entryDate",
                "description",
                "lines"
            ],
            "properties": {
                "entryDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "description": {
                    "type": "string",
                    "maxLength": 500
                },
                "reference": {
                    "type": "string",
                    "maxLength": 100
                },
                "lines": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.JournalLineRequest"
                    }
                }
            }
        },
        "dto.CurrencyResponse": {
            "type": "object",
            "properties": {
                "currencyID": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "symbol": {
                    "type": "string"
                },
                "exchangeRate": {
                    "type": "string",
                    "example": "0.00"
                },
                "isBase": {
                    "type": "boolean"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "createdBy": {
                    "type": "string"
                },
                "lastUpdatedAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "lastUpdatedBy": {
                    "type": "string"
                }
            }
        },
        "dto.CustomerResponse": {
            "type": "object",
            "properties": {
                "customerID": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "address": {
                    "type": "string"
                },
                "isActive": {
                    "type": "boolean"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "dto.FiscalYearResponse": {
            "type": "object",
            "properties": {
                "fiscalYearID": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "startDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "endDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "isClosed": {
                    "type": "boolean"
                },
                "closedAt": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "dto.GeneralLedgerResponse": {
            "type": "object",
            "properties": {
                "account": {
                    "$ref": "#/definitions/dto.AccountAmountResponse"
                },
                "fromDate": {
                    "type": "string"
                },
                "toDate": {
                    "type": "string"
                },
                "openingBalance": {
                    "type": "string",
                    "example": "0.00"
                },
                "lines": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.GeneralLedgerLine"
                    }
                },
                "totalDebit": {
                    "type": "string",
                    "example": "0.00"
                },
                "totalCredit": {
                    "type": "string",
                    "example": "0.00"
                },
                "closingBalance": {
                    "type": "string",
                    "example": "0.00"
                }
            }
        },
        "dto.ImportStatementRequest": {
            "type": "object",
            "required": [
                "lines"
            ],
            "properties": {
                "lines": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.StatementLineRequest"
                    }
                }
            }
        },
        "dto.InvoiceItemRequest": {
            "type": "object",
            "required": [
                "description"
            ],
            "properties": {
                "description": {
                    "type": "string",
                    "maxLength": 255
                },
                "quantity": {
                    "type": "string",
                    "example": "0.00"
                },
                "unitPrice": {
                    "type": "string",
                    "example": "0.00"
                }
            }
        },
        "dto.InvoiceItemResponse": {
            "type": "object",
            "properties": {
                "lineNumber": {
                    "type": "integer"
                },
                "description": {
                    "type": "string"
                },
                "quantity": {
                    "type": "string",
                    "example": "0.00"
                },
                "unitPrice": {
                    "type": "string",
                    "example": "0.00"
                },
                "amount": {
                    "type": "string",
                    "example": "0.00"
                }
            }
        },
        "dto.InvoiceResponse": {
            "type": "object",
            "properties": {
                "invoiceID": {
                    "type": "string"
                },
                "invoiceNumber": {
                    "type": "string"
                },
                "customerID": {
                    "type": "string"
                },
                "currencyCode": {
                    "type": "string"
                },
                "invoiceDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "dueDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "status": {
                    "type": "string"
                },
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.InvoiceItemResponse"
                    }
                },
                "subtotal": {
                    "type": "string",
                    "example": "0.00"
                },
                "taxAmount": {
                    "type": "string",
                    "example": "0.00"
                },
                "totalAmount": {
                    "type": "string",
                    "example": "0.00"
                },
                "paidAmount": {
                    "type": "string",
                    "example": "0.00"
                },
                "paidDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "notes": {
                    "type": "string"
                },
                "journalEntryID": {
                    "type": "string"
                },
                "paymentEntryID": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "createdBy": {
                    "type": "string"
                }
            }
        },
        "dto.JournalEntryResponse": {
            "type": "object",
            "properties": {
                "entryID": {
                    "type": "string"
                },
                "entryNumber": {
                    "type": "string"
                },
                "entryDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "description": {
                    "type": "string"
                },
                "reference": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "postedAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "totalDebit": {
                    "type": "string",
                    "example": "0.00"
                },
                "totalCredit": {
                    "type": "string",
                    "example": "0.00"
                },
                "lines": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.JournalLineResponse"
                    }
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "createdBy": {
                    "type": "string"
                }
            }
        },
        "dto.JournalLineRequest": {
            "type": "object",
            "required": [
                "accountID"
            ],
            "properties": {
                "accountID": {
                    "type": "string"
                },
                "debitAmount": {
                    "type": "string",
                    "example": "0.00"
                },
                "creditAmount": {
                    "type": "string",
                    "example": "0.00"
                },
                "description": {
                    "type": "string",
                    "maxLength": 255
                }
            }
        },
        "dto.JournalLineResponse": {
            "type": "object",
            "properties": {
                "lineID": {
                    "type": "string"
                },
                "lineNumber": {
                    "type": "integer"
                },
                "accountID": {
                    "type": "string"
                },
                "debitAmount": {
                    "type": "string",
                    "example": "0.00"
                },
                "creditAmount": {
                    "type": "string",
                    "example": "0.00"
                },
                "description": {
                    "type": "string"
                }
            }
        },
        "dto.ListAccountsResponse": {
            "type": "object",
            "properties": {
                "accounts": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.AccountResponse"
                    }
                }
            }
        },
        "dto.ListBankAccountsResponse": {
            "type": "object",
            "properties": {
                "bankAccounts": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.BankAccountResponse"
                    }
                }
            }
        },
        "dto.ListCurrenciesResponse": {
            "type": "object",
            "properties": {
                "currencies": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.CurrencyResponse"
                    }
                }
            }
        },
        "dto.ListInvoicesResponse": {
            "type": "object",
            "properties": {
                "invoices": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.InvoiceResponse"
                    }
                }
            }
        },
        "dto.ListJournalEntriesResponse": {
            "type": "object",
            "properties": {
                "entries": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.JournalEntryResponse"
                    }
                },
                "nextToken": {
                    "type": "string"
                }
            }
        },
        "dto.ListMatchCandidatesResponse": {
            "type": "object",
            "properties": {
                "statementLineID": {
                    "type": "string"
                },
                "candidates": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.MatchCandidateResponse"
                    }
                }
            }
        },
        "dto.ListStatementLinesResponse": {
            "type": "object",
            "properties": {
                "lines": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.StatementLineResponse"
                    }
                }
            }
        },
        "dto.MarkInvoicePaidRequest": {
            "type": "object",
            "required": [
                "paymentDate"
            ],
            "properties": {
                "paymentDate": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "dto.MarkOverdueResponse": {
            "type": "object",
            "properties": {
                "updated": {
                    "type": "integer"
                }
            }
        },
        "dto.MatchCandidateResponse": {
            "type": "object",
            "properties": {
                "journalLineID": {
                    "type": "string"
                },
                "entryID": {
                    "type": "string"
                },
                "entryNumber": {
                    "type": "string"
                },
                "entryDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "description": {
                    "type": "string"
                },
                "debitAmount": {
                    "type": "string",
                    "example": "0.00"
                },
                "creditAmount": {
                    "type": "string",
                    "example": "0.00"
                },
                "amountMatches": {
                    "type": "boolean"
                }
            }
        },
        "dto.ProfitAndLossResponse": {
            "type": "object",
            "properties": {
                "fromDate": {
                    "type": "string"
                },
                "toDate": {
                    "type": "string"
                },
                "revenue": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.AccountAmountResponse"
                    }
                },
                "expenses": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.AccountAmountResponse"
                    }
                },
                "totalRevenue": {
                    "type": "string",
                    "example": "0.00"
                },
                "totalExpenses": {
                    "type": "string",
                    "example": "0.00"
                },
                "netIncome": {
                    "type": "string",
                    "example": "0.00"
                }
            }
        },
        "dto.ReconcileRequest": {
            "type": "object",
            "required": [
                "journalLineID"
            ],
            "properties": {
                "journalLineID": {
                    "type": "string"
                }
            }
        },
        "dto.StatementLineRequest": {
            "type": "object",
            "required": [
                "statementDate"
            ],
            "properties": {
                "statementDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "transactionDate": {
                    "type": "string",
                    "format": "date-time",
                    "description": "Defaults to statementDate"
                },
                "description": {
                    "type": "string",
                    "maxLength": 255
                },
                "reference": {
                    "type": "string",
                    "maxLength": 100
                },
                "debitAmount": {
                    "type": "string",
                    "example": "0.00"
                },
                "creditAmount": {
                    "type": "string",
                    "example": "0.00"
                }
            }
        },
        "dto.StatementLineResponse": {
            "type": "object",
            "properties": {
                "statementLineID": {
                    "type": "string"
                },
                "bankAccountID": {
                    "type": "string"
                },
                "statementDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "transactionDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "description": {
                    "type": "string"
                },
                "reference": {
                    "type": "string"
                },
                "debitAmount": {
                    "type": "string",
                    "example": "0.00"
                },
                "creditAmount": {
                    "type": "string",
                    "example": "0.00"
                },
                "netAmount": {
                    "type": "string",
                    "example": "0.00"
                },
                "isReconciled": {
                    "type": "boolean"
                },
                "matchedLineID": {
                    "type": "string"
                },
                "importedAt": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "dto.TrialBalanceResponse": {
            "type": "object",
            "properties": {
                "asOf": {
                    "type": "string"
                },
                "rows": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.TrialBalanceRowResponse"
                    }
                },
                "debit": {
                    "type": "string",
                    "example": "0.00"
                },
                "credit": {
                    "type": "string",
                    "example": "0.00"
                },
                "isBalanced": {
                    "type": "boolean"
                }
            }
        },
        "dto.TrialBalanceRowResponse": {
            "type": "object",
            "properties": {
                "accountID": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                },
                "accountName": {
                    "type": "string"
                },
                "accountType": {
                    "type": "string"
                },
                "debit": {
                    "type": "string",
                    "example": "0.00"
                },
                "credit": {
                    "type": "string",
                    "example": "0.00"
                }
            }
        },
        "dto.UpdateAccountRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string",
                    "maxLength": 100
                },
                "description": {
                    "type": "string",
                    "maxLength": 500
                }
            }
        },
        "dto.UpdateBankAccountRequest": {
            "type": "object",
            "properties": {
                "accountName": {
                    "type": "string",
                    "maxLength": 100
                },
                "bankName": {
                    "type": "string",
                    "maxLength": 100
                },
                "accountNumber": {
                    "type": "string",
                    "maxLength": 50
                },
                "isActive": {
                    "type": "boolean"
                }
            }
        },
        "dto.UpdateExchangeRateRequest": {
            "type": "object",
            "properties": {
                "exchangeRate": {
                    "type": "string",
                    "example": "0.00"
                }
            }
        },
        "dto.UpdateInvoiceRequest": {
            "type": "object",
            "required": [
                "customerID",
                "invoiceDate",
                "dueDate",
                "items"
            ],
            "properties": {
                "customerID": {
                    "type": "string"
                },
                "currencyCode": {
                    "type": "string",
                    "minLength": 3,
                    "maxLength": 3
                },
                "invoiceDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "dueDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.InvoiceItemRequest"
                    }
                },
                "taxAmount": {
                    "type": "string",
                    "example": "0.00"
                },
                "notes": {
                    "type": "string",
                    "maxLength": 1000
                }
            }
        },
        "dto.UpdateJournalEntryRequest": {
            "type": "object",
            "required": [
                "entryDate",
                "description",
                "lines"
            ],
            "properties": {
                "entryDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "description": {
                    "type": "string",
                    "maxLength": 500
                },
                "reference": {
                    "type": "string",
                    "maxLength": 100
                },
                "lines": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.JournalLineRequest"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "security": [
        {
            "BearerAuth": []
        }
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Ledger Core API",
	Description:      "Double-entry bookkeeping ledger: chart of accounts, journal entries, invoicing, currencies, bank reconciliation and financial reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
