package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Account Transactions API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Account Transactions API",
    "version": "1.0.0"
  },
  "paths": {
    "/accounts/{accountNumber}": {
      "get": {
        "summary": "Get account",
        "security": [{"BasicAuth": []}],
        "parameters": [{"$ref": "#/components/parameters/AccountNumber"}],
        "responses": {
          "200": {"description": "Account"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Account not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/accounts/{accountNumber}/deposit": {
      "post": {
        "summary": "Deposit funds",
        "security": [{"BasicAuth": []}],
        "parameters": [{"$ref": "#/components/parameters/AccountNumber"}],
        "requestBody": {"$ref": "#/components/requestBodies/Transaction"},
        "responses": {
          "200": {"description": "Deposit accepted"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Account not found"},
          "409": {"description": "Account was modified concurrently"},
          "422": {"description": "Deposit rejected; errors lists negativeDeposit, depositLimit or creditDepositLimit"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/accounts/{accountNumber}/withdraw": {
      "post": {
        "summary": "Withdraw funds",
        "security": [{"BasicAuth": []}],
        "parameters": [{"$ref": "#/components/parameters/AccountNumber"}],
        "requestBody": {"$ref": "#/components/requestBodies/Transaction"},
        "responses": {
          "200": {"description": "Withdrawal accepted"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Account not found"},
          "409": {"description": "Account was modified concurrently"},
          "422": {"description": "Withdrawal rejected; errors lists negativeWithdrawal, singleTransactionLimit, moduloFiveBills, dailyWithdrawAmount, checkingWithdrawLimit or creditWithdrawLimit"},
          "500": {"description": "Server error"}
        }
      }
    }
  },
  "components": {
    "parameters": {
      "AccountNumber": {
        "name": "accountNumber",
        "in": "path",
        "required": true,
        "schema": {"type": "string"}
      }
    },
    "requestBodies": {
      "Transaction": {
        "required": true,
        "content": {
          "application/json": {
            "schema": {
              "type": "object",
              "required": ["amount"],
              "properties": {
                "amount": {"type": "string", "example": "50.00"}
              }
            }
          }
        }
      }
    },
    "securitySchemes": {
      "BasicAuth": {
        "type": "http",
        "scheme": "basic"
      }
    }
  }
}`
