package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/account-transaction-engine/src/internal/adapter/http/models"
	"github.com/api-sage/account-transaction-engine/src/internal/commons"
	"github.com/api-sage/account-transaction-engine/src/internal/logger"
)

type AccountService interface {
	GetAccount(ctx context.Context, accountNumber string) (commons.Response[models.AccountResponse], error)
	DepositFunds(ctx context.Context, req models.TransactionRequest) (commons.Response[models.TransactionResponse], error)
	WithdrawFunds(ctx context.Context, req models.TransactionRequest) (commons.Response[models.TransactionResponse], error)
}

type AccountController struct {
	service AccountService
}

func NewAccountController(service AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	register := func(pattern string, handler http.HandlerFunc) {
		var h http.Handler = handler
		if authMiddleware != nil {
			h = authMiddleware(h)
		}
		mux.Handle(pattern, h)
	}

	register("/accounts/{accountNumber}", c.getAccount)
	register("/accounts/{accountNumber}/deposit", c.deposit)
	register("/accounts/{accountNumber}/withdraw", c.withdraw)
}

// transactionBody accepts the amount either as a JSON number or a string.
type transactionBody struct {
	Amount json.Number `json:"amount"`
}

func (c *AccountController) getAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		response := commons.ErrorResponse[models.AccountResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	response, err := c.service.GetAccount(r.Context(), r.PathValue("accountNumber"))
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := errorStatus(response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) deposit(w http.ResponseWriter, r *http.Request) {
	c.transact(w, r, c.service.DepositFunds)
}

func (c *AccountController) withdraw(w http.ResponseWriter, r *http.Request) {
	c.transact(w, r, c.service.WithdrawFunds)
}

func (c *AccountController) transact(
	w http.ResponseWriter,
	r *http.Request,
	run func(ctx context.Context, req models.TransactionRequest) (commons.Response[models.TransactionResponse], error),
) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodPost {
		response := commons.ErrorResponse[models.TransactionResponse]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	var body transactionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	req := models.TransactionRequest{
		AccountNumber: r.PathValue("accountNumber"),
		Amount:        body.Amount.String(),
	}
	logRequest(r, req)

	response, err := run(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := errorStatus(response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	status := http.StatusOK
	if !response.Success {
		status = http.StatusUnprocessableEntity
	}

	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func errorStatus(message string) int {
	switch message {
	case commons.MessageValidationFailed:
		return http.StatusBadRequest
	case commons.MessageAccountNotFound:
		return http.StatusNotFound
	case commons.MessageConcurrentUpdate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
