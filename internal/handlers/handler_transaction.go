package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bankops-oss/maker_checker_app/internal/core/domain"
	portsrepo "github.com/bankops-oss/maker_checker_app/internal/core/ports/repositories"
	portssvc "github.com/bankops-oss/maker_checker_app/internal/core/ports/services"
	"github.com/bankops-oss/maker_checker_app/internal/dto"
	"github.com/bankops-oss/maker_checker_app/internal/middleware"
)

// TransactionHandler handles HTTP requests for the approval workflow.
type TransactionHandler struct {
	workflowService portssvc.WorkflowSvcFacade
	identityService portssvc.IdentitySvcFacade
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(workflow portssvc.WorkflowSvcFacade, identity portssvc.IdentitySvcFacade) *TransactionHandler {
	return &TransactionHandler{
		workflowService: workflow,
		identityService: identity,
	}
}

// registerTransactionRoutes sets up the routes for transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, workflow portssvc.WorkflowSvcFacade, identity portssvc.IdentitySvcFacade) {
	h := NewTransactionHandler(workflow, identity)

	txns := rg.Group("/transactions")
	{
		txns.POST("", h.createTransaction)
		txns.GET("", h.listTransactions)
		txns.GET("/pending", h.listPending)
		txns.GET("/:transactionID", h.getTransaction)
		txns.POST("/:transactionID/decision", h.submitDecision)
	}
}

// currentUser resolves the authenticated caller against the directory.
// Writes the error response itself when resolution fails.
func (h *TransactionHandler) currentUser(c *gin.Context) (*domain.User, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	email, ok := middleware.GetUserEmailFromContext(c)
	if !ok {
		logger.Error("User email not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return nil, false
	}

	user, err := h.identityService.FindUserByEmail(c.Request.Context(), email)
	if err != nil {
		logger.Error("Authenticated user not found in directory", slog.String("email", email))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return nil, false
	}
	return user, true
}

// createTransaction godoc
// @Summary Submit a transaction for approval
// @Description Creates a transaction, resolves its approval workflow from the type and amount, and places it in the first approval stage.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction to submit"
// @Success 201 {object} dto.SubmitTransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Caller has no role permitted to create this type"
// @Router /transactions [post]
func (h *TransactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	maker, ok := h.currentUser(c)
	if !ok {
		return
	}

	txn, err := h.workflowService.SubmitTransaction(c.Request.Context(), maker, req.Type, req.Amount, req.Details)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SubmitTransactionResponse{
		TransactionID: txn.TransactionID,
		WorkflowName:  txn.WorkflowName,
		Status:        string(txn.Status),
	})
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Retrieves a transaction with its stages, approvals and history.
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} ErrorResponse
// @Router /transactions/{transactionID} [get]
func (h *TransactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	txn, err := h.workflowService.GetTransaction(c.Request.Context(), transactionID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists transactions newest first, optionally filtered by status, creator or type.
// @Tags transactions
// @Produce json
// @Param status query string false "Filter by status"
// @Param createdBy query string false "Filter by creator email"
// @Param type query string false "Filter by transaction type"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 401 {object} ErrorResponse
// @Router /transactions [get]
func (h *TransactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filter := portsrepo.ListTransactionsFilter{
		Status:    domain.TransactionStatus(c.Query("status")),
		CreatedBy: c.Query("createdBy"),
		Type:      domain.TransactionType(c.Query("type")),
	}

	txns, err := h.workflowService.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: dto.ToTransactionResponses(txns)})
}

// listPending godoc
// @Summary List transactions awaiting the caller's decision
// @Description Lists non-terminal transactions whose active stage the caller is eligible to approve or reject.
// @Tags transactions
// @Produce json
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 401 {object} ErrorResponse
// @Router /transactions/pending [get]
func (h *TransactionHandler) listPending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	txns, err := h.workflowService.ListPendingForUser(c.Request.Context(), user)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: dto.ToTransactionResponses(txns)})
}

// submitDecision godoc
// @Summary Approve or reject the active stage of a transaction
// @Description Records the caller's decision on the active approval stage. Approval may advance the workflow; rejection terminates it.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param decision body dto.DecisionRequest true "Decision"
// @Success 200 {object} dto.DecisionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Self-approval or role not eligible"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already acted, no active stage, or concurrent update"
// @Router /transactions/{transactionID}/decision [post]
func (h *TransactionHandler) submitDecision(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	var req dto.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for submitDecision", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	actor, ok := h.currentUser(c)
	if !ok {
		return
	}

	txn, err := h.workflowService.SubmitDecision(c.Request.Context(), transactionID, actor, req.Decision, req.Comments)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.DecisionResponse{
		TransactionID: txn.TransactionID,
		Status:        string(txn.Status),
		Message:       fmt.Sprintf("Decision %s recorded", req.Decision),
	})
}
