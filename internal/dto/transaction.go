package dto

import (
	"time"

	"github.com/bankops-oss/maker_checker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the payload for submitting a new transaction.
// The maker is the authenticated caller, never part of the payload.
type CreateTransactionRequest struct {
	Type    domain.TransactionType `json:"type" binding:"required,txntype"`
	Amount  decimal.Decimal        `json:"amount"`
	Details map[string]string      `json:"details,omitempty"`
}

// SubmitTransactionResponse is returned after a successful submission.
type SubmitTransactionResponse struct {
	TransactionID string `json:"transactionID"`
	WorkflowName  string `json:"workflowName"`
	Status        string `json:"status"`
}

// DecisionRequest is the payload for an approve/reject decision.
type DecisionRequest struct {
	Decision domain.Decision `json:"decision" binding:"required,oneof=APPROVE REJECT"`
	Comments string          `json:"comments,omitempty"`
}

// DecisionResponse reports the transaction state after a decision.
type DecisionResponse struct {
	TransactionID string `json:"transactionID"`
	Status        string `json:"status"`
	Message       string `json:"message"`
}

// ApprovalResponse is one recorded checker decision on a stage.
type ApprovalResponse struct {
	UserID    string    `json:"userID"`
	UserName  string    `json:"userName"`
	Decision  string    `json:"decision"`
	Timestamp time.Time `json:"timestamp"`
	Comments  string    `json:"comments,omitempty"`
}

// StageResponse is one approval stage of a transaction.
type StageResponse struct {
	Stage       string             `json:"stage"`
	Roles       []string           `json:"roles"`
	Required    int                `json:"required"`
	Description string             `json:"description,omitempty"`
	Status      string             `json:"status"`
	Approvals   []ApprovalResponse `json:"approvals"`
}

// HistoryEntryResponse is one audit record of a transaction.
type HistoryEntryResponse struct {
	Action    string    `json:"action"`
	UserID    string    `json:"userID,omitempty"`
	UserName  string    `json:"userName,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Comments  string    `json:"comments,omitempty"`
}

// ProgressResponse summarises workflow completion for a transaction.
type ProgressResponse struct {
	TotalStages     int     `json:"totalStages"`
	CompletedStages int     `json:"completedStages"`
	CurrentStage    int     `json:"currentStage"`
	PercentComplete float64 `json:"percentComplete"`
	IsComplete      bool    `json:"isComplete"`
}

// TransactionResponse is the full representation of a transaction.
type TransactionResponse struct {
	TransactionID     string                 `json:"transactionID"`
	Type              string                 `json:"type"`
	Amount            decimal.Decimal        `json:"amount"`
	Details           map[string]string      `json:"details,omitempty"`
	WorkflowName      string                 `json:"workflowName"`
	Status            string                 `json:"status"`
	CurrentStageIndex int                    `json:"currentStageIndex"`
	Stages            []StageResponse        `json:"stages"`
	History           []HistoryEntryResponse `json:"history"`
	Progress          ProgressResponse       `json:"progress"`
	CreatedBy         string                 `json:"createdBy"`
	CreatedAt         time.Time              `json:"createdAt"`
}

// ListTransactionsResponse wraps a list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	stages := make([]StageResponse, len(txn.Stages))
	for i, s := range txn.Stages {
		approvals := make([]ApprovalResponse, len(s.Approvals))
		for j, a := range s.Approvals {
			approvals[j] = ApprovalResponse{
				UserID:    a.UserID,
				UserName:  a.UserName,
				Decision:  string(a.Decision),
				Timestamp: a.Timestamp,
				Comments:  a.Comments,
			}
		}
		stages[i] = StageResponse{
			Stage:       s.Label,
			Roles:       s.EligibleRoles,
			Required:    s.RequiredApprovals,
			Description: s.Description,
			Status:      string(s.Status),
			Approvals:   approvals,
		}
	}

	history := make([]HistoryEntryResponse, len(txn.History))
	for i, h := range txn.History {
		history[i] = HistoryEntryResponse{
			Action:    h.Action,
			UserID:    h.UserID,
			UserName:  h.UserName,
			Timestamp: h.Timestamp,
			Comments:  h.Comments,
		}
	}

	progress := txn.WorkflowProgress()

	return TransactionResponse{
		TransactionID:     txn.TransactionID,
		Type:              string(txn.Type),
		Amount:            txn.Amount,
		Details:           txn.Details,
		WorkflowName:      txn.WorkflowName,
		Status:            string(txn.Status),
		CurrentStageIndex: txn.CurrentStageIndex,
		Stages:            stages,
		History:           history,
		Progress: ProgressResponse{
			TotalStages:     progress.TotalStages,
			CompletedStages: progress.CompletedStages,
			CurrentStage:    progress.CurrentStage,
			PercentComplete: progress.PercentComplete,
			IsComplete:      progress.IsComplete,
		},
		CreatedBy: txn.CreatedBy,
		CreatedAt: txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}
