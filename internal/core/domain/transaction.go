package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the business operation a transaction represents.
// It selects which workflow rule set applies.
type TransactionType string

const (
	Deposit          TransactionType = "DEPOSIT"
	JournalEntry     TransactionType = "JOURNAL_ENTRY"
	Payment          TransactionType = "PAYMENT"
	LoanDisbursement TransactionType = "LOAN_DISBURSEMENT"
)

// AllTransactionTypes lists every supported transaction type.
var AllTransactionTypes = []TransactionType{Deposit, JournalEntry, Payment, LoanDisbursement}

// Decision is a checker's verdict on the current stage of a transaction.
type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

// TransactionStatus is the lifecycle state of a transaction. Besides the two
// terminal values it takes the form "PENDING_<stageLabel>" for the stage
// currently awaiting approvals.
type TransactionStatus string

const (
	StatusApproved TransactionStatus = "APPROVED"
	StatusRejected TransactionStatus = "REJECTED"
)

// PendingStatus builds the status value for a transaction waiting at the given stage.
func PendingStatus(stageLabel string) TransactionStatus {
	return TransactionStatus("PENDING_" + stageLabel)
}

// IsTerminal reports whether no further decisions may be applied.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// HistoryEntry is one append-only audit record on a transaction.
type HistoryEntry struct {
	Action    string    `json:"action"`
	UserID    string    `json:"userID,omitempty"`
	UserName  string    `json:"userName,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Comments  string    `json:"comments,omitempty"`
}

// HistoryActionSubmitted is recorded once, when the maker submits the transaction.
const HistoryActionSubmitted = "SUBMITTED"

// Transaction is a financial operation moving through a maker-checker workflow.
// Stages, approvals and history are nested documents persisted as a whole record.
// Version supports compare-and-swap updates in the repository.
type Transaction struct {
	TransactionID     string            `json:"transactionID"`
	Type              TransactionType   `json:"type"`
	Amount            decimal.Decimal   `json:"amount"`
	Details           map[string]string `json:"details,omitempty"`
	WorkflowName      string            `json:"workflowName"`
	Stages            []StageInstance   `json:"stages"`
	CurrentStageIndex int               `json:"currentStageIndex"`
	Status            TransactionStatus `json:"status"`
	CreatedBy         string            `json:"createdBy"`
	CreatedAt         time.Time         `json:"createdAt"`
	History           []HistoryEntry    `json:"history"`
	Version           int64             `json:"version"`
}

// CurrentStage returns the stage at the current index if it is actively
// awaiting approvals, or nil when the transaction is terminal or the stage is
// not pending.
func (t *Transaction) CurrentStage() *StageInstance {
	if t.CurrentStageIndex < 0 || t.CurrentStageIndex >= len(t.Stages) {
		return nil
	}
	stage := &t.Stages[t.CurrentStageIndex]
	if stage.Status != StagePending {
		return nil
	}
	return stage
}

// Clone returns a deep copy of the transaction. The approval engine operates
// on copies so a rejected or partial decision never aliases the caller's value.
func (t Transaction) Clone() Transaction {
	cp := t
	cp.Stages = make([]StageInstance, len(t.Stages))
	for i, s := range t.Stages {
		cp.Stages[i] = s.clone()
	}
	cp.History = make([]HistoryEntry, len(t.History))
	copy(cp.History, t.History)
	if t.Details != nil {
		cp.Details = make(map[string]string, len(t.Details))
		for k, v := range t.Details {
			cp.Details[k] = v
		}
	}
	return cp
}

// Progress summarises how far a transaction has moved through its workflow.
type Progress struct {
	TotalStages     int     `json:"totalStages"`
	CompletedStages int     `json:"completedStages"`
	CurrentStage    int     `json:"currentStage"` // 1-based position of the active stage
	PercentComplete float64 `json:"percentComplete"`
	IsComplete      bool    `json:"isComplete"`
}

// WorkflowProgress computes the progress summary for the transaction.
func (t *Transaction) WorkflowProgress() Progress {
	total := len(t.Stages)
	completed := 0
	for _, s := range t.Stages {
		if s.Status == StageCompleted {
			completed++
		}
	}
	p := Progress{
		TotalStages:     total,
		CompletedStages: completed,
		IsComplete:      t.Status.IsTerminal(),
	}
	if t.CurrentStage() != nil {
		p.CurrentStage = t.CurrentStageIndex + 1
	} else {
		p.CurrentStage = total
	}
	if total > 0 {
		p.PercentComplete = float64(completed) / float64(total) * 100
	}
	return p
}
