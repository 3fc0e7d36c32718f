package domain

import "time"

// StageStatus tracks the lifecycle of a single approval stage.
type StageStatus string

const (
	StageNotStarted StageStatus = "NOT_STARTED"
	StagePending    StageStatus = "PENDING"
	StageCompleted  StageStatus = "COMPLETED"
	StageRejected   StageStatus = "REJECTED"
)

// ApprovalRecord is one checker's decision on a stage. Records are append-only
// within a stage; a REJECT record freezes the stage.
type ApprovalRecord struct {
	UserID    string    `json:"userID"` // checker's email
	UserName  string    `json:"userName"`
	Decision  Decision  `json:"decision"`
	Timestamp time.Time `json:"timestamp"`
	Comments  string    `json:"comments,omitempty"`
}

// StageInstance is a live approval gate materialized from a StageTemplate when
// the transaction is created. Exactly one stage per transaction is PENDING at a
// time unless the transaction is terminal.
type StageInstance struct {
	Label             string           `json:"stage"`
	EligibleRoles     []string         `json:"roles"`
	RequiredApprovals int              `json:"required"`
	Description       string           `json:"description,omitempty"`
	Status            StageStatus      `json:"status"`
	Approvals         []ApprovalRecord `json:"approvals"`
}

// ApproveCount returns the number of APPROVE decisions recorded on the stage.
func (s *StageInstance) ApproveCount() int {
	n := 0
	for _, a := range s.Approvals {
		if a.Decision == DecisionApprove {
			n++
		}
	}
	return n
}

// HasActed reports whether the given user already recorded a decision on this
// stage, regardless of the decision's value.
func (s *StageInstance) HasActed(userID string) bool {
	for _, a := range s.Approvals {
		if a.UserID == userID {
			return true
		}
	}
	return false
}

func (s StageInstance) clone() StageInstance {
	cp := s
	cp.EligibleRoles = make([]string, len(s.EligibleRoles))
	copy(cp.EligibleRoles, s.EligibleRoles)
	cp.Approvals = make([]ApprovalRecord, len(s.Approvals))
	copy(cp.Approvals, s.Approvals)
	return cp
}
