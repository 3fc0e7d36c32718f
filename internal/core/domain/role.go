package domain

// Department groups roles by organisational unit.
type Department string

const (
	DeptDeposits   Department = "DEPOSITS"
	DeptAccounting Department = "ACCOUNTING"
	DeptTreasury   Department = "TREASURY"
	DeptLoans      Department = "LOANS"
	DeptRisk       Department = "RISK"
	DeptManagement Department = "MANAGEMENT"
	DeptIT         Department = "IT"
)

// Seniority is an ordered level; higher values outrank lower ones.
type Seniority int

const (
	SeniorityJunior    Seniority = 1
	SeniorityStandard  Seniority = 2
	SenioritySenior    Seniority = 3
	SeniorityManager   Seniority = 4
	SeniorityDirector  Seniority = 5
	SeniorityExecutive Seniority = 6
)

// Role is an immutable entry in the process-wide permission table. A role's
// key (RoleID) is what users carry and what stage templates reference.
type Role struct {
	RoleID          string            `json:"roleID"`
	Name            string            `json:"name"`
	Department      Department        `json:"department"`
	Seniority       Seniority         `json:"seniority"`
	CreatableTypes  []TransactionType `json:"creatableTypes"`
	ApprovableTypes []TransactionType `json:"approvableTypes"`
	IsAdmin         bool              `json:"isAdmin"`
}

// CanCreate reports whether the role may submit transactions of the given type.
func (r Role) CanCreate(t TransactionType) bool {
	for _, ct := range r.CreatableTypes {
		if ct == t {
			return true
		}
	}
	return false
}

// CanApprove reports whether the role may act as checker for the given type.
func (r Role) CanApprove(t TransactionType) bool {
	for _, at := range r.ApprovableTypes {
		if at == t {
			return true
		}
	}
	return false
}
