package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a concurrent update was detected (version mismatch).
// Callers may reload and retry.
var ErrConflict = errors.New("conflicting concurrent update")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrUnauthenticated indicates that no authenticated user is associated with the request.
var ErrUnauthenticated = errors.New("not authenticated")

// ErrForbidden indicates the authenticated user is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not allowed")

// ErrConfiguration indicates the workflow rule tables are missing or
// inconsistent for the requested input. This is a defect in static
// configuration, not a user-facing condition.
var ErrConfiguration = errors.New("workflow configuration error")

// The four approval preconditions, checked in this order by the engine.

// ErrNoActiveStage indicates the transaction has no stage awaiting approval
// (already APPROVED or REJECTED).
var ErrNoActiveStage = errors.New("no active stage to approve")

// ErrAlreadyActed indicates the user already recorded a decision on the current stage.
var ErrAlreadyActed = errors.New("user already acted on this stage")

// ErrSelfApproval indicates the maker attempted to approve their own transaction.
var ErrSelfApproval = errors.New("maker cannot approve own transaction")

// ErrUnauthorizedRole indicates the user holds no role eligible for the current stage.
var ErrUnauthorizedRole = errors.New("user role not eligible for current stage")
