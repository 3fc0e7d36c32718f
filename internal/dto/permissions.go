package dto

// RolePermissionResponse lists what one role may do per transaction type.
type RolePermissionResponse struct {
	Role        string   `json:"role"`
	Description string   `json:"description"`
	CanCreate   []string `json:"canCreate"`
	CanApprove  []string `json:"canApprove"`
}

// PermissionsResponse describes the calling user's effective permissions.
type PermissionsResponse struct {
	Email        string                   `json:"email"`
	Name         string                   `json:"name"`
	Roles        []RolePermissionResponse `json:"roles"`
	CanCreate    []string                 `json:"canCreate"`
	CanApprove   []string                 `json:"canApprove"`
	Departments  []string                 `json:"departments"`
	MaxSeniority int                      `json:"maxSeniority"`
	IsAdmin      bool                     `json:"isAdmin"`
}
