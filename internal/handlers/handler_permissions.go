package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bankops-oss/maker_checker_app/internal/core/domain"
	portssvc "github.com/bankops-oss/maker_checker_app/internal/core/ports/services"
	"github.com/bankops-oss/maker_checker_app/internal/core/rules"
	"github.com/bankops-oss/maker_checker_app/internal/dto"
	"github.com/bankops-oss/maker_checker_app/internal/middleware"
)

// PermissionsHandler answers "what can I do" queries for the UI.
type PermissionsHandler struct {
	permissionService portssvc.PermissionSvcFacade
	identityService   portssvc.IdentitySvcFacade
	roles             rules.RoleTable
}

// NewPermissionsHandler creates a new PermissionsHandler.
func NewPermissionsHandler(permission portssvc.PermissionSvcFacade, identity portssvc.IdentitySvcFacade, roles rules.RoleTable) *PermissionsHandler {
	return &PermissionsHandler{
		permissionService: permission,
		identityService:   identity,
		roles:             roles,
	}
}

// registerMeRoutes sets up the routes describing the authenticated caller.
func registerMeRoutes(rg *gin.RouterGroup, permission portssvc.PermissionSvcFacade, identity portssvc.IdentitySvcFacade) {
	h := NewPermissionsHandler(permission, identity, rules.DefaultRoleTable())

	me := rg.Group("/me")
	me.GET("/permissions", h.getPermissions)
}

// getPermissions godoc
// @Summary Get the caller's effective permissions
// @Description Returns the transaction types the authenticated user may create and approve, with a per-role breakdown.
// @Tags me
// @Produce json
// @Success 200 {object} dto.PermissionsResponse
// @Failure 401 {object} ErrorResponse
// @Router /me/permissions [get]
func (h *PermissionsHandler) getPermissions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	email, ok := middleware.GetUserEmailFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	user, err := h.identityService.FindUserByEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	canCreate, canApprove, err := h.permissionService.PermissionsFor(c.Request.Context(), user)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	roleDetails := make([]dto.RolePermissionResponse, 0, len(user.Roles))
	departments := make([]string, 0, len(user.Roles))
	seen := make(map[domain.Department]bool)
	var maxSeniority domain.Seniority
	isAdmin := false
	for _, roleID := range user.Roles {
		role, exists := h.roles.Get(roleID)
		if !exists {
			continue
		}
		roleDetails = append(roleDetails, dto.RolePermissionResponse{
			Role:        role.RoleID,
			Description: role.Name,
			CanCreate:   typeStrings(role.CreatableTypes),
			CanApprove:  typeStrings(role.ApprovableTypes),
		})
		if !seen[role.Department] {
			seen[role.Department] = true
			departments = append(departments, string(role.Department))
		}
		if role.Seniority > maxSeniority {
			maxSeniority = role.Seniority
		}
		if role.IsAdmin {
			isAdmin = true
		}
	}

	c.JSON(http.StatusOK, dto.PermissionsResponse{
		Email:        user.Email,
		Name:         user.Name,
		Roles:        roleDetails,
		CanCreate:    typeStrings(canCreate),
		CanApprove:   typeStrings(canApprove),
		Departments:  departments,
		MaxSeniority: int(maxSeniority),
		IsAdmin:      isAdmin,
	})
}

func typeStrings(types []domain.TransactionType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}
