package projects_controllers

import (
	"errors"
	"net/http"
	"strings"

	projects_dto "teamboard/internal/features/projects/dto"
	projects_policy "teamboard/internal/features/projects/policy"
	projects_services "teamboard/internal/features/projects/services"
	users_middleware "teamboard/internal/features/users/middleware"
	"teamboard/internal/util/logger"
	rate_limit "teamboard/internal/util/rate_limit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	searchRPSLimit   = 10
	searchBurstLimit = 30
)

type MembershipController struct {
	membershipService *projects_services.MembershipService
	directoryService  *projects_services.DirectoryService
	searchRateLimiter *rate_limit.RateLimiter
}

func (c *MembershipController) RegisterRoutes(router *gin.RouterGroup) {
	memberRoutes := router.Group("/projects/:id/members")

	memberRoutes.GET("", c.ListMembers)
	memberRoutes.POST("", c.AddMember)
	memberRoutes.PATCH("/:membershipId/role", c.ChangeMemberRole)
	memberRoutes.DELETE("/:membershipId", c.RemoveMember)
	memberRoutes.GET("/search", c.SearchCandidates)
}

// ListMembers
// @Summary List project members
// @Description Get the project roster with each member's directory profile and role
// @Tags project-members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} projects_dto.GetMembersResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} projects_dto.ErrorResponseDTO
// @Router /projects/{id}/members [get]
func (c *MembershipController) ListMembers(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	response, err := c.membershipService.GetMembers(projectID, user)
	if err != nil {
		respondDenialError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// AddMember
// @Summary Add member to project
// @Description Add an existing directory user to the project roster
// @Tags project-members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body projects_dto.AddMemberRequestDTO true "Member addition data"
// @Success 201 {object} projects_dto.MemberResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} projects_dto.ErrorResponseDTO
// @Failure 409 {object} projects_dto.ErrorResponseDTO
// @Router /projects/{id}/members [post]
func (c *MembershipController) AddMember(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	var request projects_dto.AddMemberRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if request.Role != nil && !request.Role.IsValid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	response, err := c.membershipService.AddMember(projectID, &request, user)
	if err != nil {
		respondDenialError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

// ChangeMemberRole
// @Summary Change member role
// @Description Change the role of an existing project member
// @Tags project-members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param membershipId path string true "Membership ID"
// @Param request body projects_dto.ChangeMemberRoleRequestDTO true "Role change data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} projects_dto.ErrorResponseDTO
// @Failure 404 {object} projects_dto.ErrorResponseDTO
// @Failure 409 {object} projects_dto.ErrorResponseDTO
// @Router /projects/{id}/members/{membershipId}/role [patch]
func (c *MembershipController) ChangeMemberRole(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	membershipID, err := uuid.Parse(ctx.Param("membershipId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid membership ID"})
		return
	}

	var request projects_dto.ChangeMemberRoleRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if !request.Role.IsValid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	if err := c.membershipService.ChangeMemberRole(projectID, membershipID, request.Role, user); err != nil {
		respondDenialError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member role changed successfully"})
}

// RemoveMember
// @Summary Remove member from project
// @Description Remove a member from the project roster
// @Tags project-members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param membershipId path string true "Membership ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} projects_dto.ErrorResponseDTO
// @Failure 404 {object} projects_dto.ErrorResponseDTO
// @Failure 409 {object} projects_dto.ErrorResponseDTO
// @Router /projects/{id}/members/{membershipId} [delete]
func (c *MembershipController) RemoveMember(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	membershipID, err := uuid.Parse(ctx.Param("membershipId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid membership ID"})
		return
	}

	if err := c.membershipService.RemoveMember(projectID, membershipID, user); err != nil {
		respondDenialError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}

// SearchCandidates
// @Summary Search member candidates
// @Description Search the user directory for users who can be added to the project
// @Tags project-members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param query query string true "Search query (2 characters minimum)"
// @Success 200 {object} projects_dto.SearchCandidatesResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} projects_dto.ErrorResponseDTO
// @Failure 429 {object} map[string]string
// @Router /projects/{id}/members/search [get]
func (c *MembershipController) SearchCandidates(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	query := strings.TrimSpace(ctx.Query("query"))
	if len(query) < 2 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Query must be at least 2 characters"})
		return
	}

	if c.searchRateLimiter != nil {
		result, err := c.searchRateLimiter.CheckRateLimit(user.ID, searchRPSLimit, searchBurstLimit)
		if err == nil && !result.Allowed {
			ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many search requests"})
			return
		}
	}

	response, err := c.directoryService.SearchCandidates(projectID, query, user)
	if err != nil {
		respondDenialError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// respondDenialError maps denial reasons to HTTP statuses. Clients
// branch on the stable code field, not on the message text. Anything
// that is not a denial is an infrastructure failure: it is logged and
// answered with an opaque 500 so internals never leak to clients.
func respondDenialError(ctx *gin.Context, err error) {
	var denial *projects_policy.DenialError
	if !errors.As(err, &denial) {
		logger.GetLogger().Error(
			"project operation failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	status := http.StatusConflict
	switch denial.Reason {
	case projects_policy.ReasonForbidden:
		status = http.StatusForbidden
	case projects_policy.ReasonMemberNotFound,
		projects_policy.ReasonProjectNotFound,
		projects_policy.ReasonUserNotFound:
		status = http.StatusNotFound
	}

	ctx.JSON(status, projects_dto.ErrorResponseDTO{
		Code:    string(denial.Reason),
		Message: denial.Message,
	})
}
