package users_controllers

import (
	"net/http"

	users_dto "teamboard/internal/features/users/dto"
	users_middleware "teamboard/internal/features/users/middleware"
	users_services "teamboard/internal/features/users/services"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	settingsService *users_services.SettingsService
}

func (c *SettingsController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/users/settings", c.GetSettings)
	router.PUT("/users/settings", c.UpdateSettings)
}

// GetSettings
// @Summary Get workspace settings
// @Description Get workspace-wide user settings
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users_models.UsersSettings
// @Failure 401 {object} map[string]string
// @Router /users/settings [get]
func (c *SettingsController) GetSettings(ctx *gin.Context) {
	settings, err := c.settingsService.GetSettings()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get settings"})
		return
	}

	ctx.JSON(http.StatusOK, settings)
}

// UpdateSettings
// @Summary Update workspace settings (ADMIN only)
// @Description Update workspace-wide user settings
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body users_dto.UpdateSettingsRequestDTO true "Settings data"
// @Success 200 {object} users_models.UsersSettings
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /users/settings [put]
func (c *SettingsController) UpdateSettings(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request users_dto.UpdateSettingsRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	settings, err := c.settingsService.UpdateSettings(&request, user)
	if err != nil {
		if err.Error() == "insufficient permissions to update settings" {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, settings)
}
