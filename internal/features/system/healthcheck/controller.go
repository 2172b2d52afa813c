package system_healthcheck

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthcheckController struct {
	healthcheckService *HealthcheckService
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/healthcheck", c.GetHealthcheck)
}

// GetHealthcheck
// @Summary Service health status
// @Description Report database, cache and host resource health
// @Tags system
// @Produce json
// @Success 200 {object} HealthStatus
// @Failure 503 {object} HealthStatus
// @Router /healthcheck [get]
func (c *HealthcheckController) GetHealthcheck(ctx *gin.Context) {
	status := c.healthcheckService.GetHealthStatus()

	httpStatus := http.StatusOK
	if status.Database == "unavailable" {
		httpStatus = http.StatusServiceUnavailable
	}

	ctx.JSON(httpStatus, status)
}
