package routes

import (
	"crowdvest/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupVestingRoutes sets up all routes related to vesting position management
func SetupVestingRoutes(r *gin.Engine) {
	vesting := r.Group("/vesting")
	{
		vesting.GET("", handlers.GetVesting)
		vesting.POST("/init", handlers.InitVesting)
		vesting.POST("/claim", handlers.Claim)
		vesting.POST("/close", handlers.CloseVesting)
	}
}
