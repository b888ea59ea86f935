package routes

import (
	"crowdvest/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupSaleRoutes sets up all routes related to sale configuration and control
func SetupSaleRoutes(r *gin.Engine) {
	sales := r.Group("/sales")
	{
		sales.POST("", handlers.CreateSale)
		sales.GET("", handlers.ListSales)
		sales.GET("/:address", handlers.GetSale)
		sales.GET("/:address/events", handlers.ListSaleEvents)
		sales.POST("/:address/activate", handlers.ActivateSale)
		sales.POST("/:address/pause", handlers.PauseSale)
		sales.POST("/:address/authority", handlers.RotateAuthority)
		sales.POST("/:address/fund", handlers.FundSale)
		sales.POST("/:address/withdraw", handlers.WithdrawSale)
		sales.POST("/:address/purchase", handlers.ExecuteSale)
	}
}
