package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crowdvest/internal/handlers/business"
)

type PurchaseRequest struct {
	Buyer         string `json:"buyer" binding:"required"`
	PaymentAmount uint64 `json:"payment_amount" binding:"required"`
}

// ExecuteSale runs a purchase: payment in, advance out, vesting topped up.
func ExecuteSale(c *gin.Context) {
	var request PurchaseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := engine.ExecuteSale(business.PurchaseParams{
		SaleAddress:   c.Param("address"),
		Buyer:         request.Buyer,
		PaymentAmount: request.PaymentAmount,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
