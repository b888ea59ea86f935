package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crowdvest/internal/handlers/business"
)

type AuthorityRequest struct {
	Authority string `json:"authority" binding:"required"`
}

type RotateAuthorityRequest struct {
	Authority    string `json:"authority" binding:"required"`
	NewAuthority string `json:"new_authority" binding:"required"`
}

type FundRequest struct {
	Source          string `json:"source" binding:"required"`
	SourceAuthority string `json:"source_authority" binding:"required"`
	Amount          uint64 `json:"amount" binding:"required"`
}

type WithdrawRequest struct {
	Authority   string `json:"authority" binding:"required"`
	Destination string `json:"destination" binding:"required"`
	// All withdraws the entire escrow balance; Amount is ignored then.
	Amount uint64 `json:"amount"`
	All    bool   `json:"all"`
}

// ActivateSale opens the sale for purchases.
func ActivateSale(c *gin.Context) {
	var request AuthorityRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := engine.ActivateSale(c.Param("address"), request.Authority); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sale activated"})
}

// PauseSale closes the sale for purchases.
func PauseSale(c *gin.Context) {
	var request AuthorityRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := engine.PauseSale(c.Param("address"), request.Authority); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sale paused"})
}

// RotateAuthority reassigns the sale authority.
func RotateAuthority(c *gin.Context) {
	var request RotateAuthorityRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := engine.RotateAuthority(c.Param("address"), request.Authority, request.NewAuthority); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Authority updated"})
}

// FundSale deposits sale tokens into the escrow.
func FundSale(c *gin.Context) {
	var request FundRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := engine.FundSale(c.Param("address"), request.Source, request.SourceAuthority, request.Amount); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Escrow funded"})
}

// WithdrawSale moves escrow tokens out to a destination.
func WithdrawSale(c *gin.Context) {
	var request WithdrawRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount := request.Amount
	if request.All {
		amount = business.WithdrawAll
	}
	withdrawn, err := engine.WithdrawSale(c.Param("address"), request.Authority, request.Destination, amount)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawn": withdrawn})
}
