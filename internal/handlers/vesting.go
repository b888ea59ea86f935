package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"crowdvest/internal/models"
	dbconfig "crowdvest/pkg/config"
)

type InitVestingRequest struct {
	SaleAddress string `json:"sale_address" binding:"required"`
	Buyer       string `json:"buyer" binding:"required"`
}

type ClaimRequest struct {
	Buyer    string `json:"buyer" binding:"required"`
	SaleMint string `json:"sale_mint" binding:"required"`
}

// GetVesting returns the vesting position for a buyer and mint.
func GetVesting(c *gin.Context) {
	buyer := c.Query("buyer")
	mint := c.Query("sale_mint")
	if buyer == "" || mint == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "buyer and sale_mint are required"})
		return
	}
	var vesting models.Vesting
	if err := dbconfig.DB.Where("buyer = ? AND sale_mint = ?", buyer, mint).First(&vesting).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	c.JSON(http.StatusOK, vesting)
}

// InitVesting explicitly creates an empty vesting position.
func InitVesting(c *gin.Context) {
	var request InitVestingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vesting, err := engine.InitVesting(request.SaleAddress, request.Buyer)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vesting)
}

// Claim releases all matured tranches to the buyer.
func Claim(c *gin.Context) {
	var request ClaimRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	claimed, err := engine.Claim(request.Buyer, request.SaleMint, time.Now())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"claimed": claimed})
}

// CloseVesting deallocates a fully claimed vesting position.
func CloseVesting(c *gin.Context) {
	var request ClaimRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := engine.CloseVesting(request.Buyer, request.SaleMint); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vesting closed"})
}
