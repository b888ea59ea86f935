package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crowdvest/internal/handlers/business"
	"crowdvest/internal/models"
	dbconfig "crowdvest/pkg/config"
)

type CreateSaleRequest struct {
	Seller             string                  `json:"seller" binding:"required"`
	Sequence           uint64                  `json:"sequence"`
	Authority          string                  `json:"authority" binding:"required"`
	PriceNumerator     uint64                  `json:"price_numerator"`
	PriceDenominator   uint64                  `json:"price_denominator"`
	PaymentMinAmount   uint64                  `json:"payment_min_amount"`
	AdvanceFractionBps uint16                  `json:"advance_fraction_bps"`
	ReleaseSchedule    []models.ReleaseTranche `json:"release_schedule"`
	SaleMint           string                  `json:"sale_mint" binding:"required"`
	PaymentDestination string                  `json:"payment_destination" binding:"required"`
	VestingOnly        bool                    `json:"vesting_only"`
}

// CreateSale initializes a new sale record in the inactive state.
func CreateSale(c *gin.Context) {
	var request CreateSaleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sale, err := engine.InitializeSale(business.InitializeSaleParams{
		Seller:             request.Seller,
		Sequence:           request.Sequence,
		Authority:          request.Authority,
		PriceNumerator:     request.PriceNumerator,
		PriceDenominator:   request.PriceDenominator,
		PaymentMinAmount:   request.PaymentMinAmount,
		AdvanceFractionBps: request.AdvanceFractionBps,
		ReleaseSchedule:    request.ReleaseSchedule,
		SaleMint:           request.SaleMint,
		PaymentDestination: request.PaymentDestination,
		VestingOnly:        request.VestingOnly,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// ListSales returns all sale records.
func ListSales(c *gin.Context) {
	var sales []models.Sale
	if err := dbconfig.DB.Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sales)
}

// GetSale returns a sale by its derived address.
func GetSale(c *gin.Context) {
	var sale models.Sale
	if err := dbconfig.DB.Where("address = ?", c.Param("address")).First(&sale).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	c.JSON(http.StatusOK, sale)
}

// ListSaleEvents returns the event log for a sale, newest first.
func ListSaleEvents(c *gin.Context) {
	var events []models.SaleEventLog
	if err := dbconfig.DB.Where("sale_address = ?", c.Param("address")).
		Order("id desc").Limit(200).Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, events)
}
