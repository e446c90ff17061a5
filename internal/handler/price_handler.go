package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PriceProvider interface {
	Prices(ctx context.Context, symbols []string) map[string]float64
}

type PriceHandler struct {
	prices PriceProvider
}

func NewPriceHandler(prices PriceProvider) *PriceHandler {
	return &PriceHandler{prices: prices}
}

func (h *PriceHandler) GetPrices(c *gin.Context) {
	symbols := splitSymbols(c.Query("symbols"))
	if len(symbols) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing symbols parameter"})
		return
	}

	c.JSON(http.StatusOK, PricesResponse{
		Prices: h.prices.Prices(c.Request.Context(), symbols),
	})
}
