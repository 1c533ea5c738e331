// README: Base handler utilities (JSON envelope helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"motohub/internal/modules/pricing"
)

type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type listResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
	Count   int  `json:"count"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeData(c *gin.Context, v any) {
	writeJSON(c, http.StatusOK, dataResponse{Success: true, Data: v})
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, messageResponse{Success: false, Message: msg})
}

func writePricingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pricing.ErrInvalidExShowroom),
		errors.Is(err, pricing.ErrInvalidPrincipal),
		errors.Is(err, pricing.ErrOutOfRange):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
