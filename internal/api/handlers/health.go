package handlers

import (
	"net/http"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

// Health godoc
//	@Summary		Liveness probe
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	models.HealthResponse
//	@Router			/health [get]
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, http.StatusOK, models.HealthResponse{Status: "OK", Timestamp: time.Now().UTC()})
	}
}
