package controllers

import (
	"net/http"

	"github.com/luckbank/luckbank-backend/api/responses"
)

// HealthCheck answers liveness probes with an empty 204.
func HealthCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteNoContent(w)
	}
}
