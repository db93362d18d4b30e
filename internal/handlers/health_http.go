package handlers

import (
	"net/http"

	"issuetracker/internal/utils"
)

// Health reports liveness together with the configured store driver.
func Health(store string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, http.StatusOK, map[string]string{"status": "ok", "store": store})
	}
}
