package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tillpos/internal/persist"
	"tillpos/internal/store"
)

// Health returns a JSON health check response. Checks persistence-slot
// reachability and reports store sizes; never exposes paths or credentials.
func Health(st *store.Store, slot persist.Slot) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		slotStatus := "ok"
		if slot.Ping(ctx) != nil {
			slotStatus = "error"
		}

		// A broken slot is degraded, not down: the in-memory stores still
		// serve, so the status stays 200 and "ok" carries the signal.
		products, sales := st.Counts()
		c.JSON(http.StatusOK, gin.H{
			"ok":       slotStatus == "ok",
			"snapshot": slotStatus,
			"products": products,
			"sales":    sales,
		})
	}
}
