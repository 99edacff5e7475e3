package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drewfead/calavail/internal/availability"
	"github.com/drewfead/calavail/internal/calendar"
)

// Checker answers availability queries for a date.
type Checker interface {
	Check(ctx context.Context, date string) (*availability.Result, error)
}

type availabilityHandler struct {
	checker Checker
}

// check handles GET /check?date=YYYY-MM-DD. The date is forwarded as-is;
// any upstream failure becomes a bare 500.
func (h *availabilityHandler) check(c *gin.Context) {
	date, ok := c.GetQuery("date")
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "missing required query parameter: date"})
		return
	}

	res, err := h.checker.Check(c.Request.Context(), date)
	if err != nil {
		slog.Error("availability check failed",
			"error", err,
			"date", date,
			"class", calendar.Classify(err),
			"request_id", c.GetString(requestIDKey),
		)
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, res)
}
