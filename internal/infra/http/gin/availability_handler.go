package ginserver

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"

	"roomly/internal/app/availability"
	"roomly/internal/domain/room"
)

type AvailabilityHandler struct {
	Repo room.Repository
	Now  func() time.Time
}

func (h AvailabilityHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Search answers GET /availability. Malformed timestamps are a caller error
// and fail fast here; they never reach the engine.
func (h AvailabilityHandler) Search(c *gin.Context) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		badRequest(c, "invalid from timestamp")
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		badRequest(c, "invalid to timestamp")
		return
	}

	query := availability.SearchQuery{From: from, To: to}
	if raw := c.Query("roomIds"); raw != "" {
		query.RoomIDs = strings.Split(raw, ",")
	}
	if raw := c.Query("suggestDays"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			badRequest(c, "invalid suggestDays")
			return
		}
		query.SuggestDays = days
	}

	calendars, err := h.Repo.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	values := make([]room.Calendar, 0, len(calendars))
	for _, cal := range calendars {
		values = append(values, *cal)
	}

	c.JSON(http.StatusOK, availability.Search(values, query, h.now()))
}

var _ AvailabilityHTTP = AvailabilityHandler{}
