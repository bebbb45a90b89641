package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"roomly/internal/domain/room"
)

// writeDomainError maps engine failures onto HTTP statuses. The violation's
// reason string is surfaced to the caller unchanged.
func writeDomainError(c *gin.Context, err error) {
	if v, ok := room.AsViolation(err); ok {
		status := http.StatusUnprocessableEntity
		switch v.Kind {
		case room.KindConflict, room.KindRoomMismatch:
			status = http.StatusConflict
		case room.KindNotFound:
			status = http.StatusNotFound
		}
		body := gin.H{"error": v.Reason, "kind": string(v.Kind)}
		if v.Conflict != nil {
			body["conflict"] = v.Conflict
		}
		c.JSON(status, body)
		return
	}
	if errors.Is(err, room.ErrCalendarNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
