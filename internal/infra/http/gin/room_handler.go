package ginserver

import (
	"io"
	"net/http"
	"strconv"
	"time"

	gin "github.com/gin-gonic/gin"

	"roomly/internal/app/availability"
	"roomly/internal/app/booking"
	"roomly/internal/domain/room"
)

type RoomHandler struct {
	Service *booking.Service
	Repo    room.Repository
	Now     func() time.Time
}

func (h RoomHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Calendar answers GET /rooms/:id/calendar with the interchange JSON.
func (h RoomHandler) Calendar(c *gin.Context) {
	cal, err := h.Repo.Calendar(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cal)
}

// ImportCalendar answers PUT /rooms/:id/calendar; the payload's roomId must
// match the target room.
func (h RoomHandler) ImportCalendar(c *gin.Context) {
	var payload room.Calendar
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, "invalid calendar payload: "+err.Error())
		return
	}
	cal, err := h.Service.ImportCalendar(c.Request.Context(), c.Param("id"), payload)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cal)
}

func (h RoomHandler) ExportICS(c *gin.Context) {
	cal, err := h.Repo.Calendar(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+cal.RoomID+`.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(room.ToICS(*cal, h.now())))
}

func (h RoomHandler) ImportICS(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		badRequest(c, "empty ICS body")
		return
	}
	outcomes, err := h.Service.ImportICS(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": outcomes})
}

func (h RoomHandler) CreateEvent(c *gin.Context) {
	var ev room.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		badRequest(c, "invalid event payload: "+err.Error())
		return
	}
	if ev.RoomID == "" {
		ev.RoomID = c.Param("id")
	}
	cal, err := h.Service.AddEvent(c.Request.Context(), c.Param("id"), ev)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cal)
}

func (h RoomHandler) UpdateEvent(c *gin.Context) {
	var ev room.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		badRequest(c, "invalid event payload: "+err.Error())
		return
	}
	ev.ID = c.Param("eventId")
	if ev.RoomID == "" {
		ev.RoomID = c.Param("id")
	}
	cal, err := h.Service.UpdateEvent(c.Request.Context(), c.Param("id"), ev)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cal)
}

func (h RoomHandler) DeleteEvent(c *gin.Context) {
	cal, err := h.Service.DeleteEvent(c.Request.Context(), c.Param("id"), c.Param("eventId"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cal)
}

// FreeSlots answers GET /rooms/:id/slots?from&to&step. The step defaults to
// the calendar's rounding step.
func (h RoomHandler) FreeSlots(c *gin.Context) {
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
	cal, err := h.Repo.Calendar(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	step := cal.RoundingStepMins
	if raw := c.Query("step"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			badRequest(c, "invalid step")
			return
		}
		step = parsed
	}
	slots := availability.ListFreeSlots(*cal, from, to, step, h.now())
	if slots == nil {
		slots = []availability.Slot{}
	}
	c.JSON(http.StatusOK, gin.H{"roomId": cal.RoomID, "slots": slots})
}

// Occurrences answers GET /rooms/:id/occurrences?from&to, expanding weekly
// recurrences for rendering.
func (h RoomHandler) Occurrences(c *gin.Context) {
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
	cal, err := h.Repo.Calendar(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	occ := room.Occurrences(*cal, from, to)
	if occ == nil {
		occ = []room.Occurrence{}
	}
	c.JSON(http.StatusOK, gin.H{"roomId": cal.RoomID, "occurrences": occ})
}

var _ RoomHTTP = RoomHandler{}
