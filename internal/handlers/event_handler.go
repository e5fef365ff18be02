package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farellandr/skatefund/internal/helpers"
	"github.com/farellandr/skatefund/internal/services"
)

type EventRequest struct {
	ID        *uuid.UUID `json:"id"`
	Name      string     `json:"name"`
	Day       string     `json:"day"`
	DayString string     `json:"dayString"`
	SpotID    *uuid.UUID `json:"spotId"`
	Active    bool       `json:"active"`
}

type ImageRequest struct {
	Title string `json:"title"`
	Image string `json:"image" binding:"required"`
}

func (req EventRequest) input() (services.EventInput, bool) {
	in := services.EventInput{
		ID:        req.ID,
		Name:      req.Name,
		DayString: req.DayString,
		SpotID:    req.SpotID,
		Active:    req.Active,
	}
	if day := strings.TrimSpace(req.Day); day != "" {
		parsed, err := time.Parse("2006-01-02", day)
		if err != nil {
			return in, false
		}
		in.Day = &parsed
	}
	return in, true
}

func CreateEvent(c *gin.Context) {
	var req EventRequest
	if !bindJSON(c, &req) {
		return
	}
	in, ok := req.input()
	if !ok {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid day format.")
		return
	}
	deps, ok := getDeps(c)
	if !ok {
		return
	}

	event, err := deps.Services.Events.Create(c.Request.Context(), in)
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func UpdateEvent(c *gin.Context) {
	var req EventRequest
	if !bindJSON(c, &req) {
		return
	}
	in, ok := req.input()
	if !ok {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid day format.")
		return
	}
	deps, ok := getDeps(c)
	if !ok {
		return
	}
	id, ok := pathID(c, deps, "id")
	if !ok {
		return
	}
	in.ID = &id

	event, err := deps.Services.Events.Update(c.Request.Context(), in)
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func GetEvent(c *gin.Context) {
	deps, ok := getDeps(c)
	if !ok {
		return
	}
	id, ok := pathID(c, deps, "id")
	if !ok {
		return
	}

	event, err := deps.Services.Events.Get(c.Request.Context(), id)
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func ListEvents(c *gin.Context) {
	deps, ok := getDeps(c)
	if !ok {
		return
	}

	events, err := deps.Services.Events.List(c.Request.Context())
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func GetActiveEvent(c *gin.Context) {
	deps, ok := getDeps(c)
	if !ok {
		return
	}

	event, err := deps.Services.Events.FindActive(c.Request.Context())
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func ActivateEvent(c *gin.Context) {
	deps, ok := getDeps(c)
	if !ok {
		return
	}
	id, ok := pathID(c, deps, "id")
	if !ok {
		return
	}

	event, err := deps.Services.Events.Activate(c.Request.Context(), id)
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func DeleteEvent(c *gin.Context) {
	deps, ok := getDeps(c)
	if !ok {
		return
	}
	id, ok := pathID(c, deps, "id")
	if !ok {
		return
	}

	if err := deps.Services.Events.Delete(c.Request.Context(), id); err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully."})
}

func AddEventImage(c *gin.Context) {
	var req ImageRequest
	if !bindJSON(c, &req) {
		return
	}
	deps, ok := getDeps(c)
	if !ok {
		return
	}
	id, ok := pathID(c, deps, "id")
	if !ok {
		return
	}

	event, err := deps.Services.Events.AddImage(c.Request.Context(), id, req.Title, req.Image)
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func DeleteEventImage(c *gin.Context) {
	deps, ok := getDeps(c)
	if !ok {
		return
	}
	id, ok := pathID(c, deps, "id")
	if !ok {
		return
	}
	photoID, ok := pathID(c, deps, "photoId")
	if !ok {
		return
	}

	event, err := deps.Services.Events.DeleteImage(c.Request.Context(), id, photoID)
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}
