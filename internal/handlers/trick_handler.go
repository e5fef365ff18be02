package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farellandr/skatefund/internal/services"
)

type TrickRequest struct {
	ID              *uuid.UUID `json:"id"`
	Name            string     `json:"name" binding:"required"`
	ObjectiveAmount int64      `json:"objectiveAmount"`
}

func CreateTrick(c *gin.Context) {
	var req TrickRequest
	if !bindJSON(c, &req) {
		return
	}
	deps, ok := getDeps(c)
	if !ok {
		return
	}

	trick, err := deps.Services.Tricks.Create(c.Request.Context(), services.TrickInput{
		ID:              req.ID,
		Name:            req.Name,
		ObjectiveAmount: req.ObjectiveAmount,
	})
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, trick)
}

func UpdateTrick(c *gin.Context) {
	var req TrickRequest
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

	trick, err := deps.Services.Tricks.Update(c.Request.Context(), services.TrickInput{
		ID:              &id,
		Name:            req.Name,
		ObjectiveAmount: req.ObjectiveAmount,
	})
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, trick)
}

func GetTrick(c *gin.Context) {
	deps, ok := getDeps(c)
	if !ok {
		return
	}
	id, ok := pathID(c, deps, "id")
	if !ok {
		return
	}

	trick, err := deps.Services.Tricks.Get(c.Request.Context(), id)
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, trick)
}

func ListTricks(c *gin.Context) {
	deps, ok := getDeps(c)
	if !ok {
		return
	}

	tricks, err := deps.Services.Tricks.List(c.Request.Context())
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, tricks)
}

func DeleteTrick(c *gin.Context) {
	deps, ok := getDeps(c)
	if !ok {
		return
	}
	id, ok := pathID(c, deps, "id")
	if !ok {
		return
	}

	if err := deps.Services.Tricks.Delete(c.Request.Context(), id); err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trick deleted successfully."})
}
