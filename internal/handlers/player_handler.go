package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farellandr/skatefund/internal/services"
)

// PlayerRequest links userId when set, otherwise provisions a user from the
// profile fields.
type PlayerRequest struct {
	ID        *uuid.UUID `json:"id"`
	UserID    *uuid.UUID `json:"userId"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email" binding:"omitempty,email"`
	Phone     string     `json:"phone"`
	Country   string     `json:"country"`
	Login     string     `json:"login"`
}

type PlayerProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
	Country   string `json:"country"`
}

func CreatePlayer(c *gin.Context) {
	var req PlayerRequest
	if !bindJSON(c, &req) {
		return
	}
	deps, ok := getDeps(c)
	if !ok {
		return
	}

	player, err := deps.Services.Players.Create(c.Request.Context(), services.PlayerInput{
		ID:        req.ID,
		UserID:    req.UserID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Country:   req.Country,
		Login:     req.Login,
	})
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, player)
}

func UpdatePlayer(c *gin.Context) {
	var req PlayerProfileRequest
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

	player, err := deps.Services.Players.Update(c.Request.Context(), services.PlayerProfile{
		ID:        &id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Country:   req.Country,
	})
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, player)
}

func GetPlayer(c *gin.Context) {
	deps, ok := getDeps(c)
	if !ok {
		return
	}
	id, ok := pathID(c, deps, "id")
	if !ok {
		return
	}

	player, err := deps.Services.Players.Get(c.Request.Context(), id)
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, player)
}

func ListPlayers(c *gin.Context) {
	deps, ok := getDeps(c)
	if !ok {
		return
	}

	players, err := deps.Services.Players.List(c.Request.Context())
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, players)
}

func DeletePlayer(c *gin.Context) {
	deps, ok := getDeps(c)
	if !ok {
		return
	}
	id, ok := pathID(c, deps, "id")
	if !ok {
		return
	}

	if err := deps.Services.Players.Delete(c.Request.Context(), id); err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Player deleted successfully."})
}
