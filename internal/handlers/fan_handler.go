package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farellandr/skatefund/internal/services"
)

type FanRequest struct {
	ID       *uuid.UUID `json:"id"`
	UserID   *uuid.UUID `json:"userId"`
	FullName string     `json:"fullName"`
	Email    string     `json:"email" binding:"omitempty,email"`
	Phone    string     `json:"phone"`
	Login    string     `json:"login"`
	Password string     `json:"password"`
	Picture  string     `json:"picture"`
}

func CreateFan(c *gin.Context) {
	var req FanRequest
	if !bindJSON(c, &req) {
		return
	}
	deps, ok := getDeps(c)
	if !ok {
		return
	}

	fan, err := deps.Services.Fans.Create(c.Request.Context(), services.FanInput{
		ID:       req.ID,
		UserID:   req.UserID,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Login:    req.Login,
		Password: req.Password,
		Picture:  req.Picture,
	})
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, fan)
}

func UpdateFan(c *gin.Context) {
	var req FanRequest
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

	fan, err := deps.Services.Fans.Update(c.Request.Context(), services.FanInput{
		ID:       &id,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Login:    req.Login,
		Password: req.Password,
		Picture:  req.Picture,
	})
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, fan)
}

func GetFan(c *gin.Context) {
	deps, ok := getDeps(c)
	if !ok {
		return
	}
	id, ok := pathID(c, deps, "id")
	if !ok {
		return
	}

	fan, err := deps.Services.Fans.Get(c.Request.Context(), id)
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, fan)
}

func ListFans(c *gin.Context) {
	deps, ok := getDeps(c)
	if !ok {
		return
	}

	fans, err := deps.Services.Fans.List(c.Request.Context())
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, fans)
}

func DeleteFan(c *gin.Context) {
	deps, ok := getDeps(c)
	if !ok {
		return
	}
	id, ok := pathID(c, deps, "id")
	if !ok {
		return
	}

	if err := deps.Services.Fans.Delete(c.Request.Context(), id); err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fan deleted successfully."})
}
