package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/skatefund/internal/helpers"
	"github.com/farellandr/skatefund/internal/middleware"
	"github.com/farellandr/skatefund/internal/services"
)

type UserUpdateRequest struct {
	Login     string `json:"login" binding:"required"`
	Password  string `json:"password" binding:"omitempty,min=6"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
	Country   string `json:"country"`
}

type PictureRequest struct {
	Image string `json:"image" binding:"required"`
}

func GetProfile(c *gin.Context) {
	userID, exists := middleware.UserID(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}
	deps, ok := getDeps(c)
	if !ok {
		return
	}

	user, err := deps.Services.Users.Get(c.Request.Context(), userID)
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func UpdateUser(c *gin.Context) {
	var req UserUpdateRequest
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

	user, err := deps.Services.Users.Update(c.Request.Context(), services.UserUpdate{
		ID:        &id,
		Login:     req.Login,
		Password:  req.Password,
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
	c.JSON(http.StatusOK, user)
}

// SetProfilePicture replaces the picture of the authenticated user.
func SetProfilePicture(c *gin.Context) {
	userID, exists := middleware.UserID(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}
	var req PictureRequest
	if !bindJSON(c, &req) {
		return
	}
	deps, ok := getDeps(c)
	if !ok {
		return
	}

	user, err := deps.Services.Users.SetPicture(c.Request.Context(), userID, req.Image)
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
