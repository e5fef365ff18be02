package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farellandr/skatefund/internal/services"
)

type SpotRequest struct {
	ID          *uuid.UUID `json:"id"`
	Name        string     `json:"name" binding:"required"`
	ImagePath   string     `json:"imagePath"`
	Description string     `json:"description"`
}

func (req SpotRequest) input() services.SpotInput {
	return services.SpotInput{
		ID:          req.ID,
		Name:        req.Name,
		ImagePath:   req.ImagePath,
		Description: req.Description,
	}
}

func CreateSpot(c *gin.Context) {
	var req SpotRequest
	if !bindJSON(c, &req) {
		return
	}
	deps, ok := getDeps(c)
	if !ok {
		return
	}

	spot, err := deps.Services.Spots.Create(c.Request.Context(), req.input())
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, spot)
}

func UpdateSpot(c *gin.Context) {
	var req SpotRequest
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

	in := req.input()
	in.ID = &id
	spot, err := deps.Services.Spots.Update(c.Request.Context(), in)
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, spot)
}

func GetSpot(c *gin.Context) {
	deps, ok := getDeps(c)
	if !ok {
		return
	}
	id, ok := pathID(c, deps, "id")
	if !ok {
		return
	}

	spot, err := deps.Services.Spots.Get(c.Request.Context(), id)
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, spot)
}

func ListSpots(c *gin.Context) {
	deps, ok := getDeps(c)
	if !ok {
		return
	}

	spots, err := deps.Services.Spots.List(c.Request.Context())
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, spots)
}

func DeleteSpot(c *gin.Context) {
	deps, ok := getDeps(c)
	if !ok {
		return
	}
	id, ok := pathID(c, deps, "id")
	if !ok {
		return
	}

	if err := deps.Services.Spots.Delete(c.Request.Context(), id); err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Spot deleted successfully."})
}

func AddSpotImage(c *gin.Context) {
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

	spot, err := deps.Services.Spots.AddImage(c.Request.Context(), id, req.Title, req.Image)
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, spot)
}

func DeleteSpotImage(c *gin.Context) {
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

	spot, err := deps.Services.Spots.DeleteImage(c.Request.Context(), id, photoID)
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, spot)
}
