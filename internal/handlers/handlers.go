package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farellandr/skatefund/internal/helpers"
	"github.com/farellandr/skatefund/internal/middleware"
)

func getDeps(c *gin.Context) (*middleware.Deps, bool) {
	deps := middleware.GetDeps(c)
	if deps == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Services not configured.")
		return nil, false
	}
	return deps, true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return false
	}
	return true
}

func pathID(c *gin.Context, deps *middleware.Deps, name string) (uuid.UUID, bool) {
	id, err := helpers.ParseID(c.Param(name), name)
	if err != nil {
		deps.Errors.Respond(c, err)
		return uuid.Nil, false
	}
	return id, true
}
