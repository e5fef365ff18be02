package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farellandr/skatefund/internal/middleware"
	"github.com/farellandr/skatefund/internal/services"
)

type relationParams struct {
	relation services.Relation
	ownerID  uuid.UUID
	memberID uuid.UUID
}

func parseRelationParams(c *gin.Context, deps *middleware.Deps) (relationParams, bool) {
	rel, err := services.ParseRelation(c.Param("relation"))
	if err != nil {
		deps.Errors.Respond(c, err)
		return relationParams{}, false
	}
	ownerID, ok := pathID(c, deps, "ownerId")
	if !ok {
		return relationParams{}, false
	}
	memberID, ok := pathID(c, deps, "memberId")
	if !ok {
		return relationParams{}, false
	}
	return relationParams{relation: rel, ownerID: ownerID, memberID: memberID}, true
}

// AttachMember links :memberId into the :relation set of :ownerId.
func AttachMember(c *gin.Context) {
	deps, ok := getDeps(c)
	if !ok {
		return
	}
	p, ok := parseRelationParams(c, deps)
	if !ok {
		return
	}

	owner, err := deps.Services.Graph.Attach(c.Request.Context(), p.relation, p.ownerID, p.memberID)
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, owner)
}

func DetachMember(c *gin.Context) {
	deps, ok := getDeps(c)
	if !ok {
		return
	}
	p, ok := parseRelationParams(c, deps)
	if !ok {
		return
	}

	owner, err := deps.Services.Graph.Detach(c.Request.Context(), p.relation, p.ownerID, p.memberID)
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, owner)
}
