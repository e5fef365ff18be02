package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farellandr/skatefund/internal/services"
)

// ContributionRequest is the public pledge form. Amount accepts a JSON
// string or number so "25" and 25 both work.
type ContributionRequest struct {
	TrickID     uuid.UUID   `json:"trickId" binding:"required"`
	Amount      json.Number `json:"amount" binding:"required"`
	FanID       *uuid.UUID  `json:"fanId"`
	FanFullName string      `json:"fanFullName"`
	Phone       string      `json:"phone"`
	Login       string      `json:"login"`
	Email       string      `json:"email"`
}

func CreateContribution(c *gin.Context) {
	var req ContributionRequest
	if !bindJSON(c, &req) {
		return
	}
	deps, ok := getDeps(c)
	if !ok {
		return
	}

	result, err := deps.Services.Contributions.Contribute(c.Request.Context(), services.ContributionForm{
		TrickID:  req.TrickID,
		Amount:   req.Amount.String(),
		FanID:    req.FanID,
		FullName: req.FanFullName,
		Phone:    req.Phone,
		Login:    req.Login,
		Email:    req.Email,
	})
	if err != nil {
		deps.Errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Contribution recorded successfully.",
		"contributor": result.Contributor,
		"trick":       result.Trick,
	})
}
