package handlers

import (
	"net/http"

	"poll-service/internal/models"
	"poll-service/internal/server/middleware"
	"poll-service/internal/server/service"
	"poll-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	voteService *service.VoteService
}

func NewVoteHandler(voteService *service.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// @Summary Cast a vote
// @Description Admit a vote attempt against poll configuration, timing and prior votes
// @Tags votes
// @Accept json
// @Produce json
// @Param id path string true "Poll ID"
// @Param request body models.CastVoteRequest true "Cast Vote Request"
// @Success 201 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /polls/{id}/votes [post]
func (h *VoteHandler) CastVote(c *gin.Context) {
	var req models.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Err(service.CodeValidation, err.Error()))
		return
	}

	identity := middleware.GetIdentityFromContext(c.Request.Context())
	votes, err := h.voteService.AdmitVote(c.Request.Context(), identity, c.Param("id"), req.OptionIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.OK(votes))
}

// @Summary Retract a vote
// @Description Delete a vote; only the casting voter may retract
// @Tags votes
// @Produce json
// @Param id path string true "Vote ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /votes/{id} [delete]
func (h *VoteHandler) RetractVote(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c.Request.Context())
	if err := h.voteService.RetractVote(c.Request.Context(), identity, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK(gin.H{"retracted": true}))
}
