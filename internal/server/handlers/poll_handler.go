package handlers

import (
	"net/http"

	"poll-service/internal/models"
	"poll-service/internal/server/middleware"
	"poll-service/internal/server/service"
	"poll-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type PollHandler struct {
	pollService *service.PollService
}

func NewPollHandler(pollService *service.PollService) *PollHandler {
	return &PollHandler{pollService: pollService}
}

// @Summary Create a poll
// @Description Create a poll with 2-10 options in one atomic write
// @Tags polls
// @Accept json
// @Produce json
// @Param request body models.CreatePollRequest true "Create Poll Request"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /polls [post]
func (h *PollHandler) CreatePoll(c *gin.Context) {
	var req models.CreatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Err(service.CodeValidation, err.Error()))
		return
	}

	identity := middleware.GetIdentityFromContext(c.Request.Context())
	poll, err := h.pollService.CreatePoll(c.Request.Context(), identity, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.OK(poll))
}

// @Summary Get a poll
// @Tags polls
// @Produce json
// @Param id path string true "Poll ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /polls/{id} [get]
func (h *PollHandler) GetPoll(c *gin.Context) {
	poll, err := h.pollService.GetPoll(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK(poll))
}

// @Summary List polls
// @Tags polls
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /polls [get]
func (h *PollHandler) ListPolls(c *gin.Context) {
	polls, err := h.pollService.ListPolls(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK(polls))
}

// @Summary Update a poll
// @Description Owner-only edits to title and description
// @Tags polls
// @Accept json
// @Produce json
// @Param id path string true "Poll ID"
// @Param request body models.UpdatePollRequest true "Update Poll Request"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /polls/{id} [patch]
func (h *PollHandler) UpdatePoll(c *gin.Context) {
	var req models.UpdatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Err(service.CodeValidation, err.Error()))
		return
	}

	identity := middleware.GetIdentityFromContext(c.Request.Context())
	poll, err := h.pollService.UpdatePoll(c.Request.Context(), identity, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK(poll))
}

// @Summary Activate or deactivate a poll
// @Description Activation requires at least 2 options; deactivation is unconditional for the owner
// @Tags polls
// @Accept json
// @Produce json
// @Param id path string true "Poll ID"
// @Param request body models.SetActiveRequest true "Set Active Request"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /polls/{id}/active [post]
func (h *PollHandler) SetActive(c *gin.Context) {
	var req models.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Err(service.CodeValidation, err.Error()))
		return
	}

	identity := middleware.GetIdentityFromContext(c.Request.Context())
	poll, err := h.pollService.SetActive(c.Request.Context(), identity, c.Param("id"), *req.Active)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK(poll))
}

// @Summary Delete a poll
// @Description Owner-only; removes the poll, its options and votes
// @Tags polls
// @Produce json
// @Param id path string true "Poll ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /polls/{id} [delete]
func (h *PollHandler) DeletePoll(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c.Request.Context())
	if err := h.pollService.DeletePoll(c.Request.Context(), identity, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK(gin.H{"deleted": true}))
}
