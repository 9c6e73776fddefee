package handlers

import (
	"net/http"

	"poll-service/internal/server/service"
	"poll-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type ResultsHandler struct {
	resultsService *service.ResultsService
}

func NewResultsHandler(resultsService *service.ResultsService) *ResultsHandler {
	return &ResultsHandler{resultsService: resultsService}
}

// @Summary Get poll results
// @Description Per-option vote counts and percentages, ordered by position or by votes descending
// @Tags results
// @Produce json
// @Param id path string true "Poll ID"
// @Param order query string false "Ordering: position (default) or votes"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /polls/{id}/results [get]
func (h *ResultsHandler) GetResults(c *gin.Context) {
	results, err := h.resultsService.GetResults(c.Request.Context(), c.Param("id"), c.Query("order"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK(results))
}
