package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleVoterSummary returns per-constituency voter distribution stats
// computed over the imported booths
func (s *Server) handleVoterSummary(c *gin.Context) {
	summaries, err := s.summaryService.VoterSummary(c.Request.Context(), requestOrg(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"constituencies": summaries})
}
