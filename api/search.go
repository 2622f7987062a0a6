package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (srv *Server) registerSearchRoutes(router gin.IRoutes) {
	router.GET(BasePath+"/search", srv.handleSearch)
}

// handleSearch runs a full-text query against the literal text index,
// replacing the teacher's raw Solr proxy with a narrow endpoint over the
// engine's own textindex.Indexer.
func (srv *Server) handleSearch(c *gin.Context) {
	if srv.Index == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "text index not configured"})
		return
	}
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing request parameter 'q'"})
		return
	}
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	matches, err := srv.Index.Search(c.Request.Context(), query, limit)
	if err != nil {
		srv.Sink.Warn("failed searching text index", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	results := make([]string, 0, len(matches))
	for _, t := range matches {
		results = append(results, t.String())
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
