package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rdf-graph-engine/sparql"
)

// sparqlRequest is the JSON/form body accepted by the query endpoint,
// mirroring the SPARQL 1.1 protocol's "query" parameter.
type sparqlRequest struct {
	Query string `json:"query" form:"query"`
}

type sparqlResponse struct {
	Vars      []string         `json:"vars,omitempty"`
	Solutions []map[string]any `json:"solutions,omitempty"`
	Triples   []string         `json:"triples,omitempty"`
	Boolean   *bool            `json:"boolean,omitempty"`
}

func (srv *Server) registerSPARQLRoutes(router gin.IRoutes) {
	router.POST(BasePath+"/sparql/query", srv.handleSPARQLQuery)
	router.GET(BasePath+"/sparql/query", srv.handleSPARQLQuery)
}

func (srv *Server) handleSPARQLQuery(c *gin.Context) {
	var req sparqlRequest
	if c.Request.Method == http.MethodGet {
		req.Query = c.Query("query")
	} else if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter"})
		return
	}

	query, err := sparql.Parse(req.Query, srv.Store)
	if err != nil {
		srv.Sink.Warn("failed parsing sparql query", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := sparql.Execute(srv.Store, query, srv.Sink)
	if err != nil {
		srv.Sink.Warn("failed executing sparql query", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toSPARQLResponse(result))
}

func toSPARQLResponse(result sparql.Result) sparqlResponse {
	resp := sparqlResponse{Vars: result.Vars}
	for _, sol := range result.Solutions {
		row := make(map[string]any, len(sol))
		for k, v := range sol {
			row[k] = v.String()
		}
		resp.Solutions = append(resp.Solutions, row)
	}
	for _, t := range result.Triples {
		resp.Triples = append(resp.Triples, t.String())
	}
	if result.Vars == nil && result.Triples == nil {
		b := result.Boolean
		resp.Boolean = &b
	}
	return resp
}
