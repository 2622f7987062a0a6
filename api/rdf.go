package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rdf-graph-engine/interop"
	"rdf-graph-engine/store"
	"rdf-graph-engine/term"
	"rdf-graph-engine/vocab"
)

func (srv *Server) registerTripleRoutes(router gin.IRoutes) {
	router.GET(BasePath+"/triples", srv.handleGetTriples)
	router.POST(BasePath+"/triples", srv.handleAddTriples)
	router.DELETE(BasePath+"/triples", srv.handleDeleteTriples)
	router.GET(BasePath+"/class-instances", srv.handleGetClassInstances)
}

// handleGetTriples matches the triple pattern given by the subject,
// predicate, object query parameters (any subset may be omitted) and
// returns the matches as Turtle.
func (srv *Server) handleGetTriples(c *gin.Context) {
	pattern, err := patternFromQuery(srv.Store, c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	matched := store.New()
	matched.RegisterDefaults()
	for t := range srv.Store.Match(pattern) {
		matched.Add(t)
	}
	turtle, err := interop.ExportTurtle(matched)
	if err != nil {
		srv.Sink.Warn("failed serializing matched triples", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/turtle", turtle)
}

// handleAddTriples parses the "ttl" form field as Turtle and adds every
// triple to the store, mirroring literals into the text index if one is
// configured.
func (srv *Server) handleAddTriples(c *gin.Context) {
	ttl := c.PostForm("ttl")
	if ttl == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no ttl form param"})
		return
	}

	before := store.New()
	n, err := interop.ImportTurtle(before, []byte(ttl), srv.Sink)
	if err != nil {
		srv.Sink.Warn("failed parsing turtle", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for t := range before.All() {
		if srv.Store.Add(t) && srv.Index != nil {
			if err := srv.Index.IndexTriple(c.Request.Context(), t); err != nil {
				srv.Sink.Warn("failed mirroring triple to text index", "error", err)
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"added": n})
}

// handleDeleteTriples parses the "ttl" form field as Turtle and removes
// every matching triple from the store.
func (srv *Server) handleDeleteTriples(c *gin.Context) {
	ttl := c.PostForm("ttl")
	if ttl == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no ttl form param"})
		return
	}

	toRemove := store.New()
	if _, err := interop.ImportTurtle(toRemove, []byte(ttl), srv.Sink); err != nil {
		srv.Sink.Warn("failed parsing turtle", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	removed := 0
	for t := range toRemove.All() {
		if srv.Store.Remove(t) {
			removed++
			if srv.Index != nil {
				if err := srv.Index.RemoveTriple(c.Request.Context(), t); err != nil {
					srv.Sink.Warn("failed removing triple from text index", "error", err)
				}
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// handleGetClassInstances returns the subjects typed as the given class.
func (srv *Server) handleGetClassInstances(c *gin.Context) {
	class := c.Query("class")
	if class == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing request parameter 'class'"})
		return
	}
	classIRI, err := resolveIRIParam(srv.Store, class)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rdfType := vocab.RDFType
	var instances []string
	for t := range srv.Store.Match(store.Pattern{Predicate: &rdfType, Object: classIRI}) {
		instances = append(instances, t.Subject.String())
	}
	c.JSON(http.StatusOK, gin.H{"instances": instances})
}

func patternFromQuery(s *store.Store, c *gin.Context) (store.Pattern, error) {
	var pattern store.Pattern
	if v := c.Query("subject"); v != "" {
		iri, err := resolveIRIParam(s, v)
		if err != nil {
			return pattern, err
		}
		pattern.Subject = iri
	}
	if v := c.Query("predicate"); v != "" {
		iri, err := resolveIRIParam(s, v)
		if err != nil {
			return pattern, err
		}
		pred := iri
		pattern.Predicate = &pred
	}
	if v := c.Query("object"); v != "" {
		iri, err := resolveIRIParam(s, v)
		if err != nil {
			return pattern, err
		}
		pattern.Object = iri
	}
	return pattern, nil
}

func resolveIRIParam(s *store.Store, value string) (term.IRI, error) {
	if expanded, err := s.Expand(value); err == nil {
		return expanded, nil
	}
	return term.NewIRI(value)
}
