package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"

	"rdf-graph-engine/store"
	"rdf-graph-engine/term"
	"rdf-graph-engine/vocab"
)

const fallbackLanguage = "en"

// labelPredicates are the properties searched for a human-readable label,
// in the teacher's own label-extraction order (rdfs:label first, plus the
// usual SKOS/Dublin-Core/FOAF label predicates).
var labelPredicates = []term.IRI{
	vocab.RDFSLabel,
	"http://www.w3.org/2004/02/skos/core#prefLabel",
	"http://purl.org/dc/terms/title",
	"http://xmlns.com/foaf/0.1/name",
}

func (srv *Server) registerLabelRoutes(router gin.IRoutes) {
	router.POST(BasePath+"/labels", srv.handleLabels)
}

// handleLabels resolves the best-matching label for each requested IRI in
// the requested language, falling back through language prefix, "en",
// and finally any untagged label, same priority order as the teacher's
// GetLabels.
func (srv *Server) handleLabels(c *gin.Context) {
	language := c.PostForm("lang")
	ids := c.PostFormArray("id")

	result := make(map[string]string, len(ids))
	for _, id := range ids {
		iri, err := resolveIRIParam(srv.Store, id)
		if err != nil {
			continue
		}
		if label, ok := bestLabel(srv.Store, iri, language); ok {
			result[id] = label
		}
	}
	c.JSON(http.StatusOK, result)
}

func bestLabel(s *store.Store, subject term.IRI, language string) (string, bool) {
	languagePrios := []string{language}
	if len(language) > 2 {
		languagePrios = append(languagePrios, language[:2])
	}
	if language != fallbackLanguage {
		languagePrios = append(languagePrios, fallbackLanguage)
	}
	languagePrios = append(languagePrios, "")

	bestValue := ""
	bestPrio := -1
	for _, pred := range labelPredicates {
		p := pred
		for t := range s.Match(store.Pattern{Subject: subject, Predicate: &p}) {
			lit, ok := t.Object.(term.Literal)
			if !ok {
				continue
			}
			prio := slices.Index(languagePrios, lit.Language)
			if prio < 0 {
				continue
			}
			if bestPrio == -1 || prio < bestPrio {
				bestValue, bestPrio = lit.Lexical, prio
			}
		}
	}
	return bestValue, bestPrio >= 0
}
