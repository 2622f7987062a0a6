package api

import (
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"

	"rdf-graph-engine/base"
)

func (srv *Server) registerOpenAPIRoutes(router gin.IRoutes) {
	spec := newApiSpec()

	router.GET(BasePath+"/openapi.json", func(c *gin.Context) {
		c.JSON(http.StatusOK, spec)
	})
	router.GET(BasePath+"/openapi.yaml", func(c *gin.Context) {
		data, err := yaml.Marshal(spec)
		if err != nil {
			srv.Sink.Warn("failed marshaling openapi spec", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Type", "text/yaml")
		c.Writer.Write(data)
	})
}

// newApiSpec describes the engine's HTTP surface, same shape as the
// teacher's newApiSpec but over the in-process store's own endpoints
// rather than a Fuseki/Solr proxy.
func newApiSpec() *openapi3.T {
	errorResponse := &openapi3.ResponseRef{
		Value: openapi3.NewResponse().
			WithDescription("Response when errors happen.").
			WithContent(openapi3.NewContentWithJSONSchema(openapi3.NewSchema().
				WithProperty("error", openapi3.NewStringSchema()))),
	}

	spec := &openapi3.T{
		OpenAPI: "3.1.0",
		Info: &openapi3.Info{
			Title:       "RDF graph engine API",
			Description: "API for querying and validating an in-process RDF graph",
			Version:     "v1",
			License: &openapi3.License{
				Name: "MIT License",
				URL:  "https://opensource.org/licenses/MIT",
			},
		},
		Servers: openapi3.Servers{
			&openapi3.Server{
				Description: "Production",
				URL:         strings.TrimSuffix(base.BackendUrl, "/") + BasePath,
			},
		},
		Components: &openapi3.Components{
			Responses: openapi3.ResponseBodies{
				"ErrorResponse": errorResponse,
			},
		},
		Paths: &openapi3.Paths{},
	}
	if len(base.Configuration.ContactEmail) > 0 {
		spec.Info.Contact = &openapi3.Contact{
			Name:  base.Configuration.ContactEmail,
			Email: base.Configuration.ContactEmail,
		}
	}

	spec.Paths.Set(BasePath+"/sparql/query", &openapi3.PathItem{
		Post: &openapi3.Operation{Summary: "Run a SPARQL query against the in-process store"},
	})
	spec.Paths.Set(BasePath+"/shacl/validate", &openapi3.PathItem{
		Post: &openapi3.Operation{Summary: "Validate the store against a set of SHACL shapes"},
	})
	spec.Paths.Set(BasePath+"/triples", &openapi3.PathItem{
		Get:    &openapi3.Operation{Summary: "Match triples by subject/predicate/object"},
		Post:   &openapi3.Operation{Summary: "Add triples parsed from a Turtle document"},
		Delete: &openapi3.Operation{Summary: "Remove triples parsed from a Turtle document"},
	})
	spec.Paths.Set(BasePath+"/search", &openapi3.PathItem{
		Get: &openapi3.Operation{Summary: "Full-text search over indexed literal values"},
	})
	spec.Paths.Set(BasePath+"/healthz", &openapi3.PathItem{
		Get: &openapi3.Operation{Summary: "Liveness check"},
	})

	return spec
}
