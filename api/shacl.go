package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rdf-graph-engine/shacl"
)

func (srv *Server) registerSHACLRoutes(router gin.IRoutes) {
	router.POST(BasePath+"/shacl/validate", srv.handleValidate)
	router.GET(BasePath+"/shacl/shapes", srv.handleListShapes)
}

// handleValidate validates the in-process store against the shapes
// currently loaded into the server (by LoadShapes or programmatic
// construction at startup) and returns the validation report.
func (srv *Server) handleValidate(c *gin.Context) {
	shapes := srv.Shapes
	if len(shapes) == 0 {
		loaded, err := shacl.LoadShapes(srv.Store)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		shapes = loaded
	}

	report := shacl.Validate(srv.Store, shapes, srv.Sink)
	c.JSON(http.StatusOK, report)
}

// handleListShapes returns the ids of every shape currently loaded into
// the server, for clients that want to inspect what will be checked.
func (srv *Server) handleListShapes(c *gin.Context) {
	ids := make([]string, 0, len(srv.Shapes))
	for _, shape := range srv.Shapes {
		ids = append(ids, shape.ID.String())
	}
	c.JSON(http.StatusOK, gin.H{"shapes": ids})
}
