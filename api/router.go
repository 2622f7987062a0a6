// Package api exposes the in-process engine over HTTP with gin, the same
// router/middleware shape the teacher service uses for its Fuseki-backed
// API, now fronting a *store.Store directly instead of proxying a
// separate SPARQL endpoint.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rdf-graph-engine/base"
	"rdf-graph-engine/shacl"
	"rdf-graph-engine/store"
	"rdf-graph-engine/textindex"
)

// BasePath prefixes every route registered by NewRouter.
const BasePath = "/api/v1"

const livelinessEndpoint = "/healthz"

// Server holds the engine state the HTTP handlers operate against.
type Server struct {
	Store  *store.Store
	Shapes []*shacl.NodeShape
	Index  *textindex.Indexer
	Sink   base.Sink
}

// NewRouter builds the gin engine for s, wiring CORS, access logging (with
// health checks excluded), panic recovery, and every route under
// BasePath, mirroring api/base.go's init() in the teacher service.
func NewRouter(srv *Server) *gin.Engine {
	srv.Sink = base.OrDiscard(srv.Sink)

	router := gin.New()
	corsConfig := cors.New(cors.Config{
		AllowOrigins:     base.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{BasePath + livelinessEndpoint},
	}))
	router.Use(gin.Recovery())
	router.Use(corsConfig)
	router.SetTrustedProxies(nil)
	router.UseRawPath = true

	router.GET(BasePath+livelinessEndpoint, handleHealthz)
	router.GET(BasePath+"/config", handleConfig)

	srv.registerSPARQLRoutes(router)
	srv.registerSHACLRoutes(router)
	srv.registerTripleRoutes(router)
	srv.registerSearchRoutes(router)
	srv.registerLabelRoutes(router)
	srv.registerOpenAPIRoutes(router)

	return router
}

func handleHealthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func handleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, base.Configuration)
}
