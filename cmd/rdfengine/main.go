// Command rdfengine starts the HTTP front end over an in-process RDF
// store, the same role the teacher's root main.go plays for its
// Fuseki-backed service.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"rdf-graph-engine/api"
	"rdf-graph-engine/base"
	"rdf-graph-engine/interop"
	"rdf-graph-engine/shacl"
	"rdf-graph-engine/store"
	"rdf-graph-engine/textindex"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file overriding environment defaults")
	loadTurtle := flag.String("load", "", "path to a Turtle file to load into the store at startup")
	enableIndex := flag.Bool("text-index", false, "mirror literals into the Solr text index sidecar")
	flag.Parse()

	if *configPath != "" {
		if err := base.LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	}

	sink := base.NewSlogSink(nil)
	s := store.New()
	s.RegisterDefaults()
	for _, p := range base.Configuration.DefaultPrefixes {
		s.Register(p.Name, p.Namespace)
	}

	if *loadTurtle != "" {
		data, err := os.ReadFile(*loadTurtle)
		if err != nil {
			log.Fatal(err)
		}
		n, err := interop.ImportTurtle(s, data, sink)
		if err != nil {
			log.Fatal(err)
		}
		slog.Info("loaded turtle file", "path", *loadTurtle, "triples", n)
	}

	shapes, err := shacl.LoadShapes(s)
	if err != nil {
		log.Fatal(err)
	}
	slog.Info("loaded shacl shapes", "count", len(shapes))

	var index *textindex.Indexer
	if *enableIndex {
		index = textindex.New(base.Configuration.SolrEndpoint, base.Configuration.SolrIndex, 1, sink)
		if err := index.Init(context.Background(), false); err != nil {
			log.Fatal(err)
		}
		if err := index.Reindex(context.Background(), s); err != nil {
			log.Fatal(err)
		}
	}

	startStatsLogger(s)

	router := api.NewRouter(&api.Server{
		Store:  s,
		Shapes: shapes,
		Index:  index,
		Sink:   sink,
	})
	slog.Info("listening", "addr", base.Configuration.ListenAddr)
	if err := router.Run(base.Configuration.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
