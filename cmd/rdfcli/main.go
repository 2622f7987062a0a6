// Command rdfcli runs maintenance tasks over a Turtle file on disk:
// "reindex" rebuilds the Solr text index sidecar from it and "validate"
// runs SHACL validation against the shapes it contains, the same role the
// teacher's cli package plays for its search/profilesync maintenance
// commands.
package main

import (
	"context"
	"fmt"
	"os"

	"rdf-graph-engine/base"
	"rdf-graph-engine/interop"
	"rdf-graph-engine/shacl"
	"rdf-graph-engine/store"
	"rdf-graph-engine/textindex"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: rdfcli <reindex|validate> <turtle-file>")
		os.Exit(-1)
	}

	sink := base.NewSlogSink(nil)
	s := store.New()
	s.RegisterDefaults()

	data, err := os.ReadFile(os.Args[2])
	if err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
	if _, err := interop.ImportTurtle(s, data, sink); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}

	switch os.Args[1] {
	case "reindex":
		index := textindex.New(base.Configuration.SolrEndpoint, base.Configuration.SolrIndex, 1, sink)
		if err := index.Reindex(context.Background(), s); err != nil {
			fmt.Println(err)
			os.Exit(-1)
		}
		fmt.Println("reindexed", s.CountTriples(), "triples")
	case "validate":
		shapes, err := shacl.LoadShapes(s)
		if err != nil {
			fmt.Println(err)
			os.Exit(-1)
		}
		report := shacl.Validate(s, shapes, sink)
		fmt.Printf("conforms: %v, violations: %d\n", report.Conforms, len(report.Results))
	default:
		fmt.Println("unknown command", os.Args[1])
		os.Exit(-1)
	}
}
