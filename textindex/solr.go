// Package textindex mirrors literal objects into a Solr collection for
// substring/full-text lookup that the hexastore indexes cannot do
// cheaply. It is optional ambient infrastructure: neither sparql nor
// shacl depends on it, and a *store.Store works without an Indexer.
package textindex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"

	solr "github.com/stevenferrer/solr-go"

	"rdf-graph-engine/base"
	"rdf-graph-engine/term"
)

// Indexer mirrors literal triples into a Solr collection.
type Indexer struct {
	endpoint   string
	collection string
	numShards  int
	client     *solr.JSONClient
	sink       base.Sink
}

// document is a single Solr document describing one literal triple.
type document map[string]any

// New returns an Indexer targeting the given Solr endpoint and collection.
func New(endpoint, collection string, numShards int, sink base.Sink) *Indexer {
	return &Indexer{
		endpoint:   endpoint,
		collection: collection,
		numShards:  numShards,
		client:     solr.NewJSONClient(endpoint),
		sink:       base.OrDiscard(sink),
	}
}

// Init prepares the Solr collection and schema, recreating it when
// forceRecreate is set or when the collection doesn't already exist.
func (ix *Indexer) Init(ctx context.Context, forceRecreate bool) error {
	if forceRecreate {
		return ix.recreateCollection(ctx)
	}
	exists, err := ix.collectionExists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return ix.recreateCollection(ctx)
	}
	return nil
}

func (ix *Indexer) collectionExists(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/solr/admin/collections?action=LIST&wt=json", ix.endpoint), nil)
	if err != nil {
		return false, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("unexpected solr status: %s", resp.Status)
	}
	var payload struct {
		Collections []string `json:"collections"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return false, err
	}
	return slices.Contains(payload.Collections, ix.collection), nil
}

func (ix *Indexer) recreateCollection(ctx context.Context) error {
	ix.sink.Info("recreating solr collection", "endpoint", ix.endpoint, "collection", ix.collection)
	if err := ix.client.DeleteCollection(ctx, solr.NewCollectionParams().Name(ix.collection)); err != nil {
		ix.sink.Warn("collection couldn't be deleted", "error", err)
	}
	if err := ix.client.CreateCollection(ctx, solr.NewCollectionParams().Name(ix.collection).NumShards(ix.numShards)); err != nil {
		return err
	}
	if err := ix.client.AddFields(ctx, ix.collection, literalSchema()...); err != nil {
		return err
	}
	if err := ix.client.AddCopyFields(ctx, ix.collection, solr.CopyField{Source: "value", Dest: "_text_"}); err != nil {
		return err
	}
	return nil
}

// literalSchema describes the fields of a single indexed literal triple.
func literalSchema() []solr.Field {
	return []solr.Field{
		{Name: "subject", Type: "string", Indexed: true, Stored: true},
		{Name: "predicate", Type: "string", Indexed: true, Stored: true},
		{Name: "value", Type: "text_general", Indexed: true, Stored: true},
		{Name: "lang", Type: "string", Indexed: true, Stored: true},
		{Name: "datatype", Type: "string", Indexed: true, Stored: true},
	}
}

// docID deterministically identifies the Solr document for a literal
// triple, so IndexTriple is idempotent and RemoveTriple can find it again.
func docID(t term.Triple) string {
	lit, ok := t.Object.(term.Literal)
	if !ok {
		return ""
	}
	return base.SanitizeIdentifier(fmt.Sprintf("%s|%s|%s|%s|%s",
		t.Subject.String(), t.Predicate, lit.Lexical, lit.Language, lit.Datatype))
}

// IndexTriple mirrors t into Solr. Triples whose object isn't a literal
// are silently ignored: the index only ever serves literal text search.
func (ix *Indexer) IndexTriple(ctx context.Context, t term.Triple) error {
	lit, ok := t.Object.(term.Literal)
	if !ok {
		return nil
	}
	doc := document{
		"id":        docID(t),
		"subject":   t.Subject.String(),
		"predicate": string(t.Predicate),
		"value":     lit.Lexical,
		"lang":      lit.Language,
		"datatype":  string(lit.Datatype),
	}
	return ix.updateDoc(ctx, map[string]any{"add": map[string]any{"doc": doc}})
}

// RemoveTriple deletes the Solr document mirroring t, if it was a literal
// triple with a mirrored document to begin with.
func (ix *Indexer) RemoveTriple(ctx context.Context, t term.Triple) error {
	if _, ok := t.Object.(term.Literal); !ok {
		return nil
	}
	return ix.updateDoc(ctx, map[string]any{"delete": map[string]any{"id": docID(t)}})
}

func (ix *Indexer) updateDoc(ctx context.Context, body map[string]any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := ix.client.Update(ctx, ix.collection, solr.JSON, bytes.NewReader(data))
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return errors.New(resp.Error.Msg)
	}
	return ix.client.Commit(ctx, ix.collection)
}
