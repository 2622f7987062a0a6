package textindex

import (
	"context"

	"rdf-graph-engine/store"
	"rdf-graph-engine/term"
)

// Reindex drops and rebuilds the Solr collection from every literal
// triple currently in s, the live-store analogue of the teacher's
// full-dataset Reindex walk over sparql.GetAllResourceIds.
func (ix *Indexer) Reindex(ctx context.Context, s *store.Store) error {
	if err := ix.Init(ctx, true); err != nil {
		return err
	}
	indexed := 0
	for t := range s.All() {
		if _, ok := t.Object.(term.Literal); !ok {
			continue
		}
		if err := ix.IndexTriple(ctx, t); err != nil {
			ix.sink.Warn("failed indexing triple", "subject", t.Subject, "predicate", t.Predicate, "error", err)
			continue
		}
		indexed++
	}
	ix.sink.Info("reindexing finished", "triples", indexed)
	return nil
}

// Search runs a full-text query against the mirrored literal index and
// returns the matching triples, reconstructed from the stored
// subject/predicate/value/lang/datatype fields.
func (ix *Indexer) Search(ctx context.Context, query string, limit int) ([]term.Triple, error) {
	docs, err := ix.selectDocs(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	out := make([]term.Triple, 0, len(docs))
	for _, d := range docs {
		t, ok := tripleFromDoc(d)
		if !ok {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func tripleFromDoc(d map[string]any) (term.Triple, bool) {
	subj, _ := d["subject"].(string)
	pred, _ := d["predicate"].(string)
	value, _ := d["value"].(string)
	lang, _ := d["lang"].(string)
	datatype, _ := d["datatype"].(string)
	if subj == "" || pred == "" {
		return term.Triple{}, false
	}

	var lit term.Literal
	var err error
	switch {
	case lang != "":
		lit, err = term.NewLangLiteral(value, lang)
	case datatype != "":
		lit = term.NewTypedLiteral(value, term.IRI(datatype))
	default:
		lit = term.NewStringLiteral(value)
	}
	if err != nil {
		return term.Triple{}, false
	}

	triple, err := term.NewTriple(term.IRI(subj), term.IRI(pred), lit)
	if err != nil {
		return term.Triple{}, false
	}
	return triple, true
}
