package store

import "rdf-graph-engine/base"

func unknownPrefixError(prefix string) error {
	return base.NewInputError(base.ErrKindUnknownPrefix, "unknown prefix: "+prefix)
}
