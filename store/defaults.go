package store

// RegisterDefaults preregisters the rdf, rdfs, owl, xsd, and sh prefixes,
// the same namespaces vocab exposes as Go constants, so federated imports
// and hand-written SPARQL can use qnames without a PREFIX declaration.
func (s *Store) RegisterDefaults() {
	s.Register("rdf", "http://www.w3.org/1999/02/22-rdf-syntax-ns#")
	s.Register("rdfs", "http://www.w3.org/2000/01/rdf-schema#")
	s.Register("owl", "http://www.w3.org/2002/07/owl#")
	s.Register("xsd", "http://www.w3.org/2001/XMLSchema#")
	s.Register("sh", "http://www.w3.org/ns/shacl#")
}
