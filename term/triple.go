package term

import "fmt"

// Triple is an (s, p, o) statement. Equality is structural: two triples
// are equal iff their subject, predicate, and object are all equal.
type Triple struct {
	Subject   Term
	Predicate IRI
	Object    Term
}

// String renders the triple Turtle-ish, terminated with a period.
func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s .", t.Subject, t.Predicate, t.Object)
}

// InvalidTripleError reports a triple whose subject or predicate position
// holds a term of the wrong kind.
type InvalidTripleError struct {
	Reason string
}

func (e *InvalidTripleError) Error() string {
	return "invalid triple: " + e.Reason
}

// NewTriple validates and constructs a triple. The subject must be an IRI
// or BlankNode (never a Literal); the predicate is always an IRI.
func NewTriple(subject Term, predicate IRI, object Term) (Triple, error) {
	switch subject.(type) {
	case IRI, BlankNode:
	default:
		return Triple{}, &InvalidTripleError{Reason: "subject must be an IRI or blank node"}
	}
	if object == nil {
		return Triple{}, &InvalidTripleError{Reason: "object must not be nil"}
	}
	return Triple{Subject: subject, Predicate: predicate, Object: object}, nil
}

// IsSubjectTerm reports whether t may legally occupy a subject position.
func IsSubjectTerm(t Term) bool {
	switch t.(type) {
	case IRI, BlankNode:
		return true
	default:
		return false
	}
}
