// Package shacl implements a SHACL-Core validator: node and property
// shapes, target resolution, constraint evaluation, and validation
// reports.
package shacl

import "rdf-graph-engine/term"

// Severity classifies a validation result.
type Severity int

const (
	Violation Severity = iota
	Warning
	Info
)

// Target is the sum type over SHACL target selectors.
type Target interface {
	targetTag()
}

// TargetClass selects every direct instance of Class as a focus node.
type TargetClass struct{ Class term.IRI }

func (TargetClass) targetTag() {}

// TargetNode selects exactly Node.
type TargetNode struct{ Node term.Term }

func (TargetNode) targetTag() {}

// TargetSubjectsOf selects every subject of a triple with predicate Path.
type TargetSubjectsOf struct{ Path term.IRI }

func (TargetSubjectsOf) targetTag() {}

// TargetObjectsOf selects every object of a triple with predicate Path.
type TargetObjectsOf struct{ Path term.IRI }

func (TargetObjectsOf) targetTag() {}

// NodeShape validates its targets' focus nodes against its own
// constraints and the constraints of its property shapes.
type NodeShape struct {
	ID             term.Term
	Targets        []Target
	Constraints    []Constraint
	PropertyShapes []*PropertyShape
	Message        string
	Severity       Severity
	Deactivated    bool
}

// PropertyShape validates the value set reached by following Path from a
// focus node.
type PropertyShape struct {
	ID          term.Term
	Path        term.IRI
	Name        string
	Constraints []Constraint
	Message     string
	Severity    Severity
	Deactivated bool
}

// NewNodeShape constructs a node shape with default severity Violation.
func NewNodeShape(id term.IRI) *NodeShape {
	return &NodeShape{ID: id, Severity: Violation}
}

// NewPropertyShape constructs a property shape with default severity
// Violation, validating values reached via path.
func NewPropertyShape(path term.IRI) *PropertyShape {
	return &PropertyShape{Path: path, Severity: Violation}
}
