package shacl

import "rdf-graph-engine/term"

// Constraint is the sum type over every SHACL-Core constraint kind this
// validator understands (spec.md §4.5).
type Constraint interface {
	constraintTag()
}

// NodeKind names the term shapes sh:nodeKind accepts.
type NodeKind int

const (
	KindIRI NodeKind = iota
	KindBlankNode
	KindLiteral
	KindBlankNodeOrIRI
	KindBlankNodeOrLiteral
	KindIRIOrLiteral
)

// MinCount requires at least N values.
type MinCount struct{ N int }

func (MinCount) constraintTag() {}

// MaxCount requires at most N values.
type MaxCount struct{ N int }

func (MaxCount) constraintTag() {}

// Datatype requires every value to be a literal whose datatype is exactly DT.
type Datatype struct{ DT term.IRI }

func (Datatype) constraintTag() {}

// Class requires every value to be a direct rdf:type instance of IRI.
type Class struct{ IRI term.IRI }

func (Class) constraintTag() {}

// NodeKindConstraint requires every value's term kind to match Kind.
type NodeKindConstraint struct{ Kind NodeKind }

func (NodeKindConstraint) constraintTag() {}

// MinLength requires literal lexical length >= N code points.
type MinLength struct{ N int }

func (MinLength) constraintTag() {}

// MaxLength requires literal lexical length <= N code points.
type MaxLength struct{ N int }

func (MaxLength) constraintTag() {}

// Pattern requires literal lexical forms to match Regex (RE2 syntax);
// Flags accepts "i" for case-insensitive matching.
type Pattern struct {
	Regex string
	Flags string
}

func (Pattern) constraintTag() {}

// LanguageIn requires literals carrying a language tag to use one of Langs.
type LanguageIn struct{ Langs []string }

func (LanguageIn) constraintTag() {}

// HasValue requires Value to be present in the full value set.
type HasValue struct{ Value term.Term }

func (HasValue) constraintTag() {}

// In requires every value to be a member of List.
type In struct{ List []term.Term }

func (In) constraintTag() {}

// MinInclusive requires every numeric value >= X.
type MinInclusive struct{ X float64 }

func (MinInclusive) constraintTag() {}

// MaxInclusive requires every numeric value <= X.
type MaxInclusive struct{ X float64 }

func (MaxInclusive) constraintTag() {}

// MinExclusive requires every numeric value > X.
type MinExclusive struct{ X float64 }

func (MinExclusive) constraintTag() {}

// MaxExclusive requires every numeric value < X.
type MaxExclusive struct{ X float64 }

func (MaxExclusive) constraintTag() {}

// Equals requires the value set of this path to equal the value set
// reached via Path.
type Equals struct{ Path term.IRI }

func (Equals) constraintTag() {}

// Disjoint requires the value set of this path to not intersect the
// value set reached via Path.
type Disjoint struct{ Path term.IRI }

func (Disjoint) constraintTag() {}

// And requires every sub-shape to produce no violations (their
// violations are unioned into the result either way).
type And struct{ Shapes []*NodeShape }

func (And) constraintTag() {}

// Or requires at least one sub-shape to produce no violations.
type Or struct{ Shapes []*NodeShape }

func (Or) constraintTag() {}

// Not requires the sub-shape to produce at least one violation.
type Not struct{ Shape *NodeShape }

func (Not) constraintTag() {}

// Xone is reserved; exactly one sub-shape must conform.
type Xone struct{ Shapes []*NodeShape }

func (Xone) constraintTag() {}
