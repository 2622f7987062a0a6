// Package sparql implements a subset of SPARQL 1.1: SELECT, CONSTRUCT, ASK,
// and DESCRIBE queries over FILTER/OPTIONAL/UNION graph patterns, with
// DISTINCT/ORDER BY/LIMIT/OFFSET solution modifiers.
package sparql

import "rdf-graph-engine/term"

// Query is the sum type over the four SPARQL query forms.
type Query interface {
	queryTag()
}

// Modifiers holds the solution modifiers common to every query form.
type Modifiers struct {
	OrderBy []OrderTerm
	Limit   *int
	Offset  *int
}

// OrderTerm is one ORDER BY key.
type OrderTerm struct {
	Var  string
	Desc bool
}

// SelectQuery projects bound variables, or every variable when Vars is nil
// and Star is true.
type SelectQuery struct {
	Vars      []string
	Star      bool
	Distinct  bool
	Where     []GraphPattern
	Modifiers Modifiers
}

func (SelectQuery) queryTag() {}

// ConstructQuery instantiates Template once per matching solution.
type ConstructQuery struct {
	Template  []TriplePattern
	Where     []GraphPattern
	Modifiers Modifiers
}

func (ConstructQuery) queryTag() {}

// AskQuery reports whether Where has at least one solution.
type AskQuery struct {
	Where []GraphPattern
}

func (AskQuery) queryTag() {}

// DescribeQuery emits every triple touching the described resources.
// Resources may be literal IRIs (Terms) or ?variable names (Vars); if
// Where is non-nil the variables are resolved by evaluating it first.
type DescribeQuery struct {
	Terms []term.IRI
	Vars  []string
	Where []GraphPattern
}

func (DescribeQuery) queryTag() {}

// GraphPattern is the sum type over the graph-pattern algebra.
type GraphPattern interface {
	patternTag()
}

// PatternTerm is either a bound term or a variable name, used for each
// position of a TriplePattern.
type PatternTerm struct {
	Var   string // non-empty iff this position is a variable
	Bound term.Term
}

// IsVar reports whether this position is unbound (a variable).
func (p PatternTerm) IsVar() bool { return p.Var != "" }

// TriplePattern matches store triples, binding any variable position.
// Predicate variables are permitted.
type TriplePattern struct {
	Subject   PatternTerm
	Predicate PatternTerm
	Object    PatternTerm
}

func (TriplePattern) patternTag() {}

// FilterPattern restricts the current solution set to those satisfying Expr.
type FilterPattern struct {
	Expr Expr
}

func (FilterPattern) patternTag() {}

// OptionalPattern implements SPARQL's left outer join.
type OptionalPattern struct {
	Patterns []GraphPattern
}

func (OptionalPattern) patternTag() {}

// UnionPattern evaluates Left and Right independently and unions the
// resulting solutions.
type UnionPattern struct {
	Left  []GraphPattern
	Right []GraphPattern
}

func (UnionPattern) patternTag() {}

// GroupPattern is an explicit '{' ... '}' nesting, evaluated as its own
// seed and joined with the outer solution set.
type GroupPattern struct {
	Patterns []GraphPattern
}

func (GroupPattern) patternTag() {}

// Expr is the sum type over FILTER expressions.
type Expr interface {
	exprTag()
}

// VarExpr references a solution's binding for Name.
type VarExpr struct{ Name string }

func (VarExpr) exprTag() {}

// ConstExpr is a literal term appearing in an expression.
type ConstExpr struct{ Value term.Term }

func (ConstExpr) exprTag() {}

// CmpOp is a comparison operator.
type CmpOp int

const (
	CmpEq CmpOp = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

// CmpExpr compares Lhs and Rhs.
type CmpExpr struct {
	Op  CmpOp
	Lhs Expr
	Rhs Expr
}

func (CmpExpr) exprTag() {}

// LogicOp is a boolean connective.
type LogicOp int

const (
	LogicAnd LogicOp = iota
	LogicOr
	LogicNot
)

// LogicExpr combines Args with Op. LogicNot takes exactly one argument.
type LogicExpr struct {
	Op   LogicOp
	Args []Expr
}

func (LogicExpr) exprTag() {}

// CallExpr is a built-in function call: bound, isIRI/isURI, isLiteral, isBlank.
type CallExpr struct {
	Name string
	Args []Expr
}

func (CallExpr) exprTag() {}

// ArithOp is an arithmetic operator, reserved per the algebra; evaluation
// of ArithExpr is optional and not required by any built-in.
type ArithOp int

const (
	ArithAdd ArithOp = iota
	ArithSub
	ArithMul
	ArithDiv
)

// ArithExpr is reserved algebra for arithmetic; the executor does not
// evaluate it.
type ArithExpr struct {
	Op  ArithOp
	Lhs Expr
	Rhs Expr
}

func (ArithExpr) exprTag() {}
