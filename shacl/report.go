package shacl

import "rdf-graph-engine/term"

// ValidationResult reports a single constraint evaluation outcome.
type ValidationResult struct {
	FocusNode     term.Term
	ResultPath    *term.IRI
	Value         term.Term // set for per-value results
	SourceShape   term.Term
	Constraint    Constraint
	Message       string
	Severity      Severity
}

// ValidationReport is the outcome of validating a store against a set of
// shapes. Conforms is true iff no result carries severity Violation.
type ValidationReport struct {
	Conforms bool
	Results  []ValidationResult
}

func (r *ValidationReport) add(res ValidationResult) {
	r.Results = append(r.Results, res)
	if res.Severity == Violation {
		r.Conforms = false
	}
}

func newReport() *ValidationReport {
	return &ValidationReport{Conforms: true}
}
