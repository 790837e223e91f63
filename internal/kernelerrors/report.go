package kernelerrors

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Report is the canonical structured error type for the kernel. Every
// operation that can fail returns one, wrapped as an error, rather than a
// bare string — callers that want to branch on failure kind use AsReport
// instead of matching on message text.
type Report struct {
	Schema  string         `json:"schema"` // Always "kernel.error/v1"
	Code    string         `json:"code"`   // KER001, KER002, …
	Phase   string         `json:"phase"`  // Always "kernel"
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// ReportError wraps a Report as an error so it survives errors.As unwrapping.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown kernel error"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport extracts a Report from an error chain, if present.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

func wrap(code, message string, data map[string]any) error {
	return &ReportError{Rep: &Report{
		Schema:  "kernel.error/v1",
		Code:    code,
		Phase:   phase,
		Message: message,
		Data:    data,
	}}
}

// ToJSON renders a Report as deterministic JSON.
func (r *Report) ToJSON(compact bool) (string, error) {
	if compact {
		b, err := json.Marshal(r)
		return string(b), err
	}
	b, err := json.MarshalIndent(r, "", "  ")
	return string(b), err
}

// TypeMismatch builds a KER001 report.
func TypeMismatch(expected, actual string) error {
	return wrap(KER001, fmt.Sprintf("type mismatch:\nexpected %s\n   found %s", expected, actual),
		map[string]any{"expected": expected, "actual": actual})
}

// NonFunctionApplication builds a KER002 report.
func NonFunctionApplication(lhs, ty string) error {
	return wrap(KER002, fmt.Sprintf("application LHS `%s : %s` not a Π type", lhs, ty),
		map[string]any{"lhs": lhs, "type": ty})
}

// InvalidArity builds a KER003 report.
func InvalidArity(expr string) error {
	return wrap(KER003, fmt.Sprintf("`%s` is not a valid arity: not a Π-telescope ending in Sort", expr),
		map[string]any{"expr": expr})
}

// ArityDependsOnIndices builds a KER004 report.
func ArityDependsOnIndices() error {
	return wrap(KER004, "universe level cannot depend on indices", nil)
}

// TooManyConstructors builds a KER005 report.
func TooManyConstructors(count int) error {
	return wrap(KER005, "too many constructors", map[string]any{"count": count})
}

// ConstructorSortMismatch builds a KER006 report.
func ConstructorSortMismatch(expected, actual string) error {
	return wrap(KER006, fmt.Sprintf("constructor sort mismatch:\nexpected %s\n   found %s", expected, actual),
		map[string]any{"expected": expected, "actual": actual})
}

// SmallElimNonProposition builds a KER007 report.
func SmallElimNonProposition() error {
	return wrap(KER007, "small elimination allowed for inductive propositions only", nil)
}

// MultiConstructorForbidden builds a KER008 report.
func MultiConstructorForbidden() error {
	return wrap(KER008, "more than one constructor forbidden in this universe", nil)
}

// NotStrictPositive builds a KER009 report.
func NotStrictPositive(expr string) error {
	return wrap(KER009, fmt.Sprintf("not strict positive: `%s`", expr), map[string]any{"expr": expr})
}

// SingletonElimViolation builds a KER010 report.
func SingletonElimViolation() error {
	return wrap(KER010, "singleton-elimination hidden-argument rule not satisfied", nil)
}

// InvalidConstructorShape builds a KER011 report.
func InvalidConstructorShape(expr string) error {
	return wrap(KER011, fmt.Sprintf("invalid expression in constructor: `%s`", expr), map[string]any{"expr": expr})
}

// DependedOnParamMentionsSelf builds a KER011 report for the other invalid
// constructor shape: a parameter the result depends on carries the
// inductive's own back-reference in its body.
func DependedOnParamMentionsSelf() error {
	return wrap(KER011, "depended-on parameter cannot reference the inductive being defined", nil)
}

// LevelOverflow builds a KER012 report.
func LevelOverflow(what string) error {
	return wrap(KER012, fmt.Sprintf("%s overflow", what), map[string]any{"what": what})
}

// TruncateBelowBuiltins builds a KER013 report.
func TruncateBelowBuiltins(numBuiltins int) error {
	return wrap(KER013, "cannot truncate past constants", map[string]any{"builtins": numBuiltins})
}

// IndexOutOfRange builds a KER014 report.
func IndexOutOfRange(kind string, index, limit int) error {
	return wrap(KER014, fmt.Sprintf("%s index %d out of range (limit %d)", kind, index, limit),
		map[string]any{"kind": kind, "index": index, "limit": limit})
}

// NotASort builds a KER001-adjacent report for an expression expected to be
// a universe but isn't.
func NotASort(expr string) error {
	return wrap(KER001, fmt.Sprintf("expression `%s` not a sort", expr), map[string]any{"expr": expr})
}
