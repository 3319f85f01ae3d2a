package domain

import (
	"sort"
	"strings"
)

// Operator is a comparison operator usable inside a domain criterion.
// The set mirrors what the Odoo ORM accepts for search domains.
type Operator string

const (
	OpEqual        Operator = "="
	OpNotEqual     Operator = "!="
	OpGreater      Operator = ">"
	OpGreaterEqual Operator = ">="
	OpLess         Operator = "<"
	OpLessEqual    Operator = "<="
	OpUnsetEqual   Operator = "=?"
	OpEqLike       Operator = "=like"
	OpLike         Operator = "like"
	OpNotLike      Operator = "not like"
	OpILike        Operator = "ilike"
	OpNotILike     Operator = "not ilike"
	OpEqILike      Operator = "=ilike"
	OpIn           Operator = "in"
	OpNotIn        Operator = "not in"
	OpChildOf      Operator = "child_of"
	OpParentOf     Operator = "parent_of"
)

// valueShape constrains what kind of value an operator accepts. Field types
// are server-defined and unknown to the client, so only the shape is checked.
type valueShape int

const (
	shapeScalar       valueShape = iota // any non-list value
	shapeList                           // a list value is required
	shapeScalarOrList                   // one record id or a list of ids
)

var operatorShapes = map[Operator]valueShape{
	OpEqual:        shapeScalar,
	OpNotEqual:     shapeScalar,
	OpGreater:      shapeScalar,
	OpGreaterEqual: shapeScalar,
	OpLess:         shapeScalar,
	OpLessEqual:    shapeScalar,
	OpUnsetEqual:   shapeScalar,
	OpEqLike:       shapeScalar,
	OpLike:         shapeScalar,
	OpNotLike:      shapeScalar,
	OpILike:        shapeScalar,
	OpNotILike:     shapeScalar,
	OpEqILike:      shapeScalar,
	OpIn:           shapeList,
	OpNotIn:        shapeList,
	OpChildOf:      shapeScalarOrList,
	OpParentOf:     shapeScalarOrList,
}

func (s valueShape) String() string {
	switch s {
	case shapeList:
		return "a list value"
	case shapeScalarOrList:
		return "a record id or a list of record ids"
	default:
		return "a scalar value"
	}
}

// Valid reports whether op is a known criterion operator.
func (op Operator) Valid() bool {
	_, ok := operatorShapes[op]
	return ok
}

// Operators returns the valid operator spellings, sorted, for error messages
// and help text.
func Operators() []string {
	ops := make([]string, 0, len(operatorShapes))
	for op := range operatorShapes {
		ops = append(ops, string(op))
	}
	sort.Strings(ops)
	return ops
}

// OperatorList returns the valid operators as a quoted, comma-separated
// string.
func OperatorList() string {
	return `"` + strings.Join(Operators(), `", "`) + `"`
}
