// Package domain compiles the ordered --domain/--or/--and/--not flag stream
// into a boolean expression tree and serializes it to the prefix-notation
// wire format Odoo expects for search domains.
//
// Logical operators are prefix and have fixed arity: AND and OR combine the
// two sub-expressions that follow them, NOT negates the one that follows it.
// Two or more criteria given without an explicit operator combine under an
// implicit AND, so
//
//	-d login = user -d active = true
//
// matches users that satisfy both criteria, while
//
//	--or -d login = user -d login = admin
//
// matches either. The compiled tree is immutable; it is built once per
// invocation and handed to the RPC layer, which only reads it.
package domain

import (
	"encoding/json"
	"fmt"
)

// LogicalOp is a prefix logical operator tag in its Odoo wire spelling.
type LogicalOp string

const (
	OpAnd LogicalOp = "&"
	OpOr  LogicalOp = "|"
	OpNot LogicalOp = "!"
)

// Arity returns the number of sub-expressions the operator consumes.
func (op LogicalOp) Arity() int {
	if op == OpNot {
		return 1
	}
	return 2
}

// Name returns the operator's spelled-out name for error messages.
func (op LogicalOp) Name() string {
	switch op {
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	case OpNot:
		return "NOT"
	}
	return string(op)
}

func (op LogicalOp) valid() bool {
	return op == OpAnd || op == OpOr || op == OpNot
}

// Expr is a node of a compiled domain expression: either a *Criterion leaf
// or a *Logical application.
type Expr interface {
	expr()
}

// Criterion is an atomic (field, operator, value) filter triple. Field may
// be a dotted path traversing Many2one relationships, e.g. "partner_id.name".
type Criterion struct {
	Field    string
	Operator Operator
	Value    any
}

func (*Criterion) expr() {}

func (c *Criterion) String() string {
	v, err := json.Marshal(c.Value)
	if err != nil {
		v = []byte(fmt.Sprintf("%v", c.Value))
	}
	return fmt.Sprintf("(%s %s %s)", c.Field, c.Operator, v)
}

// Logical applies a prefix operator to exactly Arity() children, in input
// order.
type Logical struct {
	Op       LogicalOp
	Children []Expr
}

func (*Logical) expr() {}

func (l *Logical) String() string {
	s := l.Op.Name() + "("
	for i, child := range l.Children {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%v", child)
	}
	return s + ")"
}

// NewCriterion validates a raw field/operator/value triple and builds the
// leaf node. The value literal is decoded as JSON when possible, so list
// values are written as `[1,2,3]` and quoted strings keep their type;
// anything that is not valid JSON is taken as a plain string.
func NewCriterion(field, operator, literal string) (*Criterion, error) {
	op := Operator(operator)
	if !op.Valid() {
		return nil, &InvalidCriterionError{
			Field:    field,
			Operator: op,
			Expected: "one of " + OperatorList(),
		}
	}

	return newCriterion(field, op, parseLiteral(literal))
}

// newCriterion enforces the operator's value-shape constraint on an already
// typed value and builds the leaf node.
func newCriterion(field string, op Operator, value any) (*Criterion, error) {
	shape := operatorShapes[op]
	_, isList := value.([]any)

	switch shape {
	case shapeList:
		if !isList {
			return nil, &InvalidCriterionError{Field: field, Operator: op, Expected: shape.String()}
		}
	case shapeScalar:
		if isList {
			return nil, &InvalidCriterionError{Field: field, Operator: op, Expected: shape.String()}
		}
	case shapeScalarOrList:
		// Either works.
	}

	return &Criterion{Field: field, Operator: op, Value: value}, nil
}

// parseLiteral interprets a command-line value literal. JSON syntax wins
// (lists, numbers, booleans, null, quoted strings); everything else is the
// raw string, which covers the common unquoted case.
func parseLiteral(literal string) any {
	var v any
	if err := json.Unmarshal([]byte(literal), &v); err != nil {
		return literal
	}
	return v
}
