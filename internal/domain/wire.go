package domain

import "reflect"

// ToRPC flattens a compiled expression into the nested-list prefix notation
// Odoo's search methods accept, e.g.
//
//	["&", ["login", "=", "user"], ["active", "=", true]]
//
// The flattening is a pure, order-preserving walk: a Logical node emits its
// tag once followed by each child in order, a Criterion emits its triple.
// No simplification is performed; the tree structure is preserved exactly.
// A nil expression yields the empty domain.
func ToRPC(e Expr) []any {
	out := []any{}
	if e == nil {
		return out
	}

	// Preorder walk over an explicit stack; children are pushed in reverse
	// so they pop in input order.
	stack := []Expr{e}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch n := node.(type) {
		case *Criterion:
			out = append(out, []any{n.Field, string(n.Operator), n.Value})
		case *Logical:
			out = append(out, string(n.Op))
			for i := len(n.Children) - 1; i >= 0; i-- {
				stack = append(stack, n.Children[i])
			}
		}
	}
	return out
}

// ParseRPC rebuilds an expression tree from the wire-format domain list.
// Operator strings become logic tokens and 3-element lists become criteria,
// then the stream goes through the same compiler that handles flag input,
// so flat criterion runs re-associate under the implicit AND exactly as the
// server would treat them. ToRPC(ParseRPC(d)) reproduces an equivalent tree
// for any well-formed d.
func ParseRPC(items []any) (Expr, error) {
	tokens := make([]Token, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			op := LogicalOp(v)
			if !op.valid() {
				return nil, malformedf("unknown logical operator %q", v)
			}
			tokens = append(tokens, LogicToken(op))
		case []any:
			crit, err := parseWireCriterion(v)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, CriterionToken(crit))
		default:
			return nil, malformedf("unexpected domain element %v (%T)", item, item)
		}
	}
	return Compile(tokens)
}

func parseWireCriterion(v []any) (*Criterion, error) {
	if len(v) != 3 {
		return nil, malformedf("criterion must have 3 elements, got %d", len(v))
	}
	field, ok := v[0].(string)
	if !ok {
		return nil, malformedf("criterion field must be a string, got %v", v[0])
	}
	opStr, ok := v[1].(string)
	if !ok {
		return nil, malformedf("criterion operator must be a string, got %v", v[1])
	}
	op := Operator(opStr)
	if !op.Valid() {
		return nil, &InvalidCriterionError{
			Field:    field,
			Operator: op,
			Expected: "one of " + OperatorList(),
		}
	}
	return newCriterion(field, op, v[2])
}

// Equal reports whether two expressions have the same structure: identical
// operators, child order, and criterion triples. Criterion values compare
// by deep equality, so the string "1" and the number 1 are different.
func Equal(a, b Expr) bool {
	switch an := a.(type) {
	case nil:
		return b == nil
	case *Criterion:
		bn, ok := b.(*Criterion)
		return ok && an.Field == bn.Field && an.Operator == bn.Operator &&
			reflect.DeepEqual(an.Value, bn.Value)
	case *Logical:
		bn, ok := b.(*Logical)
		if !ok || an.Op != bn.Op || len(an.Children) != len(bn.Children) {
			return false
		}
		for i := range an.Children {
			if !Equal(an.Children[i], bn.Children[i]) {
				return false
			}
		}
		return true
	}
	return false
}
