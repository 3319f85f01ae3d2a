package domain

// frame is a pending prefix operator waiting for its children. Frames live
// on an explicit stack rather than the call stack, so deeply nested input
// cannot exhaust call depth.
type frame struct {
	op       LogicalOp
	children []Expr
}

// Compile folds the ordered token stream into a single expression tree.
//
// Logic tokens push a pending-operator frame; criterion tokens attach to the
// innermost open frame. When a frame has collected its full arity it is
// wrapped into a Logical node and attached to the frame below it, cascading
// until no frame is saturated. Completed sub-expressions with no open frame
// land on the output stack; if more than one remains after all tokens are
// consumed, they combine under a left-associative implicit AND, matching the
// documented "successive domains imply --and" rule.
//
// A nil Expr with a nil error means no criteria were given: the always-true
// empty domain. A frame still open at end of input is a MalformedDomainError.
func Compile(tokens []Token) (Expr, error) {
	var pending []frame
	var out []Expr

	for _, tok := range tokens {
		switch tok.Kind {
		case TokenLogic:
			pending = append(pending, frame{op: tok.Logic})
		case TokenCriterion:
			pending, out = attach(pending, out, tok.Criterion)
		}
	}

	if n := len(pending); n > 0 {
		top := pending[n-1]
		return nil, &MalformedDomainError{Op: top.op, Got: len(top.children)}
	}

	if len(out) == 0 {
		return nil, nil
	}

	root := out[0]
	for _, e := range out[1:] {
		root = &Logical{Op: OpAnd, Children: []Expr{root, e}}
	}
	return root, nil
}

// attach feeds a completed node into the innermost open frame, cascading
// saturated frames upward, or onto the output stack when no frame is open.
func attach(pending []frame, out []Expr, node Expr) ([]frame, []Expr) {
	for {
		if len(pending) == 0 {
			return pending, append(out, node)
		}
		top := &pending[len(pending)-1]
		top.children = append(top.children, node)
		if len(top.children) < top.op.Arity() {
			return pending, out
		}
		node = &Logical{Op: top.op, Children: top.children}
		pending = pending[:len(pending)-1]
	}
}
