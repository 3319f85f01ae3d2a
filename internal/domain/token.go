package domain

// TokenKind discriminates the two token variants the compiler consumes.
type TokenKind int

const (
	// TokenLogic is a bare prefix operator marker (--and, --or, --not).
	TokenLogic TokenKind = iota
	// TokenCriterion is a parsed --domain FIELD OPERATOR VALUE triple.
	TokenCriterion
)

// Token is one element of the ordered domain flag stream.
type Token struct {
	Kind      TokenKind
	Logic     LogicalOp  // set when Kind == TokenLogic
	Criterion *Criterion // set when Kind == TokenCriterion
}

// LogicToken wraps a prefix operator marker.
func LogicToken(op LogicalOp) Token {
	return Token{Kind: TokenLogic, Logic: op}
}

// CriterionToken wraps a parsed criterion.
func CriterionToken(c *Criterion) Token {
	return Token{Kind: TokenCriterion, Criterion: c}
}

var logicFlags = map[string]LogicalOp{
	"--and": OpAnd, "-a": OpAnd,
	"--or": OpOr, "-o": OpOr,
	"--not": OpNot, "-n": OpNot,
}

// ExtractTokens scans raw command arguments and pulls out the domain flags,
// preserving their relative order. A -d/--domain flag consumes the next
// three arguments as FIELD OPERATOR VALUE; the logic flags take no value.
// Every other argument is returned in rest, untouched and in order, for the
// regular flag parser. Scanning stops at a bare "--" terminator.
func ExtractTokens(args []string) (tokens []Token, rest []string, err error) {
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			rest = append(rest, args[i:]...)
			break
		}

		if op, ok := logicFlags[arg]; ok {
			tokens = append(tokens, LogicToken(op))
			continue
		}

		if arg == "--domain" || arg == "-d" {
			if len(args)-i-1 < 3 {
				return nil, nil, malformedf("%s expects FIELD OPERATOR VALUE, got %d argument(s)", arg, len(args)-i-1)
			}
			crit, cerr := NewCriterion(args[i+1], args[i+2], args[i+3])
			if cerr != nil {
				return nil, nil, cerr
			}
			tokens = append(tokens, CriterionToken(crit))
			i += 3
			continue
		}

		rest = append(rest, arg)
	}
	return tokens, rest, nil
}
