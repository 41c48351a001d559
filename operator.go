package diffcalc

import "math"

// Operator is the closed enumeration of operations an expression node can
// carry. The brackets and the END sentinel exist only inside the
// lexer/parser and never appear in a tree; they are the token kinds
// tokOpenParen, tokCloseParen and tokEnd declared in lexer.go.
type Operator int

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
	OpDeg
	OpLn
	OpExp
	OpSin
	OpCos
	OpTan
	OpCot
	OpArcsin
	OpArccos
	OpArctan
	OpArccot
)

// TexPosition describes where an operator's typeset symbol is emitted
// relative to its operands.
type TexPosition int

const (
	TexInfix TexPosition = iota
	TexPrefix
)

// derivRule synthesises d(node)/d(var) for one operator node. d recurses on
// a child (the original's d(node) macro); rules deep-copy children with the
// package-level cpy (CPY).
type derivRule func(node *Node, target int, d func(*Node) (*Node, error)) (*Node, error)

// OperatorInfo is the single authoritative row for one operator: its input
// symbol, precedence, arity, numeric action, derivative rule, and
// presentation hints. The parser's keyword table, the evaluator's dispatch,
// the printer's symbol/bracket rules, and the differentiator's per-operator
// rule are all generated from this table (§4.1) — adding an operator means
// adding one entry here, nothing else.
type OperatorInfo struct {
	Symbol     string // input/infix form, e.g. "+", "sin"
	Precedence int
	Arity      int
	Eval       func(a, b float64) float64
	Derivative derivRule

	PlotSymbol string // spelling for the external plotting tool

	TexSymbol        string
	TexPosition      TexPosition
	NeedLeftBracket  bool
	NeedRightBracket bool
	CurlyGroup       bool // curly-brace grouping (e.g. \frac{a}{b}) vs plain parens
}

var operatorTable map[Operator]*OperatorInfo

func init() {
	operatorTable = map[Operator]*OperatorInfo{
		OpAdd: {
			Symbol: "+", Precedence: 1, Arity: 2,
			Eval:       func(a, b float64) float64 { return a + b },
			PlotSymbol: "+", TexSymbol: "+", TexPosition: TexInfix,
			Derivative: func(node *Node, target int, d func(*Node) (*Node, error)) (*Node, error) {
				l, err := d(node.Left)
				if err != nil {
					return nil, err
				}
				r, err := d(node.Right)
				if err != nil {
					return nil, err
				}
				return _ADD(l, r), nil
			},
		},
		OpSub: {
			Symbol: "-", Precedence: 1, Arity: 2,
			Eval:       func(a, b float64) float64 { return a - b },
			PlotSymbol: "-", TexSymbol: "-", TexPosition: TexInfix,
			Derivative: func(node *Node, target int, d func(*Node) (*Node, error)) (*Node, error) {
				l, err := d(node.Left)
				if err != nil {
					return nil, err
				}
				r, err := d(node.Right)
				if err != nil {
					return nil, err
				}
				return _SUB(l, r), nil
			},
		},
		OpMul: {
			Symbol: "*", Precedence: 2, Arity: 2,
			Eval:       func(a, b float64) float64 { return a * b },
			PlotSymbol: "*", TexSymbol: "\\cdot", TexPosition: TexInfix,
			Derivative: func(node *Node, target int, d func(*Node) (*Node, error)) (*Node, error) {
				dl, err := d(node.Left)
				if err != nil {
					return nil, err
				}
				dr, err := d(node.Right)
				if err != nil {
					return nil, err
				}
				return _ADD(_MUL(dl, cpy(node.Right)), _MUL(cpy(node.Left), dr)), nil
			},
		},
		OpDiv: {
			Symbol: "/", Precedence: 2, Arity: 2,
			Eval:       func(a, b float64) float64 { return a / b },
			PlotSymbol: "/", TexSymbol: "\\frac", TexPosition: TexPrefix,
			NeedLeftBracket: true, NeedRightBracket: true, CurlyGroup: true,
			Derivative: func(node *Node, target int, d func(*Node) (*Node, error)) (*Node, error) {
				dl, err := d(node.Left)
				if err != nil {
					return nil, err
				}
				dr, err := d(node.Right)
				if err != nil {
					return nil, err
				}
				num := _SUB(_MUL(dl, cpy(node.Right)), _MUL(cpy(node.Left), dr))
				den := _DEG(cpy(node.Right), _NUM(2))
				return _DIV(num, den), nil
			},
		},
		OpDeg: {
			Symbol: "^", Precedence: 3, Arity: 2,
			Eval:       func(a, b float64) float64 { return math.Pow(a, b) },
			PlotSymbol: "**", TexSymbol: "^", TexPosition: TexInfix,
			NeedRightBracket: true,
			Derivative:       degDerivative,
		},
		OpLn: {
			Symbol: "ln", Precedence: 4, Arity: 1,
			Eval:       func(a, _ float64) float64 { return math.Log(a) },
			PlotSymbol: "ln", TexSymbol: "\\ln", TexPosition: TexPrefix,
			Derivative: func(node *Node, target int, d func(*Node) (*Node, error)) (*Node, error) {
				du, err := d(node.Right)
				if err != nil {
					return nil, err
				}
				return _DIV(du, cpy(node.Right)), nil
			},
		},
		OpExp: {
			Symbol: "exp", Precedence: 4, Arity: 1,
			Eval:       func(a, _ float64) float64 { return math.Exp(a) },
			PlotSymbol: "exp", TexSymbol: "e^", TexPosition: TexPrefix,
			Derivative: func(node *Node, target int, d func(*Node) (*Node, error)) (*Node, error) {
				du, err := d(node.Right)
				if err != nil {
					return nil, err
				}
				return _MUL(du, cpy(node)), nil
			},
		},
		OpSin: {
			Symbol: "sin", Precedence: 4, Arity: 1,
			Eval:       func(a, _ float64) float64 { return math.Sin(a) },
			PlotSymbol: "sin", TexSymbol: "\\sin", TexPosition: TexPrefix,
			Derivative: func(node *Node, target int, d func(*Node) (*Node, error)) (*Node, error) {
				du, err := d(node.Right)
				if err != nil {
					return nil, err
				}
				return _MUL(du, _COS(cpy(node.Right))), nil
			},
		},
		OpCos: {
			Symbol: "cos", Precedence: 4, Arity: 1,
			Eval:       func(a, _ float64) float64 { return math.Cos(a) },
			PlotSymbol: "cos", TexSymbol: "\\cos", TexPosition: TexPrefix,
			Derivative: func(node *Node, target int, d func(*Node) (*Node, error)) (*Node, error) {
				du, err := d(node.Right)
				if err != nil {
					return nil, err
				}
				return _MUL(_NUM(-1), _MUL(du, _SIN(cpy(node.Right)))), nil
			},
		},
		OpTan: {
			Symbol: "tg", Precedence: 4, Arity: 1,
			Eval:       func(a, _ float64) float64 { return math.Tan(a) },
			PlotSymbol: "tan", TexSymbol: "\\tan", TexPosition: TexPrefix,
			Derivative: func(node *Node, target int, d func(*Node) (*Node, error)) (*Node, error) {
				du, err := d(node.Right)
				if err != nil {
					return nil, err
				}
				den := _DEG(_COS(cpy(node.Right)), _NUM(2))
				return _DIV(du, den), nil
			},
		},
		OpCot: {
			Symbol: "ctg", Precedence: 4, Arity: 1,
			Eval:       func(a, _ float64) float64 { return 1 / math.Tan(a) },
			PlotSymbol: "cot", TexSymbol: "\\cot", TexPosition: TexPrefix,
			Derivative: func(node *Node, target int, d func(*Node) (*Node, error)) (*Node, error) {
				du, err := d(node.Right)
				if err != nil {
					return nil, err
				}
				den := _DEG(_SIN(cpy(node.Right)), _NUM(2))
				return _MUL(_NUM(-1), _DIV(du, den)), nil
			},
		},
		OpArcsin: {
			Symbol: "arcsin", Precedence: 4, Arity: 1,
			Eval:       func(a, _ float64) float64 { return math.Asin(a) },
			PlotSymbol: "asin", TexSymbol: "\\arcsin", TexPosition: TexPrefix,
			Derivative: func(node *Node, target int, d func(*Node) (*Node, error)) (*Node, error) {
				du, err := d(node.Right)
				if err != nil {
					return nil, err
				}
				den := _DEG(_SUB(_NUM(1), _DEG(cpy(node.Right), _NUM(2))), _NUM(0.5))
				return _DIV(du, den), nil
			},
		},
		OpArccos: {
			Symbol: "arccos", Precedence: 4, Arity: 1,
			Eval:       func(a, _ float64) float64 { return math.Acos(a) },
			PlotSymbol: "acos", TexSymbol: "\\arccos", TexPosition: TexPrefix,
			Derivative: func(node *Node, target int, d func(*Node) (*Node, error)) (*Node, error) {
				du, err := d(node.Right)
				if err != nil {
					return nil, err
				}
				den := _DEG(_SUB(_NUM(1), _DEG(cpy(node.Right), _NUM(2))), _NUM(0.5))
				return _MUL(_NUM(-1), _DIV(du, den)), nil
			},
		},
		OpArctan: {
			Symbol: "arctg", Precedence: 4, Arity: 1,
			Eval:       func(a, _ float64) float64 { return math.Atan(a) },
			PlotSymbol: "atan", TexSymbol: "\\arctan", TexPosition: TexPrefix,
			Derivative: func(node *Node, target int, d func(*Node) (*Node, error)) (*Node, error) {
				du, err := d(node.Right)
				if err != nil {
					return nil, err
				}
				den := _ADD(_NUM(1), _DEG(cpy(node.Right), _NUM(2)))
				return _DIV(du, den), nil
			},
		},
		OpArccot: {
			Symbol: "arcctg", Precedence: 4, Arity: 1,
			Eval:       func(a, _ float64) float64 { return math.Pi/2 - math.Atan(a) },
			PlotSymbol: "acot", TexSymbol: "\\operatorname{arccot}", TexPosition: TexPrefix,
			Derivative: func(node *Node, target int, d func(*Node) (*Node, error)) (*Node, error) {
				du, err := d(node.Right)
				if err != nil {
					return nil, err
				}
				den := _ADD(_NUM(1), _DEG(cpy(node.Right), _NUM(2)))
				return _MUL(_NUM(-1), _DIV(du, den)), nil
			},
		},
	}
}

// degDerivative implements the power rule's four cases (§4.1): the
// differentiation variable may appear in neither, only the base, only the
// exponent, or both. The exponent-only case carries the d(exponent) factor
// that some drafts of the original omit (§9's named defect).
func degDerivative(node *Node, target int, d func(*Node) (*Node, error)) (*Node, error) {
	inBase := containsVariable(node.Left, target)
	inExp := containsVariable(node.Right, target)

	switch {
	case !inBase && !inExp:
		return _NUM(0), nil
	case inBase && !inExp:
		// d(base^exp) = exp * base^(exp-1) * d(base)
		dBase, err := d(node.Left)
		if err != nil {
			return nil, err
		}
		power := _DEG(cpy(node.Left), _SUB(cpy(node.Right), _NUM(1)))
		return _MUL(_MUL(cpy(node.Right), power), dBase), nil
	case !inBase && inExp:
		// d(base^exp) = base^exp * ln(base) * d(exp)
		dExp, err := d(node.Right)
		if err != nil {
			return nil, err
		}
		return _MUL(_MUL(cpy(node), _LN(cpy(node.Left))), dExp), nil
	default:
		// logarithmic derivative: base^exp * (d(exp)*ln(base) + exp*d(base)/base)
		dBase, err := d(node.Left)
		if err != nil {
			return nil, err
		}
		dExp, err := d(node.Right)
		if err != nil {
			return nil, err
		}
		inner := _ADD(_MUL(dExp, _LN(cpy(node.Left))), _MUL(cpy(node.Right), _DIV(dBase, cpy(node.Left))))
		return _MUL(inner, cpy(node)), nil
	}
}
