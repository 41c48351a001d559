package diffcalc

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxOutputTreeDepth and MaxLinesOnPage bound the typeset printer (§4.8):
// a subtree deeper than MaxOutputTreeDepth is aliased to a capital letter
// and its definition emitted as its own line, recursively; a typeset
// document is paginated at MaxLinesOnPage lines per page.
const (
	MaxOutputTreeDepth = 6
	MaxLinesOnPage      = 25
)

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// needsParens reports whether child, appearing as an operand of parentOp,
// must be parenthesized: a strictly-lower-precedence child always is; a
// right operand of equal-or-lower precedence is too (so "a-(b-c)" does not
// print as the ambiguous "a-b-c"); an operator right operand of `^` always
// is. Number and variable leaves are never parenthesized.
func needsParens(parentOp Operator, child *Node, isRight bool) bool {
	if child == nil || child.Kind != KindOperator {
		return false
	}
	parentPrec := operatorTable[parentOp].Precedence
	childPrec := operatorTable[child.Operator].Precedence
	if childPrec < parentPrec {
		return true
	}
	if isRight && childPrec <= parentPrec {
		return true
	}
	if parentOp == OpDeg && isRight {
		return true
	}
	return false
}

// InfixString renders expr's tree as human-readable infix text (§4.8),
// e.g. "sin(x)/x+x^2". Printing never mutates the tree.
func InfixString(expr *Expression) string {
	return infixNode(expr.Root, expr.Vars)
}

func infixNode(n *Node, vars *VarTable) string {
	switch n.Kind {
	case KindNumber:
		return formatNum(n.Num)
	case KindVariable:
		return vars.Name(n.VarSlot)
	case KindOperator:
		info := operatorTable[n.Operator]
		if info.Arity == 1 {
			return info.Symbol + "(" + infixNode(n.Right, vars) + ")"
		}
		l := infixNode(n.Left, vars)
		if needsParens(n.Operator, n.Left, false) {
			l = "(" + l + ")"
		}
		r := infixNode(n.Right, vars)
		if needsParens(n.Operator, n.Right, true) {
			r = "(" + r + ")"
		}
		return l + info.Symbol + r
	default:
		return "?"
	}
}

// PlotString renders expr using the external plotting tool's operator
// spellings (the operator table's PlotSymbol hints), otherwise identical in
// structure to InfixString.
func PlotString(expr *Expression) string {
	return plotNode(expr.Root, expr.Vars)
}

func plotNode(n *Node, vars *VarTable) string {
	switch n.Kind {
	case KindNumber:
		return formatNum(n.Num)
	case KindVariable:
		return vars.Name(n.VarSlot)
	case KindOperator:
		info := operatorTable[n.Operator]
		if info.Arity == 1 {
			return info.PlotSymbol + "(" + plotNode(n.Right, vars) + ")"
		}
		l := plotNode(n.Left, vars)
		if needsParens(n.Operator, n.Left, false) {
			l = "(" + l + ")"
		}
		r := plotNode(n.Right, vars)
		if needsParens(n.Operator, n.Right, true) {
			r = "(" + r + ")"
		}
		return l + info.PlotSymbol + r
	default:
		return "?"
	}
}

// typesetBuilder accumulates the aliased-subtree definition lines produced
// while rendering one expression's typeset form.
type typesetBuilder struct {
	vars       *VarTable
	aliasCount int
	defs       []string
}

func (b *typesetBuilder) build(n *Node, depth int) string {
	if n.Kind == KindOperator && depth > MaxOutputTreeDepth {
		b.aliasCount++
		name := fmt.Sprintf("A_{%d}", b.aliasCount)
		body := b.build(n, 0)
		b.defs = append(b.defs, name+" = "+body)
		return name
	}

	switch n.Kind {
	case KindNumber:
		return formatNum(n.Num)
	case KindVariable:
		return b.vars.Name(n.VarSlot)
	case KindOperator:
		info := operatorTable[n.Operator]
		if info.Arity == 1 {
			arg := b.build(n.Right, depth+1)
			if n.Operator == OpExp {
				return "e^{" + arg + "}"
			}
			return info.TexSymbol + "(" + arg + ")"
		}
		l := b.build(n.Left, depth+1)
		r := b.build(n.Right, depth+1)
		return b.binaryTex(info, n, l, r)
	default:
		return "?"
	}
}

func (b *typesetBuilder) binaryTex(info *OperatorInfo, n *Node, l, r string) string {
	switch n.Operator {
	case OpDiv:
		return "\\frac{" + l + "}{" + r + "}"
	case OpDeg:
		if needsParens(n.Operator, n.Left, false) {
			l = texWrap(l, info.CurlyGroup)
		}
		return l + "^{" + r + "}"
	default:
		if needsParens(n.Operator, n.Left, false) {
			l = texWrap(l, info.CurlyGroup)
		}
		if needsParens(n.Operator, n.Right, true) {
			r = texWrap(r, info.CurlyGroup)
		}
		return l + " " + info.TexSymbol + " " + r
	}
}

func texWrap(s string, curly bool) string {
	if curly {
		return "{" + s + "}"
	}
	return "(" + s + ")"
}

// TypesetDocument renders expr as typeset-math lines: zero or more aliased
// subtree definitions ("A_{1} = ...") followed by the main equation,
// paginated at MaxLinesOnPage lines per page (§4.8). Printing never
// mutates the tree.
func TypesetDocument(expr *Expression) [][]string {
	b := &typesetBuilder{vars: expr.Vars}
	main := b.build(expr.Root, 1)
	lines := append(append([]string{}, b.defs...), main)
	return paginate(lines, MaxLinesOnPage)
}

func paginate(lines []string, perPage int) [][]string {
	var pages [][]string
	for len(lines) > perPage {
		pages = append(pages, lines[:perPage:perPage])
		lines = lines[perPage:]
	}
	pages = append(pages, lines)
	return pages
}

// TypesetString flattens TypesetDocument into a single page-separated
// string, convenient for tests and for the report collaborator.
func TypesetString(expr *Expression) string {
	pages := TypesetDocument(expr)
	var sb strings.Builder
	for pi, page := range pages {
		if pi > 0 {
			sb.WriteString("\n--- page break ---\n")
		}
		for _, line := range page {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
