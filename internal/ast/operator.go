package ast

import "fmt"

type Operator int

const (
	NoOp Operator = iota

	// Arithmetic
	ADD
	SUB
	MUL
	DIV

	// Comparison
	EQ
	NE
	LT
	LE
	GT
	GE

	// Logical
	AND
	OR

	ASSIGN
)

var operatorSpelling = [...]string{
	NoOp:   "",
	ADD:    "+",
	SUB:    "-",
	MUL:    "*",
	DIV:    "/",
	EQ:     "==",
	NE:     "!=",
	LT:     "<",
	LE:     "<=",
	GT:     ">",
	GE:     ">=",
	AND:    "and",
	OR:     "or",
	ASSIGN: "=",
}

func (o Operator) String() string {
	if o >= 0 && int(o) < len(operatorSpelling) {
		return operatorSpelling[o]
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// IsComparison reports whether o compares its operands.
func (o Operator) IsComparison() bool {
	return o >= EQ && o <= GE
}

// BinaryOperator maps an arithmetic, comparison or logical spelling to its
// operator.
func BinaryOperator(spelling string) (Operator, bool) {
	for op := ADD; op <= OR; op++ {
		if operatorSpelling[op] == spelling {
			return op, true
		}
	}
	return NoOp, false
}

// CompoundBase maps a compound assignment spelling ("+=") to the operator
// it applies ("+").
func CompoundBase(spelling string) (Operator, bool) {
	switch spelling {
	case "+=":
		return ADD, true
	case "-=":
		return SUB, true
	case "*=":
		return MUL, true
	case "/=":
		return DIV, true
	}
	return NoOp, false
}
