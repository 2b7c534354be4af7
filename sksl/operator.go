// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sksl

// Operator is a unary or binary operator token.
type Operator uint8

const (
	OpPlus Operator = iota
	OpMinus
	OpStar
	OpSlash
	OpPercent
	OpShl
	OpShr
	OpLogicalNot
	OpLogicalAnd
	OpLogicalOr
	OpLogicalXor
	OpBitwiseNot
	OpBitwiseAnd
	OpBitwiseOr
	OpBitwiseXor
	OpEq
	OpNeq
	OpLt
	OpGt
	OpLteq
	OpGteq
	OpAssign
	OpPlusEq
	OpMinusEq
	OpStarEq
	OpSlashEq
	OpPercentEq
	OpShlEq
	OpShrEq
	OpBitwiseAndEq
	OpBitwiseOrEq
	OpBitwiseXorEq
	OpLogicalAndEq
	OpLogicalOrEq
	OpLogicalXorEq
	OpPlusPlus
	OpMinusMinus
	OpComma
)

var operatorText = [...]string{
	OpPlus:         "+",
	OpMinus:        "-",
	OpStar:         "*",
	OpSlash:        "/",
	OpPercent:      "%",
	OpShl:          "<<",
	OpShr:          ">>",
	OpLogicalNot:   "!",
	OpLogicalAnd:   "&&",
	OpLogicalOr:    "||",
	OpLogicalXor:   "^^",
	OpBitwiseNot:   "~",
	OpBitwiseAnd:   "&",
	OpBitwiseOr:    "|",
	OpBitwiseXor:   "^",
	OpEq:           "==",
	OpNeq:          "!=",
	OpLt:           "<",
	OpGt:           ">",
	OpLteq:         "<=",
	OpGteq:         ">=",
	OpAssign:       "=",
	OpPlusEq:       "+=",
	OpMinusEq:      "-=",
	OpStarEq:       "*=",
	OpSlashEq:      "/=",
	OpPercentEq:    "%=",
	OpShlEq:        "<<=",
	OpShrEq:        ">>=",
	OpBitwiseAndEq: "&=",
	OpBitwiseOrEq:  "|=",
	OpBitwiseXorEq: "^=",
	OpLogicalAndEq: "&&=",
	OpLogicalOrEq:  "||=",
	OpLogicalXorEq: "^^=",
	OpPlusPlus:     "++",
	OpMinusMinus:   "--",
	OpComma:        ",",
}

// String returns the operator's source spelling.
func (op Operator) String() string {
	if int(op) < len(operatorText) {
		return operatorText[op]
	}
	return "?"
}

// ParseOperator returns the operator spelled by s.
func ParseOperator(s string) (Operator, bool) {
	for op, text := range operatorText {
		if text == s {
			return Operator(op), true
		}
	}
	return 0, false
}

// Precedence orders operators by binding strength. Lower values bind
// tighter; TopLevel is used for contexts that never need parentheses.
type Precedence uint8

const (
	PrecedenceParentheses    Precedence = 1
	PrecedencePostfix        Precedence = 2
	PrecedencePrefix         Precedence = 3
	PrecedenceMultiplicative Precedence = 4
	PrecedenceAdditive       Precedence = 5
	PrecedenceShift          Precedence = 6
	PrecedenceRelational     Precedence = 7
	PrecedenceEquality       Precedence = 8
	PrecedenceBitwiseAnd     Precedence = 9
	PrecedenceBitwiseXor     Precedence = 10
	PrecedenceBitwiseOr      Precedence = 11
	PrecedenceLogicalAnd     Precedence = 12
	PrecedenceLogicalXor     Precedence = 13
	PrecedenceLogicalOr      Precedence = 14
	PrecedenceTernary        Precedence = 15
	PrecedenceAssignment     Precedence = 16
	PrecedenceSequence       Precedence = 17
	PrecedenceTopLevel       Precedence = 18
)

// BinaryPrecedence returns the precedence of a binary operator.
func BinaryPrecedence(op Operator) Precedence {
	switch op {
	case OpStar, OpSlash, OpPercent:
		return PrecedenceMultiplicative
	case OpPlus, OpMinus:
		return PrecedenceAdditive
	case OpShl, OpShr:
		return PrecedenceShift
	case OpLt, OpGt, OpLteq, OpGteq:
		return PrecedenceRelational
	case OpEq, OpNeq:
		return PrecedenceEquality
	case OpBitwiseAnd:
		return PrecedenceBitwiseAnd
	case OpBitwiseXor:
		return PrecedenceBitwiseXor
	case OpBitwiseOr:
		return PrecedenceBitwiseOr
	case OpLogicalAnd:
		return PrecedenceLogicalAnd
	case OpLogicalXor:
		return PrecedenceLogicalXor
	case OpLogicalOr:
		return PrecedenceLogicalOr
	case OpAssign, OpPlusEq, OpMinusEq, OpStarEq, OpSlashEq, OpPercentEq,
		OpShlEq, OpShrEq, OpBitwiseAndEq, OpBitwiseOrEq, OpBitwiseXorEq,
		OpLogicalAndEq, OpLogicalOrEq, OpLogicalXorEq:
		return PrecedenceAssignment
	case OpComma:
		return PrecedenceSequence
	default:
		return PrecedenceTopLevel
	}
}

// NeedsParentheses reports whether an operator of precedence p must be
// parenthesized inside a context of precedence parent.
func NeedsParentheses(p, parent Precedence) bool {
	return p >= parent
}
