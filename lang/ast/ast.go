// Package ast defines the syntax tree produced by the parser.
//
// The node set is closed: [Statement] and [Expression] can only be
// implemented inside this package, and every consumer walks the tree through
// [StatementVisitor] and [ExpressionVisitor]. Adding a node kind adds a visitor
// method, so every consumer fails to compile until it handles the new kind.
//
// Nodes are immutable after construction.
package ast

import (
	"fmt"

	"github.com/ardnew/brace/lang/token"
)

// Node is implemented by every syntax tree node.
type Node interface {
	Pos() token.Position
}

// Statement is a node executed for its effect.
type Statement interface {
	Node
	acceptStatement(d stmtDispatch)
}

// Expression is a node evaluated for its value.
type Expression interface {
	Node
	acceptExpression(d exprDispatch)
}

// Type is a declared variable type, and the runtime type of a value.
type Type int

// Types.
const (
	Int Type = iota + 1
	Float
	String
	Bool
)

// String returns the keyword spelling of the type.
func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// TypeOf returns the declared type named by a type keyword token kind.
func TypeOf(k token.Kind) (Type, bool) {
	switch k {
	case token.INT:
		return Int, true
	case token.FLOAT_T:
		return Float, true
	case token.STRING_T:
		return String, true
	case token.BOOL_T:
		return Bool, true
	default:
		return 0, false
	}
}

// Op is a binary arithmetic operator.
type Op byte

// Operators.
const (
	Add Op = '+'
	Sub Op = '-'
	Mul Op = '*'
	Div Op = '/'
)

func (o Op) String() string { return string(rune(o)) }

// Precedence returns the binding strength of the operator. Higher binds
// tighter.
func (o Op) Precedence() int {
	switch o {
	case Mul, Div:
		return 2
	default:
		return 1
	}
}

// OpOf returns the operator named by an operator token kind.
func OpOf(k token.Kind) (Op, bool) {
	switch k {
	case token.PLUS:
		return Add, true
	case token.MINUS:
		return Sub, true
	case token.MULTIPLY:
		return Mul, true
	case token.DIVIDE:
		return Div, true
	default:
		return 0, false
	}
}

// Block is a brace-delimited statement list that introduces a scope.
type Block struct {
	Statements []Statement
	At         token.Position
}

// Declaration binds a new variable in the innermost scope.
type Declaration struct {
	Type  Type
	Name  string
	Value Expression
	At    token.Position
}

// Assign overwrites the nearest existing binding of a variable.
type Assign struct {
	Name  string
	Value Expression
	At    token.Position
}

// Print appends the rendering of a value to the program output.
type Print struct {
	Value Expression
	At    token.Position
}

// BinaryOp applies an arithmetic operator to two operands.
type BinaryOp struct {
	Op    Op
	Left  Expression
	Right Expression
	At    token.Position
}

// Literal is a constant. Value holds an int64, float64, string, or bool
// according to Type; Raw is the source spelling.
type Literal struct {
	Type  Type
	Value any
	Raw   string
	At    token.Position
}

// Variable references a bound name.
type Variable struct {
	Name string
	At   token.Position
}

func (n *Block) Pos() token.Position       { return n.At }
func (n *Declaration) Pos() token.Position { return n.At }
func (n *Assign) Pos() token.Position      { return n.At }
func (n *Print) Pos() token.Position       { return n.At }
func (n *BinaryOp) Pos() token.Position    { return n.At }
func (n *Literal) Pos() token.Position     { return n.At }
func (n *Variable) Pos() token.Position    { return n.At }
