package ast

import "fmt"

// Expression is the base interface for every builder-surface node: it
// produces a value when compiled and evaluated. String() renders a debug
// form only; it is not a source-text round trip since there is
// no surface syntax in this core.
type Expression interface {
	String() string
	expressionNode()
}

// IntLit is an integer literal.
type IntLit struct {
	Value int64
}

func Int(v int64) *IntLit { return &IntLit{Value: v} }

func (n *IntLit) expressionNode() {}
func (n *IntLit) String() string  { return fmt.Sprintf("%d", n.Value) }

// FloatLit is a float literal.
type FloatLit struct {
	Value float64
}

func Float(v float64) *FloatLit { return &FloatLit{Value: v} }

func (n *FloatLit) expressionNode() {}
func (n *FloatLit) String() string  { return fmt.Sprintf("%gf", n.Value) }

// StringLit is a string literal.
type StringLit struct {
	Value string
}

func Str(v string) *StringLit { return &StringLit{Value: v} }

func (n *StringLit) expressionNode() {}
func (n *StringLit) String() string  { return fmt.Sprintf("%q", n.Value) }

// Ident references a named binding by identifier.
type Ident struct {
	Name string
}

func Id(name string) *Ident { return &Ident{Name: name} }

func (n *Ident) expressionNode() {}
func (n *Ident) String() string  { return n.Name }
