package ast

import (
	"fmt"
	"strings"
)

// Do sequences a list of expressions, evaluating to the last one (or None if
// empty), standing in for a `do ... end` block. It does not open a new
// lexical scope: an Assign inside a Do binds into the enclosing scope and
// stays visible after the block ends.
type Do struct {
	Body []Expression
}

func DoBlock(body ...Expression) *Do { return &Do{Body: body} }

func (n *Do) expressionNode() {}
func (n *Do) String() string {
	parts := make([]string, len(n.Body))
	for i, e := range n.Body {
		parts[i] = e.String()
	}
	return "do " + strings.Join(parts, "; ") + " end"
}

// If evaluates Cond (which must compile to a Boolean) and takes Then or
// Else; a nil Else compiles to a branch yielding None.
type If struct {
	Cond Expression
	Then Expression
	Else Expression
}

func NewIf(cond, then, els Expression) *If {
	return &If{Cond: cond, Then: then, Else: els}
}

func (n *If) expressionNode() {}
func (n *If) String() string {
	if n.Else == nil {
		return fmt.Sprintf("if %s then %s", n.Cond, n.Then)
	}
	return fmt.Sprintf("if %s then %s else %s", n.Cond, n.Then, n.Else)
}
