package ast

import (
	"fmt"
	"strings"
)

// Param is one formal parameter of a FuncDef. TypeName is the parameter's
// declared type ("Int", "Float", "String", ...), or "" for an untyped
// parameter, compiled as Any and matching every argument.
type Param struct {
	Name     string
	TypeName string
}

func P(name string) Param                      { return Param{Name: name} }
func TypedParam(name, typeName string) Param    { return Param{Name: name, TypeName: typeName} }

// FuncDef declares a named function candidate. Two or more FuncDefs sharing
// a Name contribute candidates to the same overload group, resolved at each
// Call site by the dispatcher. ReturnType
// is an optional declared return type ("" lets the compiler infer it from
// Body); Recursive self-reference (Call{Callee: Name, ...} inside Body) is
// supported since the compiler registers a FuncDef's own candidate before
// compiling its body.
type FuncDef struct {
	Name       string
	Params     []Param
	ReturnType string
	Body       Expression
}

func NewFuncDef(name string, params []Param, body Expression) *FuncDef {
	return &FuncDef{Name: name, Params: params, Body: body}
}

// WithReturnType sets an explicit declared return type and returns the
// receiver, for chaining at construction (e.g. gcd's `: Int` annotation).
func (n *FuncDef) WithReturnType(t string) *FuncDef {
	n.ReturnType = t
	return n
}

func (n *FuncDef) expressionNode() {}
func (n *FuncDef) String() string {
	parts := make([]string, len(n.Params))
	for i, p := range n.Params {
		if p.TypeName == "" {
			parts[i] = p.Name
		} else {
			parts[i] = fmt.Sprintf("%s: %s", p.Name, p.TypeName)
		}
	}
	ret := ""
	if n.ReturnType != "" {
		ret = ": " + n.ReturnType
	}
	return fmt.Sprintf("%s(%s)%s = %s", n.Name, strings.Join(parts, ", "), ret, n.Body)
}

// Call invokes the named overload group with Args, resolved against
// whichever candidates are visible (declared so far in the enclosing lexical
// chain) at the call site.
type Call struct {
	Callee string
	Args   []Expression
}

func NewCall(callee string, args ...Expression) *Call {
	return &Call{Callee: callee, Args: args}
}

func (n *Call) expressionNode() {}
func (n *Call) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", n.Callee, strings.Join(parts, ", "))
}
