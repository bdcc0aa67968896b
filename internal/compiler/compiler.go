// Package compiler turns an ast.Expression tree into an instr.Statement
// tree: it resolves identifiers against a stack.Scope, declares new
// bindings on first assignment, types every node, groups same-named
// FuncDefs into overload candidate sets, and performs the static half of
// overload elimination before handing any remaining ambiguity to a runtime
// Dispatch node.
package compiler

import (
	"fmt"

	"github.com/cwbudde/corelang/internal/ast"
	"github.com/cwbudde/corelang/internal/dispatch"
	corerr "github.com/cwbudde/corelang/internal/errors"
	"github.com/cwbudde/corelang/internal/instr"
	"github.com/cwbudde/corelang/internal/ptype"
	"github.com/cwbudde/corelang/internal/stack"
	"github.com/cwbudde/corelang/internal/value"
)

// candidate is a FuncDef's compiled overload contribution, recorded against
// the Context it was declared in so a Call anywhere in that context's
// lexical descendants can find it. The
// DispatchCandidate is shared by pointer with every Dispatch statement that
// references it: a recursive body's call site is compiled while dc.Body is
// still nil, and sees the finished body once compileFuncDef fills it in.
type candidate struct {
	dc         *instr.DispatchCandidate
	returnType *ptype.Type
}

// Compiler holds the overload groups accumulated across one Compile call (or
// a family of them sharing the same root scope); it has no other state, so
// a zero Compiler is ready to use.
type Compiler struct {
	groups map[*stack.Context]map[string][]*candidate
}

// New constructs a Compiler with empty overload-group bookkeeping.
func New() *Compiler {
	return &Compiler{groups: make(map[*stack.Context]map[string][]*candidate)}
}

// Compile compiles expr against scope; it is the compiler's entry point.
func (c *Compiler) Compile(expr ast.Expression, scope *stack.Scope) (*instr.Statement, error) {
	return c.compile(expr, scope)
}

func (c *Compiler) compile(expr ast.Expression, scope *stack.Scope) (*instr.Statement, error) {
	switch n := expr.(type) {
	case *ast.IntLit:
		return instr.NewConstant(value.Int(n.Value)).WithType(ptype.IntegerT), nil
	case *ast.FloatLit:
		return instr.NewConstant(value.Float(n.Value)).WithType(ptype.FloatT), nil
	case *ast.StringLit:
		return instr.NewConstant(value.StringOf(n.Value)).WithType(ptype.StringT), nil
	case *ast.Ident:
		return c.resolveIdent(scope, n.Name)
	case *ast.Unary:
		return c.compileUnary(n, scope)
	case *ast.Binary:
		return c.compileBinary(n, scope)
	case *ast.Assign:
		return c.compileAssign(n, scope)
	case *ast.Do:
		return c.compileDo(n, scope)
	case *ast.If:
		return c.compileIf(n, scope)
	case *ast.FuncDef:
		return c.compileFuncDef(n, scope)
	case *ast.Call:
		return c.compileCall(n, scope)
	default:
		return nil, corerr.NewCompileError(fmt.Sprintf("unsupported expression %T", expr), expr.String())
	}
}

// resolveIdent looks up name in scope, falling through to scope's owning
// Context's Imports (and so on, recursively) for a name declared in an
// enclosing, already-compiled scope, wrapping the result in as many
// FromImportedStack hops as import levels were crossed.
func (c *Compiler) resolveIdent(scope *stack.Scope, name string) (*instr.Statement, error) {
	st, _, ok := resolveInContext(scope, scope.Context(), name)
	if !ok {
		return nil, corerr.NewCompileError("unresolved identifier "+name, name)
	}
	return st, nil
}

func resolveInContext(scope *stack.Scope, ctx *stack.Context, name string) (*instr.Statement, *ptype.Type, bool) {
	if v, ok := scope.Lookup(name); ok {
		return instr.NewVariableGet(v.StackIndex).WithType(v.CachedType), v.CachedType, true
	}
	for i, imp := range ctx.Imports {
		if st, t, ok := resolveInContext(imp.Top, imp, name); ok {
			return instr.NewFromImportedStack(i, st).WithType(t), t, true
		}
	}
	return nil, nil, false
}

func (c *Compiler) compileAssign(n *ast.Assign, scope *stack.Scope) (*instr.Statement, error) {
	rhs, err := c.compile(n.Value, scope)
	if err != nil {
		return nil, err
	}
	v, ok := scope.Lookup(n.Name)
	if !ok {
		v = scope.Declare(n.Name)
		v.CachedType = rhs.CachedType
	}
	return instr.NewVariableSet(v.StackIndex, rhs).WithType(rhs.CachedType), nil
}

func (c *Compiler) compileDo(n *ast.Do, scope *stack.Scope) (*instr.Statement, error) {
	items := make([]*instr.Statement, len(n.Body))
	var last *ptype.Type = ptype.NoneT
	for i, e := range n.Body {
		st, err := c.compile(e, scope)
		if err != nil {
			return nil, err
		}
		items[i] = st
		last = st.CachedType
	}
	return instr.NewSequence(items...).WithType(last), nil
}

func (c *Compiler) compileIf(n *ast.If, scope *stack.Scope) (*instr.Statement, error) {
	cond, err := c.compile(n.Cond, scope)
	if err != nil {
		return nil, err
	}
	// A condition of typeclass type (Any, a Union folded from overload
	// returns) passes here and is checked by the evaluator at run time; only
	// a provably non-Boolean condition is rejected.
	if ptype.MatchBound(ptype.NewTypeBound(ptype.BooleanT, ptype.Covariant), cond.CachedType) == ptype.None {
		return nil, corerr.NewCompileError("if condition must be Boolean", n.String())
	}
	then, err := c.compile(n.Then, scope)
	if err != nil {
		return nil, err
	}
	var elseSt *instr.Statement
	resultType := then.CachedType
	if n.Else != nil {
		elseSt, err = c.compile(n.Else, scope)
		if err != nil {
			return nil, err
		}
		resultType = ptype.CommonType(then.CachedType, elseSt.CachedType)
	}
	return instr.NewIf(cond, then, elseSt).WithType(resultType), nil
}

// resolveTypeName maps a Param/FuncDef's declared type name to its ptype,
// "" meaning untyped (Any, matching every argument).
func resolveTypeName(name string) *ptype.Type {
	switch name {
	case "Int":
		return ptype.IntegerT
	case "Float":
		return ptype.FloatT
	case "String":
		return ptype.StringT
	case "Boolean":
		return ptype.BooleanT
	default:
		return ptype.AnyT
	}
}

func (c *Compiler) compileFuncDef(n *ast.FuncDef, scope *stack.Scope) (*instr.Statement, error) {
	ownerCtx := scope.Context()
	childCtx := stack.NewContext([]*stack.Context{ownerCtx})
	childTop := childCtx.Top

	argTypes := make([]*ptype.Type, len(n.Params))
	for i, p := range n.Params {
		pv := childTop.Declare(p.Name)
		pv.CachedType = resolveTypeName(p.TypeName)
		argTypes[i] = pv.CachedType
	}

	cand := &candidate{dc: &instr.DispatchCandidate{ArgTypes: argTypes}}
	if n.ReturnType != "" {
		cand.returnType = resolveTypeName(n.ReturnType)
	}
	c.addCandidate(ownerCtx, n.Name, cand)

	body, err := c.compile(n.Body, childTop)
	if err != nil {
		return nil, err
	}
	cand.dc.Body = body
	cand.dc.Locals = len(childCtx.AllVariables)
	if cand.returnType == nil {
		cand.returnType = body.CachedType
	}

	return instr.NewNoOp().WithType(ptype.NoneT), nil
}

func (c *Compiler) addCandidate(ctx *stack.Context, name string, cand *candidate) {
	if c.groups == nil {
		c.groups = make(map[*stack.Context]map[string][]*candidate)
	}
	byName, ok := c.groups[ctx]
	if !ok {
		byName = make(map[string][]*candidate)
		c.groups[ctx] = byName
	}
	byName[name] = append(byName[name], cand)
}

// resolveGroup finds name's overload group, searching ctx then its Imports
// recursively, returning the hop path needed at runtime to reach the Stack
// that corresponds to the group's own defining Context (a recursive call
// happens one context deeper than the definition).
func (c *Compiler) resolveGroup(ctx *stack.Context, name string) ([]*candidate, []int, bool) {
	if byName, ok := c.groups[ctx]; ok {
		if cands, ok := byName[name]; ok {
			return cands, nil, true
		}
	}
	for i, imp := range ctx.Imports {
		if cands, path, ok := c.resolveGroup(imp, name); ok {
			return cands, append([]int{i}, path...), true
		}
	}
	return nil, nil, false
}

func (c *Compiler) compileCall(n *ast.Call, scope *stack.Scope) (*instr.Statement, error) {
	cands, path, ok := c.resolveGroup(scope.Context(), n.Callee)
	if !ok {
		return nil, corerr.NewCompileError("call to undefined function "+n.Callee, n.String())
	}

	args := make([]*instr.Statement, len(n.Args))
	argTypes := make([]*ptype.Type, len(n.Args))
	for i, a := range n.Args {
		st, err := c.compile(a, scope)
		if err != nil {
			return nil, err
		}
		args[i] = st
		argTypes[i] = st.CachedType
	}

	narrowed := narrow(cands, argTypes)
	if len(narrowed) == 0 {
		return nil, corerr.NewNoOverloadFoundError(n.Callee, argTypes, ctxTag(scope.Context()))
	}

	dispatchees := make([]*instr.DispatchCandidate, len(narrowed))
	var retType *ptype.Type
	for i, cand := range narrowed {
		dispatchees[i] = cand.dc
		// A recursive call site compiles before its own candidate's body,
		// so an inferred return type may not exist yet; recursion therefore
		// needs a declared return type, and Any is the honest fallback when
		// none was given.
		rt := cand.returnType
		if rt == nil {
			rt = ptype.AnyT
		}
		if retType == nil {
			retType = rt
		} else {
			retType = ptype.CommonType(retType, rt)
		}
	}

	return instr.NewDispatch(args, path, dispatchees...).WithType(retType), nil
}

// narrow drops candidates that provably cannot accept argTypes, the
// compile-time half of overload elimination. A static argument type may be a
// typeclass (an untyped parameter compiles as Any), so elimination here is
// conservative: only a None match removes a candidate, and anything weaker
// is left for the runtime dispatcher to settle against concrete types.
func narrow(cands []*candidate, argTypes []*ptype.Type) []*candidate {
	dcands := make([]dispatch.Candidate, len(cands))
	for i, cd := range cands {
		dcands[i] = dispatch.Candidate{ArgTypes: cd.dc.ArgTypes}
	}
	idxs := dispatch.Eliminate(dcands, argTypes)
	out := make([]*candidate, len(idxs))
	for i, idx := range idxs {
		out[i] = cands[idx]
	}
	return out
}

func ctxTag(ctx *stack.Context) string {
	return ctx.ID.String()
}
