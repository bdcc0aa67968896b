// Package ast defines the Expression builder surface the compiler consumes.
// The surface-syntax parser lives outside the core, so this package has no
// lexer: programs are assembled directly by calling the constructors below
// (ast.Bin("+", ast.Int(1), ast.Int(1))).
//
// Expression is a small sealed interface: each node carries a String() debug
// form and an expressionNode() marker confining implementations to this
// package. String() is the node's sole debug surface; there is no source
// text for a position to point into.
package ast
