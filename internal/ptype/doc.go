// Package ptype implements the algebraic type lattice of the runtime: concrete
// types, typeclass operators (Any, None, Union, Intersection, Not, BaseType,
// WithProperty), custom matchers, and the eight-valued match relation used for
// subtyping, overload ranking, and structural checks.
//
// ptype has no dependency on the value package. Property predicates that
// need to inspect a runtime value take it as an untyped any, avoiding a
// circular import between the type and runtime-value layers.
package ptype
