// Package value implements the runtime datum representation of the core:
// a tagged union over Kind, the equality and hashing contracts that break
// its reference cycles, and the toValue/toType constructors.
//
// Primitive kinds pack their payload into the Data word directly; every
// other kind holds an owned pointer to a heap object (collections,
// references, composites, functions).
package value
