// Package coreeval is the single-threaded tree-walking evaluator: it
// executes a lowered instr.Instruction against a stack.Stack and produces a
// value.Value, or an Effect that reached the top unhandled.
//
// Effect values are the sole unwinding mechanism: every sub-evaluation that
// sees an Effect result returns it immediately, untouched, until a
// HandleEffect claims it.
//
// Scheduling is cooperative: the evaluator consults an ambient cancellation
// flag at loop heads and before every call or dispatch; when the flag
// reports cancellation it raises an Effect carrying a host-defined payload,
// which unwinds like any other effect.
package coreeval
