// Package instr implements the two parallel execution trees: Statement (the
// compiler's typed, still-growable output) and Instruction (the lowered,
// allocation-free form the evaluator walks). Lowering copies a Statement
// tree into an Instruction tree, translating the few constructs that change
// shape (arithmetic kind promotion, Sequence children frozen into a
// plain slice).
//
// The instruction model is a tree, not a flat stream: there is no
// jump/offset arithmetic, only structural recursion, so the printer
// renders by indentation instead of by address.
package instr
