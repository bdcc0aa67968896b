package instr

import (
	"fmt"
	"io"
	"strings"
)

// Printer renders an Instruction tree as indented, human-readable text for
// debugging. The instruction model is a tree with no jump offsets, so
// indentation takes the place of a disassembler's jump-target arrows; the
// textual form is not a stable contract.
type Printer struct {
	writer io.Writer
	seen   map[*InstrDispatchCandidate]int
}

// NewPrinter constructs a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{writer: w, seen: make(map[*InstrDispatchCandidate]int)}
}

// Print writes i's tree form to the Printer's writer.
func (p *Printer) Print(i *Instruction) {
	p.print(i, 0)
}

func (p *Printer) print(i *Instruction, depth int) {
	indent := strings.Repeat("  ", depth)
	if i == nil {
		fmt.Fprintf(p.writer, "%s<nil>\n", indent)
		return
	}

	switch i.Kind {
	case Constant:
		fmt.Fprintf(p.writer, "%sConstant %s\n", indent, i.ConstantValue.Kind)
	case VariableGet:
		fmt.Fprintf(p.writer, "%sVariableGet [%d]\n", indent, i.VarIndex)
	case VariableSet:
		fmt.Fprintf(p.writer, "%sVariableSet [%d]\n", indent, i.VarIndex)
		p.print(i.VarValue, depth+1)
	case FunctionCall:
		fmt.Fprintf(p.writer, "%sFunctionCall\n", indent)
		p.print(i.Callee, depth+1)
		for _, a := range i.Args {
			p.print(a, depth+1)
		}
	case Dispatch:
		fmt.Fprintf(p.writer, "%sDispatch (%d candidates)\n", indent, len(i.Dispatchees))
		for _, a := range i.Args {
			p.print(a, depth+1)
		}
		for n, d := range i.Dispatchees {
			// A recursive candidate's body dispatches back to itself; print
			// each candidate body once and refer back by ordinal after that.
			if ord, ok := p.seen[d]; ok {
				fmt.Fprintf(p.writer, "%s  candidate[%d]: -> #%d\n", indent, n, ord)
				continue
			}
			ord := len(p.seen)
			p.seen[d] = ord
			fmt.Fprintf(p.writer, "%s  candidate[%d]: #%d\n", indent, n, ord)
			p.print(d.Body, depth+2)
		}
	case Sequence:
		fmt.Fprintf(p.writer, "%sSequence (%d)\n", indent, len(i.Items))
		for _, it := range i.Items {
			p.print(it, depth+1)
		}
	case FromImportedStack:
		fmt.Fprintf(p.writer, "%sFromImportedStack [%d]\n", indent, i.ImportIndex)
		p.print(i.Sub, depth+1)
	case SetAddress:
		fmt.Fprintf(p.writer, "%sSetAddress %v\n", indent, []int(i.Address))
		p.print(i.SetValue, depth+1)
	case ArmStack:
		fmt.Fprintf(p.writer, "%sArmStack\n", indent)
		p.print(i.Fn, depth+1)
	case If:
		fmt.Fprintf(p.writer, "%sIf\n", indent)
		p.print(i.Condition, depth+1)
		p.print(i.Then, depth+1)
		if i.Else != nil {
			p.print(i.Else, depth+1)
		}
	case While:
		fmt.Fprintf(p.writer, "%sWhile\n", indent)
		p.print(i.Condition, depth+1)
		p.print(i.Body, depth+1)
	case DoUntil:
		fmt.Fprintf(p.writer, "%sDoUntil\n", indent)
		p.print(i.Body, depth+1)
		p.print(i.Condition, depth+1)
	case EmitEffect:
		fmt.Fprintf(p.writer, "%sEmitEffect\n", indent)
		p.print(i.Callee, depth+1)
	case HandleEffect:
		fmt.Fprintf(p.writer, "%sHandleEffect\n", indent)
		fmt.Fprintf(p.writer, "%s  handler:\n", indent)
		p.print(i.Handler, depth+2)
		fmt.Fprintf(p.writer, "%s  body:\n", indent)
		p.print(i.Body, depth+2)
	case BuildTuple, BuildList, BuildSet:
		fmt.Fprintf(p.writer, "%s%s (%d)\n", indent, i.Kind, len(i.Args))
		for _, a := range i.Args {
			p.print(a, depth+1)
		}
	case BuildTable:
		fmt.Fprintf(p.writer, "%sBuildTable (%d)\n", indent, len(i.Keys))
		for idx := range i.Keys {
			p.print(i.Keys[idx], depth+1)
			p.print(i.Values[idx], depth+1)
		}
	case BuildComposite:
		fmt.Fprintf(p.writer, "%sBuildComposite\n", indent)
		for idx, name := range i.Names {
			fmt.Fprintf(p.writer, "%s  %s:\n", indent, name)
			p.print(i.Values[idx], depth+2)
		}
	case NoOp:
		fmt.Fprintf(p.writer, "%sNoOp\n", indent)
	default:
		if i.Kind.IsArithmetic() {
			fmt.Fprintf(p.writer, "%s%s\n", indent, i.Kind)
			p.print(i.Left, depth+1)
			if !i.Kind.IsUnaryArithmetic() {
				p.print(i.Right, depth+1)
			}
			return
		}
		fmt.Fprintf(p.writer, "%s%s\n", indent, i.Kind)
	}
}

// PrintToString renders i's tree form as a string.
func PrintToString(i *Instruction) string {
	var sb strings.Builder
	NewPrinter(&sb).Print(i)
	return sb.String()
}
