package codegen

import (
	"fmt"

	"aot/ir"
)

// locals assigns each IR variable a fixed stack slot relative to %rbp. Slots
// are 8 bytes wide and handed out in first-occurrence order starting at
// -8(%rbp); frameSize is always a multiple of 8 and covers every slot handed
// out plus the one-slot cushion the reference assembly generator reserves.
type locals struct {
	slots     map[ir.Var]string
	stackUsed int
}

const slotSize = 8

func newLocals(vars []ir.Var) *locals {
	l := &locals{slots: make(map[ir.Var]string, len(vars)), stackUsed: slotSize}
	for _, v := range vars {
		if _, ok := l.slots[v]; ok {
			continue
		}
		l.slots[v] = fmt.Sprintf("-%d(%%rbp)", l.stackUsed)
		l.stackUsed += slotSize
	}
	return l
}

func (l *locals) ref(v ir.Var) string {
	return l.slots[v]
}

func (l *locals) frameSize() int {
	return l.stackUsed
}

// collectVariables walks instrs in order and returns every distinct ir.Var
// referenced by any instruction field, in first-occurrence order. This
// mirrors the reference compiler's field-by-field scan of each instruction,
// including the quirk that a Call's Fun variable (the operator or function
// name) is collected and given a stack slot even though no instruction ever
// actually loads or stores through it.
func collectVariables(instrs []ir.Instruction) []ir.Var {
	var order []ir.Var
	seen := make(map[ir.Var]bool)
	add := func(v ir.Var) {
		if seen[v] {
			return
		}
		seen[v] = true
		order = append(order, v)
	}

	for _, instr := range instrs {
		switch in := instr.(type) {
		case ir.Label:
		case ir.LoadIntConst:
			add(in.Dest)
		case ir.LoadBoolConst:
			add(in.Dest)
		case ir.Copy:
			add(in.Source)
			add(in.Dest)
		case ir.Call:
			add(in.Fun)
			for _, a := range in.Args {
				add(a)
			}
			add(in.Dest)
		case ir.Jump:
		case ir.CondJump:
			add(in.Cond)
		case ir.Return:
		default:
			panic(fmt.Sprintf("codegen: unhandled instruction kind %T", instr))
		}
	}
	return order
}
