// Package codegen lowers a flat IR instruction list into x86-64 System V
// assembly text, ready to be handed to an external assembler and linker.
package codegen

import (
	"fmt"
	"strings"

	"aot/ir"
)

// Generate renders instrs as a complete assembly source file: extern/global
// declarations, a single main function prologue, one emission block per IR
// instruction, and the epilogue baked into Return.
func Generate(instrs []ir.Instruction) (string, error) {
	vars := collectVariables(instrs)
	loc := newLocals(vars)

	var b strings.Builder
	emit := func(line string) {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	emit(".extern print_int")
	emit(".extern print_bool")
	emit(".extern read_int")
	emit("")
	emit(".global main")
	emit(".type main, @function")
	emit("")
	emit(".section .text")
	emit("")
	emit("main:")
	emit("pushq %rbp")
	emit("movq %rsp, %rbp")
	emit(fmt.Sprintf("subq $%d, %%rsp", loc.frameSize()))

	for _, instr := range instrs {
		if _, ok := instr.(ir.Label); !ok {
			emit("# " + instr.String())
		}
		if err := emitInstruction(emit, instr, loc); err != nil {
			return "", err
		}
	}

	return b.String(), nil
}

func emitInstruction(emit func(string), instr ir.Instruction, loc *locals) error {
	switch in := instr.(type) {
	case ir.Label:
		emit(fmt.Sprintf(".L%s:", in.Name))

	case ir.LoadIntConst:
		if in.Value >= -(1<<31) && in.Value < (1<<31) {
			emit(fmt.Sprintf("movq $%d, %s", in.Value, loc.ref(in.Dest)))
		} else {
			emit(fmt.Sprintf("movabsq $%d, %%rax", in.Value))
			emit(fmt.Sprintf("movq %%rax, %s", loc.ref(in.Dest)))
		}

	case ir.LoadBoolConst:
		v := 0
		if in.Value {
			v = 1
		}
		emit(fmt.Sprintf("movq $%d, %s", v, loc.ref(in.Dest)))

	case ir.Copy:
		emit(fmt.Sprintf("movq %s, %%rax", loc.ref(in.Source)))
		emit(fmt.Sprintf("movq %%rax, %s", loc.ref(in.Dest)))

	case ir.Jump:
		emit(fmt.Sprintf("jmp .L%s", in.Target.Name))

	case ir.CondJump:
		emit(fmt.Sprintf("cmpq $0, %s", loc.ref(in.Cond)))
		emit(fmt.Sprintf("jne .L%s", in.ThenLabel.Name))
		emit(fmt.Sprintf("jmp .L%s", in.ElseLabel.Name))

	case ir.Call:
		if err := emitCall(emit, in, loc); err != nil {
			return err
		}

	case ir.Return:
		emit("movq $0, %rax")
		emit("movq %rbp, %rsp")
		emit("popq %rbp")
		emit("ret")

	default:
		panic(fmt.Sprintf("codegen: unhandled instruction kind %T", instr))
	}
	return nil
}

func emitCall(emit func(string), in ir.Call, loc *locals) error {
	if len(in.Args) > 6 {
		return errorf(TooManyArguments, "function %q called with %d arguments, at most 6 are supported", in.Fun.Name, len(in.Args))
	}

	switch {
	case intrinsics[in.Fun.Name] != nil:
		args := make([]string, len(in.Args))
		for i, a := range in.Args {
			args[i] = loc.ref(a)
		}
		intrinsics[in.Fun.Name](args, emit)

	case in.Fun.Name == "print_int" || in.Fun.Name == "print_bool":
		if len(in.Args) != 1 {
			return errorf(WrongNumberOfArguments, "%s expects 1 argument, got %d", in.Fun.Name, len(in.Args))
		}
		emit(fmt.Sprintf("movq %s, %%rdi", loc.ref(in.Args[0])))
		emit(fmt.Sprintf("call %s", in.Fun.Name))

	case in.Fun.Name == "read_int":
		if len(in.Args) != 0 {
			return errorf(WrongNumberOfArguments, "read_int expects 0 arguments, got %d", len(in.Args))
		}
		emit("call read_int")

	default:
		return errorf(UnknownFunction, "unknown function: %s", in.Fun.Name)
	}

	emit(fmt.Sprintf("movq %%rax, %s", loc.ref(in.Dest)))
	return nil
}
