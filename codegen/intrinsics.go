package codegen

import "fmt"

// intrinsic emits the register-level code computing an operator's result
// into %rax, given the already-resolved stack-slot references for its
// operands. The caller stores %rax into the call's destination slot.
type intrinsic func(args []string, emit func(string))

var intrinsics = map[string]intrinsic{
	"+": binaryArith("addq"),
	"-": binaryArith("subq"),
	"*": binaryArith("imulq"),
	"/": divide(false),
	"%": divide(true),

	"<":  compare("setl"),
	"<=": compare("setle"),
	">":  compare("setg"),
	">=": compare("setge"),
	"==": compare("sete"),
	"!=": compare("setne"),

	"and": binaryArith("andq"),
	"or":  binaryArith("orq"),

	"unary_-":   unaryNeg,
	"unary_not": unaryNot,
}

func binaryArith(op string) intrinsic {
	return func(args []string, emit func(string)) {
		emit(fmt.Sprintf("movq %s, %%rax", args[0]))
		emit(fmt.Sprintf("%s %s, %%rax", op, args[1]))
	}
}

// divide emits signed division, leaving the quotient (remainder=false) or
// the remainder (remainder=true) in %rax.
func divide(remainder bool) intrinsic {
	return func(args []string, emit func(string)) {
		emit(fmt.Sprintf("movq %s, %%rax", args[0]))
		emit("cqto")
		emit(fmt.Sprintf("idivq %s", args[1]))
		if remainder {
			emit("movq %rdx, %rax")
		}
	}
}

func compare(setcc string) intrinsic {
	return func(args []string, emit func(string)) {
		emit(fmt.Sprintf("movq %s, %%rax", args[0]))
		emit(fmt.Sprintf("cmpq %s, %%rax", args[1]))
		emit(fmt.Sprintf("%s %%al", setcc))
		emit("movzbq %al, %rax")
	}
}

func unaryNeg(args []string, emit func(string)) {
	emit(fmt.Sprintf("movq %s, %%rax", args[0]))
	emit("negq %rax")
}

func unaryNot(args []string, emit func(string)) {
	emit(fmt.Sprintf("movq %s, %%rax", args[0]))
	emit("xorq $1, %rax")
}
