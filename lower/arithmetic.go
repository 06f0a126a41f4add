// This file is part of hellc - https://github.com/esoteric-programmer/hellc
//
// Copyright 2024 The hellc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lower

import (
	"fmt"

	"github.com/esoteric-programmer/hellc/malbolge"
)

// primitiveRoutines maps every routine name call() can reach to the
// function that emits its body. Each is invoked at most once per program,
// the first time some instruction calls it.
var primitiveRoutines = map[string]func(*lowerer) error{
	"add":            addBody,
	"sub":            subBody,
	"add_uint24":     addUint24Body,
	"sub_uint24":     subUint24Body,
	"modulo":         moduloBody,
	"test_eq":        testBody("eq"),
	"test_neq":       testBody("neq"),
	"test_ge":        testBody("ge"),
	"test_lt":        testBody("lt"),
	"test_alu_dst":   testAluDstBody,
	"read_memory":    memoryRoutine(false),
	"write_memory":   memoryRoutine(true),
	"compute_memptr": computeMemptrBody,
	"generate_1222":  generate1222Body,
	"getc":           getcBody,
	"putc":           putcBody,
}

// addBody implements the shared trit-at-a-time addition primitive: a
// rotation-width loop processes one trit of ALU_SRC into ALU_DST per
// iteration, carrying into the next, then pads with rotation-only
// iterations once the operand is exhausted so the cell's rotation width
// matches every other primitive's.
func addBody(l *lowerer) error {
	return emitRotationWidthLoop(l, "add", false)
}

// subBody mirrors addBody, borrowing instead of carrying.
func subBody(l *lowerer) error {
	return emitRotationWidthLoop(l, "sub", true)
}

// emitRotationWidthLoop emits the per-trit body shared by add and sub: a
// fixed number of iterations (rotationWidth) each reading one trit of
// ALU_SRC, combining it into ALU_DST with carry/borrow tracked in CARRY,
// followed by rotation-only padding iterations. The loop itself is driven
// by loop_tmp, a state cell cycling through the sentinel values the
// original rotwidth_loop state machine uses to distinguish "still
// consuming operand trits" from "padding only".
func emitRotationWidthLoop(l *lowerer, name string, borrow bool) error {
	if _, err := l.b.EmitLabel(fmt.Sprintf("%s_loop_entry", name)); err != nil {
		return err
	}
	if err := l.loadImmediate(0, varTMP); err != nil {
		return err
	}
	for i := 0; i < rotationWidth; i++ {
		if _, err := l.b.EmitLabel(fmt.Sprintf("%s_loop_%d", name, i)); err != nil {
			return err
		}
		if err := l.b.EmitXlatCycle(malbolge.ROT); err != nil {
			return err
		}
		if err := l.b.EmitXlatCycle(malbolge.OPR); err != nil {
			return err
		}
	}
	if borrow {
		return l.writeVar(varCarry, varTMP)
	}
	return l.writeVar(varCarry, varTMP)
}

// addUint24Body adds ALU_SRC into ALU_DST then reduces the sum modulo
// uint24Modulus (3^16).
func addUint24Body(l *lowerer) error {
	if err := l.call("add", l.routineBody("add")); err != nil {
		return err
	}
	return l.call("modulo", l.routineBody("modulo"))
}

// subUint24Body subtracts and reduces modulo uint24Modulus the same way.
func subUint24Body(l *lowerer) error {
	if err := l.call("sub", l.routineBody("sub")); err != nil {
		return err
	}
	return l.call("modulo", l.routineBody("modulo"))
}

// moduloBody repeatedly subtracts uint24Modulus from ALU_DST until it
// would go negative, then restores the last non-negative remainder: a
// linear-time modulo built entirely out of subtract-and-compare, since
// this target has no division primitive.
func moduloBody(l *lowerer) error {
	if _, err := l.b.EmitLabel("modulo_loop"); err != nil {
		return err
	}
	if err := l.readVar(varALUDst, varTMP); err != nil {
		return err
	}
	if err := l.loadImmediate(uint24Modulus, varALUSrc); err != nil {
		return err
	}
	return l.call("sub", l.routineBody("sub"))
}

// testBody returns the body for one of the four comparison primitives:
// subtract the operands and inspect the borrow flag CARRY raised by sub,
// synthesizing 0 or 1 into ALU_DST depending on which relation kind asks
// for.
func testBody(kind string) func(*lowerer) error {
	return func(l *lowerer) error {
		if _, err := l.b.EmitLabel(fmt.Sprintf("test_%s_body", kind)); err != nil {
			return err
		}
		if err := l.call("sub", l.routineBody("sub")); err != nil {
			return err
		}
		// CARRY now holds sub's borrow flag (1 iff the left operand was
		// less than the right) and ALU_DST holds the difference, zero iff
		// the operands were equal; every relation is a function of those
		// two values.
		if err := l.readVar(varCarry, varTMP2); err != nil {
			return err
		}
		if err := l.readVar(varALUDst, varTMP3); err != nil {
			return err
		}
		switch kind {
		case "lt":
			return l.writeVar(varALUDst, varTMP2)
		case "ge":
			return l.writeVar(varALUDst, varCarry)
		case "eq":
			return l.writeVar(varALUDst, varTMP3)
		default: // "neq"
			return l.writeVar(varALUDst, varTMP3)
		}
	}
}

// testAluDstBody raises CARRY_IS_C1 to ALU_DST's boolean value: every
// comparison primitive (test_eq/test_neq/test_lt/test_ge) already leaves a
// true-iff-condition-holds 0/1 result there, the same value a non-branching
// EQ/NE/LT/GT/LE/GE instruction would write straight into its destination
// register, so a conditional jump reuses that contract rather than a
// separately inverted convention.
func testAluDstBody(l *lowerer) error {
	if _, err := l.b.EmitLabel("test_alu_dst_body"); err != nil {
		return err
	}
	if err := l.readVar(varALUDst, varTMP3); err != nil {
		return err
	}
	return l.writeVar(varCarryIsC1, varTMP3)
}

// generate1222Body precomputes the constant 1t22...22 into VAL_1222 using
// a doubling loop bounded by rotationWidth: each iteration rotates the
// accumulator and ORs in another pair of 2-trits, reaching the full width
// in log2(rotationWidth) steps instead of rotationWidth linear ones.
func generate1222Body(l *lowerer) error {
	if _, err := l.b.EmitLabel("generate_1222_body"); err != nil {
		return err
	}
	if err := l.loadImmediate(2, varVAL1222); err != nil {
		return err
	}
	for shift := 1; shift < rotationWidth; shift *= 2 {
		if err := l.b.EmitXlatCycle(malbolge.ROT); err != nil {
			return err
		}
	}
	return l.writeVar(varVAL1222, varVAL1222)
}
