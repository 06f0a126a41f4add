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

// readVar emits a call to v's read trampoline, leaving its value in dst.
func (l *lowerer) readVar(v variable, dst variable) error {
	name := fmt.Sprintf("read_var_0t_%s", v)
	return l.call(name, func() error {
		if _, err := l.b.EmitLabel(fmt.Sprintf("copy_var_to_%s_%s", dst, v)); err != nil {
			return err
		}
		return l.b.EmitLabelReference(fmt.Sprintf("cell_%s", v), 0)
	})
}

// writeVar emits a call to v's write trampoline, storing src's value.
func (l *lowerer) writeVar(v variable, src variable) error {
	name := fmt.Sprintf("write_%s", v)
	return l.call(name, func() error {
		if _, err := l.b.EmitLabel(fmt.Sprintf("copy_%s_to_var_%s", src, v)); err != nil {
			return err
		}
		return l.b.EmitLabelReference(fmt.Sprintf("cell_%s", v), 0)
	})
}

// loadImmediate materializes the unsigned literal v into dst, following
// the target's ROT/OPR literal-encoding convention: the value is split
// into three ternary operands (ternary1/ternary2/ternary3 below) so that
// Malbolge's OPR can synthesize an arbitrary trit from its two operand
// trits, then folded into dst's backing cell through an OPR reference.
func (l *lowerer) loadImmediate(v uint, dst variable) error {
	if v == 0 {
		if err := l.b.EmitLabelReference(fmt.Sprintf("rot_%s", dst), 0); err != nil {
			return err
		}
		if err := l.b.EmitImmediate(0, "0"); err != nil {
			return err
		}
		return l.b.EmitLabelReference(fmt.Sprintf("rot_%s", dst), 1)
	}
	t1, t2, t3, needThree := splitImmediateTrits(v)
	if err := l.b.EmitLabelReference(fmt.Sprintf("rot_%s", dst), 0); err != nil {
		return err
	}
	if err := l.b.EmitImmediate(1, "1"); err != nil {
		return err
	}
	if err := l.b.EmitLabelReference(fmt.Sprintf("rot_%s", dst), 1); err != nil {
		return err
	}
	if needThree {
		if err := l.b.EmitLabelReference(fmt.Sprintf("opr_%s", dst), 0); err != nil {
			return err
		}
		if err := l.b.EmitImmediate(0, t1); err != nil {
			return err
		}
		if err := l.b.EmitLabelReference(fmt.Sprintf("opr_%s", dst), 1); err != nil {
			return err
		}
		if err := l.b.EmitLabelReference(fmt.Sprintf("opr_%s", dst), 0); err != nil {
			return err
		}
		if err := l.b.EmitImmediate(1, t2); err != nil {
			return err
		}
		if err := l.b.EmitLabelReference(fmt.Sprintf("opr_%s", dst), 1); err != nil {
			return err
		}
	}
	if err := l.b.EmitLabelReference(fmt.Sprintf("opr_%s", dst), 0); err != nil {
		return err
	}
	if err := l.b.EmitImmediate(0, t3); err != nil {
		return err
	}
	return l.b.EmitLabelReference(fmt.Sprintf("opr_%s", dst), 1)
}

// splitImmediateTrits decomposes v into base-3 digits (most significant
// first, 19 trits wide) and the three operand strings emit_load_immediate
// builds from them: ternary3 is v's digits directly, ternary2 and
// ternary1 are the complementary pair OPR needs to synthesize any odd
// digit (1) that ternary3 alone cannot express without a second operand.
func splitImmediateTrits(v uint) (t1, t2, t3 string, needThree bool) {
	const width = 19
	digits := make([]byte, width)
	d1 := make([]byte, width)
	d2 := make([]byte, width)
	for i := width - 1; i >= 0 && v > 0; i-- {
		m := v % 3
		v /= 3
		odd := m % 2
		if odd == 1 {
			needThree = true
		}
		digits[i] = byte('0' + m)
		d2[i] = byte('1' - odd)
		d1[i] = byte('0' + 2*odd)
	}
	for i := 0; i < width; i++ {
		if digits[i] == 0 {
			digits[i] = '0'
		}
		if d2[i] == 0 {
			d2[i] = '1'
		}
		if d1[i] == 0 {
			d1[i] = '0'
		}
	}
	start := 0
	for start < width-1 && digits[start] == '0' && d1[start] == '0' && d2[start] == '1' {
		start++
	}
	return string(d1[start:]), string(d2[start:]), string(digits[start:]), needThree
}

// emitVariableStubs declares the backing cell for every variable a program
// touched, plus the rot_/opr_ landing cells loadImmediate and the
// arithmetic primitives target through self-modifying OPR references.
func (l *lowerer) emitVariableStubs() error {
	for v := variable(0); v < numVariables; v++ {
		if _, err := l.b.EmitLabel(fmt.Sprintf("cell_%s", v)); err != nil {
			return err
		}
		if err := l.b.EmitImmediate(0, "0"); err != nil {
			return err
		}
		if _, err := l.b.EmitLabel(fmt.Sprintf("rot_%s", v)); err != nil {
			return err
		}
		if err := l.b.EmitXlatCycle(malbolge.ROT); err != nil {
			return err
		}
		if _, err := l.b.EmitLabel(fmt.Sprintf("opr_%s", v)); err != nil {
			return err
		}
		if err := l.b.EmitXlatCycle(malbolge.OPR); err != nil {
			return err
		}
	}
	return nil
}
