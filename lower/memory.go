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
	"strings"

	"github.com/pkg/errors"

	"github.com/esoteric-programmer/hellc/ir"
	"github.com/esoteric-programmer/hellc/ternary"
)

// memoryCellBias is the fixed 0t10000 (=81) added to every memory cell's
// stored value at emission time and subtracted back out on access, so
// that a cell nobody ever wrote still reads as zero rather than colliding
// with a meaningful small value.
const memoryCellBias = 81

// memoryAddressWidth is the trit width used for every memory cell's pinned
// block offset.
const memoryAddressWidth = 19

// memoryBaseOffset is the address of MEMORY_0, the first memory cell,
// chosen far enough from the origin that decrementing by 2 per cell for
// any realistic memory image never underflows.
func memoryBaseOffset() (ternary.Ternary, error) {
	return ternary.New(1, strings.Repeat("1", 13)+"022222")
}

// emitMemoryImage lays out the initial memory image as a sequence of
// pinned two-cell blocks: MEMORY_<n> holding the biased value, followed by
// a 1t01111 companion cell the read/write trampolines use as a landing
// pad. Cell n sits 2 ternary units below cell n-1.
func (l *lowerer) emitMemoryImage(data *ir.Data) error {
	base, err := memoryBaseOffset()
	if err != nil {
		return err
	}
	n := 0
	for cell := data; cell != nil; cell = cell.Next {
		if err := l.emitMemoryCell(base, n, cell.V); err != nil {
			return err
		}
		n++
	}
	if n == 0 {
		if err := l.emitMemoryCell(base, 0, 0); err != nil {
			return err
		}
	}
	return nil
}

func (l *lowerer) emitMemoryCell(base ternary.Ternary, index int, value int) error {
	offset, err := ternary.AddOffset(base, int32(-2*index))
	if err != nil {
		return errors.Wrapf(err, "memory cell %d offset", index)
	}
	if err := l.b.EmitOffset(offset.Prefix, suffixOf(offset)); err != nil {
		return err
	}
	if _, err := l.b.EmitLabel(fmt.Sprintf("MEMORY_%d", index)); err != nil {
		return err
	}
	biased, err := ternary.FromUint(uint64(value+memoryCellBias), memoryAddressWidth)
	if err != nil {
		return errors.Wrapf(err, "memory cell %d value", index)
	}
	if err := l.b.EmitImmediate(biased.Prefix, suffixOf(biased)); err != nil {
		return err
	}
	if err := l.b.EmitImmediate(1, "01111"); err != nil {
		return err
	}
	return l.b.EmitFinalizeBlock()
}

func suffixOf(t ternary.Ternary) string {
	s := make([]byte, len(t.Digits))
	for i, d := range t.Digits {
		s[i] = '0' + d
	}
	return string(s)
}

// memoryRoutine returns the shared body for read_memory and write_memory:
// both compute the same memory pointer (MEMORY_0 minus 2 minus twice
// ALU_SRC) through compute_memptr before diverging into a load or a store
// against the landing cell that pointer resolves to.
func memoryRoutine(write bool) func(l *lowerer) error {
	return func(l *lowerer) error {
		if err := l.call("compute_memptr", l.routineBody("compute_memptr")); err != nil {
			return err
		}
		if write {
			return l.writeVar(varMemPtrTarget, varALUDst)
		}
		return l.readVar(varMemPtrTarget, varALUDst)
	}
}

// computeMemptrBody emits the pointer arithmetic: memptr = (MEMORY_0 - 2)
// - 2*ALU_SRC, by doubling ALU_SRC into TMP and subtracting that from a
// reference to MEMORY_0's resolved address.
func computeMemptrBody(l *lowerer) error {
	if _, err := l.b.EmitLabel("copy_var_to_aludst_memory_0_minus_two"); err != nil {
		return err
	}
	if err := l.b.EmitLabelReference("MEMORY_0", -2); err != nil {
		return err
	}
	if err := l.call("add_uint24", l.routineBody("add_uint24")); err != nil {
		// doubling ALU_SRC is realized as ALU_SRC + ALU_SRC through the
		// same add_uint24 primitive every other addition uses.
		return err
	}
	return l.call("sub_uint24", l.routineBody("sub_uint24"))
}
