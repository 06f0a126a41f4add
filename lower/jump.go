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

	"github.com/pkg/errors"

	"github.com/esoteric-programmer/hellc/ir"
	"github.com/esoteric-programmer/hellc/malbolge"
)

// emitJumpDispatch lowers a jump target, direct or indirect. A direct
// (immediate PC) target writes a MOVD reference straight to that PC's
// direct_jmp_label and jumps there. An indirect (register) target first
// resolves pc_lookup_table+value through the shared memory-pointer
// machinery, then performs the same MOVD/JMP pair against the resolved
// cell, reaching the table slot's stored destination.
func (l *lowerer) emitJumpDispatch(target ir.Value) error {
	l.jumpSiteCounter++
	site := l.jumpSiteCounter
	if target.Kind == ir.IMM {
		if !l.pcLabels[target.Imm] {
			return errors.Errorf("lower: jump to unknown pc %d", target.Imm)
		}
		if _, err := l.b.EmitLabel(fmt.Sprintf("jump_direct_%d", site)); err != nil {
			return err
		}
		if err := l.b.EmitXlatCycle(malbolge.MOVD); err != nil {
			return err
		}
		if err := l.b.EmitLabelReference(directJumpLabel(target.Imm), 0); err != nil {
			return err
		}
		return l.b.EmitXlatCycle(malbolge.JMP)
	}

	if err := l.readVar(regVariable(target.Reg), varALUSrc); err != nil {
		return err
	}
	return l.dispatchThroughTable("pc_lookup_table", fmt.Sprintf("indirect_%d", site))
}

// dispatchThroughTable resolves tableLabel+ALU_SRC (an index already loaded
// by the caller) into varMemPtrTarget via add_uint24, then performs the
// MOVD/MOVD/JMP pair that follows that computed address to whatever
// reference the table slot holds. Shared by register-indirect jumps
// (against pc_lookup_table) and conditional branches (against a per-site
// two-entry table), since both are "jump to the label this table slot
// names" with a runtime-computed slot index.
func (l *lowerer) dispatchThroughTable(tableLabel, tag string) error {
	if _, err := l.b.EmitLabel(fmt.Sprintf("copy_var_to_aludst_%s_%s", tableLabel, tag)); err != nil {
		return err
	}
	if err := l.b.EmitLabelReference(tableLabel, 0); err != nil {
		return err
	}
	if err := l.call("add_uint24", l.routineBody("add_uint24")); err != nil {
		return err
	}
	if err := l.writeVar(varMemPtrTarget, varALUDst); err != nil {
		return err
	}
	if _, err := l.b.EmitLabel(fmt.Sprintf("jump_%s", tag)); err != nil {
		return err
	}
	if err := l.b.EmitXlatCycle(malbolge.MOVD); err != nil {
		return err
	}
	if err := l.b.EmitLabelReference(fmt.Sprintf("cell_%s", varMemPtrTarget), 0); err != nil {
		return err
	}
	if err := l.b.EmitXlatCycle(malbolge.MOVD); err != nil {
		return err
	}
	return l.b.EmitXlatCycle(malbolge.JMP)
}

// emitConditionalDispatch branches on CARRY_IS_C1: when raised (the tested
// condition held), it falls into the ordinary unconditional dispatch to
// target; otherwise it dispatches to fallthroughLabel instead, skipping the
// taken-branch code entirely. The choice itself is a runtime one
// (CARRY_IS_C1 is only known once the program executes), so it is realized
// the same way an indirect jump resolves a runtime register value: a
// two-entry lookup table indexed by the flag, dispatched through
// dispatchThroughTable.
func (l *lowerer) emitConditionalDispatch(target ir.Value, fallthroughLabel string) error {
	l.branchSiteCounter++
	site := l.branchSiteCounter
	tableLabel := fmt.Sprintf("cond_table_%d", site)
	takenLabel := fmt.Sprintf("cond_taken_%d", site)

	if err := l.readVar(varCarryIsC1, varALUSrc); err != nil {
		return err
	}
	if _, err := l.b.EmitLabel(tableLabel); err != nil {
		return err
	}
	if err := l.b.EmitLabelReference(fallthroughLabel, 0); err != nil {
		return err
	}
	if err := l.b.EmitLabelReference(takenLabel, 0); err != nil {
		return err
	}
	if err := l.dispatchThroughTable(tableLabel, fmt.Sprintf("cond_%d", site)); err != nil {
		return err
	}
	if _, err := l.b.EmitLabel(takenLabel); err != nil {
		return err
	}
	return l.emitJumpDispatch(target)
}

// emitJumpTable lays down pc_lookup_table: one cell per PC a jump can
// target, in ascending PC order, each holding a reference to that PC's
// direct_jmp_label so an indirect jump's resolved pointer lands on a cell
// that itself points at the real destination.
func (l *lowerer) emitJumpTable() error {
	if _, err := l.b.EmitLabel("pc_lookup_table"); err != nil {
		return err
	}
	max := uint(0)
	found := false
	for pc := range l.pcLabels {
		if !found || pc > max {
			max = pc
			found = true
		}
	}
	if !found {
		return l.b.EmitUnusedCell()
	}
	for pc := uint(0); pc <= max; pc++ {
		if !l.pcLabels[pc] {
			if err := l.b.EmitUnusedCell(); err != nil {
				return err
			}
			continue
		}
		if err := l.b.EmitLabelReference(directJumpLabel(pc), 0); err != nil {
			return err
		}
	}
	return nil
}
