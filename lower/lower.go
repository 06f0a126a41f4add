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

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/esoteric-programmer/hellc/hell"
	"github.com/esoteric-programmer/hellc/ir"
)

// pendingRoutine is a not-yet-emitted primitive routine body, queued the
// first time call() sees its name so that routines are emitted in the
// fixed order finalization requires rather than the order callers happen
// to reach them in.
type pendingRoutine struct {
	name string
	emit func() error
}

// lowerer holds the state threaded through one Lower call.
type lowerer struct {
	b *hell.Builder

	emittedBody   map[string]bool
	callCounter   map[string]int
	routineOrder  []string
	pendingBodies []pendingRoutine

	pcLabels map[uint]bool // every pc value in the instruction stream

	jumpSiteCounter   int
	branchSiteCounter int
	haltSiteCounter   int
}

// Lower translates module into a HeLL program implementing its register
// machine, primitive routine catalogue and jump dispatch.
func Lower(module *ir.Module) (*hell.Program, error) {
	if module == nil {
		return nil, errors.New("lower: nil module")
	}
	l := &lowerer{
		b:           hell.NewBuilder(),
		emittedBody: make(map[string]bool),
		callCounter: make(map[string]int),
		pcLabels:    make(map[uint]bool),
	}

	if err := l.emitMemoryImage(module.Data); err != nil {
		return nil, errors.Wrap(err, "lower: memory image")
	}

	l.collectJumpTargets(module.Text)

	if _, err := l.b.EmitLabel("ENTRY"); err != nil {
		return nil, err
	}

	for inst := module.Text; inst != nil; inst = inst.Next {
		if l.pcLabels[inst.PC] {
			if err := l.emitPCPreamble(inst.PC); err != nil {
				return nil, errors.Wrapf(err, "lower: pc %d preamble", inst.PC)
			}
		}
		if err := l.lowerInst(inst); err != nil {
			return nil, errors.Wrapf(err, "lower: pc %d", inst.PC)
		}
	}

	if _, err := l.b.EmitLabel("end"); err != nil {
		return nil, err
	}
	if err := l.emitHalt(); err != nil {
		return nil, errors.Wrap(err, "lower: end-of-program halt")
	}

	if err := l.emitFinalization(); err != nil {
		return nil, errors.Wrap(err, "lower: finalization")
	}

	return l.b.Build()
}

// collectJumpTargets records the PC of every instruction in text, since any
// of them can be reached by a direct jump, an indirect jump table slot, or
// a fallthrough.
func (l *lowerer) collectJumpTargets(text *ir.Inst) {
	for inst := text; inst != nil; inst = inst.Next {
		l.pcLabels[inst.PC] = true
	}
}

func pcLabel(pc uint) string       { return fmt.Sprintf("label_pc%d", pc) }
func directJumpLabel(pc uint) string { return fmt.Sprintf("direct_jmp_label_pc%d", pc) }
func preparePCLabel(pc uint) string  { return fmt.Sprintf("prepare_label_pc%d", pc) }

// emitPCPreamble defines the labels every PC-indexed jump table slot needs
// and the four padding cells that keep the table's stride constant,
// ensuring control-flow entries line up with pc_lookup_table's cells.
func (l *lowerer) emitPCPreamble(pc uint) error {
	if _, err := l.b.EmitLabel(preparePCLabel(pc)); err != nil {
		return err
	}
	for i := 0; i < 4; i++ {
		if err := l.b.EmitUnusedCell(); err != nil {
			return err
		}
	}
	if _, err := l.b.EmitLabel(pcLabel(pc)); err != nil {
		return err
	}
	if _, err := l.b.EmitLabel(directJumpLabel(pc)); err != nil {
		return err
	}
	return nil
}

// lowerInst emits one IR instruction's lowering, per the opcode table:
// register traffic always goes through the ALU_SRC/ALU_DST scratch pair so
// that every primitive routine has a uniform calling convention.
func (l *lowerer) lowerInst(inst *ir.Inst) error {
	glog.V(2).Infof("lowering pc=%d op=%s", inst.PC, inst.Op)
	switch inst.Op {
	case ir.MOV:
		return l.lowerMove(inst)
	case ir.ADD:
		return l.lowerArith(inst, "add_uint24")
	case ir.SUB:
		return l.lowerArith(inst, "sub_uint24")
	case ir.LOAD:
		return l.lowerLoad(inst)
	case ir.STORE:
		return l.lowerStore(inst)
	case ir.PUTC:
		return l.lowerPutc(inst)
	case ir.GETC:
		return l.lowerGetc(inst)
	case ir.EXIT:
		return l.emitHalt()
	case ir.DUMP:
		return nil
	case ir.JMP:
		return l.emitJumpDispatch(inst.Jmp)
	default:
		if inst.Op.IsCompare() {
			return l.lowerCompare(inst)
		}
		if inst.Op.IsBranch() {
			return l.lowerBranch(inst)
		}
		return errors.Errorf("lower: unsupported opcode %s", inst.Op)
	}
}

func (l *lowerer) lowerMove(inst *ir.Inst) error {
	if err := l.loadValue(inst.Src, varALUDst); err != nil {
		return err
	}
	return l.writeVar(regVariable(inst.Dst.Reg), varALUDst)
}

func (l *lowerer) lowerArith(inst *ir.Inst, routine string) error {
	if err := l.readVar(regVariable(inst.Dst.Reg), varALUDst); err != nil {
		return err
	}
	if err := l.loadValue(inst.Src, varALUSrc); err != nil {
		return err
	}
	if err := l.call(routine, l.routineBody(routine)); err != nil {
		return err
	}
	return l.writeVar(regVariable(inst.Dst.Reg), varALUDst)
}

func (l *lowerer) lowerLoad(inst *ir.Inst) error {
	if err := l.loadValue(inst.Src, varALUSrc); err != nil {
		return err
	}
	if err := l.call("read_memory", l.routineBody("read_memory")); err != nil {
		return err
	}
	return l.writeVar(regVariable(inst.Dst.Reg), varALUDst)
}

func (l *lowerer) lowerStore(inst *ir.Inst) error {
	if err := l.loadValue(inst.Src, varALUSrc); err != nil {
		return err
	}
	if err := l.loadValue(inst.Dst, varALUDst); err != nil {
		return err
	}
	return l.call("write_memory", l.routineBody("write_memory"))
}

func (l *lowerer) lowerPutc(inst *ir.Inst) error {
	if err := l.loadValue(inst.Src, varALUDst); err != nil {
		return err
	}
	return l.call("putc", l.routineBody("putc"))
}

func (l *lowerer) lowerGetc(inst *ir.Inst) error {
	if err := l.call("getc", l.routineBody("getc")); err != nil {
		return err
	}
	return l.writeVar(regVariable(inst.Dst.Reg), varALUDst)
}

// compareRoutines maps a comparison/branch opcode to the primitive routine
// that tests it and whether its operands must be swapped first (GT and LE
// are realized as their swapped LT/GE).
var compareRoutines = map[ir.Op]struct {
	routine string
	swap    bool
}{
	ir.EQ: {"test_eq", false}, ir.NE: {"test_neq", false},
	ir.LT: {"test_lt", false}, ir.GE: {"test_ge", false},
	ir.GT: {"test_lt", true}, ir.LE: {"test_ge", true},
	ir.JEQ: {"test_eq", false}, ir.JNE: {"test_neq", false},
	ir.JLT: {"test_lt", false}, ir.JGE: {"test_ge", false},
	ir.JGT: {"test_lt", true}, ir.JLE: {"test_ge", true},
}

func (l *lowerer) lowerCompare(inst *ir.Inst) error {
	c := compareRoutines[inst.Op]
	if err := l.loadCompareOperands(inst, c.swap); err != nil {
		return err
	}
	if err := l.call(c.routine, l.routineBody(c.routine)); err != nil {
		return err
	}
	return l.writeVar(regVariable(inst.Dst.Reg), varALUDst)
}

func (l *lowerer) lowerBranch(inst *ir.Inst) error {
	c := compareRoutines[inst.Op]
	if err := l.loadCompareOperands(inst, c.swap); err != nil {
		return err
	}
	if err := l.call(c.routine, l.routineBody(c.routine)); err != nil {
		return err
	}
	if err := l.call("test_alu_dst", l.routineBody("test_alu_dst")); err != nil {
		return err
	}
	// CARRY_IS_C1 is raised by test_alu_dst iff the comparison held;
	// dispatch to inst.Jmp only happens then, otherwise control goes
	// straight to whatever instruction follows this one.
	return l.emitConditionalDispatch(inst.Jmp, l.fallthroughLabel(inst))
}

// fallthroughLabel names the label a branch instruction falls through to
// when its condition does not hold: the next instruction's direct jump
// label, or the program's end-of-text halt if inst is the last one.
func (l *lowerer) fallthroughLabel(inst *ir.Inst) string {
	if inst.Next != nil {
		return directJumpLabel(inst.Next.PC)
	}
	return "end"
}

func (l *lowerer) loadCompareOperands(inst *ir.Inst, swap bool) error {
	dst, src := inst.Dst, inst.Src
	if swap {
		dst, src = src, dst
	}
	if err := l.loadValue(dst, varALUDst); err != nil {
		return err
	}
	return l.loadValue(src, varALUSrc)
}

// loadValue materializes value (a register or an immediate) into the given
// scratch variable.
func (l *lowerer) loadValue(value ir.Value, dst variable) error {
	if value.Kind == ir.REG {
		return l.readVar(regVariable(value.Reg), dst)
	}
	return l.loadImmediate(value.Imm, dst)
}

// routineBody returns the body-emitting closure for a primitive routine
// name, or nil if name has no body of its own (a pure trampoline whose
// body is generated by other means).
func (l *lowerer) routineBody(name string) func() error {
	if fn, ok := primitiveRoutines[name]; ok {
		return func() error { return fn(l) }
	}
	return nil
}

// emitFinalization emits every routine body queued by call(), each
// followed by its return-dispatch footer: first the primitive routines in
// the fixed order below (test_alu_dst, I/O, add_uint24/sub_uint24, modulo,
// comparisons, memory access, compute_memptr, add/sub, generate_1222), then
// every body still queued (the per-variable read/write trampolines, and any
// routine first called from a body emitted after its slot) in queue order.
// The variable declarations, the PC lookup table and finally the flag cells
// every call site allocated follow.
func (l *lowerer) emitFinalization() error {
	order := []string{
		"test_alu_dst",
		"putc", "getc",
		"add_uint24", "sub_uint24",
		"modulo",
		"test_eq", "test_neq", "test_ge", "test_lt",
		"read_memory", "write_memory",
		"compute_memptr",
		"add", "sub",
		"generate_1222",
	}
	for _, name := range order {
		if !l.emittedBody[name] {
			continue
		}
		l.routineOrder = append(l.routineOrder, name)
		if err := l.emitRoutineBody(name); err != nil {
			return errors.Wrapf(err, "routine %s", name)
		}
		if err := l.emitReturnFooter(name); err != nil {
			return errors.Wrapf(err, "routine %s footer", name)
		}
	}
	for len(l.pendingBodies) > 0 {
		name := l.pendingBodies[0].name
		l.routineOrder = append(l.routineOrder, name)
		if err := l.emitRoutineBody(name); err != nil {
			return errors.Wrapf(err, "routine %s", name)
		}
		if err := l.emitReturnFooter(name); err != nil {
			return errors.Wrapf(err, "routine %s footer", name)
		}
	}
	if err := l.emitVariableStubs(); err != nil {
		return err
	}
	if err := l.emitJumpTable(); err != nil {
		return err
	}
	return l.emitFlagCells()
}

// emitRoutineBody dequeues and runs the emit closure queued for name.
func (l *lowerer) emitRoutineBody(name string) error {
	if _, err := l.b.EmitLabel(name); err != nil {
		return err
	}
	for i, p := range l.pendingBodies {
		if p.name == name {
			l.pendingBodies = append(l.pendingBodies[:i], l.pendingBodies[i+1:]...)
			return p.emit()
		}
	}
	return errors.Errorf("lower: internal: no queued body for %s", name)
}
