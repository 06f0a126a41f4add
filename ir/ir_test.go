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

package ir_test

import (
	"testing"

	"github.com/esoteric-programmer/hellc/ir"
)

func TestReg_String(t *testing.T) {
	data := []struct {
		reg  ir.Reg
		want string
	}{
		{ir.A, "A"}, {ir.B, "B"}, {ir.C, "C"}, {ir.D, "D"},
		{ir.BP, "BP"}, {ir.SP, "SP"},
		{ir.NumRegs, "?"}, {ir.Reg(-1), "?"},
	}
	for _, d := range data {
		if got := d.reg.String(); got != d.want {
			t.Errorf("Reg(%d).String() = %q, want %q", d.reg, got, d.want)
		}
	}
}

func TestOp_String(t *testing.T) {
	data := []struct {
		op   ir.Op
		want string
	}{
		{ir.MOV, "mov"}, {ir.JMP, "jmp"}, {ir.GETC, "getc"},
		{ir.Op(-1), "?"}, {ir.Op(999), "?"},
	}
	for _, d := range data {
		if got := d.op.String(); got != d.want {
			t.Errorf("Op(%d).String() = %q, want %q", d.op, got, d.want)
		}
	}
}

func TestOp_IsCompareIsBranch(t *testing.T) {
	data := []struct {
		op        ir.Op
		isCompare bool
		isBranch  bool
	}{
		{ir.EQ, true, false},
		{ir.GE, true, false},
		{ir.JEQ, false, true},
		{ir.JGE, false, true},
		{ir.MOV, false, false},
		{ir.JMP, false, false},
	}
	for _, d := range data {
		if got := d.op.IsCompare(); got != d.isCompare {
			t.Errorf("%v.IsCompare() = %v, want %v", d.op, got, d.isCompare)
		}
		if got := d.op.IsBranch(); got != d.isBranch {
			t.Errorf("%v.IsBranch() = %v, want %v", d.op, got, d.isBranch)
		}
	}
}

func TestRegValueImmValue(t *testing.T) {
	rv := ir.RegValue(ir.C)
	if rv.Kind != ir.REG || rv.Reg != ir.C {
		t.Errorf("RegValue(C) = %+v, want Kind=REG Reg=C", rv)
	}
	iv := ir.ImmValue(42)
	if iv.Kind != ir.IMM || iv.Imm != 42 {
		t.Errorf("ImmValue(42) = %+v, want Kind=IMM Imm=42", iv)
	}
}

func TestModule_chains(t *testing.T) {
	module := &ir.Module{
		Data: &ir.Data{V: 1, Next: &ir.Data{V: 2}},
		Text: &ir.Inst{Op: ir.MOV, PC: 0, Next: &ir.Inst{Op: ir.EXIT, PC: 1}},
	}

	var data []int
	for d := module.Data; d != nil; d = d.Next {
		data = append(data, d.V)
	}
	if len(data) != 2 || data[0] != 1 || data[1] != 2 {
		t.Errorf("Data chain = %v, want [1 2]", data)
	}

	var ops []ir.Op
	for i := module.Text; i != nil; i = i.Next {
		ops = append(ops, i.Op)
	}
	if len(ops) != 2 || ops[0] != ir.MOV || ops[1] != ir.EXIT {
		t.Errorf("Text chain = %v, want [mov exit]", ops)
	}
}
