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

package main

import (
	"bytes"
	"testing"

	"github.com/esoteric-programmer/hellc/ir"
)

func TestBinaryModule_roundTrip(t *testing.T) {
	module := &ir.Module{
		Data: &ir.Data{V: 7, Next: &ir.Data{V: -3}},
		Text: &ir.Inst{
			Op: ir.MOV, Dst: ir.RegValue(ir.A), Src: ir.ImmValue(65), PC: 0,
			Next: &ir.Inst{Op: ir.PUTC, Dst: ir.RegValue(ir.A), PC: 1,
				Next: &ir.Inst{Op: ir.EXIT, PC: 2}},
		},
	}

	var buf bytes.Buffer
	if err := encodeModuleBinary(&buf, module); err != nil {
		t.Fatalf("encodeModuleBinary: %v", err)
	}

	decoded, err := decodeModuleBinary(&buf)
	if err != nil {
		t.Fatalf("decodeModuleBinary: %v", err)
	}

	var data []int
	for d := decoded.Data; d != nil; d = d.Next {
		data = append(data, d.V)
	}
	if len(data) != 2 || data[0] != 7 || data[1] != -3 {
		t.Errorf("Data = %v, want [7 -3]", data)
	}

	var ops []ir.Op
	for i := decoded.Text; i != nil; i = i.Next {
		ops = append(ops, i.Op)
	}
	want := []ir.Op{ir.MOV, ir.PUTC, ir.EXIT}
	if len(ops) != len(want) {
		t.Fatalf("Text length = %d, want %d", len(ops), len(want))
	}
	for i, op := range want {
		if ops[i] != op {
			t.Errorf("Text[%d].Op = %v, want %v", i, ops[i], op)
		}
	}

	if decoded.Text.Dst.Reg != ir.A || decoded.Text.Src.Imm != 65 {
		t.Errorf("Text[0] = %+v, want Dst=A Src=65", decoded.Text)
	}
}

func TestDecodeModuleBinary_truncated(t *testing.T) {
	if _, err := decodeModuleBinary(bytes.NewReader([]byte{1, 2})); err == nil {
		t.Fatal("decodeModuleBinary: expected error for truncated input, got nil")
	}
}
