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

package hell_test

import (
	"testing"

	"github.com/esoteric-programmer/hellc/hell"
	"github.com/esoteric-programmer/hellc/malbolge"
)

func blockCount(p *hell.Program) int {
	n := 0
	for b := p.Blocks; b != nil; b = b.Next {
		n++
	}
	return n
}

func TestBuilder_codeAndDataSplitIntoBlocks(t *testing.T) {
	b := hell.NewBuilder()
	if err := b.EmitXlatCycle(malbolge.OPR); err != nil {
		t.Fatalf("EmitXlatCycle: %v", err)
	}
	if err := b.EmitXlatCycle(malbolge.ROT); err != nil {
		t.Fatalf("EmitXlatCycle: %v", err)
	}
	if err := b.EmitImmediate(0, "12"); err != nil {
		t.Fatalf("EmitImmediate: %v", err)
	}
	if err := b.EmitXlatCycle(malbolge.HALT); err != nil {
		t.Fatalf("EmitXlatCycle: %v", err)
	}
	prog, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := blockCount(prog); got != 3 {
		t.Fatalf("blockCount = %d, want 3 (code, data, code)", got)
	}
	first := prog.Blocks
	if first.Code == nil || first.Code.Next == nil || first.Code.Next.Next != nil {
		t.Error("first block should hold exactly two code atoms")
	}
	second := first.Next
	if second.Data == nil || second.Data.Kind != hell.Immediate {
		t.Error("second block should hold one immediate data atom")
	}
	third := second.Next
	if third.Code == nil || third.Code.Cycle[0] != malbolge.HALT {
		t.Error("third block should hold the trailing HALT atom")
	}
}

func TestBuilder_labelAttachesToNextAtom(t *testing.T) {
	b := hell.NewBuilder()
	label, err := b.EmitLabel("loop")
	if err != nil {
		t.Fatalf("EmitLabel: %v", err)
	}
	if err := b.EmitXlatCycle(malbolge.NOP, malbolge.NOP); err != nil {
		t.Fatalf("EmitXlatCycle: %v", err)
	}
	prog, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	atom, ok := label.CodeTarget.(*hell.CodeAtom)
	if !ok || atom == nil {
		t.Fatal("label.CodeTarget was not set to the following code atom")
	}
	if !atom.IsRNop() {
		t.Error("NOP,NOP cycle should report as an RNop")
	}
	if prog.Blocks.Code != atom {
		t.Error("labeled atom should be the program's first code atom")
	}
}

func TestBuilder_finalizeSynthesizesUnusedCellForDanglingLabel(t *testing.T) {
	b := hell.NewBuilder()
	label, err := b.EmitLabel("tail")
	if err != nil {
		t.Fatalf("EmitLabel: %v", err)
	}
	if err := b.EmitFinalizeBlock(); err != nil {
		t.Fatalf("EmitFinalizeBlock: %v", err)
	}
	atom, ok := label.DataTarget.(*hell.DataAtom)
	if !ok || atom == nil || atom.Kind != hell.Unused {
		t.Fatal("dangling label should be attached to a synthesized unused cell")
	}
}

func TestBuilder_offsetPinsNextBlock(t *testing.T) {
	b := hell.NewBuilder()
	if err := b.EmitXlatCycle(malbolge.NOP, malbolge.NOP); err != nil {
		t.Fatalf("EmitXlatCycle: %v", err)
	}
	if err := b.EmitOffset(1, "022222"); err != nil {
		t.Fatalf("EmitOffset: %v", err)
	}
	if err := b.EmitImmediate(0, "1"); err != nil {
		t.Fatalf("EmitImmediate: %v", err)
	}
	prog, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	second := prog.Blocks.Next
	if second == nil || second.Offset == nil {
		t.Fatal("second block should carry the pinned offset")
	}
	if got := second.Offset.String(); got != "1t022222" {
		t.Errorf("second block offset = %s, want 1t022222", got)
	}
}

func TestBuilder_errors(t *testing.T) {
	b := hell.NewBuilder()
	if err := b.EmitXlatCycle(); err == nil {
		t.Error("EmitXlatCycle() with no opcodes: expected error")
	}
	if err := b.EmitXlatCycle(malbolge.Opcode(200)); err == nil {
		t.Error("EmitXlatCycle(200): expected error for invalid opcode")
	}
	if err := b.EmitLabelReference("", 0); err == nil {
		t.Error("EmitLabelReference(\"\", 0): expected error")
	}
	if _, err := b.EmitLabel("dup"); err != nil {
		t.Fatalf("EmitLabel(dup): %v", err)
	}
	if _, err := b.EmitLabel("dup"); err == nil {
		t.Error("EmitLabel(dup) twice: expected duplicate error")
	}
}
