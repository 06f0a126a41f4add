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

package output_test

import (
	"strings"
	"testing"

	"github.com/esoteric-programmer/hellc/hell"
	"github.com/esoteric-programmer/hellc/layout"
	"github.com/esoteric-programmer/hellc/malbolge"
	"github.com/esoteric-programmer/hellc/output"
)

func TestWriteHeLL_codeAndDataBlocks(t *testing.T) {
	b := hell.NewBuilder()
	if _, err := b.EmitLabel("start"); err != nil {
		t.Fatalf("EmitLabel: %v", err)
	}
	if err := b.EmitXlatCycle(malbolge.NOP, malbolge.NOP); err != nil {
		t.Fatalf("EmitXlatCycle: %v", err)
	}
	if err := b.EmitXlatCycle(malbolge.HALT); err != nil {
		t.Fatalf("EmitXlatCycle: %v", err)
	}
	if err := b.EmitFinalizeBlock(); err != nil {
		t.Fatalf("EmitFinalizeBlock: %v", err)
	}
	if _, err := b.EmitLabel("value"); err != nil {
		t.Fatalf("EmitLabel: %v", err)
	}
	if err := b.EmitImmediate(0, "12"); err != nil {
		t.Fatalf("EmitImmediate: %v", err)
	}
	if err := b.EmitUnusedCell(); err != nil {
		t.Fatalf("EmitUnusedCell: %v", err)
	}
	if err := b.EmitLabelReference("start", 1); err != nil {
		t.Fatalf("EmitLabelReference: %v", err)
	}
	program, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var buf strings.Builder
	if err := output.WriteHeLL(&buf, program); err != nil {
		t.Fatalf("WriteHeLL: %v", err)
	}
	text := buf.String()

	for _, want := range []string{".CODE\n", "start:\n", "  RNop\n", "  Hlt\n", ".DATA\n", "value:\n", "  0t12\n", "  ?\n", "R_start"} {
		if !strings.Contains(text, want) {
			t.Errorf("WriteHeLL output missing %q, got:\n%s", want, text)
		}
	}
}

// TestWriteHeLL_immediateIsCanonicalized confirms a zero-padded immediate
// (as lower emits for MEMORY_0 at a fixed cell width) prints at its minimal
// width rather than with its full padding.
func TestWriteHeLL_immediateIsCanonicalized(t *testing.T) {
	b := hell.NewBuilder()
	if _, err := b.EmitLabel("MEMORY_0"); err != nil {
		t.Fatalf("EmitLabel: %v", err)
	}
	if err := b.EmitImmediate(0, "0000000000000010000"); err != nil {
		t.Fatalf("EmitImmediate: %v", err)
	}
	program, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var buf strings.Builder
	if err := output.WriteHeLL(&buf, program); err != nil {
		t.Fatalf("WriteHeLL: %v", err)
	}
	text := buf.String()
	if !strings.Contains(text, "  0t10000\n") {
		t.Errorf("WriteHeLL output %q does not contain canonicalized immediate 0t10000", text)
	}
	if strings.Contains(text, "0t0000000000000010000") {
		t.Errorf("WriteHeLL output %q still contains the zero-padded immediate", text)
	}
}

func TestWriteHeLL_nilProgram(t *testing.T) {
	var buf strings.Builder
	if err := output.WriteHeLL(&buf, nil); err == nil {
		t.Fatal("WriteHeLL(nil): expected error, got nil")
	}
}

func TestWriteMalbolgeUnshackled_afterResolve(t *testing.T) {
	b := hell.NewBuilder()
	if _, err := b.EmitLabel("ENTRY"); err != nil {
		t.Fatalf("EmitLabel: %v", err)
	}
	if err := b.EmitXlatCycle(malbolge.NOP, malbolge.NOP); err != nil {
		t.Fatalf("EmitXlatCycle: %v", err)
	}
	if err := b.EmitFinalizeBlock(); err != nil {
		t.Fatalf("EmitFinalizeBlock: %v", err)
	}
	if err := b.EmitLabelReference("ENTRY", 1); err != nil {
		t.Fatalf("EmitLabelReference: %v", err)
	}
	program, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := layout.Resolve(program); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	var buf strings.Builder
	if err := output.WriteMalbolgeUnshackled(&buf, program); err != nil {
		t.Fatalf("WriteMalbolgeUnshackled: %v", err)
	}
	text := buf.String()
	if !strings.HasPrefix(text, ".DATA\n") {
		t.Errorf("WriteMalbolgeUnshackled output missing .DATA header, got:\n%s", text)
	}
	if !strings.Contains(text, "ENTRY:\n") {
		t.Errorf("WriteMalbolgeUnshackled output missing ENTRY: marker, got:\n%s", text)
	}
	if strings.Contains(text, "?") {
		t.Errorf("WriteMalbolgeUnshackled output retained an unresolved cell, got:\n%s", text)
	}
}

// TestWriteMalbolgeUnshackled_immediateIsCanonicalized mirrors
// TestWriteHeLL_immediateIsCanonicalized for the resolved-output path.
func TestWriteMalbolgeUnshackled_immediateIsCanonicalized(t *testing.T) {
	b := hell.NewBuilder()
	if _, err := b.EmitLabel("ENTRY"); err != nil {
		t.Fatalf("EmitLabel: %v", err)
	}
	if err := b.EmitImmediate(0, "0000000000000010000"); err != nil {
		t.Fatalf("EmitImmediate: %v", err)
	}
	program, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := layout.Resolve(program); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	var buf strings.Builder
	if err := output.WriteMalbolgeUnshackled(&buf, program); err != nil {
		t.Fatalf("WriteMalbolgeUnshackled: %v", err)
	}
	text := buf.String()
	if !strings.Contains(text, "  0t10000\n") {
		t.Errorf("WriteMalbolgeUnshackled output %q does not contain canonicalized immediate 0t10000", text)
	}
}

func TestWriteMalbolgeUnshackled_nilProgram(t *testing.T) {
	var buf strings.Builder
	if err := output.WriteMalbolgeUnshackled(&buf, nil); err == nil {
		t.Fatal("WriteMalbolgeUnshackled(nil): expected error, got nil")
	}
}
