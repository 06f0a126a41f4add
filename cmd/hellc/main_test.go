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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleModule = `{
	"data": [],
	"text": [
		{"op": "mov", "dst": {"kind": "reg", "reg": "A"}, "src": {"kind": "imm", "imm": 65}, "pc": 0},
		{"op": "putc", "dst": {"kind": "reg", "reg": "A"}, "pc": 1},
		{"op": "exit", "pc": 2}
	]
}`

func TestRunBuild_hellTarget(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "module.json")
	out := filepath.Join(dir, "out.hell")
	if err := os.WriteFile(in, []byte(sampleModule), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cmd := newRootCmd()
	inputPath, outputPath, target = in, out, "hell"
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	text, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(text), ".CODE") {
		t.Errorf("output missing .CODE section, got:\n%s", text)
	}
}

func TestRunBuild_muTarget(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "module.json")
	out := filepath.Join(dir, "out.mu")
	if err := os.WriteFile(in, []byte(sampleModule), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cmd := newRootCmd()
	inputPath, outputPath, target = in, out, "mu"
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	text, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasPrefix(string(text), ".DATA") {
		t.Errorf("output missing .DATA header, got:\n%s", text)
	}
	if !strings.Contains(string(text), "ENTRY:") {
		t.Errorf("output missing ENTRY: marker, got:\n%s", text)
	}
}

func TestRunBuild_unknownTarget(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "module.json")
	if err := os.WriteFile(in, []byte(sampleModule), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cmd := newRootCmd()
	inputPath, outputPath, target = in, "", "bogus"
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err == nil {
		t.Fatal("Execute: expected error for unknown target, got nil")
	}
}
