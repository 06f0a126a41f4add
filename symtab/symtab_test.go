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

package symtab_test

import (
	"strings"
	"testing"

	"github.com/esoteric-programmer/hellc/symtab"
)

func TestDefineAndFind(t *testing.T) {
	var tree symtab.Tree
	names := []string{"main", "loop", "exit", "aardvark", "zebra", "loop_2"}
	for _, n := range names {
		if _, err := tree.Define(n); err != nil {
			t.Fatalf("Define(%q): %v", n, err)
		}
	}
	for _, n := range names {
		got := tree.Find(n)
		if got == nil {
			t.Fatalf("Find(%q) = nil, want a label", n)
		}
		if got.Name != n {
			t.Errorf("Find(%q).Name = %q", n, got.Name)
		}
	}
	if got := tree.Find("missing"); got != nil {
		t.Errorf("Find(missing) = %v, want nil", got)
	}
}

func TestDefine_duplicate(t *testing.T) {
	var tree symtab.Tree
	if _, err := tree.Define("dup"); err != nil {
		t.Fatalf("Define: %v", err)
	}
	if _, err := tree.Define("dup"); err == nil {
		t.Error("Define(dup) second time: expected error, got nil")
	}
}

func TestDefine_longNamesCollideAtLimit(t *testing.T) {
	var tree symtab.Tree
	a := strings.Repeat("x", 101) + "a"
	b := strings.Repeat("x", 101) + "b"
	if _, err := tree.Define(a); err != nil {
		t.Fatalf("Define(a): %v", err)
	}
	// a and b agree on their first 101 bytes, so they collide under the
	// bounded comparison even though they differ past the limit.
	if _, err := tree.Define(b); err == nil {
		t.Error("Define(b): expected collision error past the 101-byte limit, got nil")
	}
}

func TestAddBackReference(t *testing.T) {
	var tree symtab.Tree
	label, err := tree.Define("target")
	if err != nil {
		t.Fatalf("Define: %v", err)
	}
	symtab.AddBackReference(label, "first")
	symtab.AddBackReference(label, "second")
	if label.BackRefs == nil {
		t.Fatal("BackRefs is nil after two AddBackReference calls")
	}
	if label.BackRefs.Target != "second" {
		t.Errorf("BackRefs.Target = %v, want \"second\" (most recent first)", label.BackRefs.Target)
	}
	if label.BackRefs.Next == nil || label.BackRefs.Next.Target != "first" {
		t.Error("BackRefs.Next.Target should be \"first\"")
	}
}
