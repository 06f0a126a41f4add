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

package hell

import (
	"github.com/esoteric-programmer/hellc/malbolge"
	"github.com/esoteric-programmer/hellc/symtab"
	"github.com/esoteric-programmer/hellc/ternary"
)

// CodeAtom is one executable cell: a non-empty xlat cycle — the sequence of
// opcodes the cell evaluates to on successive visits — plus the labels
// attached to it. A cycle of NOP repeated two or more times is an RNop:
// semantically a rotation no-op, printed with its own shorthand by the
// output formatter.
type CodeAtom struct {
	Cycle  []malbolge.Opcode
	Labels []*symtab.Label
	Next   *CodeAtom
}

// IsRNop reports whether a consists solely of repeated NOP opcodes, with at
// least two repetitions.
func (a *CodeAtom) IsRNop() bool {
	if len(a.Cycle) < 2 {
		return false
	}
	for _, c := range a.Cycle {
		if c != malbolge.NOP {
			return false
		}
	}
	return true
}

// DataKind distinguishes the three variants a DataAtom can hold.
type DataKind int

// Data atom variants.
const (
	Immediate DataKind = iota
	Reference
	Unused
)

// Ref is a forward reference to a label, resolved by the layout pass into
// an Immediate equal to the label's assigned address plus Offset, minus 1.
type Ref struct {
	Label  string
	Offset int32
}

// DataAtom is one data cell: either a resolved Immediate, an unresolved
// label Reference, or Unused (padding with no constraint on its value),
// plus the labels attached to it.
type DataAtom struct {
	Kind   DataKind
	Imm    ternary.Ternary
	Ref    Ref
	Labels []*symtab.Label
	Next   *DataAtom
}

// Block is a maximal run of atoms of one kind — never both. Offset, when
// non-nil, pins the block's first cell to an absolute address; otherwise
// the layout pass assigns one.
type Block struct {
	Offset *ternary.Ternary
	Code   *CodeAtom
	Data   *DataAtom
	Next   *Block
}

// Program is a complete HeLL program: its blocks in emission order and its
// label table.
type Program struct {
	Blocks *Block
	Labels symtab.Tree
}
