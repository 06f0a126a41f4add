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

package layout

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/esoteric-programmer/hellc/hell"
	"github.com/esoteric-programmer/hellc/symtab"
	"github.com/esoteric-programmer/hellc/ternary"
)

// position records where one atom (code or data, before code atoms are
// replaced by data) sits once its block has a concrete address: the block
// it belongs to and its zero-based index within that block's chain.
type position struct {
	block *hell.Block
	index int
}

// Resolve executes the layout pass on program in place: on success every block
// has a concrete Offset and every data atom is an Immediate.
func Resolve(program *hell.Program) error {
	if program == nil {
		return errors.New("layout: nil program")
	}

	if err := buildBackReferences(program); err != nil {
		return errors.Wrap(err, "layout: back-references")
	}

	if err := insertPadding(program); err != nil {
		return errors.Wrap(err, "layout: padding")
	}

	sortBlocks(program)

	charOf, err := assignAddresses(program)
	if err != nil {
		return errors.Wrap(err, "layout: address assignment")
	}

	positions := collectPositions(program)

	if err := replaceCodeWithData(program, charOf); err != nil {
		return errors.Wrap(err, "layout: code-to-data replacement")
	}

	if err := resolveReferences(program, positions); err != nil {
		return errors.Wrap(err, "layout: reference resolution")
	}

	glog.V(1).Infof("layout: placed %d blocks", countBlocks(program))
	return nil
}

// collectPositions walks every block in its final, address-assigned order
// and records the position of every label's target atom, keyed by the
// label itself rather than the atom's pointer identity — the subsequent
// code-to-data replacement repoints CodeTarget/DataTarget to a fresh atom,
// so the label is the only identity stable across that step.
func collectPositions(program *hell.Program) map[*symtab.Label]position {
	positions := make(map[*symtab.Label]position)
	for b := program.Blocks; b != nil; b = b.Next {
		i := 0
		for c := b.Code; c != nil; c = c.Next {
			for _, label := range c.Labels {
				positions[label] = position{block: b, index: i}
			}
			i++
		}
		i = 0
		for d := b.Data; d != nil; d = d.Next {
			for _, label := range d.Labels {
				positions[label] = position{block: b, index: i}
			}
			i++
		}
	}
	return positions
}

func countBlocks(program *hell.Program) int {
	n := 0
	for b := program.Blocks; b != nil; b = b.Next {
		n++
	}
	return n
}

// blockSize returns the number of atoms (code or data) a block holds.
func blockSize(b *hell.Block) int {
	n := 0
	for c := b.Code; c != nil; c = c.Next {
		n++
	}
	for d := b.Data; d != nil; d = d.Next {
		n++
	}
	return n
}

// codeAtoms returns b's code atoms as a slice, in order.
func codeAtoms(b *hell.Block) []*hell.CodeAtom {
	var atoms []*hell.CodeAtom
	for c := b.Code; c != nil; c = c.Next {
		atoms = append(atoms, c)
	}
	return atoms
}

// relinkCode rebuilds b's code chain from atoms, in order.
func relinkCode(b *hell.Block, atoms []*hell.CodeAtom) {
	if len(atoms) == 0 {
		b.Code = nil
		return
	}
	b.Code = atoms[0]
	for i := 0; i < len(atoms)-1; i++ {
		atoms[i].Next = atoms[i+1]
	}
	atoms[len(atoms)-1].Next = nil
}

// decrementOffset walks a block's pinned offset backward by n ternary units,
// used when leading RNop cells are prepended ahead of it.
func decrementOffset(offset *ternary.Ternary, n int) {
	for i := 0; i < n; i++ {
		offset.Decrement()
	}
}
