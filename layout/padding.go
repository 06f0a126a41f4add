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
	"github.com/pkg/errors"

	"github.com/esoteric-programmer/hellc/hell"
	"github.com/esoteric-programmer/hellc/malbolge"
	"github.com/esoteric-programmer/hellc/symtab"
)

// insertPadding walks every block's code atoms and, for any label whose
// back-reference list contains a negative-offset reference (a "U_"
// reference — one that names a point some fixed number of cells before the
// label), ensures enough leading RNop cells exist ahead of it in the same
// block.
//
// This implementation resolves the padding at the front of the block
// rather than at an arbitrary point mid-block: every label this pass is
// asked to pad is expected to be the first real (non-RNop) atom in its
// block, which is how U_ references are used in practice. A label that
// needs padding but already has non-RNop atoms ahead of it in the block is
// rejected, matching the failure semantics in spec.
func insertPadding(program *hell.Program) error {
	for b := program.Blocks; b != nil; b = b.Next {
		if b.Code == nil {
			continue
		}
		if err := padBlock(b); err != nil {
			return err
		}
	}
	return nil
}

func padBlock(b *hell.Block) error {
	for {
		atoms := codeAtoms(b)
		missing, label := maxNegativeDemand(atoms)
		if missing <= 0 {
			return nil
		}
		index := indexOfLabel(atoms, label)
		if hasNonRNopBefore(atoms, index) {
			return errors.Errorf("layout: label %q needs %d leading RNop cells but non-RNop atoms already precede it", label.Name, missing)
		}
		padded := make([]*hell.CodeAtom, 0, len(atoms)+missing)
		for i := 0; i < missing; i++ {
			padded = append(padded, &hell.CodeAtom{Cycle: []malbolge.Opcode{malbolge.NOP, malbolge.NOP}})
		}
		padded = append(padded, atoms...)
		relinkCode(b, padded)
		if b.Offset != nil {
			decrementOffset(b.Offset, missing)
		}
	}
}

// maxNegativeDemand scans every label attached to atoms in this block and
// returns the largest number of cells still missing ahead of any of them
// (a reference at offset -n to the atom at index i needs n-i more cells),
// along with that label.
func maxNegativeDemand(atoms []*hell.CodeAtom) (int, *symtab.Label) {
	best := 0
	var bestLabel *symtab.Label
	for i, atom := range atoms {
		for _, label := range atom.Labels {
			for ref := label.BackRefs; ref != nil; ref = ref.Next {
				d, ok := ref.Target.(*hell.DataAtom)
				if !ok || d.Kind != hell.Reference || d.Ref.Offset >= 0 {
					continue
				}
				demand := int(-d.Ref.Offset) - i
				if demand > best {
					best = demand
					bestLabel = label
				}
			}
		}
	}
	return best, bestLabel
}

func indexOfLabel(atoms []*hell.CodeAtom, label *symtab.Label) int {
	if label == nil {
		return -1
	}
	for i, atom := range atoms {
		for _, l := range atom.Labels {
			if l == label {
				return i
			}
		}
	}
	return -1
}

func hasNonRNopBefore(atoms []*hell.CodeAtom, index int) bool {
	for i := 0; i < index; i++ {
		if !atoms[i].IsRNop() {
			return true
		}
	}
	return false
}
