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
	"github.com/esoteric-programmer/hellc/symtab"
	"github.com/esoteric-programmer/hellc/ternary"
)

const charWidth = 5

// replaceCodeWithData turns every code block into a data-only block: each
// code atom becomes an Immediate data atom holding the 5-trit
// representation of the base character assignAddresses found for it.
// Labels attached to the code atom carry over to its replacement, and the
// label's CodeTarget is repointed so later reference resolution still finds
// it (it is looked up by the label object, not the old atom identity).
func replaceCodeWithData(program *hell.Program, charOf map[*hell.CodeAtom]byte) error {
	for b := program.Blocks; b != nil; b = b.Next {
		if b.Code == nil {
			continue
		}
		var head, tail *hell.DataAtom
		for c := b.Code; c != nil; c = c.Next {
			ch, ok := charOf[c]
			if !ok {
				return errors.New("layout: internal: code atom placed with no assigned character")
			}
			imm, err := ternary.FromUint(uint64(ch), charWidth)
			if err != nil {
				return errors.Wrap(err, "layout: 5-trit character encoding")
			}
			atom := &hell.DataAtom{Kind: hell.Immediate, Imm: imm, Labels: c.Labels}
			for _, label := range c.Labels {
				label.CodeTarget = nil
				label.DataTarget = atom
			}
			if head == nil {
				head = atom
			} else {
				tail.Next = atom
			}
			tail = atom
		}
		b.Code = nil
		b.Data = head
	}
	return nil
}

// resolveReferences replaces every Reference data atom with the Immediate
// it resolves to: the target label's block offset, shifted by the target's
// position within that block plus the reference's own offset, minus one.
func resolveReferences(program *hell.Program, positions map[*symtab.Label]position) error {
	for b := program.Blocks; b != nil; b = b.Next {
		for d := b.Data; d != nil; d = d.Next {
			if d.Kind != hell.Reference {
				continue
			}
			label := program.Labels.Find(d.Ref.Label)
			if label == nil {
				return errors.Errorf("layout: reference to undefined label %q", d.Ref.Label)
			}
			pos, ok := positions[label]
			if !ok {
				return errors.Errorf("layout: label %q has no resolved position", label.Name)
			}
			if pos.block.Offset == nil {
				return errors.Errorf("layout: internal: block for label %q has no assigned offset", label.Name)
			}
			imm, err := ternary.AddOffset(widen(*pos.block.Offset, addressWidth), int32(pos.index)+d.Ref.Offset-1)
			if err != nil {
				return errors.Wrapf(err, "layout: resolving reference to %q", label.Name)
			}
			d.Kind = hell.Immediate
			d.Imm = imm
			d.Ref = hell.Ref{}
		}
	}
	return nil
}
