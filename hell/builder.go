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
	"github.com/pkg/errors"

	"github.com/esoteric-programmer/hellc/malbolge"
	"github.com/esoteric-programmer/hellc/symtab"
	"github.com/esoteric-programmer/hellc/ternary"
)

// Builder assembles a Program through a streaming emission API: each call
// appends one atom, and the current block closes on Finalize, on an
// explicit Offset pin, or when an atom of the other kind (code after data,
// data after code) starts a new block.
type Builder struct {
	program *Program

	blockTail *Block
	codeTail  *CodeAtom
	dataTail  *DataAtom

	pendingLabels []*symtab.Label
	pendingOffset *ternary.Ternary
}

// NewBuilder returns an empty Builder ready to accept emissions.
func NewBuilder() *Builder {
	return &Builder{program: &Program{}}
}

// EmitXlatCycle appends a code atom whose xlat cycle is the given
// already-normalized opcodes. Every opcode must be one of the eight valid
// Malbolge commands.
func (b *Builder) EmitXlatCycle(cycle ...malbolge.Opcode) error {
	if len(cycle) == 0 {
		return errors.New("hell: empty xlat cycle")
	}
	for _, c := range cycle {
		if !c.Valid() {
			return errors.Errorf("hell: invalid opcode %d in xlat cycle", c)
		}
	}
	return b.appendCode(&CodeAtom{Cycle: append([]malbolge.Opcode(nil), cycle...)})
}

// EmitXlatCycleChars appends a code atom whose xlat cycle is given as
// printable ASCII characters, each denormalized into its opcode value.
func (b *Builder) EmitXlatCycleChars(chars ...byte) error {
	if len(chars) == 0 {
		return errors.New("hell: empty xlat cycle")
	}
	cycle := make([]malbolge.Opcode, len(chars))
	for i, ch := range chars {
		op, err := malbolge.Denormalize(ch)
		if err != nil {
			return errors.Wrapf(err, "hell: xlat cycle character %d", i)
		}
		if !op.Valid() {
			return errors.Errorf("hell: character %q denormalizes to non-command opcode %d", ch, op)
		}
		cycle[i] = op
	}
	return b.appendCode(&CodeAtom{Cycle: cycle})
}

// EmitImmediate appends a data atom holding the ternary immediate
// (prefix, suffix).
func (b *Builder) EmitImmediate(prefix byte, suffix string) error {
	v, err := ternary.New(prefix, suffix)
	if err != nil {
		return errors.Wrap(err, "hell: emit_immediate")
	}
	return b.appendData(&DataAtom{Kind: Immediate, Imm: v})
}

// EmitLabelReference appends a data atom that refers to label, resolved by
// the layout pass to the label's address plus offset.
func (b *Builder) EmitLabelReference(label string, offset int32) error {
	if label == "" {
		return errors.New("hell: emit_label_reference: empty label")
	}
	return b.appendData(&DataAtom{Kind: Reference, Ref: Ref{Label: label, Offset: offset}})
}

// EmitUnusedCell appends a data atom with no value constraint.
func (b *Builder) EmitUnusedCell() error {
	return b.appendData(&DataAtom{Kind: Unused})
}

// EmitLabel defines name and attaches it to the next atom emitted.
// Defining a name that already exists is fatal.
func (b *Builder) EmitLabel(name string) (*symtab.Label, error) {
	label, err := b.program.Labels.Define(name)
	if err != nil {
		return nil, errors.Wrap(err, "hell: emit_label")
	}
	b.pendingLabels = append(b.pendingLabels, label)
	return label, nil
}

// EmitFinalizeBlock closes the current block. Pending labels with no atom
// attached get a synthesized unused cell so they have a home. Finalizing
// while a fixed offset is pending with no block created for it is fatal.
func (b *Builder) EmitFinalizeBlock() error {
	if len(b.pendingLabels) > 0 {
		if err := b.appendData(&DataAtom{Kind: Unused}); err != nil {
			return err
		}
	}
	b.codeTail = nil
	b.dataTail = nil
	if b.pendingOffset != nil {
		return errors.New("hell: emit_finalize_block: offset pending with no block created for it")
	}
	return nil
}

// EmitOffset finalizes the current block and pins the next block's
// starting address to the ternary value (prefix, suffix).
func (b *Builder) EmitOffset(prefix byte, suffix string) error {
	v, err := ternary.New(prefix, suffix)
	if err != nil {
		return errors.Wrap(err, "hell: emit_offset")
	}
	if err := b.EmitFinalizeBlock(); err != nil {
		return err
	}
	b.pendingOffset = &v
	return nil
}

// Build finalizes any open block and returns the assembled Program.
func (b *Builder) Build() (*Program, error) {
	if err := b.EmitFinalizeBlock(); err != nil {
		return nil, err
	}
	return b.program, nil
}

func (b *Builder) appendCode(atom *CodeAtom) error {
	for _, label := range b.pendingLabels {
		label.CodeTarget = atom
	}
	atom.Labels = b.pendingLabels
	b.pendingLabels = nil

	if b.codeTail != nil {
		if b.pendingOffset != nil {
			return errors.New("hell: internal: offset pending while code block is open")
		}
		b.codeTail.Next = atom
		b.codeTail = atom
		return nil
	}
	return b.newBlock(atom, nil)
}

func (b *Builder) appendData(atom *DataAtom) error {
	for _, label := range b.pendingLabels {
		label.DataTarget = atom
	}
	atom.Labels = b.pendingLabels
	b.pendingLabels = nil

	if b.dataTail != nil {
		if b.pendingOffset != nil {
			return errors.New("hell: internal: offset pending while data block is open")
		}
		b.dataTail.Next = atom
		b.dataTail = atom
		return nil
	}
	return b.newBlock(nil, atom)
}

func (b *Builder) newBlock(code *CodeAtom, data *DataAtom) error {
	if (code == nil) == (data == nil) {
		return errors.New("hell: internal: block must hold exactly one of code or data")
	}
	block := &Block{Offset: b.pendingOffset, Code: code, Data: data}
	b.pendingOffset = nil
	if code != nil {
		b.codeTail = code
		b.dataTail = nil
	} else {
		b.codeTail = nil
		b.dataTail = data
	}
	if b.blockTail != nil {
		b.blockTail.Next = block
	} else {
		b.program.Blocks = block
	}
	b.blockTail = block
	return nil
}
