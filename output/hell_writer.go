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

package output

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/esoteric-programmer/hellc/hell"
	"github.com/esoteric-programmer/hellc/symtab"
)

// sectionNone, sectionCode and sectionData track which section header was
// last printed, so WriteHeLL only emits .CODE/.DATA on an actual change.
const (
	sectionNone = iota
	sectionCode
	sectionData
)

// WriteHeLL prints program as HeLL source text: a .CODE or .DATA section
// header whenever the block kind changes, offset directives for pinned blocks, label lines, and either an
// opcode cycle (or RNop shorthand) for code atoms or a value/reference/`?`
// for data atoms. It accepts a program at any stage — before or after
// layout.Resolve — since code atoms and symbolic references are still
// printable.
func WriteHeLL(w io.Writer, program *hell.Program) error {
	if program == nil {
		return errors.New("output: nil program")
	}
	last := sectionNone
	for b := program.Blocks; b != nil; b = b.Next {
		if b.Code != nil && b.Data != nil {
			return errors.New("output: block holds both code and data")
		}
		if b.Code != nil {
			if err := writeCodeBlock(w, &last, b); err != nil {
				return err
			}
		}
		if b.Data != nil {
			if err := writeDataBlock(w, &last, b, &program.Labels); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeOffset(w io.Writer, b *hell.Block) error {
	if b.Offset == nil {
		return nil
	}
	_, err := fmt.Fprintf(w, "@%s\n", b.Offset.Canonical().String())
	return err
}

func printAtomLabels(w io.Writer, labels []*symtab.Label) error {
	for _, l := range labels {
		if _, err := fmt.Fprintf(w, "%s:\n", l.Name); err != nil {
			return err
		}
	}
	return nil
}

func writeCodeBlock(w io.Writer, last *int, b *hell.Block) error {
	if *last != sectionCode {
		if _, err := fmt.Fprint(w, ".CODE\n"); err != nil {
			return err
		}
		*last = sectionCode
	}
	if err := writeOffset(w, b); err != nil {
		return err
	}
	for c := b.Code; c != nil; c = c.Next {
		if err := printAtomLabels(w, c.Labels); err != nil {
			return err
		}
		if c.IsRNop() {
			if _, err := fmt.Fprint(w, "  RNop\n"); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprint(w, "  "); err != nil {
			return err
		}
		for i, op := range c.Cycle {
			if i > 0 {
				if _, err := fmt.Fprint(w, "/"); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprint(w, op.String()); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, "\n"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "\n")
	return err
}

func writeDataBlock(w io.Writer, last *int, b *hell.Block, labels *symtab.Tree) error {
	if *last != sectionData {
		if _, err := fmt.Fprint(w, ".DATA\n"); err != nil {
			return err
		}
		*last = sectionData
	}
	if err := writeOffset(w, b); err != nil {
		return err
	}
	for d := b.Data; d != nil; d = d.Next {
		if err := printAtomLabels(w, d.Labels); err != nil {
			return err
		}
		if err := writeDataAtom(w, d, labels); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "\n")
	return err
}

func writeDataAtom(w io.Writer, d *hell.DataAtom, labels *symtab.Tree) error {
	switch d.Kind {
	case hell.Unused:
		_, err := fmt.Fprint(w, "  ?\n")
		return err
	case hell.Immediate:
		_, err := fmt.Fprintf(w, "  %s\n", d.Imm.Canonical().String())
		return err
	case hell.Reference:
		return writeReference(w, d, labels)
	default:
		return errors.Errorf("output: unknown data atom kind %d", d.Kind)
	}
}

func writeReference(w io.Writer, d *hell.DataAtom, labels *symtab.Tree) error {
	dest := labels.Find(d.Ref.Label)
	if dest == nil {
		return errors.Errorf("output: reference to undefined label %q", d.Ref.Label)
	}
	isCode := dest.CodeTarget != nil
	isData := dest.DataTarget != nil
	switch {
	case isData && !isCode:
		return writeDataReference(w, d)
	case isCode && !isData:
		return writeCodeReference(w, d)
	default:
		return errors.Errorf("output: label %q has no resolved target", d.Ref.Label)
	}
}

func writeDataReference(w io.Writer, d *hell.DataAtom) error {
	switch {
	case d.Ref.Offset > 0:
		_, err := fmt.Fprintf(w, "  %s + %d\n", d.Ref.Label, d.Ref.Offset)
		return err
	case d.Ref.Offset < 0:
		_, err := fmt.Fprintf(w, "  %s - %d\n", d.Ref.Label, -d.Ref.Offset)
		return err
	default:
		_, err := fmt.Fprintf(w, "  %s\n", d.Ref.Label)
		return err
	}
}

func writeCodeReference(w io.Writer, d *hell.DataAtom) error {
	switch {
	case d.Ref.Offset == 1:
		_, err := fmt.Fprintf(w, "  R_%s\n", d.Ref.Label)
		return err
	case d.Ref.Offset < 0:
		disambiguator := nearbyLabel(d, -d.Ref.Offset)
		_, err := fmt.Fprintf(w, "  U_%s %s\n", d.Ref.Label, disambiguator)
		return err
	case d.Ref.Offset == 0:
		_, err := fmt.Fprintf(w, "  %s\n", d.Ref.Label)
		return err
	default:
		return errors.Errorf("output: unsupported code reference offset %d for %q", d.Ref.Offset, d.Ref.Label)
	}
}

// nearbyLabel walks forward steps atoms from d in its own block's data
// chain and returns the name of a label found there, purely as a
// human-readable anchor for the U_ reference's printed form — it carries
// no semantic weight, the address itself was already fixed at layout time.
func nearbyLabel(d *hell.DataAtom, steps int32) string {
	it := d
	for i := int32(0); i < steps && it.Next != nil; i++ {
		it = it.Next
	}
	if len(it.Labels) > 0 {
		return it.Labels[0].Name
	}
	return d.Ref.Label
}
