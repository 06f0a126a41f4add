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
	"github.com/esoteric-programmer/hellc/ternary"
)

// entryLabel is the label the lowering pass attaches to the module's first
// instruction; WriteMalbolgeUnshackled looks it up to print the ENTRY:
// marker.
const entryLabel = "ENTRY"

// WriteMalbolgeUnshackled prints the final resolved image: a single .DATA
// section of ternary immediates, one per cell in block/address order, with
// an ENTRY: marker ahead of the cell carrying the entry label. The program
// must already have been through layout.Resolve — every block must carry an
// Offset and every atom must be a resolved Immediate; any surviving code
// atom or unresolved Reference is reported as an error rather than guessed
// at.
func WriteMalbolgeUnshackled(w io.Writer, program *hell.Program) error {
	if program == nil {
		return errors.New("output: nil program")
	}
	if _, err := fmt.Fprint(w, ".DATA\n"); err != nil {
		return err
	}
	for b := program.Blocks; b != nil; b = b.Next {
		if b.Code != nil {
			return errors.New("output: unresolved code block reached Malbolge-Unshackled output")
		}
		if b.Offset == nil {
			return errors.New("output: block has no assigned offset")
		}
		if err := writeOffset(w, b); err != nil {
			return err
		}
		for d := b.Data; d != nil; d = d.Next {
			if err := writeResolvedAtom(w, d); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeResolvedAtom(w io.Writer, d *hell.DataAtom) error {
	for _, l := range d.Labels {
		if l.Name == entryLabel {
			if _, err := fmt.Fprint(w, "ENTRY:\n"); err != nil {
				return err
			}
		}
	}
	switch d.Kind {
	case hell.Immediate:
		_, err := fmt.Fprintf(w, "  %s\n", d.Imm.Canonical().String())
		return err
	case hell.Unused:
		// No value is constrained here; any trit works, so zero fills the cell.
		zero, err := ternary.FromUint(0, 1)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "  %s\n", zero.String())
		return err
	case hell.Reference:
		return errors.Errorf("output: unresolved reference to %q survived layout", d.Ref.Label)
	default:
		return errors.Errorf("output: unknown data atom kind %d", d.Kind)
	}
}
