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
	"github.com/esoteric-programmer/hellc/malbolge"
	"github.com/esoteric-programmer/hellc/ternary"
)

// addressWidth is the trit width unpinned blocks' synthesized offsets are
// computed in — wide enough that ordinary programs never overflow
// AddOffset's fixed-width arithmetic, matching the width the memory image
// uses for its own addresses.
const addressWidth = 19

// widen left-pads t's suffix with its background trit up to width trits,
// leaving its value unchanged, so that AddOffset has room to carry or
// borrow after an earlier result was canonicalized to fewer trits.
func widen(t ternary.Ternary, width int) ternary.Ternary {
	pad := width - len(t.Digits)
	if pad <= 0 {
		return t
	}
	digits := make([]byte, width)
	for i := 0; i < pad; i++ {
		digits[i] = t.Prefix
	}
	copy(digits[pad:], t.Digits)
	return ternary.Ternary{Prefix: t.Prefix, Digits: digits}
}

// assignAddresses walks program's blocks in order, assigning a concrete
// ternary offset to every block: fixed offsets are taken as given, and
// unpinned blocks are placed immediately after the previous block, with
// code blocks additionally searching for a base placement character (see
// cycleMatches). It returns the accepted character for every code atom,
// needed by the subsequent code-to-data replacement.
func assignAddresses(program *hell.Program) (map[*hell.CodeAtom]byte, error) {
	charOf := make(map[*hell.CodeAtom]byte)

	lastOffset, err := ternary.FromUint(0, addressWidth)
	if err != nil {
		return nil, err
	}
	lastSize := 0

	for b := program.Blocks; b != nil; b = b.Next {
		if b.Offset != nil {
			lastOffset = *b.Offset
			if b.Code != nil {
				if !allMatch(ternary.Mod94(lastOffset), 0, codeAtoms(b)) {
					return nil, errors.Errorf("layout: fixed offset %s does not admit a valid placement character", lastOffset.String())
				}
				if err := assignPlacement(lastOffset, codeAtoms(b), charOf); err != nil {
					return nil, err
				}
			}
		} else {
			offset, err := ternary.AddOffset(widen(lastOffset, addressWidth), int32(lastSize))
			if err != nil {
				return nil, errors.Wrap(err, "layout: address assignment overflow")
			}
			if b.Code != nil {
				k, err := findPlacement(offset, codeAtoms(b))
				if err != nil {
					return nil, err
				}
				offset, err = ternary.AddOffset(widen(offset, addressWidth), int32(k))
				if err != nil {
					return nil, errors.Wrap(err, "layout: address assignment overflow")
				}
				if err := assignPlacement(offset, codeAtoms(b), charOf); err != nil {
					return nil, err
				}
			}
			b.Offset = &offset
			lastOffset = offset
		}
		lastSize = blockSize(b)
		glog.V(1).Infof("layout: block at %s size %d", b.Offset.String(), lastSize)
	}
	return charOf, nil
}

// findPlacement searches k in [0,94) for the smallest shift such that every
// code atom in atoms, placed at consecutive addresses starting at base+k,
// admits a valid Malbolge base character for its own xlat cycle.
func findPlacement(base ternary.Ternary, atoms []*hell.CodeAtom) (int, error) {
	startIdx := ternary.Mod94(base)
	for k := 0; k < 94; k++ {
		if allMatch(startIdx, k, atoms) {
			return k, nil
		}
	}
	return 0, errors.New("layout: no valid placement character found for code block")
}

func allMatch(startIdx, k int, atoms []*hell.CodeAtom) bool {
	for p, atom := range atoms {
		idx := mod(startIdx+k+p, 94)
		c := byte(33 + idx)
		if !cycleMatches(atom.Cycle, c) {
			return false
		}
	}
	return true
}

func assignPlacement(base ternary.Ternary, atoms []*hell.CodeAtom, charOf map[*hell.CodeAtom]byte) error {
	startIdx := ternary.Mod94(base)
	for p, atom := range atoms {
		idx := mod(startIdx+p, 94)
		charOf[atom] = byte(33 + idx)
	}
	return nil
}

// cycleMatches reports whether base character c, repeatedly advanced by
// Malbolge's xlat2 permutation once per visit, denormalizes to cycle's
// opcodes in order. A NOP slot accepts any character, since a rotation
// no-op does not care which harmless opcode sits underneath it.
func cycleMatches(cycle []malbolge.Opcode, c byte) bool {
	for _, op := range cycle {
		if op != malbolge.NOP {
			got, err := malbolge.Denormalize(c)
			if err != nil || got != op {
				return false
			}
		}
		c = malbolge.Xlat2(c)
	}
	return true
}

func mod(v, m int) int {
	v %= m
	if v < 0 {
		v += m
	}
	return v
}
