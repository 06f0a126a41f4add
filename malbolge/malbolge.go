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

package malbolge

import "github.com/pkg/errors"

// Opcode is one of the eight normalized Malbolge command values a memory
// cell can denormalize to.
type Opcode byte

// Malbolge command values, fixed by the target platform.
const (
	OPR  Opcode = 62
	ROT  Opcode = 39
	MOVD Opcode = 40
	JMP  Opcode = 4
	IN   Opcode = 23
	OUT  Opcode = 5
	HALT Opcode = 81
	NOP  Opcode = 68
)

func (o Opcode) String() string {
	switch o {
	case OPR:
		return "Opr"
	case ROT:
		return "Rot"
	case MOVD:
		return "MovD"
	case JMP:
		return "Jmp"
	case IN:
		return "In"
	case OUT:
		return "Out"
	case HALT:
		return "Hlt"
	case NOP:
		return "Nop"
	default:
		return "?"
	}
}

// Valid reports whether o is one of the eight opcode values.
func (o Opcode) Valid() bool {
	switch o {
	case OPR, ROT, MOVD, JMP, IN, OUT, HALT, NOP:
		return true
	default:
		return false
	}
}

// xlat1 is the fixed permutation of printable ASCII [33,127) used to
// translate between a cell's printable character and its normalized opcode
// value.
const xlat1 = "+b(29e*j1VMEKLyC})8&m#~W>qxdRp0wkrUo[D7,XT" +
	"cA\"lI.v%{gJh4G\\-=O@5`_3i<?Z';FNQuY]szf$!BS/|t:Pn6^Ha"

// xlat2 is the fixed permutation applied on every visit to a Malbolge
// Unshackled memory cell: a cell holding character c evaluates, the next
// time it is reached, to xlat2[c-33].
const xlat2 = "5z]&gqtyfr$(we4{WP)H-Zn,[%\\3dL+Q;>U!pJS72FhOA1CB6v^=I_0/8|jsb9m<" +
	".TVac`uY*MK'X~xDl}REokN:#?G\"i@"

// Xlat2 returns the character that printable ASCII character c maps to
// under one application of the xlat2 permutation. c must be in [33,127).
func Xlat2(c byte) byte {
	return xlat2[int(c)-33]
}

// Normalize maps a value c in [0,94) to the xlat1 character
// xlat1[(61+c) mod 94], the printable character that denormalizes back to
// c; the character is returned as an Opcode-typed byte.
func Normalize(c byte) Opcode {
	return Opcode(xlat1[(61+int(c))%94])
}

// Denormalize maps a printable ASCII character to the value it denormalizes
// to, (index of c in xlat1 + 33) mod 94: the inverse of Normalize. It
// returns an error only if c is outside the printable range [33,127); the
// result can be any value in [0,94) and is not checked against the eight
// valid opcodes (see Valid).
func Denormalize(c byte) (Opcode, error) {
	if c < 33 || c >= 127 {
		return 0, errors.Errorf("malbolge: character %q out of printable range", c)
	}
	for j := 0; j < 94; j++ {
		if xlat1[j] == c {
			return Opcode((j + 33) % 94), nil
		}
	}
	return 0, errors.Errorf("malbolge: character %q not found in xlat1", c)
}
