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

package lower

import (
	"fmt"

	"github.com/esoteric-programmer/hellc/malbolge"
)

// getcBody reads one character through an IN cell into ALU_DST, reducing it
// modulo 256 the way the target's console input is defined (IN delivers EOF
// as a fixed sentinel rather than a negative value, which this backend
// passes through unchanged into ALU_DST for the caller to interpret).
func getcBody(l *lowerer) error {
	if _, err := l.b.EmitLabel("getc_in_cell"); err != nil {
		return err
	}
	if err := l.b.EmitXlatCycle(malbolge.IN); err != nil {
		return err
	}
	if err := l.writeVar(varALUDst, varTMP); err != nil {
		return err
	}
	return l.loadImmediate(256, varALUSrc)
}

// putcBody writes ALU_DST's low byte through an OUT cell, reducing modulo
// 256 first so values produced by arithmetic overflow wrap the same way a
// byte-oriented console expects.
func putcBody(l *lowerer) error {
	if _, err := l.b.EmitLabel("putc_reduce"); err != nil {
		return err
	}
	if err := l.loadImmediate(256, varALUSrc); err != nil {
		return err
	}
	if err := l.call("modulo", l.routineBody("modulo")); err != nil {
		return err
	}
	if _, err := l.b.EmitLabel("putc_out_cell"); err != nil {
		return err
	}
	return l.b.EmitXlatCycle(malbolge.OUT)
}

// emitHalt emits the target's HALT opcode directly, under a fresh
// halt_cell_<n> label per call: unlike every other primitive, halting never
// returns, so it needs no flag cell or footer entry.
func (l *lowerer) emitHalt() error {
	l.haltSiteCounter++
	if _, err := l.b.EmitLabel(fmt.Sprintf("halt_cell_%d", l.haltSiteCounter)); err != nil {
		return err
	}
	return l.b.EmitXlatCycle(malbolge.HALT)
}
