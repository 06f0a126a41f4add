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

	"github.com/pkg/errors"
)

// call emits one call site for routine name: a reference to a fresh flag
// cell (raised on return), a reference to the routine's entry label, and a
// freshly defined return label the routine's footer will dispatch back to.
// The routine's body-emitting function is invoked at most once, the first
// time it is called.
func (l *lowerer) call(name string, emitBody func() error) error {
	if !l.emittedBody[name] {
		l.emittedBody[name] = true
		if emitBody != nil {
			l.pendingBodies = append(l.pendingBodies, pendingRoutine{name: name, emit: emitBody})
		}
	}
	l.callCounter[name]++
	n := l.callCounter[name]
	if err := l.b.EmitLabelReference(flagLabel(name, n), 1); err != nil {
		return errors.Wrapf(err, "lower: call site %s#%d", name, n)
	}
	if err := l.b.EmitLabelReference(name, 0); err != nil {
		return errors.Wrapf(err, "lower: call site %s#%d", name, n)
	}
	if _, err := l.b.EmitLabel(returnLabel(name, n)); err != nil {
		return errors.Wrapf(err, "lower: call site %s#%d", name, n)
	}
	return nil
}

func flagLabel(name string, n int) string   { return fmt.Sprintf("FLAG_%s_%d", name, n) }
func returnLabel(name string, n int) string { return fmt.Sprintf("%s_ret%d", name, n) }

// emitReturnFooter closes routine name's body with the dispatch chain that
// routes control back to every call site recorded for it: for each flag,
// in turn, reference the flag, the matching return label, then the flag
// again with offset +1 so the next untested flag is reached if this one
// was not the one raised.
func (l *lowerer) emitReturnFooter(name string) error {
	n := l.callCounter[name]
	for i := 1; i <= n; i++ {
		if err := l.b.EmitLabelReference(flagLabel(name, i), 0); err != nil {
			return err
		}
		if err := l.b.EmitLabelReference(returnLabel(name, i), 0); err != nil {
			return err
		}
		if err := l.b.EmitLabelReference(flagLabel(name, i), 1); err != nil {
			return err
		}
	}
	return nil
}

// emitFlagCells defines every flag cell allocated across every routine, as
// unused data cells: the layout pass only needs them to exist as
// addressable label targets, since their value is never read, only their
// address compared against on return.
func (l *lowerer) emitFlagCells() error {
	for _, name := range l.routineOrder {
		n := l.callCounter[name]
		for i := 1; i <= n; i++ {
			if _, err := l.b.EmitLabel(flagLabel(name, i)); err != nil {
				return err
			}
			if err := l.b.EmitUnusedCell(); err != nil {
				return err
			}
		}
	}
	return nil
}

// rotationWidth bounds the trit-at-a-time loop every arithmetic primitive
// runs: operands never exceed this many trits, after which only
// rotation-padding iterations remain.
const rotationWidth = 20

// uint24Modulus is 3^16, the modulus add_uint24/sub_uint24 reduce against.
const uint24Modulus = 43046721
