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

package ternary

import (
	"strings"

	"github.com/pkg/errors"
)

// Ordering is the result of Compare.
type Ordering int

// Comparison results.
const (
	LT Ordering = -1
	EQ Ordering = 0
	GT Ordering = 1
)

// Ternary is an immediate value: the background trit Prefix repeated
// infinitely to the left, followed by Digits (most significant first).
// Digits holds trits in {0,1,2}; Prefix is 0 or 1. The zero Ternary is
// invalid — use New or one of the constructors below.
type Ternary struct {
	Prefix byte
	Digits []byte
}

// New builds a Ternary from a background trit and a suffix string of '0',
// '1', '2' characters. suffix must be non-empty.
func New(prefix byte, suffix string) (Ternary, error) {
	if prefix != 0 && prefix != 1 {
		return Ternary{}, errors.Errorf("ternary: prefix trit %d out of range", prefix)
	}
	if suffix == "" {
		return Ternary{}, errors.New("ternary: empty suffix")
	}
	digits := make([]byte, len(suffix))
	for i := 0; i < len(suffix); i++ {
		c := suffix[i]
		if c < '0' || c > '2' {
			return Ternary{}, errors.Errorf("ternary: invalid trit %q in suffix %q", c, suffix)
		}
		digits[i] = c - '0'
	}
	return Ternary{Prefix: prefix, Digits: digits}, nil
}

// FromUint builds the canonical, zero-prefixed Ternary representing the
// non-negative value v in exactly width trits. v must fit in width trits.
func FromUint(v uint64, width int) (Ternary, error) {
	if width <= 0 {
		return Ternary{}, errors.New("ternary: width must be positive")
	}
	digits := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		digits[i] = byte(v % 3)
		v /= 3
	}
	if v != 0 {
		return Ternary{}, errors.Errorf("ternary: value does not fit in %d trits", width)
	}
	return Ternary{Prefix: 0, Digits: digits}, nil
}

// String renders t as "<prefix>t<suffix>", matching the notation used by
// the HeLL text format. A Ternary with no digits prints its prefix twice.
func (t Ternary) String() string {
	var b strings.Builder
	b.WriteByte('0' + t.Prefix)
	b.WriteByte('t')
	if len(t.Digits) == 0 {
		b.WriteByte('0' + t.Prefix)
		return b.String()
	}
	for _, d := range t.Digits {
		b.WriteByte('0' + d)
	}
	return b.String()
}

// Canonical strips leading digits equal to the background prefix, down to a
// minimum of one digit.
func (t Ternary) Canonical() Ternary {
	i := 0
	for i < len(t.Digits)-1 && t.Digits[i] == t.Prefix {
		i++
	}
	digits := make([]byte, len(t.Digits)-i)
	copy(digits, t.Digits[i:])
	return Ternary{Prefix: t.Prefix, Digits: digits}
}

// Compare orders a and b. A value with prefix 1 is larger than any value
// with prefix 0. Within a shared prefix, the canonical (stripped) suffixes
// are compared first by length — more leading digits that differ from the
// background means a larger magnitude away from it — and then
// trit-by-trit.
func Compare(a, b Ternary) Ordering {
	if a.Prefix != b.Prefix {
		if a.Prefix > b.Prefix {
			return GT
		}
		return LT
	}
	ca, cb := a.Canonical(), b.Canonical()
	if len(ca.Digits) != len(cb.Digits) {
		if len(ca.Digits) > len(cb.Digits) {
			return GT
		}
		return LT
	}
	for i := range ca.Digits {
		if ca.Digits[i] != cb.Digits[i] {
			if ca.Digits[i] > cb.Digits[i] {
				return GT
			}
			return LT
		}
	}
	return EQ
}

// Decrement subtracts 1 from t in place, borrowing through the suffix
// towards the most significant digit. A borrow that reaches past the most
// significant digit wraps that digit to 2 and stops there: callers that
// need this never decrement past the fixed width they allocated.
func (t *Ternary) Decrement() {
	for i := len(t.Digits) - 1; i >= 0; i-- {
		if t.Digits[i] == 0 {
			t.Digits[i] = 2
			continue
		}
		t.Digits[i]--
		return
	}
}

// AddOffset adds the signed offset k to base, preserving its prefix trit,
// and returns the canonicalized result. A carry or borrow that propagates
// past the most significant digit of base's suffix is reported as an
// overflow, since it would change the infinite background rather than the
// finite suffix.
func AddOffset(base Ternary, k int32) (Ternary, error) {
	result := make([]byte, len(base.Digits))
	carry := int64(k)
	for i := len(base.Digits) - 1; i >= 0; i-- {
		v := int64(base.Digits[i]) + carry
		carry = 0
		for v < 0 {
			v += 3
			carry--
		}
		for v > 2 {
			v -= 3
			carry++
		}
		result[i] = byte(v)
	}
	if carry != 0 {
		return Ternary{}, errors.Errorf("ternary: add_offset(%v, %d) overflows suffix width %d", base, k, len(base.Digits))
	}
	return Ternary{Prefix: base.Prefix, Digits: result}.Canonical(), nil
}

// Mod94 computes the value of t modulo 94 by Horner evaluation of the
// suffix in base 3, treating each digit as (digit - prefix), then adding
// 8*prefix to account for the infinite repetition of the background trit.
func Mod94(t Ternary) int {
	result := 0
	for _, d := range t.Digits {
		result = mod(result*3+(int(d)-int(t.Prefix)), 94)
	}
	result = mod(result+8*int(t.Prefix), 94)
	return result
}

func mod(v, m int) int {
	v %= m
	if v < 0 {
		v += m
	}
	return v
}
