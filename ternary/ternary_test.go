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

package ternary_test

import (
	"testing"

	"github.com/esoteric-programmer/hellc/ternary"
)

func TestNew_errors(t *testing.T) {
	data := []struct {
		prefix byte
		suffix string
	}{
		{2, "012"},
		{0, ""},
		{0, "0123"},
		{1, "01a"},
	}
	for _, d := range data {
		if _, err := ternary.New(d.prefix, d.suffix); err == nil {
			t.Errorf("New(%d, %q): expected error, got nil", d.prefix, d.suffix)
		}
	}
}

func TestString(t *testing.T) {
	data := []struct {
		prefix byte
		suffix string
		want   string
	}{
		{0, "12", "0t12"},
		{1, "022222", "1t022222"},
	}
	for _, d := range data {
		tv, err := ternary.New(d.prefix, d.suffix)
		if err != nil {
			t.Fatalf("New(%d, %q): %v", d.prefix, d.suffix, err)
		}
		if got := tv.String(); got != d.want {
			t.Errorf("String() = %q, want %q", got, d.want)
		}
	}
}

func TestCanonical(t *testing.T) {
	data := []struct {
		prefix byte
		suffix string
		want   string
	}{
		{0, "0012", "0t12"},
		{1, "1110", "1t0"},
		{0, "000", "0t0"},
	}
	for _, d := range data {
		tv, err := ternary.New(d.prefix, d.suffix)
		if err != nil {
			t.Fatalf("New(%d, %q): %v", d.prefix, d.suffix, err)
		}
		if got := tv.Canonical().String(); got != d.want {
			t.Errorf("Canonical() = %q, want %q", got, d.want)
		}
	}
}

func TestCompare(t *testing.T) {
	data := []struct {
		a, b string
		want ternary.Ordering
	}{
		{"0t12", "1t00", ternary.LT},
		{"1t00", "0t12", ternary.GT},
		{"0t12", "0t012", ternary.EQ},
		{"0t2", "0t12", ternary.LT},
		{"0t21", "0t12", ternary.GT},
	}
	for _, d := range data {
		a := mustParse(t, d.a)
		b := mustParse(t, d.b)
		if got := ternary.Compare(a, b); got != d.want {
			t.Errorf("Compare(%s, %s) = %v, want %v", d.a, d.b, got, d.want)
		}
	}
}

func TestDecrement(t *testing.T) {
	data := []struct {
		in, want string
	}{
		{"0t12", "0t11"},
		{"0t10", "0t02"},
		{"0t00", "0t22"},
		{"1t00", "1t22"},
	}
	for _, d := range data {
		tv := mustParse(t, d.in)
		tv.Decrement()
		if got := tv.String(); got != d.want {
			t.Errorf("Decrement(%s) = %s, want %s", d.in, got, d.want)
		}
	}
}

func TestAddOffset(t *testing.T) {
	data := []struct {
		in   string
		k    int32
		want string
	}{
		{"0t00", 5, "0t12"},
		{"0t12", -5, "0t0"},
		{"1t21", 1, "1t22"},
		{"0t10", -1, "0t2"},
	}
	for _, d := range data {
		base := mustParse(t, d.in)
		got, err := ternary.AddOffset(base, d.k)
		if err != nil {
			t.Fatalf("AddOffset(%s, %d): %v", d.in, d.k, err)
		}
		if got.String() != d.want {
			t.Errorf("AddOffset(%s, %d) = %s, want %s", d.in, d.k, got.String(), d.want)
		}
	}
}

func TestAddOffset_overflow(t *testing.T) {
	base := mustParse(t, "0t2")
	if _, err := ternary.AddOffset(base, 1); err == nil {
		t.Error("AddOffset: expected overflow error, got nil")
	}
}

func TestMod94(t *testing.T) {
	data := []struct {
		in   string
		want int
	}{
		{"0t0", 0},
		{"0t1", 1},
		{"0t12", 5},
		{"1t1", 8},
	}
	for _, d := range data {
		tv := mustParse(t, d.in)
		if got := ternary.Mod94(tv); got != d.want {
			t.Errorf("Mod94(%s) = %d, want %d", d.in, got, d.want)
		}
	}
}

func TestFromUint(t *testing.T) {
	tv, err := ternary.FromUint(5, 2)
	if err != nil {
		t.Fatalf("FromUint: %v", err)
	}
	if got := tv.String(); got != "0t12" {
		t.Errorf("FromUint(5, 2) = %s, want 0t12", got)
	}
	if _, err := ternary.FromUint(9, 2); err == nil {
		t.Error("FromUint(9, 2): expected error, got nil")
	}
}

func mustParse(t *testing.T, s string) ternary.Ternary {
	t.Helper()
	if len(s) < 3 || s[1] != 't' {
		t.Fatalf("malformed test literal %q", s)
	}
	tv, err := ternary.New(s[0]-'0', s[2:])
	if err != nil {
		t.Fatalf("New(%q): %v", s, err)
	}
	return tv
}
