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

package symtab

import "github.com/pkg/errors"

// keyLimit bounds the name comparison, matching the target toolchain's
// strncmp(name, other, 101).
const keyLimit = 101

// BackRef is one link of a label's back-reference list: the data atom that
// references the label, and the next (older) reference. New references are
// prepended, so the list is in most-recently-added-first order.
//
// Target holds the referencing data atom. It is declared as any so that
// symtab has no dependency on the HeLL object model that owns the concrete
// atom type; the layout package type-asserts it back to *hell.DataAtom.
type BackRef struct {
	Target any
	Next   *BackRef
}

// Label is one entry in the table: a unique name, the code or data atom it
// is attached to (at most one of the two, set once the emitter appends the
// next atom), and its back-reference list.
//
// CodeTarget and DataTarget are any for the same reason as BackRef.Target:
// the concrete atom types live in the hell package, which imports symtab,
// not the other way around.
type Label struct {
	Name       string
	CodeTarget any
	DataTarget any
	BackRefs   *BackRef

	left, right *Label
}

// Tree is an ordered binary tree of labels, keyed by name.
type Tree struct {
	root *Label
}

// compareKeys implements the bounded comparison the tree is keyed by:
// byte-wise comparison of the first keyLimit bytes of a and b, treating
// bytes past the end of the shorter string as zero (as a NUL terminator
// would compare in C's strncmp).
func compareKeys(a, b string) int {
	n := len(a)
	if m := len(b); m > n {
		n = m
	}
	if n > keyLimit {
		n = keyLimit
	}
	for i := 0; i < n; i++ {
		var ca, cb byte
		if i < len(a) {
			ca = a[i]
		}
		if i < len(b) {
			cb = b[i]
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Define inserts a new, empty label named name and returns it. Greater keys
// (by compareKeys) descend left, smaller keys descend right — the fixed
// convention the lookup in Find must agree with. Defining a name that
// already exists is a fatal error.
func (t *Tree) Define(name string) (*Label, error) {
	label := &Label{Name: name}
	if t.root == nil {
		t.root = label
		return label, nil
	}
	it := t.root
	for {
		cmp := compareKeys(name, it.Name)
		switch {
		case cmp > 0:
			if it.left == nil {
				it.left = label
				return label, nil
			}
			it = it.left
		case cmp < 0:
			if it.right == nil {
				it.right = label
				return label, nil
			}
			it = it.right
		default:
			return nil, errors.Errorf("symtab: duplicate label %q", name)
		}
	}
}

// Find looks up name, returning nil if no such label is defined.
func (t *Tree) Find(name string) *Label {
	it := t.root
	for it != nil {
		cmp := compareKeys(name, it.Name)
		switch {
		case cmp > 0:
			it = it.left
		case cmp < 0:
			it = it.right
		default:
			return it
		}
	}
	return nil
}

// AddBackReference prepends target to def's back-reference list.
func AddBackReference(def *Label, target any) {
	def.BackRefs = &BackRef{Target: target, Next: def.BackRefs}
}
