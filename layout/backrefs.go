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
	"github.com/pkg/errors"

	"github.com/esoteric-programmer/hellc/hell"
	"github.com/esoteric-programmer/hellc/symtab"
)

// buildBackReferences walks every data atom carrying a reference and
// prepends it to its target label's back-reference list, so the padding
// stage can find, for any label, every atom that points at it and by how
// much.
func buildBackReferences(program *hell.Program) error {
	for b := program.Blocks; b != nil; b = b.Next {
		for d := b.Data; d != nil; d = d.Next {
			if d.Kind != hell.Reference {
				continue
			}
			label := program.Labels.Find(d.Ref.Label)
			if label == nil {
				return errors.Errorf("layout: reference to undefined label %q", d.Ref.Label)
			}
			symtab.AddBackReference(label, d)
		}
	}
	return nil
}
