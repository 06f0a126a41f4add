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
	"github.com/esoteric-programmer/hellc/hell"
	"github.com/esoteric-programmer/hellc/ternary"
)

// sortBlocks stably reorders program's blocks ascending by fixed offset,
// with every unpinned (variable-offset) block sinking to the end in its
// original relative order. Implemented as an insertion sort, per spec's
// prescribed algorithm.
func sortBlocks(program *hell.Program) {
	var blocks []*hell.Block
	for b := program.Blocks; b != nil; b = b.Next {
		blocks = append(blocks, b)
	}

	for i := 1; i < len(blocks); i++ {
		j := i
		for j > 0 && blockLess(blocks[j], blocks[j-1]) {
			blocks[j], blocks[j-1] = blocks[j-1], blocks[j]
			j--
		}
	}

	relinkBlocks(program, blocks)
}

// blockLess reports whether a must sort before b: both must be pinned, with
// a's offset strictly less. An unpinned block never sorts before anything.
func blockLess(a, b *hell.Block) bool {
	if a.Offset == nil {
		return false
	}
	if b.Offset == nil {
		return true
	}
	return ternary.Compare(*a.Offset, *b.Offset) == ternary.LT
}

func relinkBlocks(program *hell.Program, blocks []*hell.Block) {
	if len(blocks) == 0 {
		program.Blocks = nil
		return
	}
	program.Blocks = blocks[0]
	for i := 0; i < len(blocks)-1; i++ {
		blocks[i].Next = blocks[i+1]
	}
	blocks[len(blocks)-1].Next = nil
}
