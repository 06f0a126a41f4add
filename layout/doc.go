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

// Package layout turns an unresolved HeLL program — blocks that may carry a
// fixed offset or none, code atoms expressed as opcode cycles, data atoms
// that may still be symbolic label references — into one where every block
// has a concrete ternary address and every reference has been replaced by
// the immediate it resolves to.
//
// The pass runs in five stages, in order: back-reference collection,
// leading-RNop padding for negative-offset references, a stable sort of
// blocks by offset (unpinned blocks last), per-block address assignment
// (searching for a placement character for code blocks), and finally
// code-to-data atom replacement followed by reference resolution.
package layout
