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

// Package malbolge holds the fixed constants of the Malbolge Unshackled
// target platform: its two character permutations (xlat1, used to
// normalize/denormalize opcodes, and xlat2, used to determine what a cell
// evaluates to on successive visits) and the eight opcode values a cell can
// denormalize to.
package malbolge
