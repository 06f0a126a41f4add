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

// Package hell implements the HeLL object model — blocks of code atoms
// (xlat cycles) or data atoms (immediates, label references, unused cells)
// — and the streaming Builder used to construct a Program one atom at a
// time. The Builder tracks the same current-block/current-tail/pending-
// label/pending-offset state the reference emitter does, so that a caller
// driving it one instruction at a time gets the same block boundaries.
package hell
