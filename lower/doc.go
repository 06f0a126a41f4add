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

// Package lower translates an ir.Module into a hell.Program. It realizes
// the IR's register machine on top of HeLL "variables" — named memory
// cells reached through read/write trampolines — and a small catalogue of
// primitive routines (arithmetic, comparisons, memory access, I/O) shared
// across every call site through a flag-and-footer call/return convention:
// nothing in this target has a real call stack, so every routine dispatches
// its return by testing which numbered flag cell its caller raised before
// jumping in.
//
// Routine bodies are emitted at most once each, guarded by a use counter;
// callers only ever see the routine's entry label and get back control at
// a freshly allocated return label.
package lower
