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

// Package symtab implements the label table used to tie HeLL emission
// together: every label a program defines, the atom it eventually attaches
// to, and the list of data atoms that reference it. Labels live in an
// ordered binary tree keyed by a 101-byte-bounded name comparison, matching
// the comparison the original target toolchain used so that programs
// exercising pathological label names sort identically.
package symtab
