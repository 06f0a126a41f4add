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

// Package ternary implements the immediate value type that every HeLL
// address and data cell is expressed in: a background trit repeated
// infinitely to the left plus a finite suffix of trits. Values are compared,
// decremented and offset in this representation directly, without ever
// widening to a machine integer, so that the infinite background is
// preserved exactly.
package ternary
