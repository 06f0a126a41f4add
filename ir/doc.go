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

// Package ir defines the intermediate representation consumed by this
// backend: a small register machine with six registers, a flat memory image
// and a linear instruction stream.
//
// Package ir carries no parsing logic. Building a Module from source text is
// the job of a front-end that is out of scope for this backend; ir only
// fixes the contract between that front-end and the HeLL lowering pass.
package ir
