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

// Package output serializes a HeLL program to its two line-oriented text
// forms: WriteHeLL, the full .CODE/.DATA pretty-printer usable on a program
// at any stage of the pipeline, and WriteMalbolgeUnshackled, the resolved
// .DATA dump a program must have already been through layout.Resolve to
// produce.
package output
