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

package malbolge_test

import (
	"fmt"

	"github.com/esoteric-programmer/hellc/malbolge"
)

// ExampleDenormalize shows the character 'i' denormalizing to Jmp.
func ExampleDenormalize() {
	op, err := malbolge.Denormalize('i')
	if err != nil {
		panic(err)
	}
	fmt.Println(op)
	// Output:
	// Jmp
}

// ExampleXlat2 shows one application of the xlat2 permutation.
func ExampleXlat2() {
	fmt.Println(string(malbolge.Xlat2('!')))
	// Output:
	// 5
}
