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

package lower

import "github.com/esoteric-programmer/hellc/ir"

// variable identifies one HeLL-level storage cell: the six machine
// registers plus the ALU scratch pair, three temporaries, the borrow flag
// and the constant generator.
type variable int

// Variables, in the order their declarations and trampolines are emitted
// at finalization.
const (
	varA variable = iota
	varB
	varC
	varD
	varBP
	varSP
	varALUSrc
	varALUDst
	varTMP
	varTMP2
	varTMP3
	varCarry
	varCarryIsC1
	varVAL1222
	varMemPtrTarget
	numVariables
)

var variableNames = [...]string{
	varA: "a", varB: "b", varC: "c", varD: "d", varBP: "bp", varSP: "sp",
	varALUSrc: "alu_src", varALUDst: "alu_dst",
	varTMP: "tmp", varTMP2: "tmp2", varTMP3: "tmp3",
	varCarry: "carry", varCarryIsC1: "carry_is_c1", varVAL1222: "val_1222",
	varMemPtrTarget: "memptr_target",
}

func (v variable) String() string { return variableNames[v] }

// regVariable maps an IR register to its backing variable. ir.Reg's
// constants are declared in the same order as the first six variables.
func regVariable(r ir.Reg) variable { return variable(r) }
