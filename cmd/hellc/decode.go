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

package main

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/esoteric-programmer/hellc/ir"
)

// wireModule is the JSON interchange format a front end (out of scope for
// this tool) is expected to emit: flat arrays rather than ir.Module's
// internal linked lists, since those don't round-trip through JSON in a
// readable way.
type wireModule struct {
	Data []int      `json:"data"`
	Text []wireInst `json:"text"`
}

type wireValue struct {
	Kind string `json:"kind"`
	Reg  string `json:"reg,omitempty"`
	Imm  uint   `json:"imm,omitempty"`
}

type wireInst struct {
	Op  string    `json:"op"`
	Dst wireValue `json:"dst"`
	Src wireValue `json:"src"`
	Jmp wireValue `json:"jmp"`
	PC  uint      `json:"pc"`
}

var opByName = map[string]ir.Op{
	"mov": ir.MOV, "add": ir.ADD, "sub": ir.SUB, "load": ir.LOAD, "store": ir.STORE,
	"putc": ir.PUTC, "getc": ir.GETC, "exit": ir.EXIT, "dump": ir.DUMP,
	"eq": ir.EQ, "ne": ir.NE, "lt": ir.LT, "gt": ir.GT, "le": ir.LE, "ge": ir.GE,
	"jeq": ir.JEQ, "jne": ir.JNE, "jlt": ir.JLT, "jgt": ir.JGT, "jle": ir.JLE, "jge": ir.JGE,
	"jmp": ir.JMP,
}

var regByName = map[string]ir.Reg{
	"a": ir.A, "b": ir.B, "c": ir.C, "d": ir.D, "bp": ir.BP, "sp": ir.SP,
}

// decodeModule reads a wireModule from r and builds the equivalent
// ir.Module, with its Data and Text chains in input order.
func decodeModule(r io.Reader) (*ir.Module, error) {
	var wire wireModule
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, errors.Wrap(err, "hellc: decode module")
	}

	module := &ir.Module{}

	var dataTail *ir.Data
	for _, v := range wire.Data {
		cell := &ir.Data{V: v}
		if dataTail == nil {
			module.Data = cell
		} else {
			dataTail.Next = cell
		}
		dataTail = cell
	}

	var textTail *ir.Inst
	for i, wi := range wire.Text {
		inst, err := decodeInst(wi)
		if err != nil {
			return nil, errors.Wrapf(err, "hellc: instruction %d", i)
		}
		if textTail == nil {
			module.Text = inst
		} else {
			textTail.Next = inst
		}
		textTail = inst
	}

	return module, nil
}

func decodeInst(wi wireInst) (*ir.Inst, error) {
	op, ok := opByName[strings.ToLower(wi.Op)]
	if !ok {
		return nil, errors.Errorf("unknown opcode %q", wi.Op)
	}
	dst, err := decodeValue(wi.Dst)
	if err != nil {
		return nil, errors.Wrap(err, "dst")
	}
	src, err := decodeValue(wi.Src)
	if err != nil {
		return nil, errors.Wrap(err, "src")
	}
	jmp, err := decodeValue(wi.Jmp)
	if err != nil {
		return nil, errors.Wrap(err, "jmp")
	}
	return &ir.Inst{Op: op, Dst: dst, Src: src, Jmp: jmp, PC: wi.PC}, nil
}

func decodeValue(wv wireValue) (ir.Value, error) {
	switch strings.ToLower(wv.Kind) {
	case "", "imm":
		return ir.ImmValue(wv.Imm), nil
	case "reg":
		reg, ok := regByName[strings.ToLower(wv.Reg)]
		if !ok {
			return ir.Value{}, errors.Errorf("unknown register %q", wv.Reg)
		}
		return ir.RegValue(reg), nil
	default:
		return ir.Value{}, errors.Errorf("unknown value kind %q", wv.Kind)
	}
}

var nameByOp = reverseOpNames()

func reverseOpNames() map[ir.Op]string {
	m := make(map[ir.Op]string, len(opByName))
	for name, op := range opByName {
		m[op] = name
	}
	return m
}

var nameByReg = reverseRegNames()

func reverseRegNames() map[ir.Reg]string {
	m := make(map[ir.Reg]string, len(regByName))
	for name, reg := range regByName {
		m[reg] = name
	}
	return m
}

// encodeModuleJSON writes module in the same wireModule shape decodeModule
// reads, the inverse conversion used by the convert subcommand.
func encodeModuleJSON(w io.Writer, module *ir.Module) error {
	var wire wireModule
	for d := module.Data; d != nil; d = d.Next {
		wire.Data = append(wire.Data, d.V)
	}
	for i := module.Text; i != nil; i = i.Next {
		wi, err := encodeInst(i)
		if err != nil {
			return err
		}
		wire.Text = append(wire.Text, wi)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(wire), "hellc: encode module")
}

func encodeInst(i *ir.Inst) (wireInst, error) {
	name, ok := nameByOp[i.Op]
	if !ok {
		return wireInst{}, errors.Errorf("unknown opcode %d", i.Op)
	}
	dst, err := encodeValue(i.Dst)
	if err != nil {
		return wireInst{}, errors.Wrap(err, "dst")
	}
	src, err := encodeValue(i.Src)
	if err != nil {
		return wireInst{}, errors.Wrap(err, "src")
	}
	jmp, err := encodeValue(i.Jmp)
	if err != nil {
		return wireInst{}, errors.Wrap(err, "jmp")
	}
	return wireInst{Op: name, Dst: dst, Src: src, Jmp: jmp, PC: i.PC}, nil
}

func encodeValue(v ir.Value) (wireValue, error) {
	switch v.Kind {
	case ir.IMM:
		return wireValue{Kind: "imm", Imm: v.Imm}, nil
	case ir.REG:
		name, ok := nameByReg[v.Reg]
		if !ok {
			return wireValue{}, errors.Errorf("unknown register %d", v.Reg)
		}
		return wireValue{Kind: "reg", Reg: name}, nil
	default:
		return wireValue{}, errors.Errorf("unknown value kind %d", v.Kind)
	}
}
