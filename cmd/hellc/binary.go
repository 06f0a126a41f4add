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
	"bufio"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/esoteric-programmer/hellc/ir"
)

// Binary module format: a flat stream of little-endian uint32 records,
// read and written with the same fixed-record-size, io.ReadFull-until-EOF
// technique a memory image load uses. The layout is:
//
//	dataCount uint32
//	dataCount * (value int32)
//	textCount uint32
//	textCount * (op, dstKind, dstReg, dstImm, srcKind, srcReg, srcImm,
//	             jmpKind, jmpReg, jmpImm, pc uint32)
//
// This exists alongside the JSON format as a smaller, faster interchange a
// front end can choose to emit instead; it carries no semantics the JSON
// decoder doesn't already have.
func encodeModuleBinary(w io.Writer, module *ir.Module) error {
	bw := bufio.NewWriter(w)

	var dataCount uint32
	for d := module.Data; d != nil; d = d.Next {
		dataCount++
	}
	if err := writeUint32(bw, dataCount); err != nil {
		return err
	}
	for d := module.Data; d != nil; d = d.Next {
		if err := writeUint32(bw, uint32(int32(d.V))); err != nil {
			return err
		}
	}

	var textCount uint32
	for i := module.Text; i != nil; i = i.Next {
		textCount++
	}
	if err := writeUint32(bw, textCount); err != nil {
		return err
	}
	for i := module.Text; i != nil; i = i.Next {
		if err := writeInst(bw, i); err != nil {
			return err
		}
	}

	return errors.Wrap(bw.Flush(), "hellc: encode binary module")
}

func decodeModuleBinary(r io.Reader) (*ir.Module, error) {
	br := bufio.NewReader(r)
	module := &ir.Module{}

	dataCount, err := readUint32(br)
	if err != nil {
		return nil, errors.Wrap(err, "hellc: binary data count")
	}
	var dataTail *ir.Data
	for k := uint32(0); k < dataCount; k++ {
		v, err := readUint32(br)
		if err != nil {
			return nil, errors.Wrapf(err, "hellc: binary data cell %d", k)
		}
		cell := &ir.Data{V: int(int32(v))}
		if dataTail == nil {
			module.Data = cell
		} else {
			dataTail.Next = cell
		}
		dataTail = cell
	}

	textCount, err := readUint32(br)
	if err != nil {
		return nil, errors.Wrap(err, "hellc: binary instruction count")
	}
	var textTail *ir.Inst
	for k := uint32(0); k < textCount; k++ {
		inst, err := readInst(br)
		if err != nil {
			return nil, errors.Wrapf(err, "hellc: binary instruction %d", k)
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

func writeInst(w io.Writer, i *ir.Inst) error {
	fields := []uint32{uint32(i.Op)}
	fields = append(fields, valueFields(i.Dst)...)
	fields = append(fields, valueFields(i.Src)...)
	fields = append(fields, valueFields(i.Jmp)...)
	fields = append(fields, uint32(i.PC))
	for _, f := range fields {
		if err := writeUint32(w, f); err != nil {
			return err
		}
	}
	return nil
}

func readInst(r io.Reader) (*ir.Inst, error) {
	op, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	dst, err := readValue(r)
	if err != nil {
		return nil, errors.Wrap(err, "dst")
	}
	src, err := readValue(r)
	if err != nil {
		return nil, errors.Wrap(err, "src")
	}
	jmp, err := readValue(r)
	if err != nil {
		return nil, errors.Wrap(err, "jmp")
	}
	pc, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	return &ir.Inst{Op: ir.Op(op), Dst: dst, Src: src, Jmp: jmp, PC: uint(pc)}, nil
}

func valueFields(v ir.Value) []uint32 {
	return []uint32{uint32(v.Kind), uint32(v.Reg), uint32(v.Imm)}
}

func readValue(r io.Reader) (ir.Value, error) {
	kind, err := readUint32(r)
	if err != nil {
		return ir.Value{}, err
	}
	reg, err := readUint32(r)
	if err != nil {
		return ir.Value{}, err
	}
	imm, err := readUint32(r)
	if err != nil {
		return ir.Value{}, err
	}
	return ir.Value{Kind: ir.ValueKind(kind), Reg: ir.Reg(reg), Imm: uint(imm)}, nil
}

func writeUint32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func readUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}
