// This file is part of Brainfuck-Tools - https://github.com/apaz-cli/Brainfuck-Tools
//
// Copyright 2026 The Brainfuck-Tools Authors
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

package prog

import (
	"fmt"
	"io"
	"strconv"

	"github.com/apaz-cli/Brainfuck-Tools/internal/errw"
)

// Disassemble writes a disassembly of the instruction at position pc to the
// specified io.Writer and returns the position of the next instruction and
// any write error. Loop instructions are followed by the index of the
// instruction control is transferred to when the jump is taken.
func Disassemble(p *Program, pc int, w io.Writer) (next int, err error) {
	ew := errw.New(w)
	if pc < 0 || pc >= len(p.Code) {
		ew.WriteString("???")
		return pc + 1, ew.Err
	}
	op := p.Code[pc]
	ew.WriteString(op.String())
	switch op {
	case OpLoop, OpEnd:
		ew.WriteString(" ")
		if m, ok := p.Jumps.Match(pc); ok {
			ew.WriteString(strconv.Itoa(m + 1))
		} else {
			ew.WriteString("???")
		}
	}
	return pc + 1, ew.Err
}

// DisassembleAll writes a disassembly of the whole program to the specified
// io.Writer, one instruction per line, indented by loop depth. It will return
// any write error.
func DisassembleAll(p *Program, w io.Writer) error {
	ew := errw.New(w)
	depth := p.Depth()
	for pc := 0; pc < len(p.Code); {
		fmt.Fprintf(ew, "% 8d\t%s\t", pc, p.Position(pc))
		ew.Tabs(depth[pc])
		pc, _ = Disassemble(p, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}

// String returns the program's instruction stream in source form, without
// comments.
func (p *Program) String() string {
	b := make([]byte, len(p.Code))
	for i, op := range p.Code {
		b[i] = op.Symbol()
	}
	return string(b)
}
