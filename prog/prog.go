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
	"go/token"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
)

// BracketMap maps the index of every loop instruction to the index of its
// matching partner. Entries for other instructions are -1.
type BracketMap []int

// Match returns the index of the instruction matching the loop instruction at
// index pc. ok is false if pc is out of range or not a loop instruction.
func (m BracketMap) Match(pc int) (match int, ok bool) {
	if pc < 0 || pc >= len(m) || m[pc] < 0 {
		return -1, false
	}
	return m[pc], true
}

// Program is a validated instruction stream along with its bracket map.
//
// A Program is never modified after Load returns it and can be shared by any
// number of concurrent runs.
type Program struct {
	Name    string
	Code    []Op
	Offsets []int      // source offset of each instruction
	Jumps   BracketMap // see Resolve
	file    *token.File
}

// Sanitize strips all non-instruction characters from src. offsets[i] is the
// offset in src of code[i].
func Sanitize(src []byte) (code []Op, offsets []int) {
	for i, c := range src {
		if op := opIndex[c]; op != 0 {
			code = append(code, Op(op-1))
			offsets = append(offsets, i)
		}
	}
	return code, offsets
}

// Validate checks that the loop instructions in code are balanced. The
// returned error, if not nil, is a *BracketError.
func Validate(code []Op) error {
	depth := 0
	first := -1
	for pc, op := range code {
		switch op {
		case OpLoop:
			if depth == 0 {
				first = pc
			}
			depth++
		case OpEnd:
			depth--
			if depth < 0 {
				return &BracketError{Kind: ExcessEnd, Index: pc}
			}
		}
	}
	if depth > 0 {
		return &BracketError{Kind: Unclosed, Index: first}
	}
	return nil
}

// Resolve computes the bracket map of code in one pass. The code should have
// been checked with Validate. If not, Resolve returns an error whose cause is
// ErrUnbalanced.
func Resolve(code []Op) (BracketMap, error) {
	m := make(BracketMap, len(code))
	var stack []int
	for pc, op := range code {
		m[pc] = -1
		switch op {
		case OpLoop:
			stack = append(stack, pc)
		case OpEnd:
			if len(stack) == 0 {
				return nil, errors.Wrapf(ErrUnbalanced, "resolve: no loop to close at %d", pc)
			}
			start := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			m[start], m[pc] = pc, start
		}
	}
	if len(stack) > 0 {
		return nil, errors.Wrapf(ErrUnbalanced, "resolve: loop at %d not closed", stack[0])
	}
	return m, nil
}

// Load reads the program source from r, strips comments, validates it and
// resolves its bracket map.
//
// The name parameter is used in error messages and source positions. If the
// io.Reader is a file, name should be the file name.
func Load(name string, r io.Reader) (*Program, error) {
	src, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: read failed", name)
	}
	return Parse(name, src)
}

// Parse is like Load, but with the program source given as a byte slice.
func Parse(name string, src []byte) (*Program, error) {
	fset := token.NewFileSet()
	p := &Program{
		Name: name,
		file: fset.AddFile(name, -1, len(src)),
	}
	p.file.SetLinesForContent(src)
	p.Code, p.Offsets = Sanitize(src)

	if err := Validate(p.Code); err != nil {
		be := err.(*BracketError)
		be.Pos = p.Position(be.Index)
		return nil, be
	}
	jumps, err := Resolve(p.Code)
	if err != nil {
		return nil, err
	}
	p.Jumps = jumps
	return p, nil
}

// Position returns the source position of the instruction at index pc.
func (p *Program) Position(pc int) token.Position {
	if p.file == nil || pc < 0 || pc >= len(p.Offsets) {
		return token.Position{}
	}
	return p.file.Position(p.file.Pos(p.Offsets[pc]))
}

// Len returns the number of instructions in the program.
func (p *Program) Len() int {
	return len(p.Code)
}

// Depth returns the loop nesting depth of each instruction. Loop and End
// instructions have the depth of the code surrounding the loop.
func (p *Program) Depth() []int {
	d := make([]int, len(p.Code))
	n := 0
	for pc, op := range p.Code {
		if op == OpEnd {
			n--
		}
		d[pc] = n
		if op == OpLoop {
			n++
		}
	}
	return d
}
