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

import "strconv"

// Op is a single instruction of the tape machine.
type Op uint8

// Tape machine instructions.
const (
	OpInc   Op = iota // +
	OpDec             // -
	OpRight           // >
	OpLeft            // <
	OpLoop            // [
	OpEnd             // ]
	OpOut             // .
	OpIn              // ,
)

var opcodes = [...]struct {
	sym  byte
	name string
}{
	{'+', "inc"},
	{'-', "dec"},
	{'>', "right"},
	{'<', "left"},
	{'[', "loop"},
	{']', "end"},
	{'.', "out"},
	{',', "in"},
}

// opIndex maps a source byte to its opcode + 1. Zero means the byte is a
// comment.
var opIndex [256]uint8

func init() {
	for i, v := range opcodes {
		opIndex[v.sym] = uint8(i) + 1
	}
}

// Symbol returns the source character of the instruction.
func (op Op) Symbol() byte {
	if int(op) < len(opcodes) {
		return opcodes[op].sym
	}
	return '?'
}

func (op Op) String() string {
	if int(op) < len(opcodes) {
		return opcodes[op].name
	}
	return "op(" + strconv.Itoa(int(op)) + ")"
}

// IsOp reports whether c is an instruction symbol.
func IsOp(c byte) bool {
	return opIndex[c] != 0
}
