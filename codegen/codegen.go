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

package codegen

import (
	"fmt"
	"io"
	"strconv"

	"github.com/apaz-cli/Brainfuck-Tools/internal/errw"
	"github.com/apaz-cli/Brainfuck-Tools/prog"
	"github.com/apaz-cli/Brainfuck-Tools/vm"
	"github.com/pkg/errors"
)

type emitter struct {
	tapeSize int
	maxTape  int
	eof      vm.EOFMode
	comments bool
}

// Option interface
type Option func(*emitter) error

// TapeSize sets the initial tape size in cells of the generated program. The
// default is vm.DefaultTapeSize.
func TapeSize(size int) Option {
	return func(e *emitter) error {
		if size < 1 {
			return errors.Errorf("invalid tape size %d", size)
		}
		e.tapeSize = size
		return nil
	}
}

// MaxTapeSize sets the size in cells beyond which the tape of the generated
// program will not grow. A size of 0 removes the limit. The default is
// vm.DefaultMaxTapeSize.
func MaxTapeSize(size int) Option {
	return func(e *emitter) error {
		if size < 0 {
			return errors.Errorf("invalid maximum tape size %d", size)
		}
		e.maxTape = size
		return nil
	}
}

// OnEOF sets the value stored in the current cell on input once stdin is
// exhausted. It has the same meaning as the vm.OnEOF option.
func OnEOF(mode vm.EOFMode) Option {
	return func(e *emitter) error {
		if mode < vm.EOFUnchanged || mode > vm.EOFMinusOne {
			return errors.Errorf("invalid EOF mode %d", int(mode))
		}
		e.eof = mode
		return nil
	}
}

// Comments enables or disables source position comments on loops. The
// default is false.
func Comments(enable bool) Option {
	return func(e *emitter) error { e.comments = enable; return nil }
}

var statements = [...]string{
	prog.OpInc:   "tape[ptr]++;",
	prog.OpDec:   "tape[ptr]--;",
	prog.OpRight: "right();",
	prog.OpLeft:  "left();",
	prog.OpLoop:  "while (tape[ptr]) {",
	prog.OpEnd:   "}",
	prog.OpOut:   "putchar(tape[ptr]);",
	prog.OpIn:    "input();",
}

const prologue = `#include <stdint.h>
#include <stdio.h>
#include <stdlib.h>
#include <string.h>

static unsigned char *tape;
static size_t size, ptr;

static void oom(void)
{
	fflush(stdout);
	fputs("out of memory\n", stderr);
	exit(2);
}

static void right(void)
{
	size_t n;

	if (++ptr < size)
		return;
	n = size * 6 / 5 + 512;
	if (n > MAX_TAPE_SIZE)
		n = MAX_TAPE_SIZE;
	if (n <= ptr)
		oom();
	tape = realloc(tape, n);
	if (!tape)
		oom();
	memset(tape + size, 0, n - size);
	size = n;
}

static void left(void)
{
	if (ptr == 0) {
		fflush(stdout);
		fputs("tape underflow\n", stderr);
		exit(1);
	}
	ptr--;
}

static void input(void)
{
	int c = getchar();

	if (c != EOF)
		tape[ptr] = (unsigned char)c;
`

const mainStart = `}

int main(void)
{
	size = TAPE_SIZE;
	tape = calloc(size, 1);
	if (!tape)
		oom();

`

const mainEnd = `
	return 0;
}
`

// EmitC writes a C translation of the program p to w. The generated program
// reads from stdin, writes to stdout and behaves like a vm.Instance set up
// with the same tape size and EOF mode. It will return any write error.
//
// Each instruction translates to one C statement, and each loop to a while
// statement, indented by loop depth.
func EmitC(w io.Writer, p *prog.Program, opts ...Option) error {
	e := &emitter{
		tapeSize: vm.DefaultTapeSize,
		maxTape:  vm.DefaultMaxTapeSize,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return err
		}
	}
	if e.maxTape > 0 && e.tapeSize > e.maxTape {
		return errors.Errorf("tape size %d exceeds maximum tape size %d", e.tapeSize, e.maxTape)
	}

	ew := errw.New(w)
	fmt.Fprintf(ew, "/* %s */\n", commentSafe(p.Name))
	fmt.Fprintf(ew, "#define TAPE_SIZE %d\n", e.tapeSize)
	if e.maxTape > 0 {
		fmt.Fprintf(ew, "#define MAX_TAPE_SIZE %d\n", e.maxTape)
	} else {
		ew.WriteString("#define MAX_TAPE_SIZE SIZE_MAX\n")
	}
	ew.WriteString("\n")
	ew.WriteString(prologue)
	switch e.eof {
	case vm.EOFZero:
		ew.WriteString("\telse\n\t\ttape[ptr] = 0;\n")
	case vm.EOFMinusOne:
		ew.WriteString("\telse\n\t\ttape[ptr] = 255;\n")
	}
	ew.WriteString(mainStart)

	depth := 1
	for pc, op := range p.Code {
		if op == prog.OpEnd {
			if _, ok := p.Jumps.Match(pc); !ok || depth == 1 {
				return errors.Wrapf(prog.ErrUnbalanced, "no loop to close at %d", pc)
			}
			depth--
		}
		ew.Tabs(depth)
		ew.WriteString(statements[op])
		if op == prog.OpLoop {
			if _, ok := p.Jumps.Match(pc); !ok {
				return errors.Wrapf(prog.ErrUnbalanced, "loop at %d not closed", pc)
			}
			if e.comments {
				if pos := p.Position(pc); pos.IsValid() {
					ew.WriteString(" /* " + commentSafe(pos.String()) + " */")
				}
			}
			depth++
		}
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	if depth != 1 {
		return errors.Wrap(prog.ErrUnbalanced, "unclosed loops")
	}
	ew.WriteString(mainEnd)
	return ew.Err
}

// commentSafe makes s safe for use in a C comment.
func commentSafe(s string) string {
	q := strconv.QuoteToASCII(s)
	q = q[1 : len(q)-1]
	b := []byte(q)
	for i := 1; i < len(b); i++ {
		if b[i-1] == '*' && b[i] == '/' {
			b[i] = '.'
		}
	}
	return string(b)
}
