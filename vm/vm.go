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

package vm

import (
	"io"
	"log/slog"
	"math"
	"strconv"

	"github.com/apaz-cli/Brainfuck-Tools/internal/errw"
	"github.com/apaz-cli/Brainfuck-Tools/prog"
	"github.com/pkg/errors"
)

// Cell is the raw type stored in a tape cell.
type Cell uint8

const (
	// DefaultTapeSize is the initial tape size in cells.
	DefaultTapeSize = 30000
	// DefaultMaxTapeSize is the default limit for tape growth.
	DefaultMaxTapeSize = 1 << 26
)

// Instance represents the machine state of a single program run.
type Instance struct {
	PC       int  // Program Counter (aka. Instruction Pointer)
	Ptr      int  // Cell pointer
	Tape     Tape // Memory cells
	prog     *prog.Program
	tapeSize int
	maxTape  int
	eof      EOFMode
	insCount int64
	input    io.ByteReader
	output   io.ByteWriter
	log      *slog.Logger
}

// Option interface
type Option func(*Instance) error

// TapeSize sets the initial tape size in cells. The default is
// DefaultTapeSize.
func TapeSize(size int) Option {
	return func(i *Instance) error {
		if size < 1 {
			return errors.Errorf("invalid tape size %d", size)
		}
		i.tapeSize = size
		return nil
	}
}

// MaxTapeSize sets the size in cells beyond which the tape will not grow. A
// size of 0 removes the limit. The default is DefaultMaxTapeSize.
func MaxTapeSize(size int) Option {
	return func(i *Instance) error {
		switch {
		case size < 0:
			return errors.Errorf("invalid maximum tape size %d", size)
		case size == 0:
			i.maxTape = math.MaxInt
		default:
			i.maxTape = size
		}
		return nil
	}
}

// Input pushes the given Reader on top of the input stack. See PushInput.
func Input(r io.Reader) Option {
	return func(i *Instance) error { i.PushInput(r); return nil }
}

// Output configures the output Writer. If w implements Flush() error, it is
// flushed whenever Run returns.
func Output(w io.Writer) Option {
	return func(i *Instance) error {
		i.output = newByteWriter(w)
		return nil
	}
}

// OnEOF sets the value stored by the input instruction once the input is
// exhausted. The default is EOFUnchanged.
func OnEOF(mode EOFMode) Option {
	return func(i *Instance) error {
		if mode < EOFUnchanged || mode > EOFMinusOne {
			return errors.Errorf("invalid EOF mode %d", int(mode))
		}
		i.eof = mode
		return nil
	}
}

// Logger sets the logger used to report run start, completion and failures at
// debug level. By default, nothing is logged.
func Logger(l *slog.Logger) Option {
	return func(i *Instance) error {
		if l != nil {
			i.log = l
		}
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new machine instance for the given program.
//
// The program is never modified and can be shared by several instances, each
// with its own tape.
//
// Options will be set by calling SetOptions.
func New(p *prog.Program, opts ...Option) (*Instance, error) {
	if p == nil {
		return nil, errors.New("nil program")
	}
	i := &Instance{
		prog:     p,
		tapeSize: DefaultTapeSize,
		maxTape:  DefaultMaxTapeSize,
		log:      slog.New(slog.DiscardHandler),
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	if i.tapeSize > i.maxTape {
		return nil, errors.Errorf("tape size %d exceeds maximum tape size %d", i.tapeSize, i.maxTape)
	}
	i.Tape = make(Tape, i.tapeSize)
	return i, nil
}

// Program returns the program run by the instance.
func (i *Instance) Program() *prog.Program {
	return i.prog
}

// Reset clears the tape and sets the program counter and cell pointer back to
// 0 so that the program can be run again. The tape keeps its current size.
// Input and output are left untouched.
func (i *Instance) Reset() {
	for n := range i.Tape {
		i.Tape[n] = 0
	}
	i.PC = 0
	i.Ptr = 0
	i.insCount = 0
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Cells returns the used part of the tape: all cells up to the last non-zero
// cell or the cell pointer, whichever is further.
func (i *Instance) Cells() []Cell {
	end := i.Ptr + 1
	for n := len(i.Tape) - 1; n >= end; n-- {
		if i.Tape[n] != 0 {
			end = n + 1
			break
		}
	}
	if end > len(i.Tape) {
		end = len(i.Tape)
	}
	return i.Tape[:end]
}

// Dump writes the program counter, cell pointer, tape size and used cells to
// the specified io.Writer.
func (i *Instance) Dump(w io.Writer) error {
	ew := errw.New(w)
	ew.WriteString("pc: " + strconv.Itoa(i.PC) +
		" ptr: " + strconv.Itoa(i.Ptr) +
		" tape: " + strconv.Itoa(len(i.Tape)) +
		" count: " + strconv.FormatInt(i.insCount, 10) + "\n")
	b := make([]byte, 0, 4)
	for n, c := range i.Cells() {
		b = b[:0]
		if n > 0 {
			b = append(b, ' ')
		}
		if n == i.Ptr {
			b = append(b, '*')
		}
		b = strconv.AppendUint(b, uint64(c), 10)
		ew.Write(b)
	}
	ew.Write([]byte{'\n'})
	return ew.Err
}
