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
	"runtime"

	"github.com/apaz-cli/Brainfuck-Tools/prog"
	"github.com/pkg/errors"
)

// Run starts execution of the program until the program counter moves past
// the last instruction.
//
// If an error occurs, the PC will point to the instruction that triggered the
// error and the returned error will be an *Error. The tape and any output
// written so far are left as they were at the time of the failure.
//
// Input is read one byte at a time, only when an input instruction is
// executed. An exhausted input is not an error: the current cell is updated
// according to the EOF mode.
//
// The output is flushed before returning if it implements Flush() error.
func (i *Instance) Run() (err error) {
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case runtime.Error:
				err = i.fail(errors.Wrapf(e, "recovered error @pc=%d/%d, ptr=%d/%d", i.PC, len(i.prog.Code), i.Ptr, len(i.Tape)))
			default:
				panic(e)
			}
		}
		if f, ok := i.output.(flusher); ok {
			if ferr := f.Flush(); ferr != nil && err == nil {
				err = i.fail(errors.Wrap(ferr, "output flush failed"))
			}
		}
		if err != nil {
			i.log.Debug("run failed", "program", i.prog.Name, "error", err, "count", i.insCount)
		} else {
			i.log.Debug("run complete", "program", i.prog.Name, "count", i.insCount, "tape", len(i.Tape))
		}
	}()

	i.log.Debug("run", "program", i.prog.Name, "instructions", len(i.prog.Code), "pc", i.PC)

	code, jumps := i.prog.Code, i.prog.Jumps
	for i.PC < len(code) {
		switch code[i.PC] {
		case prog.OpInc:
			i.Tape[i.Ptr]++
			i.PC++
		case prog.OpDec:
			i.Tape[i.Ptr]--
			i.PC++
		case prog.OpRight:
			if i.Ptr+1 == len(i.Tape) {
				if err = i.Tape.grow(i.Ptr+2, i.maxTape); err != nil {
					return i.fail(err)
				}
			}
			i.Ptr++
			i.PC++
		case prog.OpLeft:
			if i.Ptr == 0 {
				return i.fail(errors.WithStack(ErrTapeUnderflow))
			}
			i.Ptr--
			i.PC++
		case prog.OpLoop:
			if i.Tape[i.Ptr] == 0 {
				i.PC = jumps[i.PC] + 1
			} else {
				i.PC++
			}
		case prog.OpEnd:
			if i.Tape[i.Ptr] != 0 {
				i.PC = jumps[i.PC] + 1
			} else {
				i.PC++
			}
		case prog.OpOut:
			if i.output != nil {
				if err = i.output.WriteByte(byte(i.Tape[i.Ptr])); err != nil {
					return i.fail(errors.Wrap(err, "output failed"))
				}
			}
			i.PC++
		case prog.OpIn:
			if err = i.in(); err != nil {
				return i.fail(err)
			}
			i.PC++
		default:
			return i.fail(errors.Errorf("invalid opcode %d", code[i.PC]))
		}
		i.insCount++
	}
	return nil
}

// in executes the input instruction.
func (i *Instance) in() error {
	var (
		c   byte
		err error = io.EOF
	)
	if i.input != nil {
		c, err = i.input.ReadByte()
	}
	switch err {
	case nil:
		i.Tape[i.Ptr] = Cell(c)
	case io.EOF:
		switch i.eof {
		case EOFZero:
			i.Tape[i.Ptr] = 0
		case EOFMinusOne:
			i.Tape[i.Ptr] = 255
		}
	default:
		return errors.Wrap(err, "input failed")
	}
	return nil
}
