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

package main

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/apaz-cli/Brainfuck-Tools/codegen"
	"github.com/apaz-cli/Brainfuck-Tools/prog"
	"github.com/apaz-cli/Brainfuck-Tools/vm"
	"github.com/pkg/errors"
)

// codegenOptions returns the code generator options matching s.
func (s *settings) codegenOptions(comments bool) ([]codegen.Option, error) {
	eof, err := vm.ParseEOFMode(s.EOF)
	if err != nil {
		return nil, err
	}
	return []codegen.Option{
		codegen.TapeSize(s.TapeSize),
		codegen.MaxTapeSize(s.MaxTapeSize),
		codegen.OnEOF(eof),
		codegen.Comments(comments),
	}, nil
}

// writeC writes the C translation of p to the file cName, or to stdout if
// cName is "-".
func writeC(p *prog.Program, cName string, opts []codegen.Option) (err error) {
	var w io.Writer = os.Stdout
	if cName != "-" {
		f, ferr := os.Create(cName)
		if ferr != nil {
			return errors.Wrap(ferr, "create C file")
		}
		defer func() {
			if e := f.Close(); e != nil && err == nil {
				err = errors.Wrap(e, "close C file")
			}
		}()
		w = f
	}
	bw := bufio.NewWriter(w)
	if err = codegen.EmitC(bw, p, opts...); err != nil {
		return err
	}
	return errors.Wrap(bw.Flush(), "write C file")
}

// compile translates p to C and, if exeName is not empty, runs the C compiler
// on it. The C file is kept only if cName is not empty.
func compile(log *slog.Logger, p *prog.Program, s *settings, cName, exeName string, comments bool) error {
	opts, err := s.codegenOptions(comments)
	if err != nil {
		return err
	}
	if exeName == "" {
		return writeC(p, cName, opts)
	}
	if cName == "" || cName == "-" {
		f, err := os.CreateTemp("", "bf-*.c")
		if err != nil {
			return errors.Wrap(err, "create C file")
		}
		f.Close()
		defer os.Remove(f.Name())
		if cName == "-" {
			if err = writeC(p, cName, opts); err != nil {
				return err
			}
		}
		cName = f.Name()
	}
	if err = writeC(p, cName, opts); err != nil {
		return err
	}

	args := append(append([]string(nil), s.CFlags...), "-o", exeName, cName)
	log.Info("compiling", "cc", s.CC, "args", args)
	cmd := exec.Command(s.CC, args...)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err = cmd.Run(); err != nil {
		return errors.Wrapf(err, "%s failed", s.CC)
	}
	log.Debug("compiled", "exe", exeName)
	return nil
}
