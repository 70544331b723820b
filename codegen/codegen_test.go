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

package codegen_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apaz-cli/Brainfuck-Tools/codegen"
	"github.com/apaz-cli/Brainfuck-Tools/prog"
	"github.com/apaz-cli/Brainfuck-Tools/vm"
	"github.com/pkg/errors"
)

func load(t *testing.T, name, src string) *prog.Program {
	t.Helper()
	p, err := prog.Load(name, strings.NewReader(src))
	if err != nil {
		t.Fatalf("%s: %+v", name, err)
	}
	return p
}

func emit(t *testing.T, p *prog.Program, opts ...codegen.Option) string {
	t.Helper()
	var b bytes.Buffer
	if err := codegen.EmitC(&b, p, opts...); err != nil {
		t.Fatalf("%s: %+v", p.Name, err)
	}
	return b.String()
}

func TestEmitC(t *testing.T) {
	src := emit(t, load(t, "clear", "+[-]."))
	for _, s := range []string{
		"/* clear */\n",
		"#define TAPE_SIZE 30000\n",
		"#define MAX_TAPE_SIZE 67108864\n",
		"\ttape[ptr]++;\n" +
			"\twhile (tape[ptr]) {\n" +
			"\t\ttape[ptr]--;\n" +
			"\t}\n" +
			"\tputchar(tape[ptr]);\n" +
			"\n\treturn 0;\n}\n",
	} {
		if !strings.Contains(src, s) {
			t.Errorf("missing %q in generated source:\n%s", s, src)
		}
	}
	if strings.Contains(src, "else\n\t\ttape[ptr] =") {
		t.Error("default EOF mode should leave the cell unchanged")
	}
}

// one statement per instruction, one while per loop.
func TestEmitC_structure(t *testing.T) {
	p := load(t, "structure", "a+b-c>d<e[f[g]h]i.j,k")
	src := emit(t, p)
	body := src[strings.Index(src, "oom();\n\n")+len("oom();\n\n"):]
	body = body[:strings.Index(body, "\n\treturn 0;")]
	exp := []string{
		"\ttape[ptr]++;",
		"\ttape[ptr]--;",
		"\tright();",
		"\tleft();",
		"\twhile (tape[ptr]) {",
		"\t\twhile (tape[ptr]) {",
		"\t\t}",
		"\t}",
		"\tputchar(tape[ptr]);",
		"\tinput();",
	}
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	if len(lines) != len(exp) {
		t.Fatalf("expected %d statements, got %d:\n%s", len(exp), len(lines), body)
	}
	for i := range exp {
		if lines[i] != exp[i] {
			t.Errorf("line %d: expected %q, got %q", i, exp[i], lines[i])
		}
	}
}

func TestEmitC_options(t *testing.T) {
	p := load(t, "options", "\n [,]")
	src := emit(t, p,
		codegen.TapeSize(100),
		codegen.MaxTapeSize(0),
		codegen.OnEOF(vm.EOFMinusOne),
		codegen.Comments(true))
	for _, s := range []string{
		"#define TAPE_SIZE 100\n",
		"#define MAX_TAPE_SIZE SIZE_MAX\n",
		"\telse\n\t\ttape[ptr] = 255;\n",
		"\twhile (tape[ptr]) { /* options:2:2 */\n",
	} {
		if !strings.Contains(src, s) {
			t.Errorf("missing %q in generated source:\n%s", s, src)
		}
	}
	src = emit(t, p, codegen.OnEOF(vm.EOFZero))
	if !strings.Contains(src, "\telse\n\t\ttape[ptr] = 0;\n") {
		t.Errorf("missing EOF handling in generated source:\n%s", src)
	}

	var b bytes.Buffer
	for _, opt := range []codegen.Option{
		codegen.TapeSize(0),
		codegen.MaxTapeSize(-1),
		codegen.OnEOF(vm.EOFMode(-1)),
	} {
		if err := codegen.EmitC(&b, p, opt); err == nil {
			t.Error("expected option error")
		}
	}
	if err := codegen.EmitC(&b, p, codegen.TapeSize(10), codegen.MaxTapeSize(5)); err == nil {
		t.Error("expected tape size error")
	}
}

func TestEmitC_unbalanced(t *testing.T) {
	var b bytes.Buffer
	for _, p := range []*prog.Program{
		{Name: "end", Code: []prog.Op{prog.OpEnd}, Jumps: prog.BracketMap{-1}},
		{Name: "loop", Code: []prog.Op{prog.OpLoop}, Jumps: prog.BracketMap{-1}},
	} {
		err := codegen.EmitC(&b, p)
		if errors.Cause(err) != prog.ErrUnbalanced {
			t.Errorf("%s: expected ErrUnbalanced, got %v", p.Name, err)
		}
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, os.ErrClosed }

func TestEmitC_writeError(t *testing.T) {
	err := codegen.EmitC(failWriter{}, load(t, "fail", "+"))
	if errors.Cause(err) != os.ErrClosed {
		t.Fatalf("expected os.ErrClosed, got %v", err)
	}
}

func TestCommentSafe(t *testing.T) {
	src := emit(t, load(t, "evil */ name", ""))
	if strings.Contains(src, "evil */") {
		t.Errorf("comment terminator not escaped:\n%s", src)
	}
}

var agreement = [...]struct {
	name  string
	code  string
	input string
	eof   vm.EOFMode
}{
	{"no loops", "++++++++.>+++++++++++.<<", "", vm.EOFUnchanged},
	{"wrap", "-.+.", "", vm.EOFUnchanged},
	{"echo", ",.,.,.,.", "ab", vm.EOFUnchanged},
	{"echo zero", ",.,.,.,.", "ab", vm.EOFZero},
	{"echo 255", ",.,.,.,.", "ab", vm.EOFMinusOne},
	{"countdown", "+[-.]", "", vm.EOFUnchanged},
	{"hello", "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++.", "", vm.EOFUnchanged},
	{"growth", "+[>+]", "", vm.EOFUnchanged},
	{"underflow", "+.<.", "", vm.EOFUnchanged},
}

// TestAgreement compiles generated programs with the system C compiler and
// checks that they behave like the interpreter.
func TestAgreement(t *testing.T) {
	cc, err := exec.LookPath("cc")
	if err != nil {
		t.Skip("no C compiler found")
	}
	dir := t.TempDir()
	for _, test := range agreement {
		p := load(t, test.name, test.code)

		// interpreter
		var want bytes.Buffer
		i, err := vm.New(p,
			vm.TapeSize(16), vm.MaxTapeSize(1000),
			vm.Input(strings.NewReader(test.input)),
			vm.Output(&want),
			vm.OnEOF(test.eof))
		if err != nil {
			t.Fatal(err)
		}
		runErr := i.Run()

		// compiled
		cFile := filepath.Join(dir, "prog.c")
		exe := filepath.Join(dir, "prog")
		f, err := os.Create(cFile)
		if err != nil {
			t.Fatal(err)
		}
		err = codegen.EmitC(f, p, codegen.TapeSize(16), codegen.MaxTapeSize(1000), codegen.OnEOF(test.eof))
		f.Close()
		if err != nil {
			t.Fatal(err)
		}
		if out, err := exec.Command(cc, "-o", exe, cFile).CombinedOutput(); err != nil {
			t.Fatalf("%s: %v\n%s", test.name, err, out)
		}
		cmd := exec.Command(exe)
		cmd.Stdin = strings.NewReader(test.input)
		var got bytes.Buffer
		cmd.Stdout = &got
		exitErr := cmd.Run()

		if got.String() != want.String() {
			t.Errorf("%s: output mismatch:\ninterpreter: %q\ncompiled:    %q", test.name, want.String(), got.String())
		}
		if (runErr == nil) != (exitErr == nil) {
			t.Errorf("%s: interpreter error %v, compiled program error %v", test.name, runErr, exitErr)
		}
	}
}
