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

package prog_test

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/apaz-cli/Brainfuck-Tools/prog"
	"github.com/pkg/errors"
)

func assertEqual(t *testing.T, name, expected, got string) {
	t.Helper()
	if expected != got {
		t.Errorf("%v:\nExpected: %v\nGot: %v", name, expected, got)
	}
}

func assertEqualI(t *testing.T, name string, expected, got int) {
	t.Helper()
	if expected != got {
		t.Errorf("%v:\nExpected: %v\nGot: %v", name, expected, got)
	}
}

func TestSanitize(t *testing.T) {
	code, offsets := prog.Sanitize([]byte("a+b-\n>c<[x].,y"))
	var b strings.Builder
	for _, op := range code {
		b.WriteByte(op.Symbol())
	}
	assertEqual(t, "Sanitize", "+-><[].,", b.String())
	exp := []int{1, 3, 5, 7, 8, 10, 11, 12}
	assertEqualI(t, "Sanitize offsets", len(exp), len(offsets))
	for i := range exp {
		if i < len(offsets) {
			assertEqualI(t, "Sanitize offset", exp[i], offsets[i])
		}
	}

	code, offsets = prog.Sanitize([]byte("no instructions here"))
	assertEqualI(t, "Sanitize comments", 0, len(code))
	assertEqualI(t, "Sanitize comments offsets", 0, len(offsets))
}

var validateTests = [...]struct {
	code  string
	ok    bool
	kind  prog.BracketKind
	index int
}{
	{"", true, 0, 0},
	{"+-<>.,", true, 0, 0},
	{"[]", true, 0, 0},
	{"[[][]]", true, 0, 0},
	{"+[->+<]>.", true, 0, 0},
	{"[", false, prog.Unclosed, 0},
	{"]", false, prog.ExcessEnd, 0},
	{"][", false, prog.ExcessEnd, 0},
	{"[]]", false, prog.ExcessEnd, 2},
	{"+[[]", false, prog.Unclosed, 1},
	{"[][[]", false, prog.Unclosed, 2},
	{"[[]]]]", false, prog.ExcessEnd, 4},
}

func TestValidate(t *testing.T) {
	for _, test := range validateTests {
		code, _ := prog.Sanitize([]byte(test.code))
		err := prog.Validate(code)
		if test.ok {
			if err != nil {
				t.Errorf("%q: unexpected error %v", test.code, err)
			}
			continue
		}
		if err == nil {
			t.Errorf("%q: expected error", test.code)
			continue
		}
		if errors.Cause(err) != prog.ErrUnbalanced {
			t.Errorf("%q: expected ErrUnbalanced cause, got %v", test.code, errors.Cause(err))
		}
		be, ok := err.(*prog.BracketError)
		if !ok {
			t.Errorf("%q: expected *BracketError, got %T", test.code, err)
			continue
		}
		if be.Kind != test.kind {
			t.Errorf("%q: expected kind %d, got %d", test.code, test.kind, be.Kind)
		}
		assertEqualI(t, test.code, test.index, be.Index)
	}
}

func TestLoad_errors(t *testing.T) {
	_, err := prog.Load("test", strings.NewReader("++\n  +]"))
	if err == nil {
		t.Fatal("expected error")
	}
	assertEqual(t, "excess end", "test:2:4: unmatched ']'", err.Error())

	_, err = prog.Load("test", strings.NewReader("comment [\n[]"))
	if err == nil {
		t.Fatal("expected error")
	}
	assertEqual(t, "unclosed", "test:1:9: unclosed '['", err.Error())

	// errors.Is works through Unwrap
	if !errors.Is(err, prog.ErrUnbalanced) {
		t.Errorf("errors.Is(%v, ErrUnbalanced) is false", err)
	}

	code, _ := prog.Sanitize([]byte("[[]"))
	err = prog.Validate(code)
	assertEqual(t, "no position", "instruction 0: unclosed '['", err.Error())
}

func TestResolve(t *testing.T) {
	p, err := prog.Load("resolve", strings.NewReader("+[>[-]<-]."))
	if err != nil {
		t.Fatal(err)
	}
	exp := []int{-1, 8, -1, 5, -1, 3, -1, -1, 1, -1}
	assertEqualI(t, "len", len(exp), len(p.Jumps))
	for pc, m := range exp {
		assertEqualI(t, "jump", m, p.Jumps[pc])
	}
	if _, ok := p.Jumps.Match(0); ok {
		t.Error("Match(0) should fail on a non loop instruction")
	}
	if _, ok := p.Jumps.Match(42); ok {
		t.Error("Match(42) should fail out of range")
	}
}

func TestResolve_unvalidated(t *testing.T) {
	for _, src := range []string{"]", "[", "[]]["} {
		code, _ := prog.Sanitize([]byte(src))
		_, err := prog.Resolve(code)
		if errors.Cause(err) != prog.ErrUnbalanced {
			t.Errorf("%q: expected ErrUnbalanced, got %v", src, err)
		}
	}
}

// randomProgram generates a random balanced program with up to n
// instructions.
func randomProgram(r *rand.Rand, n int) string {
	var b strings.Builder
	open := 0
	for i := 0; i < n; i++ {
		switch c := r.Intn(10); {
		case c < 2:
			b.WriteByte('[')
			open++
		case c < 4 && open > 0:
			b.WriteByte(']')
			open--
		default:
			b.WriteByte("+-<>.,#\n"[r.Intn(8)])
		}
	}
	for ; open > 0; open-- {
		b.WriteByte(']')
	}
	return b.String()
}

func TestResolve_involution(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		src := randomProgram(r, r.Intn(200))
		p, err := prog.Parse("random", []byte(src))
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		for pc, op := range p.Code {
			m, ok := p.Jumps.Match(pc)
			switch op {
			case prog.OpLoop:
				if !ok || m <= pc || p.Code[m] != prog.OpEnd {
					t.Fatalf("%q: bad match for [ at %d: %d", src, pc, m)
				}
			case prog.OpEnd:
				if !ok || m >= pc || p.Code[m] != prog.OpLoop {
					t.Fatalf("%q: bad match for ] at %d: %d", src, pc, m)
				}
			default:
				if ok {
					t.Fatalf("%q: unexpected match for %v at %d", src, op, pc)
				}
				continue
			}
			if mm, _ := p.Jumps.Match(m); mm != pc {
				t.Fatalf("%q: match(match(%d)) = %d", src, pc, mm)
			}
		}
	}
}

func TestValidate_unequalCounts(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		src := randomProgram(r, r.Intn(100))
		// drop or add one bracket
		if r.Intn(2) == 0 {
			src += "]"
		} else {
			pos := r.Intn(len(src) + 1)
			src = src[:pos] + "[" + src[pos:]
		}
		_, err := prog.Parse("unequal", []byte(src))
		if errors.Cause(err) != prog.ErrUnbalanced {
			t.Fatalf("%q: expected ErrUnbalanced, got %v", src, err)
		}
	}
}

func TestDisassembleAll(t *testing.T) {
	p, err := prog.Load("dis", strings.NewReader("+[\n-]."))
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err = prog.DisassembleAll(p, &b); err != nil {
		t.Fatal(err)
	}
	exp := "       0\tdis:1:1\tinc\n" +
		"       1\tdis:1:2\tloop 4\n" +
		"       2\tdis:2:1\t\tdec\n" +
		"       3\tdis:2:2\tend 2\n" +
		"       4\tdis:2:3\tout\n"
	assertEqual(t, "DisassembleAll", exp, b.String())
	assertEqual(t, "String", "+[-].", p.String())
}

func TestDepth(t *testing.T) {
	p, err := prog.Parse("depth", []byte("[[-]+]"))
	if err != nil {
		t.Fatal(err)
	}
	exp := []int{0, 1, 2, 1, 1, 0}
	d := p.Depth()
	for i := range exp {
		assertEqualI(t, "depth", exp[i], d[i])
	}
}
