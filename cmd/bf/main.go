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
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/apaz-cli/Brainfuck-Tools/prog"
	"github.com/apaz-cli/Brainfuck-Tools/vm"
	"github.com/bradleyjkemp/memviz"
	"github.com/pkg/errors"
)

type fileList []string

func (f *fileList) String() string     { return "" }
func (f *fileList) Set(s string) error { *f = append(*f, s); return nil }
func (f *fileList) Get() interface{}   { return *f }

// eofFlag validates the -eof flag.
type eofFlag struct{ s *string }

func (e eofFlag) String() string {
	if e.s == nil {
		return ""
	}
	return *e.s
}

func (e eofFlag) Set(s string) error {
	m, err := vm.ParseEOFMode(s)
	if err != nil {
		return err
	}
	*e.s = m.String()
	return nil
}

// wordList is a space separated list of words.
type wordList struct{ l *[]string }

func (w wordList) String() string {
	if w.l == nil {
		return ""
	}
	return strings.Join(*w.l, " ")
}

func (w wordList) Set(s string) error { *w.l = strings.Fields(s); return nil }

var (
	noRawIO   bool
	debug     bool
	dump      bool
	list      bool
	comments  bool
	statsView bool
	cFileName string
	exeName   string
	vizName   string
	cfgName   string
	st        = defaultSettings()
)

// ttyReader flushes pending output before each read, and, if eot is set,
// turns CTRL-D into end of file.
type ttyReader struct {
	r     io.Reader
	flush func() error
	eot   bool
	eof   bool
}

func (t *ttyReader) Read(p []byte) (int, error) {
	if t.eof {
		return 0, io.EOF
	}
	if t.flush != nil {
		if err := t.flush(); err != nil {
			return 0, err
		}
	}
	n, err := t.r.Read(p)
	if t.eot {
		for k := 0; k < n; k++ {
			if p[k] == 4 {
				t.eof = true
				if k == 0 {
					return 0, io.EOF
				}
				return k, nil
			}
		}
	}
	return n, err
}

func setupIO() (raw bool, tearDown func()) {
	var err error
	if noRawIO {
		return false, nil
	}
	tearDown, err = setRawIO()
	if err != nil {
		return false, nil
	}
	return true, tearDown
}

// explicitFlags returns the set of flags given on the command line.
func explicitFlags(fs *flag.FlagSet) map[string]bool {
	m := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { m[f.Name] = true })
	return m
}

func loadProgram(name string) (*prog.Program, error) {
	if name == "-" {
		return prog.Load("stdin", os.Stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "open program")
	}
	defer f.Close()
	return prog.Load(name, f)
}

// machineState is the part of an instance shown by -memviz.
type machineState struct {
	Program string
	PC      int
	Ptr     int
	Count   int64
	Cells   []vm.Cell
}

func writeMemviz(i *vm.Instance, fileName string) error {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "memviz")
	}
	defer f.Close()
	memviz.Map(f, &machineState{
		Program: i.Program().Name,
		PC:      i.PC,
		Ptr:     i.Ptr,
		Count:   i.InstructionCount(),
		Cells:   i.Cells(),
	})
	return nil
}

func usage() {
	w := flag.CommandLine.Output()
	fmt.Fprintf(w, "Usage: %s [options] program.b\n\n", os.Args[0])
	flag.PrintDefaults()
	if !statsViewAvailable {
		fmt.Fprintln(w, "\nThis build does not support -statsview.")
	}
}

func atExit(i *vm.Instance, err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	if i != nil && !dump {
		i.Dump(os.Stderr)
	}
	os.Exit(1)
}

func main() {
	// check exit condition
	var err error
	var i *vm.Instance
	var withFiles fileList

	stdout := bufio.NewWriter(os.Stdout)

	// flush output, catch and log errors
	defer func() {
		stdout.Flush()
		if i != nil && dump {
			i.Dump(os.Stderr)
		}
		if i != nil && vizName != "" {
			if e := writeMemviz(i, vizName); err == nil {
				err = e
			}
		}
		atExit(i, err)
	}()

	flag.Usage = usage
	flag.StringVar(&cFileName, "c", "", "translate to C and write the result to `file.c` (- for stdout)")
	flag.StringVar(&exeName, "o", "", "translate to C and compile to executable `file`")
	flag.StringVar(&st.CC, "cc", st.CC, "C compiler `command` used by -o")
	flag.Var(wordList{&st.CFlags}, "cflags", "C compiler `flags` used by -o")
	flag.BoolVar(&comments, "comments", false, "add source positions as comments in generated C code")
	flag.BoolVar(&list, "list", false, "print a listing of the program and exit")
	flag.IntVar(&st.TapeSize, "size", st.TapeSize, "initial tape size in cells")
	flag.IntVar(&st.MaxTapeSize, "maxsize", st.MaxTapeSize, "maximum tape size in cells (0 for no limit)")
	flag.Var(eofFlag{&st.EOF}, "eof", "cell value on input at end of file: `mode` is unchanged, zero or 255")
	flag.Var(&withFiles, "with", "Add `filename` to the input list (can be specified multiple times)")
	flag.BoolVar(&st.NoRaw, "noraw", false, "disable raw terminal IO")
	flag.BoolVar(&dump, "dump", false, "dump the machine state upon exit")
	flag.StringVar(&vizName, "memviz", "", "write a graphviz view of the machine state upon exit to `file.dot`")
	flag.BoolVar(&debug, "debug", false, "enable debug diagnostics")
	flag.StringVar(&cfgName, "config", "", "load settings from CUE `file`")
	flag.StringVar(&st.LogLevel, "log-level", st.LogLevel, "log `level`: debug, info, warn or error")
	flag.StringVar(&st.LogFile, "log-file", "", "also write JSON logs to `file`")
	flag.BoolVar(&st.Journal, "journal", false, "also log to the systemd journal")
	flag.BoolVar(&statsView, "statsview", false, "serve runtime statistics over HTTP")

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if cfgName != "" {
		if err = loadConfig(cfgName, &st, explicitFlags(flag.CommandLine)); err != nil {
			return
		}
	}
	noRawIO = st.NoRaw

	log, closeLog, err := newLogger(os.Stderr, &st)
	if err != nil {
		return
	}
	defer closeLog()

	if statsView {
		launchStatsView(os.Stderr)
	}

	p, err := loadProgram(flag.Arg(0))
	if err != nil {
		return
	}
	log.Debug("program loaded", "name", p.Name, "instructions", p.Len())

	switch {
	case list:
		err = prog.DisassembleAll(p, stdout)
		return
	case cFileName != "" || exeName != "":
		err = compile(log, p, &st, cFileName, exeName, comments)
		return
	}

	opts, err := st.options()
	if err != nil {
		return
	}
	opts = append(opts, vm.Output(stdout), vm.Logger(log))

	// try to switch the input terminal to character mode.
	rawtty, ioTearDownFn := setupIO()
	if ioTearDownFn != nil {
		defer ioTearDownFn()
	}
	stdin := &ttyReader{r: os.Stdin, flush: stdout.Flush, eot: rawtty}
	if rawtty {
		opts = append(opts, vm.Input(stdin))
	} else {
		opts = append(opts, vm.Input(bufio.NewReader(stdin)))
	}

	// append -with files to input stack in reverse order so that they load
	// in order of appearance on the command line.
	for n := len(withFiles) - 1; n >= 0; n-- {
		var f *os.File
		f, err = os.Open(withFiles[n])
		if err != nil {
			return
		}
		defer f.Close()
		opts = append(opts, vm.Input(bufio.NewReader(f)))
	}

	i, err = vm.New(p, opts...)
	if err != nil {
		return
	}
	err = i.Run()
	log.Info("program terminated", slog.Int64("instructions", i.InstructionCount()), slog.Int("ptr", i.Ptr))
}
