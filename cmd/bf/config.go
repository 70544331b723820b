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
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/apaz-cli/Brainfuck-Tools/vm"
	"github.com/pkg/errors"
)

// settings that can be set from the command line or a configuration file.
type settings struct {
	TapeSize    int      `json:"size"`
	MaxTapeSize int      `json:"maxsize"`
	EOF         string   `json:"eof"`
	CC          string   `json:"cc"`
	CFlags      []string `json:"cflags"`
	LogLevel    string   `json:"logLevel"`
	LogFile     string   `json:"logFile"`
	Journal     bool     `json:"journal"`
	NoRaw       bool     `json:"noraw"`
}

func defaultSettings() settings {
	return settings{
		TapeSize:    vm.DefaultTapeSize,
		MaxTapeSize: vm.DefaultMaxTapeSize,
		EOF:         vm.EOFUnchanged.String(),
		CC:          "cc",
		CFlags:      []string{"-O3"},
		LogLevel:    "warn",
	}
}

// flag names of each configuration file field.
var configFlags = map[string]string{
	"size":     "size",
	"maxsize":  "maxsize",
	"eof":      "eof",
	"cc":       "cc",
	"cflags":   "cflags",
	"logLevel": "log-level",
	"logFile":  "log-file",
	"journal":  "journal",
	"noraw":    "noraw",
}

const configSchema = `
	size?:     int & >=1
	maxsize?:  int & >=0
	eof?:      "unchanged" | "zero" | "255"
	cc?:       string & != ""
	cflags?:   [...string]
	logLevel?: "debug" | "info" | "warn" | "error"
	logFile?:  string
	journal?:  bool
	noraw?:    bool
`

// loadConfig reads the CUE configuration file fileName into s. Fields whose
// command line flag is in explicit are left untouched, so that flags take
// precedence over the file.
func loadConfig(fileName string, s *settings, explicit map[string]bool) error {
	content, err := os.ReadFile(fileName)
	if err != nil {
		return errors.Wrap(err, "config")
	}
	ctx := cuecontext.New()
	schema := ctx.CompileString("close({" + configSchema + "})")
	if err = schema.Err(); err != nil {
		return errors.Wrap(err, "config schema")
	}
	value := ctx.CompileBytes(content, cue.Filename(fileName))
	if err = value.Err(); err != nil {
		return errors.Wrap(err, "config")
	}
	value = schema.Unify(value)
	if err = value.Validate(cue.Concrete(true)); err != nil {
		return errors.Wrapf(err, "config %s", fileName)
	}

	var fromFile settings
	if err = value.Decode(&fromFile); err != nil {
		return errors.Wrapf(err, "config %s", fileName)
	}
	for field, flagName := range configFlags {
		if explicit[flagName] || !value.LookupPath(cue.ParsePath(field)).Exists() {
			continue
		}
		switch field {
		case "size":
			s.TapeSize = fromFile.TapeSize
		case "maxsize":
			s.MaxTapeSize = fromFile.MaxTapeSize
		case "eof":
			s.EOF = fromFile.EOF
		case "cc":
			s.CC = fromFile.CC
		case "cflags":
			s.CFlags = fromFile.CFlags
		case "logLevel":
			s.LogLevel = fromFile.LogLevel
		case "logFile":
			s.LogFile = fromFile.LogFile
		case "journal":
			s.Journal = fromFile.Journal
		case "noraw":
			s.NoRaw = fromFile.NoRaw
		}
	}
	return nil
}

// options returns the vm options matching the settings.
func (s *settings) options() ([]vm.Option, error) {
	eof, err := vm.ParseEOFMode(s.EOF)
	if err != nil {
		return nil, err
	}
	return []vm.Option{
		vm.TapeSize(s.TapeSize),
		vm.MaxTapeSize(s.MaxTapeSize),
		vm.OnEOF(eof),
	}, nil
}
