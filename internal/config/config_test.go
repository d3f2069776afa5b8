// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLoad_env(t *testing.T) {
	t.Setenv("RIKAIKUN_OUTPUT_DIR", "out")
	t.Setenv("RIKAIKUN_LOG_LEVEL", "debug")

	got, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := &Config{
		WordsPath: "JMdict_e.gz",
		NamesPath: "JMnedict.xml.gz",
		OutputDir: "out",
		WordsName: "dict",
		NamesName: "names",
		LogLevel:  "debug",
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("Load (-want, +got):\n%s", diff)
	}

	l, err := got.Level()
	if err != nil {
		t.Fatalf("Level: %v", err)
	}
	if l != slog.LevelDebug {
		t.Fatalf("Level: want: %v, got: %v", slog.LevelDebug, l)
	}
}

func TestLoad_yaml(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`words_path: /src/JMdict_e
names_name: jmnedict
pos_flags:
  v1: 1
  vs-c: 16
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := &Config{
		WordsPath: "/src/JMdict_e",
		NamesPath: "JMnedict.xml.gz",
		OutputDir: "data",
		WordsName: "dict",
		NamesName: "jmnedict",
		LogLevel:  "info",
		POSFlags:  map[string]uint32{"v1": 1, "vs-c": 16},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Load (-want, +got):\n%s", diff)
	}
}

func TestLoad_errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
		err  error
	}{
		{
			name: "same names",
			yaml: "words_name: x\nnames_name: x\n",
			err:  ErrInvalid,
		},
		{
			name: "log level",
			yaml: "log_level: loud\n",
			err:  ErrInvalid,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(test.yaml), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			_, err := Load(path)
			if diff := cmp.Diff(test.err, err, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("Load (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_missingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load: want error, got nil")
	}
}
