package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Config
	}{
		{"defaults", []string{"file.txt"}, Config{Path: "file.txt", Port: 8080}},
		{"keep and port", []string{"-k", "-p", "9000", "file.txt"}, Config{Path: "file.txt", Port: 9000, KeepServing: true}},
		{"switches after path", []string{"file.txt", "-p", "0", "-k", "-q"}, Config{Path: "file.txt", Port: 0, KeepServing: true, ShowQR: true}},
		{"history", []string{"--history", "t.db", "--list"}, Config{Port: 8080, HistoryPath: "t.db", ListHistory: true}},
		{"help", []string{"-k", "--help"}, Config{Port: 8080, Help: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(tt.args)
			if err != nil {
				t.Fatal(err)
			}
			if *got != tt.want {
				t.Errorf("got %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestParseArgsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing port", []string{"file.txt", "-p"}},
		{"bad port", []string{"-p", "eighty", "file.txt"}},
		{"missing history", []string{"file.txt", "--history"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(tt.args)
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("got %v, want *ConfigError", err)
			}
		})
	}
}

func TestParseArgsDoesNotModifyInput(t *testing.T) {
	args := []string{"-k", "-p", "1234", "file.txt"}
	if _, err := parseArgs(args); err != nil {
		t.Fatal(err)
	}
	want := []string{"-k", "-p", "1234", "file.txt"}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("got %v, want %v", args, want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "ok.txt")
	if err := os.WriteFile(file, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{Path: file, Port: 8080}, false},
		{"port zero", Config{Path: file, Port: 0}, false},
		{"port too big", Config{Path: file, Port: 65536}, true},
		{"negative port", Config{Path: file, Port: -1}, true},
		{"no file", Config{Port: 8080}, true},
		{"missing file", Config{Path: filepath.Join(dir, "nope"), Port: 8080}, true},
		{"directory", Config{Path: dir, Port: 8080}, true},
		{"list without history", Config{Port: 8080, ListHistory: true}, true},
		{"list", Config{Port: 8080, ListHistory: true, HistoryPath: "t.db"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if !tt.wantErr {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Errorf("got %v, want *ConfigError", err)
			}
		})
	}
}
