package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charlie0129/bright/pkg/brightness"
)

var (
	dsPath = brightness.DisplayServices.Paths[0]
	cdPath = brightness.CoreDisplay.Paths[0]
)

// runCommand executes bright with args against mocked frameworks.
func runCommand(t *testing.T, libs map[string]*brightness.MockLibrary, args ...string) (string, error) {
	t.Helper()

	orig := newController
	t.Cleanup(func() { newController = orig })
	newController = func() *brightness.Controller {
		c, _ := brightness.NewMock(libs, 3)
		return c
	}

	cmd := NewCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	args = append([]string{"--config", filepath.Join(t.TempDir(), "bright.json")}, args...)
	cmd.SetArgs(withLevelTerminator(cmd, args))

	err := cmd.Execute()
	return out.String(), err
}

func TestSetArgumentCount(t *testing.T) {
	for _, args := range [][]string{{}, {"0.1", "0.2"}} {
		_, err := runCommand(t, map[string]*brightness.MockLibrary{dsPath: {}}, args...)
		if !errors.Is(err, ErrUsage) {
			t.Errorf("args %v: error = %v, want %v", args, err, ErrUsage)
		}
		stderr := &bytes.Buffer{}
		if code := handleCmdError(stderr, err); code != 1 {
			t.Errorf("args %v: exit code = %d, want 1", args, code)
		}
		if !strings.HasPrefix(stderr.String(), "Usage: bright <value>\n") {
			t.Errorf("args %v: stderr = %q, want usage message", args, stderr.String())
		}
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		name     string
		libs     map[string]*brightness.MockLibrary
		args     []string
		wantLib  string
		want     float32
		wantCode   int
		wantStderr string
	}{
		{
			name:    "primary",
			libs:    map[string]*brightness.MockLibrary{dsPath: {}, cdPath: {}},
			args:    []string{"0.5"},
			wantLib: dsPath,
			want:    0.5,
		},
		{
			name:    "fallback",
			libs:    map[string]*brightness.MockLibrary{cdPath: {}},
			args:    []string{"0.25"},
			wantLib: cdPath,
			want:    0.25,
		},
		{
			name:    "malformed value becomes zero",
			libs:    map[string]*brightness.MockLibrary{dsPath: {Level: 0.9}},
			args:    []string{"bright"},
			wantLib: dsPath,
			want:    0,
		},
		{
			name:    "percent",
			libs:    map[string]*brightness.MockLibrary{dsPath: {}},
			args:    []string{"--percent", "150"},
			wantLib: dsPath,
			want:    1,
		},
		{
			name:     "framework error code",
			libs:     map[string]*brightness.MockLibrary{dsPath: {SetCode: 5}},
			args:     []string{"0.5"},
			wantCode: 5,
		},
		{
			name:       "unavailable",
			libs:       map[string]*brightness.MockLibrary{},
			args:       []string{"0.5"},
			wantCode:   1,
			wantStderr: "Failed to load brightness API\n",
		},
		{
			name:    "negative value is not a flag",
			libs:    map[string]*brightness.MockLibrary{dsPath: {Level: 0.9}},
			args:    []string{"-0.5"},
			wantLib: dsPath,
			want:    -0.5,
		},
		{
			name:    "negative percent after flag",
			libs:    map[string]*brightness.MockLibrary{dsPath: {Level: 0.9}},
			args:    []string{"-p", "-20"},
			wantLib: dsPath,
			want:    0,
		},
		{
			name:    "hex value",
			libs:    map[string]*brightness.MockLibrary{dsPath: {}},
			args:    []string{"0x1"},
			wantLib: dsPath,
			want:    1,
		},
		{
			name:     "strict rejects malformed value",
			libs:     map[string]*brightness.MockLibrary{dsPath: {}},
			args:     []string{"--strict", "bright"},
			wantCode: 1,
		},
		{
			name:     "strict rejects out of range percent",
			libs:     map[string]*brightness.MockLibrary{dsPath: {}},
			args:     []string{"--strict", "-p", "101"},
			wantCode: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCommand(t, tt.libs, tt.args...)

			if tt.wantCode != 0 {
				if err == nil {
					t.Fatalf("expected error")
				}
				stderr := &bytes.Buffer{}
				if code := handleCmdError(stderr, err); code != tt.wantCode {
					t.Errorf("exit code = %d, want %d", code, tt.wantCode)
				}
				if tt.wantStderr != "" && stderr.String() != tt.wantStderr {
					t.Errorf("stderr = %q, want %q", stderr.String(), tt.wantStderr)
				}
				for _, lib := range tt.libs {
					if lib.Level != 0 {
						t.Errorf("brightness changed to %v", lib.Level)
					}
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := tt.libs[tt.wantLib].Level; got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetJSON(t *testing.T) {
	libs := map[string]*brightness.MockLibrary{dsPath: {Level: 0.5}}

	out, err := runCommand(t, libs, "get", "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var res brightness.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("failed to decode %q: %v", out, err)
	}
	if res.Level != 0.5 || res.Framework != "DisplayServices" || res.Display != 3 {
		t.Errorf("get = %+v", res)
	}
}

func TestStep(t *testing.T) {
	libs := map[string]*brightness.MockLibrary{dsPath: {Level: 0.5}}

	if _, err := runCommand(t, libs, "up", "--step", "0.25"); err != nil {
		t.Fatalf("up: unexpected error: %v", err)
	}
	if got := libs[dsPath].Level; got != 0.75 {
		t.Errorf("after up level = %v, want 0.75", got)
	}

	if _, err := runCommand(t, libs, "down", "--step", "1"); err != nil {
		t.Fatalf("down: unexpected error: %v", err)
	}
	if got := libs[dsPath].Level; got != 0 {
		t.Errorf("after down level = %v, want 0", got)
	}

	for _, step := range []string{"2", "0", "NaN"} {
		if _, err := runCommand(t, libs, "up", "--step", step); !errors.Is(err, brightness.ErrLevelOutOfRange) {
			t.Errorf("up --step %s: error = %v, want %v", step, err, brightness.ErrLevelOutOfRange)
		}
	}
	if libs[dsPath].SetCalls != 2 {
		t.Errorf("SetCalls = %d, want 2", libs[dsPath].SetCalls)
	}
}

func TestWithLevelTerminator(t *testing.T) {
	cmd := NewCommand()

	tests := []struct {
		args []string
		want []string
	}{
		{args: []string{"-0.5"}, want: []string{"--", "-0.5"}},
		{args: []string{"-p", "-20"}, want: []string{"-p", "--", "-20"}},
		{args: []string{"-l", "debug", "-.5"}, want: []string{"-l", "debug", "--", "-.5"}},
		{args: []string{"--config", "-1.json", "0.5"}, want: []string{"--config", "-1.json", "0.5"}},
		{args: []string{"--", "-0.5"}, want: []string{"--", "-0.5"}},
		{args: []string{"up", "--step", "-0.1"}, want: []string{"up", "--step", "-0.1"}},
		{args: []string{"0.5"}, want: []string{"0.5"}},
		{args: []string{"--percent"}, want: []string{"--percent"}},
	}
	for _, tt := range tests {
		if got := withLevelTerminator(cmd, tt.args); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("withLevelTerminator(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}
