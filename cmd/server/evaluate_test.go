package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Ko-stant/robot-path-service/internal/geometry"
)

const zigZagBody = `{"start":{"x":0,"y":0},"commands":[
	{"direction":"north","steps":4},{"direction":"west","steps":2},{"direction":"south","steps":4},
	{"direction":"west","steps":1},{"direction":"north","steps":4},{"direction":"west","steps":1},
	{"direction":"south","steps":4}]}`

func runEvaluate(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newEvaluateCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEvaluateCmd_Stdin(t *testing.T) {
	out, err := runEvaluate(t, zigZagBody)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "result: 21\n") || !strings.Contains(out, "final position: (-4, 0)") {
		t.Errorf("Unexpected output:\n%s", out)
	}
}

func TestEvaluateCmd_FileAndJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.json")
	if err := os.WriteFile(path, []byte(loopBody), 0o644); err != nil {
		t.Fatalf("write request: %v", err)
	}

	out, err := runEvaluate(t, "", "--json", path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	var got evaluateOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", out, err)
	}
	if got.Result != 8 || got.Commands != 4 || got.FinalPosition != (geometry.Position{}) {
		t.Errorf("Unexpected result %+v", got)
	}
}

func TestEvaluateCmd_InvalidDirection(t *testing.T) {
	_, err := runEvaluate(t, `{"start":{"x":0,"y":0},"commands":[{"direction":"northwest","steps":1}]}`)
	if !errors.Is(err, geometry.ErrInvalidDirection) {
		t.Fatalf("Expected ErrInvalidDirection, got %v", err)
	}
}

func TestEvaluateRequest_Malformed(t *testing.T) {
	if _, err := evaluateRequest(strings.NewReader("not json")); !errors.Is(err, ErrMalformedRequest) {
		t.Fatalf("Expected ErrMalformedRequest, got %v", err)
	}
}
