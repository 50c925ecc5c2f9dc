package main

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func TestResolveModelPath(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		t.Setenv(envModelPath, "/env/model.bpm")
		got, err := resolveModelPath(" ./a/../model.bpm ", Config{ModelPath: "/cfg/model.bpm"})
		if err != nil {
			t.Fatalf("resolveModelPath: %v", err)
		}
		if got != "model.bpm" {
			t.Fatalf("unexpected path: %q", got)
		}
	})

	t.Run("config before env", func(t *testing.T) {
		t.Setenv(envModelPath, "/env/model.bpm")
		got, err := resolveModelPath("", Config{ModelPath: "/cfg/model.bpm"})
		if err != nil {
			t.Fatalf("resolveModelPath: %v", err)
		}
		if got != filepath.Clean("/cfg/model.bpm") {
			t.Fatalf("unexpected path: %q", got)
		}
	})

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv(envModelPath, "/env/model.bpm")
		got, err := resolveModelPath("", Config{})
		if err != nil {
			t.Fatalf("resolveModelPath: %v", err)
		}
		if got != filepath.Clean("/env/model.bpm") {
			t.Fatalf("unexpected path: %q", got)
		}
	})

	t.Run("nothing set", func(t *testing.T) {
		t.Setenv(envModelPath, "")
		if _, err := resolveModelPath("", Config{}); !errors.Is(err, errNoModel) {
			t.Fatalf("expected errNoModel, got %v", err)
		}
	})
}

func TestParseIDs(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"258 100 258 97 99", []int{258, 100, 258, 97, 99}},
		{"[258, 100,258]\n", []int{258, 100, 258}},
		{"  ", []int{}},
		{"-1", []int{-1}},
	}
	for _, tc := range tests {
		got, err := parseIDs(tc.in)
		if err != nil {
			t.Fatalf("parseIDs(%q): %v", tc.in, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("parseIDs(%q): got %v want %v", tc.in, got, tc.want)
		}
	}

	if _, err := parseIDs("1 two 3"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}

func TestFormatIDs(t *testing.T) {
	if got := formatIDs([]int{258, 100, 97}); got != "258 100 97" {
		t.Fatalf("formatIDs: got %q", got)
	}
	if got := formatIDs(nil); got != "" {
		t.Fatalf("formatIDs(nil): got %q", got)
	}
}
