package launcher

import (
	"os/exec"
	"testing"
)

func TestResolve_EmptyArgsUsesResolvedPath(t *testing.T) {
	r := Request{Path: "sh"}
	path, argv, err := r.resolve()
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	want, err := exec.LookPath("sh")
	if err != nil {
		t.Fatalf("LookPath(sh) failed: %v", err)
	}
	if path != want {
		t.Fatalf("resolved path = %q, want %q", path, want)
	}
	if len(argv) != 1 || argv[0] != path {
		t.Fatalf("normalized argv = %v, want [%q]", argv, path)
	}
}

func TestResolve_ArgsPassedThroughVerbatim(t *testing.T) {
	r := Request{Path: "sh", Args: []string{"custom-argv0", "-c", "exit 0"}}
	_, argv, err := r.resolve()
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(argv) != 3 || argv[0] != "custom-argv0" {
		t.Fatalf("argv rewritten to %v", argv)
	}
}
