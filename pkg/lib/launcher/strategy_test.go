package launcher

import (
	"testing"
)

func TestParseStrategy(t *testing.T) {
	cases := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"", StrategySpawn, false},
		{"spawn", StrategySpawn, false},
		{"fork-exec", StrategyForkExec, false},
		{"forkexec", StrategyForkExec, false},
		{"vfork", StrategySpawn, true},
	}
	for _, c := range cases {
		got, err := ParseStrategy(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("ParseStrategy(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseStrategy(%q) failed: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseStrategy(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestStrategyString(t *testing.T) {
	if StrategySpawn.String() != "spawn" || StrategyForkExec.String() != "fork-exec" {
		t.Fatalf("unexpected strategy names: %q %q", StrategySpawn, StrategyForkExec)
	}
}
