package launcher

import (
	"fmt"
	"os"
)

// Strategy selects how the child process is brought into existence. Both
// strategies honor the same Request fields and produce the same Result shape
// and error taxonomy; the choice is a performance/safety tradeoff, never an
// observable contract difference.
type Strategy int

const (
	// StrategySpawn asks the platform to create the child running the
	// target program directly, never exposing an intermediate duplicate of
	// the caller. Default, and the cheaper choice when the caller's
	// resident memory is large.
	StrategySpawn Strategy = iota

	// StrategyForkExec duplicates the caller and immediately replaces the
	// duplicate's program image. No hook exists between the two steps;
	// nothing may run in the duplicate before replacement.
	StrategyForkExec
)

func (s Strategy) String() string {
	switch s {
	case StrategyForkExec:
		return "fork-exec"
	default:
		return "spawn"
	}
}

// ParseStrategy converts a configuration value into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "spawn":
		return StrategySpawn, nil
	case "fork-exec", "forkexec":
		return StrategyForkExec, nil
	default:
		return StrategySpawn, fmt.Errorf("unknown strategy %q (want spawn or fork-exec)", s)
	}
}

// startedChild is what a strategy hands back: the child's pid and the
// strategy's own wait primitive.
type startedChild struct {
	pid  int
	wait func() (*os.ProcessState, error)
}

// startChild dispatches the prepared request to the selected strategy.
func startChild(req *Request, path string, argv []string, e *launchEntry) (*startedChild, error) {
	switch req.Strategy {
	case StrategyForkExec:
		return startForkExec(req, path, argv, e)
	default:
		return startSpawn(req, path, argv, e)
	}
}
