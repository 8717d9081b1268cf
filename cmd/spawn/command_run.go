package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/LasseHaedge/procspawn/pkg/lib/config"
	"github.com/LasseHaedge/procspawn/pkg/lib/launcher"
)

// exitCodeError carries the child's own exit code out through Execute so
// main can mirror it without printing anything.
type exitCodeError struct {
	code   int
	status string
}

func (e *exitCodeError) Error() string { return e.status }

func newRunCmd() *cobra.Command {
	var (
		configPath    string
		strategyName  string
		dir           string
		envPairs      []string
		envFile       string
		captureOut    bool
		usePTY        bool
		detach        bool
		dieWithParent bool
	)

	cmd := &cobra.Command{
		Use:   "run [flags] -- <command> [args...]",
		Short: "Launch a program and report how it ends",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("command to execute is required; use -- to separate CLI flags from the command")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			// Flags beat config values only when actually set.
			if !cmd.Flags().Changed("strategy") {
				strategyName = cfg.Strategy
			}
			if !cmd.Flags().Changed("capture") {
				captureOut = cfg.Capture
			}
			if !cmd.Flags().Changed("die-with-parent") {
				dieWithParent = cfg.DieWithParent
			}
			if envFile == "" {
				envFile = cfg.EnvFile
			}

			strategy, err := launcher.ParseStrategy(strategyName)
			if err != nil {
				return err
			}
			env, err := childEnv(envFile, envPairs)
			if err != nil {
				return err
			}

			req := launcher.Request{
				Path:          args[0],
				Args:          args,
				Env:           env,
				Dir:           dir,
				Strategy:      strategy,
				DieWithParent: dieWithParent,
				Stdio:         launcher.StdioPolicy{Stdin: os.Stdin, PTY: usePTY},
			}
			if captureOut {
				req.Stdio.Stdout = launcher.StreamCapture
				req.Stdio.Stderr = launcher.StreamCapture
			}

			l := launcher.New()
			h, err := l.Launch(req)
			if err != nil {
				return err
			}

			if detach {
				printLaunchTable(cmd.OutOrStdout(), h.ID, h.PID, strings.Join(args, " "))
				return nil
			}

			// With capture on, relay the child's streams to our own.
			var streams sync.WaitGroup
			if captureOut {
				stdoutCh, stderrCh, err := l.Output(h.ID)
				if err != nil {
					return err
				}
				streams.Add(2)
				go relay(cmd.OutOrStdout(), stdoutCh, &streams)
				go relay(cmd.ErrOrStderr(), stderrCh, &streams)
			}

			res, err := l.Wait(cmd.Context(), h.ID)
			// Unless the context expired with the child still running, the
			// reaper has sealed the buffers and the relays terminate; drain
			// them before returning so no output goroutine is abandoned.
			if cmd.Context().Err() == nil {
				streams.Wait()
			}
			if err != nil {
				return err
			}

			if res.Exit.Signaled() {
				// Shell convention for signal deaths.
				return &exitCodeError{code: 128 + int(res.Exit.Signal), status: res.Exit.String()}
			}
			if res.Exit.Code != 0 {
				return &exitCodeError{code: res.Exit.Code, status: res.Exit.String()}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/spawn/config.yaml)")
	cmd.Flags().StringVar(&strategyName, "strategy", "spawn", "creation strategy: spawn or fork-exec")
	cmd.Flags().StringVar(&dir, "dir", "", "child working directory")
	cmd.Flags().StringArrayVarP(&envPairs, "env", "e", nil, "environment override KEY=VALUE (repeatable)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "dotenv file merged into the child environment")
	cmd.Flags().BoolVar(&captureOut, "capture", false, "capture child stdout/stderr and relay them")
	cmd.Flags().BoolVar(&usePTY, "pty", false, "run the child on a pseudo-terminal")
	cmd.Flags().BoolVar(&detach, "detach", false, "launch and return without waiting")
	cmd.Flags().BoolVar(&dieWithParent, "die-with-parent", false, "kill the child when this process exits (Linux)")

	return cmd
}

// childEnv builds the Request.Env map from a dotenv file plus KEY=VALUE
// flags, flags last so they win.
func childEnv(envFile string, pairs []string) (map[string]string, error) {
	if envFile == "" && len(pairs) == 0 {
		return nil, nil
	}
	env := make(map[string]string)
	if envFile != "" {
		fileEnv, err := config.ReadEnvFile(envFile)
		if err != nil {
			return nil, err
		}
		for k, v := range fileEnv {
			env[k] = v
		}
	}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --env value %q (want KEY=VALUE)", pair)
		}
		env[key] = value
	}
	return env, nil
}

func relay(w io.Writer, ch <-chan []byte, wg *sync.WaitGroup) {
	defer wg.Done()
	for b := range ch {
		_, _ = w.Write(b)
	}
}
