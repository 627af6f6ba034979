// Command hbaseshell is the interactive wide-column store shell: it opens
// (or creates) a table directory and either runs a single command passed
// via -c or drops into a readline-backed REPL.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rdiaz/hbaseshell/internal/catalog"
	"github.com/rdiaz/hbaseshell/internal/dispatch"
)

var (
	tableDir string
	oneShot  string
	logLevel string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hbaseshell",
		Short: "A wide-column store driven by a textual shell",
		RunE:  run,
	}
	root.Flags().StringVarP(&tableDir, "dir", "d", "./data", "table snapshot directory")
	root.Flags().StringVarP(&oneShot, "command", "c", "", "run a single command and exit")
	root.Flags().StringVarP(&logLevel, "log-level", "l", "info", "zerolog level: debug, info, warn, error")
	return root
}

func run(cmd *cobra.Command, args []string) error {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	cat, created, err := catalog.Open(tableDir, log)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	if created {
		log.Info().Str("dir", tableDir).Msg("initialized new table directory")
	}

	d := dispatch.New(cat, log)

	if oneShot != "" {
		runLine(d, oneShot, os.Stdout)
		return nil
	}
	return runRepl(d)
}

func runLine(d *dispatch.Dispatcher, line string, out *os.File) {
	result := d.Execute(line)
	if result.ResultSet != nil {
		result.ResultSet.Render(out)
		return
	}
	if result.Status != "" {
		fmt.Fprintln(out, result.Status)
	}
}

func runRepl(d *dispatch.Dispatcher) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "hbase> ",
		HistoryFile:     "/tmp/.hbaseshell_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		runLine(d, line, os.Stdout)
	}
}
