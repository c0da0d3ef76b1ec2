package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/lukasmwerner/harper/internal/cli/output"
	"github.com/lukasmwerner/harper/internal/engine"
)

const replPrompt = "harper> "

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Lint text interactively",
		Long: `Start an interactive session that lints each line you type.

Commands:
  :rules            List rules and whether they are enabled
  :enable <rule>    Enable a rule for this session
  :disable <rule>   Disable a rule for this session
  :help             Show this help
  :quit             Exit`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	historyFile := ""
	if cmdCtx.Cfg.ProjectRoot != "" {
		historyFile = filepath.Join(cmdCtx.Cfg.ProjectRoot, ".harper", "repl_history")
		if err := os.MkdirAll(filepath.Dir(historyFile), 0o750); err != nil {
			historyFile = ""
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    newRuleCompleter(cmdCtx.Engine),
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	s := &replSession{eng: cmdCtx.Engine, r: cmdCtx.Renderer}
	s.r.Printf("harper REPL (%s)\n", cmdCtx.Engine.Dialect())
	s.r.Println("Type :help for commands, :quit to exit")
	s.r.Println()

	ctx := commandContext(cmd)
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if s.handle(ctx, line) {
			return nil
		}
	}
}

// replSession evaluates REPL input against an engine.
type replSession struct {
	eng *engine.Engine
	r   *output.Renderer
}

// handle processes one line and reports whether the session should end.
func (s *replSession) handle(ctx context.Context, line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, ":") {
		return s.command(trimmed)
	}

	res, err := s.eng.LintText(ctx, line)
	if err != nil {
		s.r.Error(err.Error())
		return false
	}
	if err := s.r.Lints([]output.FileReport{toReport(res)}); err != nil {
		s.r.Error(err.Error())
	}
	s.r.Println()
	return false
}

func (s *replSession) command(line string) bool {
	parts := strings.Fields(line)
	switch strings.ToLower(parts[0]) {
	case ":quit", ":exit", ":q":
		return true

	case ":help":
		s.r.Println(`Commands:
  :rules            List rules and whether they are enabled
  :enable <rule>    Enable a rule for this session
  :disable <rule>   Disable a rule for this session
  :quit             Exit`)

	case ":rules":
		if err := s.r.Rules(s.eng.Rules(), false); err != nil {
			s.r.Error(err.Error())
		}

	case ":enable", ":disable":
		if len(parts) < 2 {
			s.r.Error(fmt.Sprintf("usage: %s <rule>", parts[0]))
			return false
		}
		enabled := parts[0] == ":enable"
		for _, name := range parts[1:] {
			if err := s.eng.SetEnabled(s.ruleName(name), enabled); err != nil {
				s.r.Error(err.Error())
				continue
			}
			state := "disabled"
			if enabled {
				state = "enabled"
			}
			s.r.Success(fmt.Sprintf("%s %s", s.ruleName(name), state))
		}

	default:
		s.r.Error(fmt.Sprintf("unknown command %s (type :help for commands)", parts[0]))
	}
	return false
}

// ruleName resolves a case-insensitive rule name.
func (s *replSession) ruleName(name string) string {
	for _, info := range s.eng.Rules() {
		if strings.EqualFold(info.Name, name) {
			return info.Name
		}
	}
	return name
}

func newRuleCompleter(eng *engine.Engine) *readline.PrefixCompleter {
	var names []readline.PrefixCompleterInterface
	for _, info := range eng.Rules() {
		names = append(names, readline.PcItem(info.Name))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem(":enable", names...),
		readline.PcItem(":disable", names...),
		readline.PcItem(":rules"),
		readline.PcItem(":help"),
		readline.PcItem(":quit"),
	)
}
