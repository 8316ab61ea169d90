package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"nickandperla.net/calc/internal/stdlib"
	"nickandperla.net/calc/internal/store"
	"nickandperla.net/calc/internal/tui"
	"nickandperla.net/calc/pkg/calc"
)

var errEvalFailed = errors.New("one or more expressions failed")

var evalCmd = &cobra.Command{
	Use:     "eval EXPR...",
	Short:   "Evaluate each argument and print its result",
	Example: `  calc eval "2^10" "3root(27)" "5!"`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runEval,
}

var rewriteCmd = &cobra.Command{
	Use:   "rewrite EXPR...",
	Short: "Print each argument with shorthand expanded to function calls",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRewrite,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the keypad calculator",
	RunE:  runTUI,
}

var (
	historySession string
	historyLimit   int
	historyClear   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show evaluations saved in the history database",
	RunE:  runHistory,
}

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List the operators, functions and constants",
	RunE:  runFunctions,
}

func init() {
	historyCmd.Flags().StringVar(&historySession, "session", "", "Only show this session")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Newest entries to show (default: config history.limit)")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete the entries instead of showing them")
}

// runEval evaluates every argument in one session, so later arguments see
// earlier answers in history. Failures go to stderr and the command fails
// once all arguments have run.
func runEval(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	failed := false
	for _, arg := range args {
		sess.SetBuffer(arg)
		result, err := sess.Evaluate()
		switch {
		case calc.KindOf(err) != 0:
			failed = true
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", arg, err)
		case err != nil:
			return err
		case result != "":
			fmt.Fprintln(cmd.OutOrStdout(), result)
		}
	}
	if failed {
		return errEvalFailed
	}
	return nil
}

func runRewrite(cmd *cobra.Command, args []string) error {
	failed := false
	for _, arg := range args {
		out, err := calc.Rewrite(arg)
		if err != nil {
			failed = true
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", arg, err)
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	if failed {
		return errEvalFailed
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()
	return tui.Run(sess, tea.WithAltScreen())
}

func runHistory(cmd *cobra.Command, args []string) error {
	if cfg.History.DatabasePath == "" {
		return errors.New("no history database: pass --db or set history.database_path")
	}
	st, err := store.NewSQLite(cfg.History.DatabasePath)
	if err != nil {
		return err
	}
	defer st.Close()

	if historyClear {
		if err := st.Clear(historySession); err != nil {
			return err
		}
		logger.Info("history cleared")
		return nil
	}

	limit := historyLimit
	if !cmd.Flags().Changed("limit") {
		limit = cfg.History.Limit
	}
	entries, err := st.History(historySession, limit)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), historyTable(entries))
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	failStyle   = cellStyle.Foreground(lipgloss.Color("9"))
)

func historyTable(entries []store.Entry) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "TIME", "INPUT", "RESULT").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 3 && row >= 0 && row < len(entries) && !entries[row].OK {
				return failStyle
			}
			return cellStyle
		})
	for _, e := range entries {
		result := e.Result
		if !e.OK {
			result = calc.ErrorMarker + " (" + e.Kind + ")"
		}
		t.Row(strconv.FormatInt(e.ID, 10), e.Ts.Local().Format("2006-01-02 15:04:05"), e.Input, result)
	}
	return t.Render()
}

// runFunctions prints the reference, rendered as markdown on a terminal.
func runFunctions(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, stdlib.Functions)
		return nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return err
	}
	rendered, err := renderer.Render(stdlib.Functions)
	if err != nil {
		return err
	}
	fmt.Fprint(out, rendered)
	return nil
}
