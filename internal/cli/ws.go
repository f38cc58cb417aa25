package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"studiodash/internal/i18n"
	"studiodash/internal/notify"
	"studiodash/internal/workspace"
)

// ErrWorkspaceNotFound is returned when a key is not in the caller's list.
var ErrWorkspaceNotFound = errors.New("workspace not found")

func newWSCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ws",
		Short: "List and manage workspaces without the dashboard",
	}
	cmd.AddCommand(
		newWSListCommand(),
		newWSActionCommand("stop", "Stop a running workspace", workspace.ActionStop),
		newWSActionCommand("delete", "Move a workspace to the recycle bin", workspace.ActionDelete),
		newWSActionCommand("restore", "Restore a deleted workspace", workspace.ActionRestore),
		newWSOpenCommand(),
	)
	return cmd
}

func newWSListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your workspaces",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := getEnv(cmd)
			if err != nil {
				return err
			}
			client, err := e.client()
			if err != nil {
				return err
			}
			listing, err := client.ListWorkspaces(cmd.Context())
			if err != nil {
				return err
			}
			cards := listing.Cards(e.cfg.GlobalKey)
			if len(cards) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), e.tr.T("ws.empty"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderCards(cards, e.tr, time.Now()))
			return nil
		},
	}
}

// renderCards lays cards out as a bordered table.
func renderCards(cards []workspace.Card, tr i18n.Translator, now time.Time) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("KEY", "WORKSPACE", "STATUS", "ACTIONS", "UPDATED")
	for _, c := range cards {
		status := string(c.WorkingStatus)
		if c.OpenedSpaceKey == c.SpaceKey {
			status += " (open)"
		}
		if c.Collaborative {
			status += ", " + tr.T("global.collaborating")
		}
		t.Row(c.SpaceKey, c.Title(), status, strings.Join(allowedActions(c), " "), c.Description(tr, now))
	}
	return t.Render()
}

func allowedActions(c workspace.Card) []string {
	var out []string
	for _, a := range []workspace.Action{workspace.ActionStop, workspace.ActionDelete, workspace.ActionRestore} {
		if c.Allows(a) {
			out = append(out, a.String())
		}
	}
	if len(out) == 0 {
		return []string{"-"}
	}
	return out
}

func newWSActionCommand(use, short string, action workspace.Action) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   use + " <key>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newWorkflowRun(cmd, args[0], yes, nil)
			if err != nil {
				return err
			}
			defer r.wf.Dispose()
			if err := r.wf.Request(action); err != nil {
				return fmt.Errorf("%s %s: %w", use, args[0], err)
			}
			return r.finish()
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm without prompting")
	return cmd
}

func newWSOpenCommand() *cobra.Command {
	var (
		yes       bool
		printOnly bool
	)
	cmd := &cobra.Command{
		Use:   "open <key>",
		Short: "Open a workspace in the browser",
		Long: `Open a workspace in the browser. If another workspace is already open,
you are asked to stop it first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opener workspace.Opener
			if printOnly {
				opener = printOpener{w: cmd.OutOrStdout()}
			}
			r, err := newWorkflowRun(cmd, args[0], yes, opener)
			if err != nil {
				return err
			}
			defer r.wf.Dispose()
			nav, err := r.wf.Activate()
			if err != nil {
				return err
			}
			if nav.Kind == workspace.NavNone {
				return fmt.Errorf("workspace %s is deleted; restore it first", args[0])
			}
			return r.finish()
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Stop the open workspace without prompting")
	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the URL instead of launching a browser")
	return cmd
}

// workflowRun drives one card workflow from the command line.
type workflowRun struct {
	wf    *workspace.Workflow
	mask  *promptMask
	notes *notify.Recorder
	out   io.Writer
}

func newWorkflowRun(cmd *cobra.Command, key string, yes bool, opener workspace.Opener) (*workflowRun, error) {
	e, err := getEnv(cmd)
	if err != nil {
		return nil, err
	}
	client, err := e.client()
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	listing, err := client.ListWorkspaces(ctx)
	if err != nil {
		return nil, err
	}
	card, ok := findCard(listing.Cards(e.cfg.GlobalKey), key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWorkspaceNotFound, key)
	}
	if opener == nil {
		opener = newBrowserOpener(ctx, e.log)
	}

	r := &workflowRun{
		mask:  newPromptMask(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), yes),
		notes: &notify.Recorder{},
		out:   cmd.OutOrStdout(),
	}
	r.wf = workspace.NewWorkflow(card, workspace.Deps{
		API:        client,
		Notifier:   r.notes,
		Mask:       r.mask,
		Opener:     opener,
		Translator: e.tr,
		Navigator:  e.navigator(),
		Logger:     e.log,
	})
	return r, nil
}

// finish prints informational notifications and returns the action's error.
// Error notifications are not printed: the same error is returned.
func (r *workflowRun) finish() error {
	for _, n := range r.notes.Items {
		if !n.IsError() {
			fmt.Fprintln(r.out, n.Message)
		}
	}
	if r.mask.cancelled {
		fmt.Fprintln(r.out, "cancelled")
		return nil
	}
	return r.mask.err
}

func findCard(cards []workspace.Card, key string) (workspace.Card, bool) {
	for _, c := range cards {
		if c.SpaceKey == key {
			return c, true
		}
	}
	return workspace.Card{}, false
}

// promptMask is a workspace.Mask for a line-oriented terminal. It asks on
// ShowMask and runs the action before returning.
type promptMask struct {
	ctx context.Context
	in  *bufio.Reader
	out io.Writer
	yes bool

	cancelled bool
	err       error
}

func newPromptMask(ctx context.Context, in io.Reader, out io.Writer, yes bool) *promptMask {
	return &promptMask{ctx: ctx, in: bufio.NewReader(in), out: out, yes: yes}
}

// ShowMask implements workspace.Mask.
func (m *promptMask) ShowMask(a workspace.ConfirmAction) {
	fmt.Fprintf(m.out, "%s\n%s\n", a.Title, a.Message)
	if !m.yes && !m.ask(a.ConfirmText) {
		m.cancelled = true
		a.OnCancel()
		return
	}
	fmt.Fprintln(m.out, a.PendingText)
	m.err = a.OnConfirm(m.ctx)
}

// HideMask implements workspace.Mask. Nothing stays on screen.
func (m *promptMask) HideMask() {}

func (m *promptMask) ask(confirm string) bool {
	fmt.Fprintf(m.out, "%s? [y/N] ", confirm)
	line, err := m.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(m.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
