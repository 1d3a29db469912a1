package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/whiteboard/internal/app"
	"github.com/runoshun/whiteboard/internal/domain"
	"github.com/runoshun/whiteboard/internal/usecase"
)

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Parent   string
		Context  string
		Project  string
		Tags     []string
		NoTags   []string
		Statuses []string
		Depth    int
		HideDone bool
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `List tasks in outline order, indented by depth.

Tag filters take "key" or "key:" to require the tag, or "key:value"
to require a value. Filters combine with AND.

Examples:
  # Tasks tagged owner:bob that are not done
  whiteboard list --tag owner:bob --hide-done

  # Direct children of task 3 in progress
  whiteboard list --parent 3 --depth 1 --status doing`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := usecase.ListTasksInput{
				ParentID: opts.Parent,
				Context:  opts.Context,
				Project:  opts.Project,
				Tags:     opts.Tags,
				NoTags:   opts.NoTags,
				MaxDepth: opts.Depth,
				HideDone: opts.HideDone,
			}
			for _, spec := range append(append([]string{}, opts.Tags...), opts.NoTags...) {
				if _, err := domain.ParseTagSpec(spec); err != nil {
					return err
				}
			}
			for _, s := range opts.Statuses {
				st := domain.Status(s)
				if st != domain.StatusUnknown {
					var err error
					if st, err = domain.ParseStatus(s); err != nil {
						return err
					}
				}
				in.Statuses = append(in.Statuses, st)
			}
			if opts.Depth < 0 {
				return fmt.Errorf("--depth must not be negative")
			}

			out, err := c.ListTasksUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			printTaskList(cmd.OutOrStdout(), out.Tasks)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Parent, "parent", "", "List below this task")
	cmd.Flags().StringVar(&opts.Context, "context", "", "Require this @context")
	cmd.Flags().StringVar(&opts.Project, "project", "", "Require this +project")
	cmd.Flags().StringArrayVar(&opts.Tags, "tag", nil, "Require a tag (can specify multiple)")
	cmd.Flags().StringArrayVar(&opts.NoTags, "no-tag", nil, "Exclude a tag (can specify multiple)")
	cmd.Flags().StringArrayVar(&opts.Statuses, "status", nil, "Allowed status: new, doing, done or unknown (can specify multiple)")
	cmd.Flags().IntVar(&opts.Depth, "depth", 0, "Deepest level to list, 1 = direct children (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.HideDone, "hide-done", false, "Exclude done tasks")

	return cmd
}

// printTaskList prints tasks in a table with the line indented by depth.
func printTaskList(w io.Writer, tasks []usecase.ListedTask) {
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(w, "No tasks found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tTASK")
	for _, lt := range tasks {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s%s\n",
			displayID(lt.Task),
			lt.Task.Status(),
			strings.Repeat("  ", lt.Depth-1),
			strings.TrimLeft(lt.Task.Line(), " "),
		)
	}
	_ = tw.Flush()
}

// displayID returns the task id, or "-" when the task has none yet.
func displayID(t *domain.Task) string {
	if id, ok := t.PeekID(); ok {
		return id
	}
	return "-"
}

// newBoardCommand creates the board command.
func newBoardCommand(c *app.Container) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show children grouped by status",
		Long: `Show the children of a task, or the top-level tasks, grouped into
status columns: new, unknown, doing and done.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.StatusBoardUseCase().Execute(cmd.Context(), usecase.StatusBoardInput{TaskID: id})
			if err != nil {
				return err
			}
			printBoard(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Show the board of this task")

	return cmd
}

// printBoard prints one section per status column.
func printBoard(w io.Writer, board *usecase.StatusBoardOutput) {
	if !board.Task.IsVirtual() {
		_, _ = fmt.Fprintf(w, "%s\n\n", strings.TrimLeft(board.Task.Line(), " "))
	}
	for i, col := range board.Columns {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintf(w, "%s (%d)\n", col.Status.Display(), len(col.Cards))
		for _, card := range col.Cards {
			progress := ""
			if card.Children > 0 {
				progress = fmt.Sprintf(" [%d/%d]", card.Done, card.Children)
			}
			_, _ = fmt.Fprintf(w, "  %s  %s%s\n", displayID(card.Task), strings.TrimLeft(card.Task.Line(), " "), progress)
		}
	}
}

// newAddCommand creates the add command.
func newAddCommand(c *app.Container) *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "add <line>...",
		Short: "Append a task",
		Long: `Append a task as the last child of a task, or at the top level.
The arguments are joined with spaces to form the task line. The new
task gets an id tag unless the line already has one.

Examples:
  whiteboard add "write docs @desk owner:bob"
  whiteboard add --parent 3 review the draft`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.AddTaskUseCase().Execute(cmd.Context(), usecase.AddTaskInput{
				ParentID: parent,
				Line:     strings.Join(args, " "),
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added task %s\n", out.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "Parent task id (default: top level)")

	return cmd
}

// newStatusCommand creates the status command.
func newStatusCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> [new|doing|done]",
		Short: "Set or advance the status of a task",
		Long: `Set the status of a task. Without a status the task advances one step:
new -> doing -> done -> new.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.SetStatusInput{TaskID: args[0]}
			if len(args) == 2 {
				st, err := domain.ParseStatus(args[1])
				if err != nil {
					return err
				}
				in.Status = st
			}
			out, err := c.SetStatusUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task %s: %s\n", args[0], out.Status.Display())
			return nil
		},
	}
}

// newDoneCommand creates the done command.
func newDoneCommand(c *app.Container) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.CompleteTaskUseCase().Execute(cmd.Context(), usecase.CompleteTaskInput{
				TaskID: args[0],
				Undo:   undo,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task %s: %s\n", args[0], out.Status.Display())
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Reopen the task")

	return cmd
}
