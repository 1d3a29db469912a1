package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/whiteboard/internal/app"
	"github.com/runoshun/whiteboard/internal/domain"
	"github.com/runoshun/whiteboard/internal/infra/textdiff"
	"github.com/runoshun/whiteboard/internal/usecase"
)

// shortHashLen is the number of hash characters shown in listings.
const shortHashLen = 8

// newHistoryCommand creates the history command.
func newHistoryCommand(c *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past revisions of the outline",
		Long: `List past revisions of the outline, newest first.

Only the git store keeps history; set [outline] store = "git".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.OutlineHistoryUseCase().Execute(cmd.Context(), usecase.OutlineHistoryInput{Limit: limit})
			if err != nil {
				return err
			}
			if !out.Supported {
				return domain.ErrHistoryUnsupported
			}
			printRevisions(cmd.OutOrStdout(), out.Revisions)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of revisions (0 = all)")
	cmd.AddCommand(newHistoryShowCommand(c))

	return cmd
}

func printRevisions(w io.Writer, revs []domain.Revision) {
	if len(revs) == 0 {
		_, _ = fmt.Fprintln(w, "No revisions found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "REVISION\tTIME\tSOURCE\tSIZE\tMESSAGE")
	for _, r := range revs {
		source := r.Source
		if source == "" {
			source = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			shortHash(r.Hash),
			r.Time.Local().Format("2006-01-02 15:04:05"),
			source,
			r.Size,
			r.Message,
		)
	}
	_ = tw.Flush()
}

func shortHash(hash string) string {
	if len(hash) > shortHashLen {
		return hash[:shortHashLen]
	}
	return hash
}

// newHistoryShowCommand creates the history show subcommand.
func newHistoryShowCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Color string
		Diff  bool
	}

	cmd := &cobra.Command{
		Use:   "show <revision>",
		Short: "Print a past revision",
		Long: `Print the outline text of a past revision. The revision may be
abbreviated to any unique prefix.

With --diff, print the changes from that revision to the current outline.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := resolveRevision(cmd, c, args[0])
			if err != nil {
				return err
			}
			out, err := c.ShowRevisionUseCase().Execute(cmd.Context(), usecase.ShowRevisionInput{Hash: hash})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if !opts.Diff {
				_, _ = io.WriteString(w, out.Text)
				return nil
			}
			diff := textdiff.Unified(outlineName(c), out.Text, out.Current, diffContext)
			if diff == "" {
				_, _ = fmt.Fprintln(w, "No changes since this revision")
				return nil
			}
			color, err := useColor(w, opts.Color)
			if err != nil {
				return err
			}
			return writeDiff(w, diff, color)
		},
	}

	cmd.Flags().BoolVar(&opts.Diff, "diff", false, "Show changes from the revision to the current outline")
	cmd.Flags().StringVar(&opts.Color, "color", colorAuto, "Colorize the diff: auto, always or never")

	return cmd
}

// resolveRevision expands a hash prefix to the full hash of a revision.
func resolveRevision(cmd *cobra.Command, c *app.Container, prefix string) (string, error) {
	out, err := c.OutlineHistoryUseCase().Execute(cmd.Context(), usecase.OutlineHistoryInput{})
	if err != nil {
		return "", err
	}
	if !out.Supported {
		return "", domain.ErrHistoryUnsupported
	}

	var matches []string
	for _, r := range out.Revisions {
		if strings.HasPrefix(r.Hash, prefix) {
			matches = append(matches, r.Hash)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("revision %q not found", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("revision %q is ambiguous (%d matches)", prefix, len(matches))
	}
}
