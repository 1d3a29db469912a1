package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/runoshun/whiteboard/internal/app"
	"github.com/runoshun/whiteboard/internal/domain"
	"github.com/runoshun/whiteboard/internal/infra/notify"
	"github.com/runoshun/whiteboard/internal/infra/patchschema"
	"github.com/runoshun/whiteboard/internal/infra/watcher"
	"github.com/runoshun/whiteboard/internal/web"
)

// newServeCommand creates the serve command.
func newServeCommand(c *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board over HTTP",
		Long: `Serve the outline as an HTML board and a JSON API.

Connected boards reload when the outline changes, including edits made
to the outline file by other programs while [server] watch is on.

Routes:
  GET  /                      HTML board (?id= for a subtree)
  GET  /api/outline           JSON projection of the outline
  PUT  /api/outline           Apply a patch (?dry_run=true to preview)
  GET  /api/outline.txt       Outline text
  PUT  /api/outline.txt       Replace the outline text
  GET  /api/tasks             Filtered task list
  POST /api/tasks             Append a task
  GET  /api/tasks/:id         JSON projection of a task
  PUT  /api/tasks/:id         Apply a patch to a task
  PUT  /api/tasks/:id/status  Set or advance the status of a task
  GET  /api/board[/:id]       Status columns
  GET  /api/schema            JSON schema of patch documents
  GET  /ws                    Change notifications`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = c.AppConfig.Server.Addr
			}

			stack, err := newServeStack(c)
			if err != nil {
				return err
			}
			defer stack.hub.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on http://%s\n", c.Config.Root, addr)
			return stack.run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from [server] addr)")

	return cmd
}

// serveStack is the set of long-running components behind `serve`.
type serveStack struct {
	server  *web.Server
	hub     *notify.Hub
	watcher *watcher.Watcher // nil when the outline is not watched
}

// newServeStack wires the web server, the websocket hub and the file
// watcher, and routes the container's change notifications to them.
func newServeStack(c *app.Container) (*serveStack, error) {
	cfg := c.AppConfig
	s := &serveStack{hub: notify.NewHub(c.Console)}

	notifiers := notify.Multi{}
	if cfg.Server.Watch && cfg.Outline.Store == domain.StoreFile {
		s.watcher = watcher.New(c.Config.OutlinePath, cfg.Server.Debounce(), s.hub, c.Console)
		// Own writes are recorded first so the watcher does not repeat them
		notifiers = append(notifiers, notify.Func(func(context.Context, domain.Event) { s.watcher.Sync() }))
	}
	c.Notifier = append(notifiers, s.hub)

	server, err := web.NewServer(web.Deps{
		ShowOutline:   c.ShowOutlineUseCase(),
		RenderOutline: c.RenderOutlineUseCase(),
		UpdateOutline: c.UpdateOutlineUseCase(),
		ReplaceText:   c.ReplaceOutlineUseCase(),
		ListTasks:     c.ListTasksUseCase(),
		StatusBoard:   c.StatusBoardUseCase(),
		SetStatus:     c.SetStatusUseCase(),
		AddTask:       c.AddTaskUseCase(),
		Hub:           s.hub,
		Logger:        c.Console,
		TemplatesDir:  cfg.Server.Templates,
		Schema:        patchschema.Schema(),
	})
	if err != nil {
		return nil, err
	}
	s.server = server
	return s, nil
}

// run serves until ctx is canceled or a component fails.
func (s *serveStack) run(ctx context.Context, addr string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.server.Run(gctx, addr)
	})
	if s.watcher != nil {
		g.Go(func() error {
			return s.watcher.Run(gctx)
		})
	}
	return g.Wait()
}
