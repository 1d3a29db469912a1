// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/runoshun/whiteboard/internal/domain"
	"github.com/runoshun/whiteboard/internal/infra/config"
	"github.com/runoshun/whiteboard/internal/infra/filestore"
	"github.com/runoshun/whiteboard/internal/infra/git"
	"github.com/runoshun/whiteboard/internal/infra/gitstore"
	"github.com/runoshun/whiteboard/internal/infra/logging"
	"github.com/runoshun/whiteboard/internal/infra/notify"
	"github.com/runoshun/whiteboard/internal/infra/patchschema"
	"github.com/runoshun/whiteboard/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	Root        string // Project directory
	DataDir     string // Path to the .whiteboard directory
	OutlinePath string // Path to the outline file (file store)
	GitRoot     string // Enclosing git worktree, empty outside git
}

// newConfig creates a new Config for a located project.
func newConfig(p git.Project, appConfig *domain.Config) Config {
	return Config{
		Root:        p.Root,
		DataDir:     domain.ProjectDir(p.Root),
		OutlinePath: appConfig.OutlinePath(p.Root),
		GitRoot:     p.GitRoot,
	}
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Outline          domain.OutlineRepository
	StoreInitializer domain.StoreInitializer
	Clock            domain.Clock
	Validator        domain.PatchValidator
	Notifier         domain.Notifier
	Logger           domain.Logger
	ConfigLoader     domain.ConfigLoader
	ConfigManager    domain.ConfigManager

	// Pointer fields
	IDs       *domain.IDGenerator
	Console   *slog.Logger
	AppConfig *domain.Config

	// Configuration
	Config Config
}

// New creates a new Container for the project containing dir.
func New(dir string) (*Container, error) {
	project, err := git.Locate(dir)
	if err != nil {
		return nil, err
	}
	dataDir := domain.ProjectDir(project.Root)

	configLoader := config.NewLoader(dataDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := newConfig(project, appConfig)

	validator, err := patchschema.New()
	if err != nil {
		return nil, err
	}

	level := logging.ParseLevel(appConfig.Log.Level)
	c := &Container{
		Clock:         domain.RealClock{},
		Validator:     validator,
		Notifier:      notify.Nop{},
		Logger:        logging.New(dataDir, level),
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(dataDir),
		IDs:           domain.NewIDGenerator(),
		Console:       logging.NewConsole(os.Stderr, level),
		AppConfig:     appConfig,
		Config:        cfg,
	}
	if err := c.openStore(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, outline domain.OutlineRepository, storeInit domain.StoreInitializer, clock domain.Clock, logger domain.Logger) *Container {
	return &Container{
		Outline:          outline,
		StoreInitializer: storeInit,
		Clock:            clock,
		Notifier:         notify.Nop{},
		Logger:           logger,
		IDs:              domain.NewIDGenerator(),
		Console:          slog.New(slog.DiscardHandler),
		AppConfig:        domain.NewDefaultConfig(),
		Config:           cfg,
	}
}

// openStore binds the outline store selected by the configuration.
func (c *Container) openStore() error {
	switch c.AppConfig.Outline.Store {
	case domain.StoreGit:
		dir := c.Config.GitRoot
		if dir == "" {
			dir = c.Config.Root
		}
		store, err := gitstore.New(dir, c.AppConfig.Outline.Namespace, c.Clock)
		if err != nil {
			return err
		}
		c.Outline = store
		c.StoreInitializer = store
	case domain.StoreFile, "":
		store := filestore.New(c.Config.OutlinePath)
		c.Outline = store
		c.StoreInitializer = store
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownStore, c.AppConfig.Outline.Store)
	}
	return nil
}

// UseOutlineFile switches to the plain file store at path.
// The configured store is ignored from then on.
func (c *Container) UseOutlineFile(path string) {
	store := filestore.New(path)
	c.Config.OutlinePath = path
	c.AppConfig.Outline.Store = domain.StoreFile
	c.Outline = store
	c.StoreInitializer = store
}

// SetConsoleOutput redirects console log lines to w.
func (c *Container) SetConsoleOutput(w io.Writer) {
	c.Console = logging.NewConsole(w, logging.ParseLevel(c.AppConfig.Log.Level))
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if l, ok := c.Logger.(io.Closer); ok {
		return l.Close()
	}
	return nil
}

// UseCase factory methods

// InitOutlineUseCase returns a new InitOutline use case.
func (c *Container) InitOutlineUseCase() *usecase.InitOutline {
	return usecase.NewInitOutline(c.StoreInitializer)
}

// ShowOutlineUseCase returns a new ShowOutline use case.
func (c *Container) ShowOutlineUseCase() *usecase.ShowOutline {
	return usecase.NewShowOutline(c.Outline, c.IDs)
}

// RenderOutlineUseCase returns a new RenderOutline use case.
func (c *Container) RenderOutlineUseCase() *usecase.RenderOutline {
	return usecase.NewRenderOutline(c.Outline, c.IDs)
}

// UpdateOutlineUseCase returns a new UpdateOutline use case.
func (c *Container) UpdateOutlineUseCase() *usecase.UpdateOutline {
	return usecase.NewUpdateOutline(c.Outline, c.IDs, c.Validator, c.Notifier, c.Clock, c.Logger)
}

// ReplaceOutlineUseCase returns a new ReplaceOutline use case.
func (c *Container) ReplaceOutlineUseCase() *usecase.ReplaceOutline {
	return usecase.NewReplaceOutline(c.Outline, c.Notifier, c.Clock, c.Logger)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Outline, c.IDs)
}

// StatusBoardUseCase returns a new StatusBoard use case.
func (c *Container) StatusBoardUseCase() *usecase.StatusBoard {
	return usecase.NewStatusBoard(c.Outline, c.IDs)
}

// SetStatusUseCase returns a new SetStatus use case.
func (c *Container) SetStatusUseCase() *usecase.SetStatus {
	return usecase.NewSetStatus(c.Outline, c.IDs, c.Notifier, c.Clock, c.Logger)
}

// CompleteTaskUseCase returns a new CompleteTask use case.
func (c *Container) CompleteTaskUseCase() *usecase.CompleteTask {
	return usecase.NewCompleteTask(c.SetStatusUseCase())
}

// AddTaskUseCase returns a new AddTask use case.
func (c *Container) AddTaskUseCase() *usecase.AddTask {
	return usecase.NewAddTask(c.Outline, c.IDs, c.Notifier, c.Clock, c.Logger)
}

// AssignIDsUseCase returns a new AssignIDs use case.
func (c *Container) AssignIDsUseCase() *usecase.AssignIDs {
	return usecase.NewAssignIDs(c.Outline, c.IDs, c.Notifier, c.Clock)
}

// OutlineHistoryUseCase returns a new OutlineHistory use case.
func (c *Container) OutlineHistoryUseCase() *usecase.OutlineHistory {
	return usecase.NewOutlineHistory(c.Outline)
}

// ShowRevisionUseCase returns a new ShowRevision use case.
func (c *Container) ShowRevisionUseCase() *usecase.ShowRevision {
	return usecase.NewShowRevision(c.Outline)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}
