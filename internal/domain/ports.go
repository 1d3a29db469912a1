package domain

import (
	"context"
	"time"
)

// StoreInitializer initializes the outline storage.
type StoreInitializer interface {
	// Initialize creates the store if it doesn't exist.
	// Returns true if the store was created, false if it already existed.
	Initialize() (bool, error)
}

// OutlineRepository loads and saves the outline text.
// Implementations serialize concurrent writers.
type OutlineRepository interface {
	// Load returns the current outline text.
	// Returns ErrNotInitialized if the store has not been created.
	Load(ctx context.Context) (string, error)

	// Save replaces the outline text.
	Save(ctx context.Context, text string) error

	// Update passes the current text to fn and saves what fn returns,
	// holding the store lock throughout. Nothing is saved when fn fails
	// or returns the text unchanged.
	Update(ctx context.Context, fn func(text string) (string, error)) error
}

// HistoryReader lists past revisions of the outline.
type HistoryReader interface {
	// History returns up to limit revisions, newest first (0 = no limit).
	History(ctx context.Context, limit int) ([]Revision, error)
}

// RevisionReader reads a past revision of the outline.
type RevisionReader interface {
	Revision(ctx context.Context, hash string) (string, error)
}

// Revision is a stored version of the outline.
type Revision struct {
	Time    time.Time `json:"time" yaml:"time"`
	Hash    string    `json:"hash" yaml:"hash"`
	Message string    `json:"message" yaml:"message"`
	Source  string    `json:"source,omitempty" yaml:"source,omitempty"`
	Size    int       `json:"size" yaml:"size"`
}

// EventType identifies a change notification.
type EventType string

// Event types.
const (
	EventOutlineChanged EventType = "outline_changed" // Saved through whiteboard
	EventExternalEdit   EventType = "external_edit"   // Outline file changed on disk
)

// Event is broadcast to connected clients after the outline changed.
type Event struct {
	Time   time.Time `json:"time"`
	Type   EventType `json:"type"`
	TaskID string    `json:"task_id,omitempty"`
	Source string    `json:"source,omitempty"`
}

// Notifier broadcasts change events.
type Notifier interface {
	Notify(ctx context.Context, ev Event)
}

// PatchValidator checks a raw patch document before it is decoded.
type PatchValidator interface {
	Validate(data []byte) error
}

// Logger writes operational log lines.
// taskID is empty for messages that are not about a single task.
type Logger interface {
	Info(taskID, category, msg string)
	Debug(taskID, category, msg string)
	Warn(taskID, category, msg string)
	Error(taskID, category, msg string)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (project + global).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// GetProjectConfigInfo returns information about the project config file.
	GetProjectConfigInfo() ConfigInfo
	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo
	// InitProjectConfig writes the commented template to the project config file.
	// Returns ErrConfigExists if the file is already there.
	InitProjectConfig(cfg *Config) error
	// InitGlobalConfig writes the commented template to the global config file.
	InitGlobalConfig(cfg *Config) error
}
