// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/runoshun/whiteboard/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockOutlineRepository is a test double for domain.OutlineRepository.
// Fields are ordered to minimize memory padding.
type MockOutlineRepository struct {
	LoadErr     error
	SaveErr     error
	HistoryErr  error
	Revisions   []domain.Revision
	Sources     []string // Source recorded in ctx for each save
	Text        string
	SaveCount   int
	mu          sync.Mutex
	Initialized bool
}

// NewMockOutlineRepository creates an initialized repository holding text.
func NewMockOutlineRepository(text string) *MockOutlineRepository {
	return &MockOutlineRepository{Text: text, Initialized: true}
}

// Load returns the stored text.
func (m *MockOutlineRepository) Load(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return "", m.LoadErr
	}
	if !m.Initialized {
		return "", domain.ErrNotInitialized
	}
	return m.Text, nil
}

// Save stores text.
func (m *MockOutlineRepository) Save(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked(ctx, text)
}

// Update applies fn to the stored text. Like the real stores it does not
// save unchanged text.
func (m *MockOutlineRepository) Update(ctx context.Context, fn func(string) (string, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return m.LoadErr
	}
	if !m.Initialized {
		return domain.ErrNotInitialized
	}
	after, err := fn(m.Text)
	if err != nil {
		return err
	}
	if strings.TrimRight(after, "\n") == strings.TrimRight(m.Text, "\n") {
		return nil
	}
	return m.saveLocked(ctx, after)
}

func (m *MockOutlineRepository) saveLocked(ctx context.Context, text string) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if !m.Initialized {
		return domain.ErrNotInitialized
	}
	m.Text = text
	m.SaveCount++
	m.Sources = append(m.Sources, domain.SourceFrom(ctx))
	return nil
}

// Initialize marks the repository as created.
func (m *MockOutlineRepository) Initialize() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Initialized {
		return false, nil
	}
	m.Initialized = true
	return true, nil
}

// MockHistoryRepository adds domain.HistoryReader and domain.RevisionReader
// to MockOutlineRepository.
type MockHistoryRepository struct {
	*MockOutlineRepository
	Texts map[string]string // Revision text by hash
}

// Revision returns the text stored for hash.
func (m *MockHistoryRepository) Revision(_ context.Context, hash string) (string, error) {
	text, ok := m.Texts[hash]
	if !ok {
		return "", fmt.Errorf("revision %s not found", hash)
	}
	return text, nil
}

// History returns the configured revisions, limited to limit.
func (m *MockHistoryRepository) History(_ context.Context, limit int) ([]domain.Revision, error) {
	if m.HistoryErr != nil {
		return nil, m.HistoryErr
	}
	revs := m.Revisions
	if limit > 0 && len(revs) > limit {
		revs = revs[:limit]
	}
	return revs, nil
}

// MockNotifier records notified events.
type MockNotifier struct {
	Events []domain.Event
	mu     sync.Mutex
}

// Notify records ev.
func (m *MockNotifier) Notify(_ context.Context, ev domain.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, ev)
}

// Count returns the number of recorded events.
func (m *MockNotifier) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Events)
}

// MockPatchValidator is a test double for domain.PatchValidator.
type MockPatchValidator struct {
	Err   error
	Calls int
}

// Validate returns the configured error.
func (m *MockPatchValidator) Validate(_ []byte) error {
	m.Calls++
	return m.Err
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config       *domain.Config
	GlobalConfig *domain.Config
	LoadErr      error
}

// NewMockConfigLoader creates a loader returning the default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{Config: domain.NewDefaultConfig()}
}

// Load returns the configured config.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// LoadGlobal returns the configured global config.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.GlobalConfig == nil {
		return domain.NewDefaultConfig(), nil
	}
	return m.GlobalConfig, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
type MockConfigManager struct {
	InitErr           error
	ProjectInfo       domain.ConfigInfo
	GlobalInfo        domain.ConfigInfo
	InitProjectCalled bool
	InitGlobalCalled  bool
}

// GetProjectConfigInfo returns the configured info.
func (m *MockConfigManager) GetProjectConfigInfo() domain.ConfigInfo {
	return m.ProjectInfo
}

// GetGlobalConfigInfo returns the configured info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalInfo
}

// InitProjectConfig records the call.
func (m *MockConfigManager) InitProjectConfig(_ *domain.Config) error {
	m.InitProjectCalled = true
	return m.InitErr
}

// InitGlobalConfig records the call.
func (m *MockConfigManager) InitGlobalConfig(_ *domain.Config) error {
	m.InitGlobalCalled = true
	return m.InitErr
}

// MockLogger records log lines as "LEVEL scope category: msg".
type MockLogger struct {
	Lines []string
	mu    sync.Mutex
}

func (m *MockLogger) add(level, taskID, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lines = append(m.Lines, level+" "+domain.LogScope(taskID)+" "+category+": "+msg)
}

// Info records an info line.
func (m *MockLogger) Info(taskID, category, msg string) { m.add("INFO", taskID, category, msg) }

// Debug records a debug line.
func (m *MockLogger) Debug(taskID, category, msg string) { m.add("DEBUG", taskID, category, msg) }

// Warn records a warning line.
func (m *MockLogger) Warn(taskID, category, msg string) { m.add("WARN", taskID, category, msg) }

// Error records an error line.
func (m *MockLogger) Error(taskID, category, msg string) { m.add("ERROR", taskID, category, msg) }

// Ensure mocks implement the ports.
var (
	_ domain.OutlineRepository = (*MockOutlineRepository)(nil)
	_ domain.StoreInitializer  = (*MockOutlineRepository)(nil)
	_ domain.HistoryReader     = (*MockHistoryRepository)(nil)
	_ domain.RevisionReader    = (*MockHistoryRepository)(nil)
	_ domain.Notifier          = (*MockNotifier)(nil)
	_ domain.PatchValidator    = (*MockPatchValidator)(nil)
	_ domain.ConfigLoader      = (*MockConfigLoader)(nil)
	_ domain.ConfigManager     = (*MockConfigManager)(nil)
	_ domain.Logger            = (*MockLogger)(nil)
)
