package tui

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgOutlineLoaded is sent when the outline has been read.
type MsgOutlineLoaded struct {
	Items []taskItem
}

func (MsgOutlineLoaded) sealed() {}

// MsgTaskUpdated is sent after a task was changed.
type MsgTaskUpdated struct {
	TaskID string
}

func (MsgTaskUpdated) sealed() {}

// MsgTaskAdded is sent after a task was appended.
type MsgTaskAdded struct {
	TaskID string
}

func (MsgTaskAdded) sealed() {}

// MsgReloadOutline asks the model to read the outline again,
// e.g. after the file changed on disk.
type MsgReloadOutline struct{}

func (MsgReloadOutline) sealed() {}

// MsgError is sent when an operation fails.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}

// MsgClearError clears the error line.
type MsgClearError struct{}

func (MsgClearError) sealed() {}
