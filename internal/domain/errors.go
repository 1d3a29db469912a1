package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrVirtualIdentifierAccess = errors.New("virtual task has no identifier")
	ErrMalformedTagSyntax      = errors.New("malformed tag syntax")
	ErrPatchShape              = errors.New("malformed patch document")
	ErrInvalidTagSpec          = errors.New("invalid tag spec")
	ErrNoIDGenerator           = errors.New("task has no identifier generator")
	ErrTaskNotFound            = errors.New("task not found")
	ErrNotInitialized          = errors.New("whiteboard not initialized (run 'whiteboard init' first)")
	ErrNoFieldsToUpdate        = errors.New("no fields to update")
	ErrInvalidStatus           = errors.New("invalid status")
	ErrEmptyLine               = errors.New("line cannot be empty")
	ErrLineBreak               = errors.New("line must not contain a line break")
	ErrBodyIndent              = errors.New("body line is not indented below its task")
	ErrConfigExists            = errors.New("config file already exists")
	ErrUnknownStore            = errors.New("unknown outline store")
	ErrHistoryUnsupported      = errors.New("outline store keeps no history (set [outline] store = \"git\")")
)

// TagSyntaxError reports a tag that cannot be parsed or represented.
type TagSyntaxError struct {
	Line   string // Offending line, empty when formatting a new tag
	Offset int    // Byte offset of the tag key in Line
	Key    string
	Reason string
}

func (e *TagSyntaxError) Error() string {
	if e.Line == "" {
		return fmt.Sprintf("%s: tag %q: %s", ErrMalformedTagSyntax, e.Key, e.Reason)
	}
	return fmt.Sprintf("%s: tag %q at offset %d: %s", ErrMalformedTagSyntax, e.Key, e.Offset, e.Reason)
}

func (e *TagSyntaxError) Unwrap() error {
	return ErrMalformedTagSyntax
}

// PatchShapeError reports a patch field with the wrong JSON type.
// Path locates the field, e.g. "children[2].tags.a".
type PatchShapeError struct {
	Path string
	Err  error
}

func (e *PatchShapeError) Error() string {
	return fmt.Sprintf("%s at %s: %v", ErrPatchShape, e.Path, e.Err)
}

func (e *PatchShapeError) Is(target error) bool {
	return target == ErrPatchShape
}

func (e *PatchShapeError) Unwrap() error {
	return e.Err
}
