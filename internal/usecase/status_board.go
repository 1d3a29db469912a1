package usecase

import (
	"context"

	"github.com/runoshun/whiteboard/internal/domain"
	"github.com/runoshun/whiteboard/internal/usecase/shared"
)

// StatusBoardInput contains the parameters for building a board.
type StatusBoardInput struct {
	TaskID string // Task whose children become cards (empty = top level)
}

// BoardCard is a child task placed on the board.
type BoardCard struct {
	Task     *domain.Task
	Children int // Number of direct children
	Done     int // Number of direct children that are done
}

// BoardColumn holds the cards of one status.
type BoardColumn struct {
	Status domain.Status
	Cards  []BoardCard
}

// StatusBoardOutput contains the board.
type StatusBoardOutput struct {
	Task    *domain.Task  // The task the board was built for
	Columns []BoardColumn // One column per status, in board order
}

// StatusBoard is the use case for grouping the children of a task by status.
type StatusBoard struct {
	repo domain.OutlineRepository
	ids  *domain.IDGenerator
}

// NewStatusBoard creates a new StatusBoard use case.
func NewStatusBoard(repo domain.OutlineRepository, ids *domain.IDGenerator) *StatusBoard {
	return &StatusBoard{repo: repo, ids: ids}
}

// Execute builds the board. Every status column is present, even when empty.
func (uc *StatusBoard) Execute(ctx context.Context, in StatusBoardInput) (*StatusBoardOutput, error) {
	root, err := shared.LoadTree(ctx, uc.repo, uc.ids)
	if err != nil {
		return nil, err
	}
	task, err := shared.GetTask(root, in.TaskID)
	if err != nil {
		return nil, err
	}

	grouped := task.ChildrenByStatus()
	out := &StatusBoardOutput{Task: task}
	for _, st := range domain.BoardStatuses() {
		col := BoardColumn{Status: st}
		for _, child := range grouped[st] {
			card := BoardCard{Task: child, Children: len(child.Children())}
			for _, gc := range child.Children() {
				if gc.IsDone() {
					card.Done++
				}
			}
			col.Cards = append(col.Cards, card)
		}
		out.Columns = append(out.Columns, col)
	}
	return out, nil
}
