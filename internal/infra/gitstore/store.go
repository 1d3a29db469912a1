// Package gitstore provides a Git plumbing-based implementation of OutlineRepository.
package gitstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/whiteboard/internal/domain"
)

// Store implements domain.OutlineRepository using Git plumbing.
// Every save is a commit on a private ref, so the outline keeps a full
// history without touching branches or the worktree.
//
// Data structure:
//
//	refs/<namespace>/outline → commit
//	  tree
//	    meta.yaml → blob (source, line and task counts)
//	    todo.txt  → blob (outline text)
type Store struct {
	repo      *git.Repository
	clock     domain.Clock
	namespace string // e.g., "whiteboard"
	mu        sync.Mutex
}

const (
	outlineFile = "todo.txt"
	metaFile    = "meta.yaml"
	authorName  = "whiteboard"
	authorEmail = "whiteboard@localhost"
)

// meta describes a revision.
type meta struct {
	Source string `yaml:"source,omitempty"`
	Lines  int    `yaml:"lines"`
	Tasks  int    `yaml:"tasks"`
}

// New opens the repository containing path.
func New(path, namespace string, clock domain.Clock) (*Store, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open git repository: %w", err)
	}
	return NewWithRepo(repo, namespace, clock), nil
}

// NewWithRepo creates a new Store with an existing repository instance.
func NewWithRepo(repo *git.Repository, namespace string, clock domain.Clock) *Store {
	if namespace == "" {
		namespace = domain.DefaultNamespace
	}
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &Store{repo: repo, namespace: namespace, clock: clock}
}

// outlineRef returns the ref name holding the outline history.
func (s *Store) outlineRef() plumbing.ReferenceName {
	return plumbing.ReferenceName(domain.OutlineRef(s.namespace))
}

// Load returns the outline text of the latest revision.
func (s *Store) Load(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text, _, err := s.loadLocked()
	return text, err
}

// Save commits a new revision.
func (s *Store) Save(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, head, err := s.loadLocked()
	if err != nil {
		return err
	}
	return s.commitLocked(ctx, text, head, "Update outline")
}

// Update runs fn on the latest revision and commits the result if it changed.
func (s *Store) Update(ctx context.Context, fn func(text string) (string, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	before, head, err := s.loadLocked()
	if err != nil {
		return err
	}
	after, err := fn(before)
	if err != nil {
		return err
	}
	if after == before {
		return nil
	}
	return s.commitLocked(ctx, after, head, "Update outline")
}

// History returns up to limit revisions, newest first.
func (s *Store) History(_ context.Context, limit int) ([]domain.Revision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	head, err := s.head()
	if err != nil {
		return nil, err
	}

	iter, err := s.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("walk history: %w", err)
	}
	defer iter.Close()

	var revisions []domain.Revision
	err = iter.ForEach(func(c *object.Commit) error {
		if limit > 0 && len(revisions) >= limit {
			return storer.ErrStop
		}
		rev := domain.Revision{
			Hash:    c.Hash.String(),
			Time:    c.Committer.When,
			Message: strings.TrimSpace(c.Message),
		}
		if f, err := c.File(outlineFile); err == nil {
			rev.Size = int(f.Size)
		}
		if m, err := readMeta(c); err == nil {
			rev.Source = m.Source
		}
		revisions = append(revisions, rev)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk history: %w", err)
	}
	return revisions, nil
}

// Revision returns the outline text of a past revision.
func (s *Store) Revision(_ context.Context, hash string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	commit, err := s.repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return "", fmt.Errorf("get revision %s: %w", hash, err)
	}
	return readOutline(commit)
}

// Initialize commits an empty outline if the ref doesn't exist.
// Returns true if the store was created.
func (s *Store) Initialize() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.repo.Reference(s.outlineRef(), true)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, fmt.Errorf("check outline ref: %w", err)
	}

	if err := s.commitLocked(context.Background(), "", nil, "Initialize outline"); err != nil {
		return false, err
	}
	return true, nil
}

// IsInitialized checks if the outline ref exists.
func (s *Store) IsInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.repo.Reference(s.outlineRef(), true)
	return err == nil
}

func (s *Store) head() (*plumbing.Reference, error) {
	ref, err := s.repo.Reference(s.outlineRef(), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, domain.ErrNotInitialized
		}
		return nil, fmt.Errorf("get outline ref: %w", err)
	}
	return ref, nil
}

func (s *Store) loadLocked() (string, *plumbing.Reference, error) {
	ref, err := s.head()
	if err != nil {
		return "", nil, err
	}
	commit, err := s.repo.CommitObject(ref.Hash())
	if err != nil {
		return "", nil, fmt.Errorf("get outline commit: %w", err)
	}
	text, err := readOutline(commit)
	if err != nil {
		return "", nil, err
	}
	return text, ref, nil
}

// commitLocked writes text as a new commit on top of head (nil = root commit).
// The ref is moved with compare-and-swap so a concurrent writer in another
// process is detected instead of overwritten.
func (s *Store) commitLocked(ctx context.Context, text string, head *plumbing.Reference, message string) error {
	parsed := domain.Parse(text, nil)
	tasks := 0
	parsed.Walk(func(t *domain.Task, _ int) bool {
		if !t.IsVirtual() {
			tasks++
		}
		return true
	})
	lines := 0
	if text != "" {
		lines = strings.Count(strings.TrimRight(text, "\n"), "\n") + 1
	}
	metaData, err := yaml.Marshal(meta{Source: domain.SourceFrom(ctx), Lines: lines, Tasks: tasks})
	if err != nil {
		return fmt.Errorf("encode meta: %w", err)
	}

	outlineHash, err := s.writeBlob([]byte(text))
	if err != nil {
		return err
	}
	metaHash, err := s.writeBlob(metaData)
	if err != nil {
		return err
	}

	// Entries must be sorted by name.
	tree := &object.Tree{Entries: []object.TreeEntry{
		{Name: metaFile, Mode: filemode.Regular, Hash: metaHash},
		{Name: outlineFile, Mode: filemode.Regular, Hash: outlineHash},
	}}
	treeHash, err := s.storeObject(tree)
	if err != nil {
		return fmt.Errorf("store tree: %w", err)
	}

	sig := object.Signature{Name: authorName, Email: authorEmail, When: s.clock.Now()}
	commit := &object.Commit{
		Author:    sig,
		Committer: sig,
		Message:   message,
		TreeHash:  treeHash,
	}
	if head != nil {
		commit.ParentHashes = []plumbing.Hash{head.Hash()}
	}
	commitHash, err := s.storeObject(commit)
	if err != nil {
		return fmt.Errorf("store commit: %w", err)
	}

	ref := plumbing.NewHashReference(s.outlineRef(), commitHash)
	if err := s.repo.Storer.CheckAndSetReference(ref, head); err != nil {
		return fmt.Errorf("set outline ref: %w", err)
	}
	return nil
}

type encodable interface {
	Encode(plumbing.EncodedObject) error
}

func (s *Store) storeObject(o encodable) (plumbing.Hash, error) {
	obj := s.repo.Storer.NewEncodedObject()
	if err := o.Encode(obj); err != nil {
		return plumbing.ZeroHash, err
	}
	return s.repo.Storer.SetEncodedObject(obj)
}

func (s *Store) writeBlob(data []byte) (plumbing.Hash, error) {
	obj := s.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(data)))

	writer, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("create blob writer: %w", err)
	}

	if _, writeErr := writer.Write(data); writeErr != nil {
		_ = writer.Close()
		return plumbing.ZeroHash, fmt.Errorf("write blob: %w", writeErr)
	}
	_ = writer.Close()

	hash, err := s.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store blob: %w", err)
	}
	return hash, nil
}

func readOutline(c *object.Commit) (string, error) {
	f, err := c.File(outlineFile)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", outlineFile, err)
	}
	text, err := f.Contents()
	if err != nil {
		return "", fmt.Errorf("read %s: %w", outlineFile, err)
	}
	return text, nil
}

func readMeta(c *object.Commit) (*meta, error) {
	f, err := c.File(metaFile)
	if err != nil {
		return nil, err
	}
	content, err := f.Contents()
	if err != nil {
		return nil, err
	}
	var m meta
	if err := yaml.Unmarshal([]byte(content), &m); err != nil {
		return nil, fmt.Errorf("decode meta: %w", err)
	}
	return &m, nil
}

// Ensure Store implements the ports.
var (
	_ domain.OutlineRepository = (*Store)(nil)
	_ domain.StoreInitializer  = (*Store)(nil)
	_ domain.HistoryReader     = (*Store)(nil)
	_ domain.RevisionReader    = (*Store)(nil)
)
