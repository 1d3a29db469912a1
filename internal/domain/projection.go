package domain

import (
	"encoding/json"
	"fmt"
)

// TaskJSON is the JSON projection of a task tree.
// A virtual task serializes as {body, children}; a concrete task carries its
// line and derived attributes as well. Body is nil when the task has none.
type TaskJSON struct {
	Line     string            `json:"line" yaml:"line"`
	ID       string            `json:"id" yaml:"id"`
	Body     *string           `json:"body,omitempty" yaml:"body,omitempty"`
	IsDone   bool              `json:"is_done" yaml:"is_done"`
	Status   Status            `json:"status" yaml:"status"`
	Contexts []string          `json:"contexts" yaml:"contexts"`
	Projects []string          `json:"projects" yaml:"projects"`
	Tags     map[string]string `json:"tags" yaml:"tags"`
	Children []*TaskJSON       `json:"children" yaml:"children"`
	Virtual  bool              `json:"-" yaml:"-"`
}

type virtualTaskJSON struct {
	Body     *string     `json:"body,omitempty" yaml:"body,omitempty"`
	Children []*TaskJSON `json:"children" yaml:"children"`
}

type concreteTaskJSON TaskJSON

// MarshalJSON drops the concrete-only fields of a virtual task.
func (j *TaskJSON) MarshalJSON() ([]byte, error) {
	if j.Virtual {
		return json.Marshal(virtualTaskJSON{Body: j.Body, Children: j.Children})
	}
	return json.Marshal((*concreteTaskJSON)(j))
}

// MarshalYAML mirrors MarshalJSON for YAML encoders.
func (j *TaskJSON) MarshalYAML() (any, error) {
	if j.Virtual {
		return virtualTaskJSON{Body: j.Body, Children: j.Children}, nil
	}
	return (*concreteTaskJSON)(j), nil
}

// ToJSON projects a task tree. Concrete tasks without an id get one minted.
func ToJSON(t *Task) (*TaskJSON, error) {
	out := &TaskJSON{Children: make([]*TaskJSON, 0, len(t.children))}
	if body, ok := t.Body(); ok {
		out.Body = &body
	}
	if t.IsVirtual() {
		out.Virtual = true
	} else {
		id, err := t.ID()
		if err != nil {
			return nil, fmt.Errorf("project task: %w", err)
		}
		out.ID = id
		out.Line = t.Line()
		out.IsDone = t.IsDone()
		out.Status = t.Status()
		out.Contexts = t.Contexts()
		out.Projects = t.Projects()
		out.Tags = t.Tags()
	}
	for _, c := range t.children {
		cj, err := ToJSON(c)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, cj)
	}
	return out, nil
}
