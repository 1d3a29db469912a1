package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestToJSON_ConcreteTask(t *testing.T) {
	projected, err := ToJSON(NewTask("foo id:1", NewIDGenerator()))
	require.NoError(t, err)

	data, err := json.Marshal(projected)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"line": "foo id:1",
		"id": "1",
		"is_done": false,
		"status": "new",
		"contexts": [],
		"projects": [],
		"tags": {"id": "1"},
		"children": []
	}`, string(data))
}

func TestToJSON_Attributes(t *testing.T) {
	projected, err := ToJSON(NewTask("x foo @context tag:value, +project id:1 status:doing", NewIDGenerator()))
	require.NoError(t, err)

	assert.Equal(t, "x foo @context tag:value, +project id:1 status:doing", projected.Line)
	assert.Equal(t, "1", projected.ID)
	assert.True(t, projected.IsDone)
	assert.Equal(t, StatusDoing, projected.Status)
	assert.Equal(t, []string{"context"}, projected.Contexts)
	assert.Equal(t, []string{"project"}, projected.Projects)
	assert.Equal(t, map[string]string{"tag": "value", "id": "1", "status": "doing"}, projected.Tags)

	done, err := ToJSON(NewTask("foo status:done", NewIDGenerator()))
	require.NoError(t, err)
	assert.True(t, done.IsDone)
}

func TestToJSON_VirtualTask(t *testing.T) {
	root := Parse("    preamble\na id:1", NewIDGenerator())

	projected, err := ToJSON(root)
	require.NoError(t, err)
	data, err := json.Marshal(projected)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Len(t, got, 2)
	assert.Equal(t, "    preamble", got["body"])
	children := got["children"].([]any)
	require.Len(t, children, 1)
	assert.Equal(t, "a id:1", children[0].(map[string]any)["line"])
}

func TestToJSON_NestedLine(t *testing.T) {
	parent := Parse("parent id:1\n    child id:2", NewIDGenerator())

	projected, err := ToJSON(parent)

	require.NoError(t, err)
	require.Len(t, projected.Children, 1)
	assert.Equal(t, "    child id:2", projected.Children[0].Line)
}

func TestToJSON_MintsMissingIDs(t *testing.T) {
	root := Parse("a\nb", NewIDGenerator())

	projected, err := ToJSON(root)

	require.NoError(t, err)
	assert.Equal(t, "-1", projected.Children[0].ID)
	assert.Equal(t, "-2", projected.Children[1].ID)
	assert.Equal(t, "a id:-1\nb id:-2", Render(root))
}

func TestToJSON_EmptyBodySurvivesRoundTrip(t *testing.T) {
	ids := NewIDGenerator()
	task := Parse("a id:1\n\n    b id:2", ids)

	projected, err := ToJSON(task)
	require.NoError(t, err)
	require.NotNil(t, projected.Body)
	assert.Equal(t, "", *projected.Body)

	data, err := json.Marshal(projected)
	require.NoError(t, err)
	patch, err := DecodePatch(data)
	require.NoError(t, err)

	recreated := NewVirtualTask(ids)
	require.NoError(t, ApplyJSON(recreated, patch))
	assert.Equal(t, Render(task), Render(recreated))
}

func TestTaskJSON_MarshalYAML(t *testing.T) {
	root := Parse("a id:1\nb id:2", NewIDGenerator())
	projected, err := ToJSON(root)
	require.NoError(t, err)

	data, err := yaml.Marshal(projected)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.NotContains(t, got, "line")
	children := got["children"].([]any)
	require.Len(t, children, 2)
	assert.Equal(t, "b id:2", children[1].(map[string]any)["line"])
}
