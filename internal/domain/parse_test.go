package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(ls ...string) string {
	return strings.Join(ls, "\n")
}

func TestParse_Empty(t *testing.T) {
	for _, text := range []string{"", "\n\n", "   \n\t\n    "} {
		root := Parse(text, NewIDGenerator())

		assert.True(t, root.IsVirtual(), "text %q", text)
		assert.Empty(t, root.Children())
		assert.False(t, root.HasBody())
		assert.Equal(t, "", Render(root))
	}
}

func TestParse_SingleLineCollapses(t *testing.T) {
	root := Parse("I am a simple todo item id:1", NewIDGenerator())

	assert.False(t, root.IsVirtual())
	assert.Equal(t, "I am a simple todo item id:1", root.Line())
	assert.Equal(t, "I am a simple todo item id:1", Render(root))
}

func TestParseRoot_KeepsVirtualRoot(t *testing.T) {
	root := ParseRoot("only task", nil)

	assert.True(t, root.IsVirtual())
	require.Len(t, root.Children(), 1)
	assert.Equal(t, "only task", root.Children()[0].Line())
	assert.Equal(t, "only task", Render(root))
}

func TestParse_MultipleTopLevelTasks(t *testing.T) {
	// Setup
	text := lines(
		"first id:1",
		"x second id:2",
		"third id:2346 sprint:'fnordy fnord roughnecks'",
	)

	// Execute
	root := Parse("\n"+text+"\n", NewIDGenerator())

	// Assert
	require.True(t, root.IsVirtual())
	require.Len(t, root.Children(), 3)
	assert.Equal(t, "first id:1", root.Children()[0].Line())
	assert.True(t, root.Children()[1].IsDone())
	assert.Equal(t, map[string]string{"id": "2346", "sprint": "fnordy fnord roughnecks"}, root.Children()[2].Tags())
	assert.Equal(t, text, Render(root))
}

func TestParse_SubTasks(t *testing.T) {
	text := lines(
		"first",
		"    x second",
		"        third id:2346 sprint:'fnordy fnord roughnecks'",
		"    fourth +project1",
	)

	parent := Parse(text, NewIDGenerator())

	assert.Equal(t, "first", parent.Line())
	require.Len(t, parent.Children(), 2)
	second := parent.Children()[0]
	assert.True(t, second.IsDone())
	require.Len(t, second.Children(), 1)
	assert.Equal(t, map[string]string{"id": "2346", "sprint": "fnordy fnord roughnecks"}, second.Children()[0].Tags())
	assert.Equal(t, []string{"project1"}, parent.Children()[1].Projects())
	assert.Equal(t, text, Render(parent))
}

func TestParse_Bodies(t *testing.T) {
	tests := []struct {
		name string
		text string
		body string
	}{
		{"double indented body", "task\n        double indented body", "        double indented body"},
		{"body eats empty lines", "task\n        body\n\n        eats empty lines", "        body\n\n        eats empty lines"},
		{"body eats whitespace lines", "task\n        body\n    \n            \n        eats whitespace lines", "        body\n    \n            \n        eats whitespace lines"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Parse(tt.text, NewIDGenerator())

			assert.Equal(t, "task", task.Line())
			body, ok := task.Body()
			assert.True(t, ok)
			assert.Equal(t, tt.body, body)
			assert.Equal(t, tt.text, Render(task))
		})
	}
}

func TestParse_EmptyLinesAttachToPrecedingTask(t *testing.T) {
	text := lines(
		"foo id:1",
		"    bar id:2",
		"",
		"    baz id:3",
		"",
		"quoox id:4",
	)

	root := Parse(text, NewIDGenerator())

	require.Len(t, root.Children(), 2)
	foo := root.Children()[0]
	assert.Equal(t, "foo id:1", foo.Line())
	require.Len(t, foo.Children(), 2)

	bar := foo.Children()[0]
	assert.Equal(t, "    bar id:2", bar.Line())
	body, ok := bar.Body()
	assert.True(t, ok)
	assert.Equal(t, "", body)

	baz := foo.Children()[1]
	assert.Equal(t, "    baz id:3", baz.Line())
	body, ok = baz.Body()
	assert.True(t, ok)
	assert.Equal(t, "", body)

	assert.Equal(t, text, Render(root))
}

func TestParse_ChildBodyAndGrandchild(t *testing.T) {
	t.Run("one level deeper is a grandchild", func(t *testing.T) {
		parent := Parse("parent\n    child\n        grandchild", NewIDGenerator())

		require.Len(t, parent.Children(), 1)
		child := parent.Children()[0]
		assert.False(t, child.HasBody())
		require.Len(t, child.Children(), 1)
		assert.Equal(t, "        grandchild", child.Children()[0].Line())
	})

	t.Run("two levels deeper is body", func(t *testing.T) {
		parent := Parse("parent\n    child\n            child-body", NewIDGenerator())

		child := parent.Children()[0]
		body, ok := child.Body()
		assert.True(t, ok)
		assert.Equal(t, "            child-body", body)
		assert.False(t, parent.HasBody())
	})
}

func TestParse_IndentedFirstLineIsRootBody(t *testing.T) {
	text := "    preamble\nfoo"

	root := Parse(text, NewIDGenerator())

	assert.True(t, root.IsVirtual())
	body, ok := root.Body()
	assert.True(t, ok)
	assert.Equal(t, "    preamble", body)
	require.Len(t, root.Children(), 1)
	assert.Equal(t, "foo", root.Children()[0].Line())
	assert.Equal(t, text, Render(root))
}

func TestParse_TaskWithChildKeepsParentAsRoot(t *testing.T) {
	root := Parse("parent\n    child", NewIDGenerator())

	assert.False(t, root.IsVirtual())
	assert.Equal(t, "parent", root.Line())
}

func TestRender_RoundTrip(t *testing.T) {
	texts := []string{
		"foo",
		"a\nb\nc",
		"a\n    b\n        c\n    d\ne",
		"a\n\n    b",
		"a\n            deep body\n    b",
		"    preamble\n\nfoo\n    bar",
		"x done @ctx +proj key:value\n    x child id:-1\n        notes\n        more notes",
		"  two spaces\n      six spaces\n    four",
		"a\n    b\n\n\n    c\n",
		"\tTabbed\n\tAgain",
		"über @straße +projekt schlüssel:wert",
	}

	for _, text := range texts {
		once := Render(Parse(text, NewIDGenerator()))
		twice := Render(Parse(once, NewIDGenerator()))

		assert.Equal(t, once, twice, "text %q", text)
		assert.Equal(t, strings.Trim(text, "\n"), once, "text %q", text)
	}
}

func TestRender_BuiltTree(t *testing.T) {
	ids := NewIDGenerator()
	task := NewTask("foo id:3", ids)
	task.SetBody("        foo\n        bar")
	task.AppendBodyLine("        baz")

	body, _ := task.Body()
	assert.Equal(t, "        foo\n        bar\n        baz", body)
	assert.Equal(t, "foo id:3\n        foo\n        bar\n        baz", Render(task))
	assert.Equal(t, Render(task), task.String())
}
