package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/protodata-io/protodata/renderlang"
	"github.com/protodata-io/protodata/source"
)

func strPtr(s string) *string { return &s }
func i32Ptr(i int32) *int32   { return &i }
func typePtr(t descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto_Type {
	return &t
}

// requestWithMessage builds a minimal request containing one message type
// so plugins that key off TypeEntered (e.g. renderlang.TypeNamesPlugin)
// have something to see.
func requestWithMessage(name string) *pluginpb.CodeGeneratorRequest {
	fd := &descriptorpb.FileDescriptorProto{
		Name:    strPtr("sample.proto"),
		Package: strPtr("sample"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: strPtr(name),
				Field: []*descriptorpb.FieldDescriptorProto{
					{Name: strPtr("id"), Number: i32Ptr(1), Type: typePtr(descriptorpb.FieldDescriptorProto_TYPE_STRING)},
				},
			},
		},
	}
	return &pluginpb.CodeGeneratorRequest{
		FileToGenerate: []string{"sample.proto"},
		ProtoFile:      []*descriptorpb.FileDescriptorProto{fd},
	}
}

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func readFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, rel))
	require.NoError(t, err)
	return string(data)
}

// Scenario 1: enhance content. A renderer keyed off a projection query
// prepends text at the first occurrence of the matched type name.
func TestPipelineEnhancesContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "SourceCode.java", "Journey worth taking")

	p := &Pipeline{
		Plugins:   []Plugin{renderlang.TypeNamesPlugin{}},
		Renderers: []Renderer{renderlang.PrependRenderer{Word: "Journey", Prefix: "_"}},
		Request:   requestWithMessage("Journey"),
		SourceDir: dir,
	}
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, "_Journey worth taking", readFile(t, dir, "SourceCode.java"))
}

// Scenario 2: create a new file that did not exist on disk before the run.
func TestPipelineCreatesNewFile(t *testing.T) {
	dir := t.TempDir()

	p := &Pipeline{
		Renderers: []Renderer{renderlang.CreateFileRenderer{Path: "generated/Widget.java", Code: "class Widget {}"}},
		Request:   requestWithMessage("Widget"),
		SourceDir: dir,
	}
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, "class Widget {}", readFile(t, dir, "generated/Widget.java"))
}

// Scenario 3: delete an existing file; deleting something already absent
// is tolerated rather than treated as fatal.
func TestPipelineDeletesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Obsolete.java", "class Obsolete {}")

	p := &Pipeline{
		Renderers: []Renderer{renderlang.DeleteRenderer{Path: "Obsolete.java"}},
		Request:   requestWithMessage("Widget"),
		SourceDir: dir,
	}
	require.NoError(t, p.Run(context.Background()))

	_, err := os.Stat(filepath.Join(dir, "Obsolete.java"))
	assert.True(t, os.IsNotExist(err))

	p2 := &Pipeline{
		Renderers: []Renderer{renderlang.DeleteRenderer{Path: "AlreadyGone.java"}},
		Request:   requestWithMessage("Widget"),
		SourceDir: t.TempDir(),
	}
	assert.NoError(t, p2.Run(context.Background()))
}

// Scenario 4: insert at marked points, with two renderers composing in
// registration order at the same point.
func TestPipelineInsertsAtPoints(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Registry.java", "// INSERT:'entries'\nclass Registry {}")

	point := source.InsertionPoint{Label: "entries"}
	p := &Pipeline{
		Renderers: []Renderer{
			renderlang.AddAtPointRenderer{Path: "Registry.java", Point: point, Lines: []string{"register(Widget.class);"}},
			renderlang.AddAtPointRenderer{Path: "Registry.java", Point: point, Lines: []string{"register(Gadget.class);"}},
		},
		Request:   requestWithMessage("Widget"),
		SourceDir: dir,
	}
	require.NoError(t, p.Run(context.Background()))

	want := "// INSERT:'entries'\nregister(Widget.class);\nregister(Gadget.class);\nclass Registry {}"
	assert.Equal(t, want, readFile(t, dir, "Registry.java"))
}

// Scenario 5: per-language dispatch. Each renderer only touches files
// whose extension it targets; everything else is untouched.
func TestPipelinePerLanguageDispatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "widget.js", "const widget = {};")
	writeFile(t, dir, "widget.kt", "class Widget")
	writeFile(t, dir, "widget.java", "class Widget {}")

	p := &Pipeline{
		Renderers: []Renderer{renderlang.JsRenderer{}, renderlang.KtRenderer{}},
		Request:   requestWithMessage("Widget"),
		SourceDir: dir,
	}
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, "const widget = {}; Hello JavaScript", readFile(t, dir, "widget.js"))
	assert.Equal(t, "class Widget Hello Kotlin", readFile(t, dir, "widget.kt"))
	assert.Equal(t, "class Widget {}", readFile(t, dir, "widget.java"))
}

// Scenario 6: lazy marker emission. InsertionPointPrinter registers a
// prepare_code hook on every file, but a file no renderer ever calls
// Code() on must reach disk byte-for-byte unchanged.
func TestPipelineLazyMarkerEmissionLeavesUnreadFilesUntouched(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "widget.js", "const widget = {};")
	writeFile(t, dir, "widget.java", "class Widget {}")

	p := &Pipeline{
		Renderers: []Renderer{
			renderlang.InsertionPointPrinter{
				Style:      renderlang.Java,
				Extensions: []string{"js"},
				Leading:    []source.InsertionPoint{{Label: "top"}},
			},
			renderlang.JsRenderer{},
		},
		Request:   requestWithMessage("Widget"),
		SourceDir: dir,
	}
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, "// INSERT:'top'\nconst widget = {}; Hello JavaScript", readFile(t, dir, "widget.js"))
	assert.Equal(t, "class Widget {}", readFile(t, dir, "widget.java"))
}

func TestPipelineAbortsOnResolutionFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "widget.js", "const widget = {};")

	fd := &descriptorpb.FileDescriptorProto{
		Name:    strPtr("broken.proto"),
		Package: strPtr("broken"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: strPtr("Widget"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{
						Name:     strPtr("other"),
						Number:   i32Ptr(1),
						Type:     typePtr(descriptorpb.FieldDescriptorProto_TYPE_MESSAGE),
						TypeName: strPtr(".broken.Missing"),
					},
				},
			},
		},
	}
	req := &pluginpb.CodeGeneratorRequest{
		FileToGenerate: []string{"broken.proto"},
		ProtoFile:      []*descriptorpb.FileDescriptorProto{fd},
	}

	p := &Pipeline{
		Renderers: []Renderer{renderlang.JsRenderer{}},
		Request:   req,
		SourceDir: dir,
	}
	err := p.Run(context.Background())
	require.Error(t, err)
	// the render phase never ran, so the file on disk is untouched.
	assert.Equal(t, "const widget = {};", readFile(t, dir, "widget.js"))
}
