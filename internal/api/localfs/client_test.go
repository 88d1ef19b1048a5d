package localfs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-sh/inkwell/internal/api"
)

func newTestClient(t *testing.T) (*Client, string) {
	t.Helper()

	root := t.TempDir()
	contentDir := filepath.Join(root, "content")
	workspacesDir := filepath.Join(root, "workspaces")
	publishDir := filepath.Join(root, "public")
	require.NoError(t, os.MkdirAll(contentDir, 0o755))
	require.NoError(t, os.MkdirAll(workspacesDir, 0o755))

	c := New(contentDir, workspacesDir, publishDir, nil, zerolog.Nop())
	return c, root
}

type outcome[T any] struct {
	result chan T
	err    chan api.Error
}

func newOutcome[T any]() outcome[T] {
	return outcome[T]{
		result: make(chan T, 1),
		err:    make(chan api.Error, 1),
	}
}

func (o outcome[T]) success(r T)         { o.result <- r }
func (o outcome[T]) failure(e api.Error) { o.err <- e }

func (o outcome[T]) awaitSuccess(t *testing.T) T {
	t.Helper()
	select {
	case r := <-o.result:
		return r
	case e := <-o.err:
		t.Fatalf("unexpected error: %v", e)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
	var zero T
	return zero
}

func (o outcome[T]) awaitError(t *testing.T) api.Error {
	t.Helper()
	select {
	case e := <-o.err:
		return e
	case r := <-o.result:
		t.Fatalf("unexpected success: %v", r)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
	return api.Error{}
}

func TestClient_CreateFile(t *testing.T) {
	c, root := newTestClient(t)

	o := newOutcome[api.FileResult]()
	c.CreateFile(api.CreateFileRequest{
		Path:        "posts/hello.md",
		FrontMatter: map[string]any{"title": "Hello"},
		Body:        "# Hello\n",
	}, o.success, o.failure)

	result := o.awaitSuccess(t)
	assert.Equal(t, "posts/hello.md", result.Path)

	data, err := os.ReadFile(filepath.Join(root, "content", "posts", "hello.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "title: Hello")
	assert.Contains(t, string(data), "# Hello")
}

func TestClient_CreateFile_existingFileFails(t *testing.T) {
	c, root := newTestClient(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "content", "taken.yaml"), []byte("a: 1\n"), 0o644))

	o := newOutcome[api.FileResult]()
	c.CreateFile(api.CreateFileRequest{Path: "taken.yaml"}, o.success, o.failure)

	e := o.awaitError(t)
	assert.Equal(t, "File already exists", e.Message)
}

func TestClient_CreateFile_rejectsEscapingPath(t *testing.T) {
	c, _ := newTestClient(t)

	o := newOutcome[api.FileResult]()
	c.CreateFile(api.CreateFileRequest{Path: "../outside.md"}, o.success, o.failure)

	e := o.awaitError(t)
	assert.Equal(t, "Invalid path", e.Message)
}

func TestClient_CopyFile(t *testing.T) {
	c, root := newTestClient(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "content", "a.md"), []byte("body\n"), 0o644))

	o := newOutcome[api.FileResult]()
	c.CopyFile(api.CopyFileRequest{Source: "a.md", Dest: "b.md"}, o.success, o.failure)

	result := o.awaitSuccess(t)
	assert.Equal(t, "b.md", result.Path)

	data, err := os.ReadFile(filepath.Join(root, "content", "b.md"))
	require.NoError(t, err)
	assert.Equal(t, "body\n", string(data))
}

func TestClient_DeleteFile(t *testing.T) {
	c, root := newTestClient(t)
	path := filepath.Join(root, "content", "gone.md")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	o := newOutcome[api.FileResult]()
	c.DeleteFile(api.DeleteFileRequest{Path: "gone.md"}, o.success, o.failure)

	o.awaitSuccess(t)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestClient_DeleteFile_missingFails(t *testing.T) {
	c, _ := newTestClient(t)

	o := newOutcome[api.FileResult]()
	c.DeleteFile(api.DeleteFileRequest{Path: "never-there.md"}, o.success, o.failure)

	e := o.awaitError(t)
	assert.Equal(t, "Could not delete file", e.Message)
}

func TestClient_CreateWorkspace(t *testing.T) {
	c, root := newTestClient(t)

	o := newOutcome[api.WorkspaceResult]()
	c.CreateWorkspace(api.CreateWorkspaceRequest{Name: "drafts"}, o.success, o.failure)

	result := o.awaitSuccess(t)
	assert.Equal(t, "drafts", result.Name)

	info, err := os.Stat(filepath.Join(root, "workspaces", "drafts"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestClient_CreateWorkspace_invalidName(t *testing.T) {
	c, _ := newTestClient(t)

	o := newOutcome[api.WorkspaceResult]()
	c.CreateWorkspace(api.CreateWorkspaceRequest{Name: "nested/name"}, o.success, o.failure)

	e := o.awaitError(t)
	assert.Equal(t, "Invalid workspace name", e.Message)
}

func TestClient_Publish(t *testing.T) {
	c, root := newTestClient(t)
	contentDir := filepath.Join(root, "content")
	require.NoError(t, os.MkdirAll(filepath.Join(contentDir, "posts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(contentDir, "posts", "a.md"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(contentDir, "index.html"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(contentDir, "notes.txt"), []byte("c"), 0o644))

	o := newOutcome[api.PublishResult]()
	c.Publish(api.PublishRequest{Patterns: []string{"**/*.md", "**/*.html"}}, o.success, o.failure)

	result := o.awaitSuccess(t)
	assert.Equal(t, 2, result.Files)
	assert.NotEmpty(t, result.RunID)

	assert.FileExists(t, filepath.Join(root, "public", "posts", "a.md"))
	assert.FileExists(t, filepath.Join(root, "public", "index.html"))
	assert.NoFileExists(t, filepath.Join(root, "public", "notes.txt"))
}

func TestClient_Publish_defaultsToEverything(t *testing.T) {
	c, root := newTestClient(t)
	contentDir := filepath.Join(root, "content")
	require.NoError(t, os.WriteFile(filepath.Join(contentDir, "a.md"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(contentDir, "b.yaml"), []byte("b: 1"), 0o644))

	o := newOutcome[api.PublishResult]()
	c.Publish(api.PublishRequest{}, o.success, o.failure)

	result := o.awaitSuccess(t)
	assert.Equal(t, 2, result.Files)
}

func TestClient_callbacksGoThroughExecutor(t *testing.T) {
	root := t.TempDir()
	contentDir := filepath.Join(root, "content")
	require.NoError(t, os.MkdirAll(contentDir, 0o755))

	executed := make(chan func(), 1)
	c := New(contentDir, root, root, func(fn func()) { executed <- fn }, zerolog.Nop())

	o := newOutcome[api.FileResult]()
	c.CreateFile(api.CreateFileRequest{Path: "x.md"}, o.success, o.failure)

	select {
	case fn := <-executed:
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("executor never invoked")
	}

	o.awaitSuccess(t)
}
