// Package localfs implements the editor backend against a local content
// directory. It is the reference backend: files live under a content root,
// workspaces are sibling directories, and publishing copies glob-matched
// files into a publish directory.
package localfs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inkwell-sh/inkwell/internal/api"
	"github.com/inkwell-sh/inkwell/internal/content"
)

// Executor marshals a completion callback onto the caller's loop. Operations
// run on their own goroutines; every callback goes through the executor so
// the caller never sees one on a foreign goroutine.
type Executor func(fn func())

// Client is a filesystem-backed api.Client.
type Client struct {
	contentDir    string
	workspacesDir string
	publishDir    string
	exec          Executor
	log           zerolog.Logger
}

// New creates a client rooted at the given directories. A nil executor runs
// callbacks inline on the operation goroutine.
func New(contentDir, workspacesDir, publishDir string, exec Executor, log zerolog.Logger) *Client {
	if exec == nil {
		exec = func(fn func()) { fn() }
	}
	return &Client{
		contentDir:    contentDir,
		workspacesDir: workspacesDir,
		publishDir:    publishDir,
		exec:          exec,
		log:           log.With().Str("component", "localfs").Logger(),
	}
}

var _ api.Client = (*Client)(nil)

func (c *Client) CreateFile(req api.CreateFileRequest, onSuccess func(api.FileResult), onError func(api.Error)) {
	go func() {
		path, err := c.resolve(req.Path)
		if err != nil {
			c.fail(onError, "Invalid path", err)
			return
		}

		format, err := content.DetectFormat(path)
		if err != nil {
			c.fail(onError, "Unsupported file type", err)
			return
		}

		if _, err := os.Stat(path); err == nil {
			c.fail(onError, "File already exists", fmt.Errorf("%s exists", req.Path))
			return
		}

		doc := content.Document{
			Path:        req.Path,
			Format:      format,
			FrontMatter: req.FrontMatter,
			Body:        req.Body,
		}
		data, err := doc.Serialize()
		if err != nil {
			c.fail(onError, "Could not serialize file", err)
			return
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			c.fail(onError, "Could not create directory", err)
			return
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			c.fail(onError, "Could not write file", err)
			return
		}

		c.log.Debug().Str("path", req.Path).Msg("file created")
		c.succeed(func() { onSuccess(api.FileResult{Path: req.Path}) })
	}()
}

func (c *Client) CopyFile(req api.CopyFileRequest, onSuccess func(api.FileResult), onError func(api.Error)) {
	go func() {
		src, err := c.resolve(req.Source)
		if err != nil {
			c.fail(onError, "Invalid source path", err)
			return
		}
		dst, err := c.resolve(req.Dest)
		if err != nil {
			c.fail(onError, "Invalid destination path", err)
			return
		}

		if _, err := os.Stat(dst); err == nil {
			c.fail(onError, "File already exists", fmt.Errorf("%s exists", req.Dest))
			return
		}

		data, err := os.ReadFile(src)
		if err != nil {
			c.fail(onError, "Could not read source file", err)
			return
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			c.fail(onError, "Could not create directory", err)
			return
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			c.fail(onError, "Could not write file", err)
			return
		}

		c.log.Debug().Str("source", req.Source).Str("dest", req.Dest).Msg("file copied")
		c.succeed(func() { onSuccess(api.FileResult{Path: req.Dest}) })
	}()
}

func (c *Client) DeleteFile(req api.DeleteFileRequest, onSuccess func(api.FileResult), onError func(api.Error)) {
	go func() {
		path, err := c.resolve(req.Path)
		if err != nil {
			c.fail(onError, "Invalid path", err)
			return
		}

		if err := os.Remove(path); err != nil {
			c.fail(onError, "Could not delete file", err)
			return
		}

		c.log.Debug().Str("path", req.Path).Msg("file deleted")
		c.succeed(func() { onSuccess(api.FileResult{Path: req.Path}) })
	}()
}

func (c *Client) CreateWorkspace(req api.CreateWorkspaceRequest, onSuccess func(api.WorkspaceResult), onError func(api.Error)) {
	go func() {
		name := strings.TrimSpace(req.Name)
		if name == "" || strings.ContainsAny(name, `/\`) {
			c.fail(onError, "Invalid workspace name", fmt.Errorf("name %q", req.Name))
			return
		}

		path := filepath.Join(c.workspacesDir, name)
		if _, err := os.Stat(path); err == nil {
			c.fail(onError, "Workspace already exists", fmt.Errorf("%s exists", name))
			return
		}

		if err := os.MkdirAll(path, 0o755); err != nil {
			c.fail(onError, "Could not create workspace", err)
			return
		}

		c.log.Debug().Str("workspace", name).Msg("workspace created")
		c.succeed(func() { onSuccess(api.WorkspaceResult{Name: name, Path: path}) })
	}()
}

func (c *Client) Publish(req api.PublishRequest, onSuccess func(api.PublishResult), onError func(api.Error)) {
	go func() {
		patterns := req.Patterns
		if len(patterns) == 0 {
			patterns = []string{"**/*"}
		}

		runID := uuid.NewString()
		count := 0
		root := os.DirFS(c.contentDir)

		for _, pattern := range patterns {
			matches, err := doublestar.Glob(root, pattern)
			if err != nil {
				c.fail(onError, "Invalid publish pattern", fmt.Errorf("%s: %w", pattern, err))
				return
			}

			for _, match := range matches {
				info, err := fs.Stat(root, match)
				if err != nil || info.IsDir() {
					continue
				}

				if err := c.copyOut(match); err != nil {
					c.fail(onError, "Publish failed", err)
					return
				}
				count++
			}
		}

		c.log.Info().Str("run_id", runID).Int("files", count).Msg("publish complete")
		c.succeed(func() {
			onSuccess(api.PublishResult{RunID: runID, Files: count, Dest: c.publishDir})
		})
	}()
}

func (c *Client) copyOut(rel string) error {
	data, err := os.ReadFile(filepath.Join(c.contentDir, rel))
	if err != nil {
		return fmt.Errorf("read %s: %w", rel, err)
	}

	dst := filepath.Join(c.publishDir, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", rel, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}

// resolve joins a request path onto the content root and rejects escapes.
func (c *Client) resolve(rel string) (string, error) {
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" {
		return "", fmt.Errorf("empty path")
	}

	path := filepath.Join(c.contentDir, filepath.FromSlash(rel))
	clean := filepath.Clean(path)
	if clean != c.contentDir && !strings.HasPrefix(clean, c.contentDir+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes content directory", rel)
	}
	return clean, nil
}

func (c *Client) fail(onError func(api.Error), message string, err error) {
	c.log.Debug().Err(err).Str("message", message).Msg("operation failed")
	c.exec(func() {
		onError(api.Error{Message: message, Description: err.Error()})
	})
}

func (c *Client) succeed(fn func()) {
	c.exec(fn)
}
