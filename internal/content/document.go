// Package content parses and serializes the structured content files the
// editor works on: YAML data files, and Markdown or HTML files with YAML
// front matter.
package content

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for file extensions the editor cannot edit.
var ErrUnsupportedFormat = fmt.Errorf("unsupported content format")

const fence = "---"

// Format identifies how a document's fields and body are laid out on disk.
type Format int

const (
	// FormatYAML files are pure data: the whole file is front matter.
	FormatYAML Format = iota + 1
	// FormatMarkdown files carry optional YAML front matter above a markdown body.
	FormatMarkdown
	// FormatHTML files carry optional YAML front matter above an HTML body.
	FormatHTML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatMarkdown:
		return "markdown"
	case FormatHTML:
		return "html"
	default:
		return "unknown"
	}
}

// Document is an editable content file: structured fields plus an optional
// body.
type Document struct {
	Path        string
	Format      Format
	FrontMatter map[string]any
	Body        string
}

// DetectFormat maps a file path to its content format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".html", ".htm":
		return FormatHTML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Parse decodes raw file data into a Document. For YAML files the whole file
// is front matter; for markdown/HTML an optional leading "---" fence holds
// the front matter and everything after it is the body.
func Parse(path string, data []byte) (Document, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		Path:        path,
		Format:      format,
		FrontMatter: map[string]any{},
	}

	if format == FormatYAML {
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, &doc.FrontMatter); err != nil {
				return Document{}, fmt.Errorf("parse %s: %w", path, err)
			}
			if doc.FrontMatter == nil {
				doc.FrontMatter = map[string]any{}
			}
		}
		return doc, nil
	}

	fm, body, err := splitFrontMatter(string(data))
	if err != nil {
		return Document{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if fm != "" {
		if err := yaml.Unmarshal([]byte(fm), &doc.FrontMatter); err != nil {
			return Document{}, fmt.Errorf("parse %s front matter: %w", path, err)
		}
		if doc.FrontMatter == nil {
			doc.FrontMatter = map[string]any{}
		}
	}
	doc.Body = body
	return doc, nil
}

// Serialize encodes the document back to its on-disk representation.
func (d Document) Serialize() ([]byte, error) {
	switch d.Format {
	case FormatYAML:
		return yaml.Marshal(d.FrontMatter)
	case FormatMarkdown, FormatHTML:
		var b strings.Builder
		if len(d.FrontMatter) > 0 {
			fm, err := yaml.Marshal(d.FrontMatter)
			if err != nil {
				return nil, fmt.Errorf("serialize %s front matter: %w", d.Path, err)
			}
			b.WriteString(fence)
			b.WriteByte('\n')
			b.Write(fm)
			b.WriteString(fence)
			b.WriteByte('\n')
		}
		b.WriteString(d.Body)
		return []byte(b.String()), nil
	default:
		return nil, fmt.Errorf("serialize %s: %w", d.Path, ErrUnsupportedFormat)
	}
}

// splitFrontMatter separates a leading YAML front matter block from the body.
// A document without a leading fence is all body. Fences are full lines
// holding exactly "---"; a line merely starting with it, like a "----"
// scalar, does not open or close the block.
func splitFrontMatter(content string) (frontMatter, body string, err error) {
	if content == fence || content == fence+"\n" {
		return "", "", nil
	}
	if !strings.HasPrefix(content, fence+"\n") {
		return "", content, nil
	}

	rest := strings.TrimPrefix(content, fence+"\n")

	// Empty block: the closing fence is the first line after the opener.
	if rest == fence || strings.HasPrefix(rest, fence+"\n") {
		body = strings.TrimPrefix(strings.TrimPrefix(rest, fence), "\n")
		return "", body, nil
	}

	search := 0
	for {
		end := strings.Index(rest[search:], "\n"+fence)
		if end < 0 {
			return "", "", fmt.Errorf("unterminated front matter fence")
		}
		end += search

		after := rest[end+len("\n"+fence):]
		if after == "" || strings.HasPrefix(after, "\n") {
			frontMatter = rest[:end]
			body = strings.TrimPrefix(after, "\n")
			return frontMatter, body, nil
		}
		search = end + 1
	}
}
