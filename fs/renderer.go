package fs

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/fwojciec/mcpbuilder"
)

// BlueprintFile is the name of the blueprint snapshot written with every project.
const BlueprintFile = "blueprint.json"

//go:embed templates/*.tmpl
var templateFS embed.FS

// Ensure Renderer implements mcpbuilder.ProjectRenderer at compile time.
var _ mcpbuilder.ProjectRenderer = (*Renderer)(nil)

// Renderer scaffolds an MCP server project from a Blueprint.
// Every file is rendered in memory before anything touches disk, and each
// file is then replaced atomically. Other files in the output directory are
// left alone.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded project templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("project").Funcs(template.FuncMap{
		"slug":  mcpbuilder.Slugify,
		"quote": func(s string) string { return fmt.Sprintf("%q", s) },
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse project templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// RenderProject writes the project for bp into outputDir, creating it if
// needed, and returns the cleaned outputDir. Project files from an earlier
// run are overwritten; unrelated files are kept.
func (r *Renderer) RenderProject(ctx context.Context, bp *mcpbuilder.Blueprint, outputDir string) (string, error) {
	if bp == nil {
		return "", mcpbuilder.Errorf(mcpbuilder.EINVALID, "blueprint required")
	}
	if outputDir == "" {
		return "", mcpbuilder.Errorf(mcpbuilder.EINVALID, "output directory required")
	}

	files, err := r.render(ctx, bp)
	if err != nil {
		return "", err
	}

	dir := filepath.Clean(outputDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := writeFileAtomic(filepath.Join(dir, f.name), f.data); err != nil {
			return "", err
		}
	}
	return dir, nil
}

type projectFile struct {
	name string
	data []byte
}

func (r *Renderer) render(ctx context.Context, bp *mcpbuilder.Blueprint) ([]projectFile, error) {
	names, err := fs.Glob(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}

	files := make([]projectFile, 0, len(names)+1)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		base := path.Base(name)
		var buf bytes.Buffer
		if err := r.templates.ExecuteTemplate(&buf, base, bp); err != nil {
			return nil, fmt.Errorf("render %s: %w", base, err)
		}
		files = append(files, projectFile{name: strings.TrimSuffix(base, ".tmpl"), data: buf.Bytes()})
	}

	data, err := MarshalBlueprint(bp)
	if err != nil {
		return nil, err
	}
	return append(files, projectFile{name: BlueprintFile, data: data}), nil
}

// writeFileAtomic writes data to a temp file next to dest and renames it
// over dest, so dest never holds a partial write.
func writeFileAtomic(dest string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, dest); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// MarshalBlueprint encodes bp in the blueprint.json format: two-space
// indentation, fields name, summary, endpoints and prerequisites, and no
// HTML escaping.
func MarshalBlueprint(bp *mcpbuilder.Blueprint) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bp); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
