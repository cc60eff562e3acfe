// Package fs writes generated projects and crawled documentation to disk.
package fs

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/mcpbuilder"
)

// URLToPath converts a document URL to a relative file path with the given
// extension. Query strings and fragments are ignored and ".." segments
// cannot climb out of the archive.
// Example: https://example.com/docs/api/users, ".md" → docs/api/users.md
func URLToPath(rawURL, ext string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", mcpbuilder.Errorf(mcpbuilder.EINVALID, "invalid document URL %q: %v", rawURL, err)
	}

	p := u.Path
	trailing := strings.HasSuffix(p, "/")
	p = strings.TrimPrefix(path.Clean("/"+p), "/")

	// Root or trailing slash → index file
	if p == "" {
		return "index" + ext, nil
	}
	if trailing {
		return p + "/index" + ext, nil
	}
	return strings.TrimSuffix(p, path.Ext(p)) + ext, nil
}

// FormatDocument renders an HTML document's text with YAML frontmatter.
// JSON documents are returned verbatim.
func FormatDocument(doc *mcpbuilder.Document) string {
	if doc.ContentType == mcpbuilder.ContentTypeJSON {
		return doc.Content
	}
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(doc.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(doc.Title)
	if hash := doc.Metadata[mcpbuilder.MetadataHash]; hash != "" {
		b.WriteString("\nhash: ")
		b.WriteString(hash)
	}
	b.WriteString("\n---\n\n")
	b.WriteString(doc.Content)
	return b.String()
}

// Ensure Archive implements mcpbuilder.CorpusArchive at compile time.
var _ mcpbuilder.CorpusArchive = (*Archive)(nil)

// Archive saves crawled documents under a base directory, one file per
// document: markdown with frontmatter for HTML pages, raw JSON otherwise.
type Archive struct {
	baseDir string
}

// NewArchive creates an Archive that writes to baseDir.
func NewArchive(baseDir string) *Archive {
	return &Archive{baseDir: baseDir}
}

// WriteCorpus writes every document in corpus. A later document whose URL
// maps to the same path overwrites an earlier one.
func (a *Archive) WriteCorpus(ctx context.Context, corpus *mcpbuilder.Corpus) error {
	if corpus == nil {
		return nil
	}
	for _, doc := range corpus.Documents {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.WriteDocument(doc); err != nil {
			return err
		}
	}
	return nil
}

// WriteDocument writes a single document to disk.
func (a *Archive) WriteDocument(doc *mcpbuilder.Document) error {
	if doc == nil || doc.URL == "" {
		return mcpbuilder.Errorf(mcpbuilder.EINVALID, "document URL required")
	}

	ext := ".md"
	if doc.ContentType == mcpbuilder.ContentTypeJSON {
		ext = ".json"
	}
	relPath, err := URLToPath(doc.URL, ext)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(a.baseDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(FormatDocument(doc)), 0644)
}
