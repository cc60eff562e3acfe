package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/mcpbuilder"
	"github.com/fwojciec/mcpbuilder/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLToPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		ext  string
		want string
	}{
		{name: "simple path", url: "https://example.com/docs/api/users", ext: ".md", want: "docs/api/users.md"},
		{name: "trailing slash becomes index", url: "https://example.com/docs/", ext: ".md", want: "docs/index.md"},
		{name: "root path becomes index", url: "https://example.com/", ext: ".md", want: "index.md"},
		{name: "root without trailing slash", url: "https://example.com", ext: ".md", want: "index.md"},
		{name: "ignores query string", url: "https://example.com/docs/api?version=2", ext: ".md", want: "docs/api.md"},
		{name: "ignores fragment", url: "https://example.com/docs/api#section", ext: ".md", want: "docs/api.md"},
		{name: "replaces existing extension", url: "https://example.com/docs/intro.html", ext: ".md", want: "docs/intro.md"},
		{name: "json document", url: "https://example.com/openapi.json", ext: ".json", want: "openapi.json"},
		{name: "dot segments stay inside", url: "https://example.com/../../etc/passwd", ext: ".md", want: "etc/passwd.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.URLToPath(tt.url, tt.ext)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("invalid URL", func(t *testing.T) {
		t.Parallel()

		_, err := fs.URLToPath("http://[::1", ".md")

		assert.Equal(t, mcpbuilder.EINVALID, mcpbuilder.ErrorCode(err))
	})
}

func TestFormatDocument(t *testing.T) {
	t.Parallel()

	t.Run("formats HTML document with frontmatter", func(t *testing.T) {
		t.Parallel()

		doc := &mcpbuilder.Document{
			URL:         "https://example.com/docs/api",
			Title:       "API Reference",
			Content:     "API Reference GET /users lists users.",
			ContentType: mcpbuilder.ContentTypeHTML,
			Metadata:    map[string]string{mcpbuilder.MetadataHash: "abc123"},
		}

		got := fs.FormatDocument(doc)

		want := `---
source: https://example.com/docs/api
title: API Reference
hash: abc123
---

API Reference GET /users lists users.`
		assert.Equal(t, want, got)
	})

	t.Run("returns JSON verbatim", func(t *testing.T) {
		t.Parallel()

		doc := &mcpbuilder.Document{
			URL:         "https://example.com/openapi.json",
			Content:     `{"openapi":"3.0.0"}`,
			ContentType: mcpbuilder.ContentTypeJSON,
		}

		assert.Equal(t, `{"openapi":"3.0.0"}`, fs.FormatDocument(doc))
	})
}

func TestArchive_WriteCorpus(t *testing.T) {
	t.Parallel()

	t.Run("writes one file per document", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		a := fs.NewArchive(baseDir)
		corpus := &mcpbuilder.Corpus{Documents: []*mcpbuilder.Document{
			{URL: "https://example.com/docs/", Title: "Docs", Content: "Index", ContentType: mcpbuilder.ContentTypeHTML},
			{URL: "https://example.com/deeply/nested/page", Title: "Nested", Content: "Nested", ContentType: mcpbuilder.ContentTypeHTML},
			{URL: "https://example.com/api/openapi.json", Content: `{"paths":{}}`, ContentType: mcpbuilder.ContentTypeJSON},
		}}

		err := a.WriteCorpus(context.Background(), corpus)

		require.NoError(t, err)
		index, err := os.ReadFile(filepath.Join(baseDir, "docs", "index.md"))
		require.NoError(t, err)
		assert.Contains(t, string(index), "source: https://example.com/docs/")
		_, err = os.Stat(filepath.Join(baseDir, "deeply", "nested", "page.md"))
		require.NoError(t, err)
		openapi, err := os.ReadFile(filepath.Join(baseDir, "api", "openapi.json"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"paths":{}}`, string(openapi))
	})

	t.Run("nil corpus writes nothing", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()

		err := fs.NewArchive(baseDir).WriteCorpus(context.Background(), nil)

		require.NoError(t, err)
		entries, err := os.ReadDir(baseDir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("rejects document without URL", func(t *testing.T) {
		t.Parallel()

		err := fs.NewArchive(t.TempDir()).WriteDocument(&mcpbuilder.Document{Content: "x"})

		assert.Equal(t, mcpbuilder.EINVALID, mcpbuilder.ErrorCode(err))
	})

	t.Run("stops on canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		corpus := &mcpbuilder.Corpus{Documents: []*mcpbuilder.Document{
			{URL: "https://example.com/a", Content: "a", ContentType: mcpbuilder.ContentTypeHTML},
		}}

		err := fs.NewArchive(t.TempDir()).WriteCorpus(ctx, corpus)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
