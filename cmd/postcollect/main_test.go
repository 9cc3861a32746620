package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	main "github.com/mrjoshuak/postcollect/cmd/postcollect"
	"github.com/mrjoshuak/postcollect/internal/config"
	"github.com/mrjoshuak/postcollect/internal/store/sqlite"
	"github.com/mrjoshuak/postcollect/types"
)

const paragraph = "The harbor board met on Tuesday, after weeks of delay, to approve the new ferry " +
	"schedule, repair the north pier, and publish the budget, which, by most accounts, was late."

const articleHTML = `<html><head><title>Harbor Notes | Coast Daily</title></head><body>
<div class="sidebar"><p>Subscribe to the evening newsletter for more local stories.</p></div>
<div class="article-body">
<h1>Ferry Schedule Approved</h1>
<p>` + paragraph + `</p>
<p>` + paragraph + `</p>
<p>` + paragraph + `</p>
</div>
</body></html>`

type harness struct {
	articles *sqlite.ArticleStore
	cfg      *config.Config
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })

	cfg := config.Default()
	cfg.RemoteSiteConfigs = false
	cfg.Database = ":memory:"
	cfg.Log.Console = false
	cfg.Log.Level = "error"

	return &harness{articles: sqlite.NewArticleStore(db), cfg: cfg}
}

// run executes one CLI invocation against the shared store.
func (h *harness) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	m := main.NewMain()
	m.Config = h.cfg
	m.Articles = h.articles
	m.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	err := m.Run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRun_NoArgs(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	stdout, _, err := h.run(t, "")
	require.Error(t, err)
	assert.Contains(t, stdout, "extract")
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	stdout, _, err := h.run(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "siteconfig")
	assert.Contains(t, stdout, "save")
}

func TestRun_Version(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	stdout, _, err := h.run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, types.Name+" version "+types.Version+"\n", stdout)
}

func TestExtractCmd(t *testing.T) {
	t.Parallel()

	t.Run("reads html from a file", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		input := writeFile(t, t.TempDir(), "page.html", articleHTML)

		stdout, _, err := h.run(t, "", "extract", "https://coast.example.com/ferry", "--input", input)
		require.NoError(t, err)

		var page types.ExtractedPage
		require.NoError(t, json.Unmarshal([]byte(stdout), &page))
		assert.Equal(t, "Ferry Schedule Approved", page.Title)
		assert.Contains(t, page.Content, "north pier")
		assert.NotContains(t, page.Content, "evening newsletter")
		assert.True(t, strings.HasPrefix(page.Excerpt, "The harbor board met"))
		assert.Equal(t, "https://coast.example.com/ferry", page.SourceURL)
		assert.Equal(t, types.PostFormatStandard, page.PostFormat)
	})

	t.Run("reads html from stdin as text", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		stdout, _, err := h.run(t, articleHTML, "extract", "https://coast.example.com/ferry", "-i", "-", "-f", "text")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stdout, "Ferry Schedule Approved\n\n"))
		assert.Contains(t, stdout, "repair the north pier")
		assert.NotContains(t, stdout, "<p>")
	})

	t.Run("fetches the page and renders markdown", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(articleHTML))
		}))
		defer srv.Close()

		h := newHarness(t)
		stdout, _, err := h.run(t, "", "extract", srv.URL+"/ferry", "--format", "markdown")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stdout, "# Ferry Schedule Approved\n\n"))
		assert.Contains(t, stdout, "north pier")
	})

	t.Run("reports http failures", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		h := newHarness(t)
		_, stderr, err := h.run(t, "", "extract", srv.URL+"/missing")
		require.Error(t, err)
		assert.True(t, types.IsFetchError(err))
		assert.Contains(t, stderr, "returned HTTP 404")
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		_, _, err := h.run(t, articleHTML, "extract", "https://coast.example.com/ferry", "-i", "-", "-f", "pdf")
		require.Error(t, err)
	})

	t.Run("rejects non-http urls", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		_, stderr, err := h.run(t, articleHTML, "extract", "ftp://coast.example.com/ferry", "-i", "-")
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrUnsupportedURL)
		assert.Contains(t, stderr, "only absolute http and https URLs")
	})
}

func TestSaveShowList(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	stdout, _, err := h.run(t, articleHTML, "save", "https://coast.example.com/ferry", "-i", "-")
	require.NoError(t, err)
	id := strings.TrimSpace(stdout)
	require.NotEmpty(t, id)

	again, _, err := h.run(t, articleHTML, "save", "https://coast.example.com/ferry", "-i", "-")
	require.NoError(t, err)
	assert.Equal(t, id, strings.TrimSpace(again), "unchanged page keeps its id")

	shown, _, err := h.run(t, "", "show", id)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(shown, "# Ferry Schedule Approved\n\n"))

	html, _, err := h.run(t, "", "show", id, "--format", "html")
	require.NoError(t, err)
	assert.Contains(t, html, "<p>")

	listed, _, err := h.run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, listed, id)
	assert.Contains(t, listed, "Ferry Schedule Approved")
	assert.Contains(t, listed, "1min")
	assert.Contains(t, listed, "https://coast.example.com/ferry")
	assert.Contains(t, listed, "\n    The harbor board met on Tuesday")
	assert.Contains(t, listed, "…\n")
}

func TestSaveCmd_EmptyExtraction(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	stdout, _, err := h.run(t, "<html><body><div></div></body></html>",
		"save", "https://coast.example.com/2024/tide-tables-for-june/", "-i", "-")
	require.NoError(t, err)

	article, err := h.articles.FindByID(context.Background(), strings.TrimSpace(stdout))
	require.NoError(t, err)
	assert.Equal(t, "Tide Tables For June", article.Page.Title)
	assert.Empty(t, article.Page.Content)
}

func TestShowCmd_NotFound(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	_, stderr, err := h.run(t, "", "show", "missing-id")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Contains(t, stderr, "postcollect list")
}

func TestListCmd_Empty(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	stdout, _, err := h.run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No articles found")
}

func TestSiteConfigCmd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "example.com.txt", "title: //h1\nbody: //div[@id='story']\nstrip_id_or_class: promo\nhttp_header(user-agent): TestBot\n")

	t.Run("prints candidates and the resolved rule", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		h.cfg.SiteConfigDir = dir

		stdout, _, err := h.run(t, "", "siteconfig", "https://www.news.example.com/a")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Candidate files:\n  news.example.com.txt\n  example.com.txt\n")
		assert.Contains(t, stdout, "Using example.com.txt:\n")
		assert.Contains(t, stdout, "title: //h1\n")
		assert.Contains(t, stdout, "body: //div[@id='story']\n")
		assert.Contains(t, stdout, "strip_id_or_class: promo\n")
		assert.Contains(t, stdout, "http_header(user-agent): TestBot\n")
	})

	t.Run("reports a missing config", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		h.cfg.SiteConfigDir = dir

		stdout, _, err := h.run(t, "", "siteconfig", "https://other.org/a")
		require.NoError(t, err)
		assert.Contains(t, stdout, "other.org.txt")
		assert.Contains(t, stdout, "No site config found.")
	})
}
