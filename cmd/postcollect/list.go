package main

import (
	"fmt"
	"strings"

	"github.com/mrjoshuak/postcollect/internal/simplifiers"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	articles, err := deps.Articles.List(deps.Ctx, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles found. Use 'postcollect save' to add one.")
		return nil
	}

	for _, a := range articles {
		minutes := simplifiers.ReadingTime(simplifiers.PlainText(a.Page.Content))
		fmt.Fprintf(deps.Stdout, "%s  %s  %dmin  %s  %s\n",
			a.ID, a.SavedAt.Format("2006-01-02"), minutes, a.Page.Title, a.Page.SourceURL)
		if a.Page.Excerpt != "" {
			fmt.Fprintf(deps.Stdout, "    %s\n", shorten(a.Page.Excerpt, excerptWidth))
		}
	}
	return nil
}

const excerptWidth = 100

// shorten cuts s to at most n runes on a word boundary.
func shorten(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	cut := string(runes[:n])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
