package main

import (
	"fmt"

	"github.com/mrjoshuak/postcollect"
	"github.com/mrjoshuak/postcollect/types"
)

// Run executes the save command. A page with no title or content is still
// stored, titled after its URL.
func (c *SaveCmd) Run(deps *Dependencies) error {
	content, err := readInput(deps, c.Input)
	if err != nil {
		return err
	}

	page, err := deps.Collector.Download(deps.Ctx, c.URL, content)
	switch {
	case types.IsEmptyExtraction(err):
		page.Title = postcollect.SynthesizeTitle(c.URL)
		deps.Logger.Info().Str("url", c.URL).Str("title", page.Title).Msg("saving without extracted content")
	case err != nil:
		reportError(deps.Stderr, err)
		return err
	}

	id, err := deps.Articles.Save(deps.Ctx, page)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintln(deps.Stdout, id)
	return nil
}
