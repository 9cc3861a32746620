package main

import (
	"errors"
	"fmt"

	"github.com/mrjoshuak/postcollect/types"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	article, err := deps.Articles.FindByID(deps.Ctx, c.ID)
	if errors.Is(err, types.ErrNotFound) {
		fmt.Fprintf(deps.Stderr, "No article with id %q. Use 'postcollect list' to see stored articles.\n", c.ID)
		return err
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	return writePage(deps.Stdout, &article.Page, c.Format, deps.Markdown)
}
