package main

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	content, err := readInput(deps, c.Input)
	if err != nil {
		return err
	}

	page, err := deps.Collector.Download(deps.Ctx, c.URL, content)
	if err != nil {
		reportError(deps.Stderr, err)
		return err
	}
	return writePage(deps.Stdout, page, c.Format, deps.Markdown)
}
