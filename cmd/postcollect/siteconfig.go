package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/mrjoshuak/postcollect/internal/siteconfig"
)

// Run executes the siteconfig command.
func (c *SiteConfigCmd) Run(deps *Dependencies) error {
	candidates := siteconfig.CandidateFilenames(c.URL)
	if len(candidates) == 0 {
		fmt.Fprintf(deps.Stderr, "error: %q has no host\n", c.URL)
		return fmt.Errorf("no host in %q", c.URL)
	}

	fmt.Fprintln(deps.Stdout, "Candidate files:")
	for _, name := range candidates {
		fmt.Fprintf(deps.Stdout, "  %s\n", name)
	}

	rule, filename, err := deps.SiteConfigs.Resolve(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	if rule == nil {
		fmt.Fprintln(deps.Stdout, "No site config found.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Using %s:\n", filename)
	writeRule(deps.Stdout, rule)
	return nil
}

// writeRule prints rule in site config syntax.
func writeRule(w io.Writer, rule *siteconfig.Rule) {
	directive := func(name, value string) {
		if value != "" {
			fmt.Fprintf(w, "%s: %s\n", name, value)
		}
	}

	directive("title", rule.Title)
	directive("body", rule.Body)
	directive("author", rule.Author)
	directive("date", rule.Date)
	for _, s := range rule.Strip {
		directive("strip", s)
	}
	for _, s := range rule.StripIDOrClass {
		directive("strip_id_or_class", s)
	}
	for _, r := range rule.Replacements {
		directive("find_string", r.Find)
		fmt.Fprintf(w, "replace_string: %s\n", r.Replace)
	}

	names := make([]string, 0, len(rule.HTTPHeaders))
	for name := range rule.HTTPHeaders {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		directive("http_header("+name+")", rule.HTTPHeaders[name])
	}

	if rule.Skipped > 0 {
		fmt.Fprintf(w, "# %d malformed lines skipped\n", rule.Skipped)
	}
}
