/*
Package postcollect downloads web pages and extracts their article content:
title, author, date and a cleaned HTML body ready to be stored as a post.

Extraction combines three sources, in order of precedence:

  - per-site plugins such as the YouTube oEmbed extractor, which bypass the
    page entirely;
  - ftr-site-config rules, whose XPath selectors pick fields and strip
    boilerplate for known sites;
  - a Readability-style content scorer for every field the rules leave empty.

The extracted body is then normalized: carriage returns are removed, loose
text is wrapped in paragraphs, and line breaks left over from hard-wrapped
plain text are joined back into running text.

Basic Usage:

	c := postcollect.New()

	page, err := c.Download(ctx, "https://example.com/2024/03/some-post", "")
	switch {
	case postcollect.IsEmptyExtraction(err):
	    page.Title = postcollect.SynthesizeTitle(page.SourceURL)
	case err != nil:
	    return err
	}
	fmt.Println(page.Title)
	fmt.Println(page.Content)

With Site Configs:

	c := postcollect.New(
	    postcollect.WithSiteConfigDir("/srv/ftr-site-config"),
	    postcollect.WithRemoteSiteConfigs(true),
	    postcollect.WithLogger(logger),
	)

Errors:

Download distinguishes a failed fetch (*FetchError), input that is not HTML
at all (*ParseError) and a page that parsed but yielded nothing
(*EmptyExtractionError). The last one comes with the partially filled page.
*/
package postcollect
