package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/mrjoshuak/postcollect"
	"github.com/mrjoshuak/postcollect/internal/markdown"
	"github.com/mrjoshuak/postcollect/internal/siteconfig"
	"github.com/mrjoshuak/postcollect/types"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      zerolog.Logger
	Collector   postcollect.Collector
	Articles    types.ArticleStore
	SiteConfigs *siteconfig.Cache
	Markdown    *markdown.Converter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   string `short:"c" type:"path" help:"Config file (default $POSTCOLLECT_CONFIG or ~/.postcollect/config.yaml)"`
	LogLevel string `name:"log-level" help:"Log level: trace, debug, info, warn, error"`

	Extract    ExtractCmd    `cmd:"" help:"Extract the article at a URL and print it"`
	Save       SaveCmd       `cmd:"" help:"Extract the article at a URL and store it"`
	Show       ShowCmd       `cmd:"" help:"Print a stored article"`
	List       ListCmd       `cmd:"" help:"List stored articles, newest first"`
	SiteConfig SiteConfigCmd `cmd:"" name:"siteconfig" help:"Show which site config applies to a URL"`
	Version    VersionCmd    `cmd:"" help:"Print the version"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL    string `arg:"" help:"Page URL"`
	Input  string `short:"i" help:"Read the page HTML from a file, or - for stdin, instead of fetching"`
	Format string `short:"f" enum:"json,html,text,markdown" default:"json" help:"Output format: json, html, text or markdown"`
}

// SaveCmd is the "save" subcommand.
type SaveCmd struct {
	URL   string `arg:"" help:"Page URL"`
	Input string `short:"i" help:"Read the page HTML from a file, or - for stdin, instead of fetching"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID     string `arg:"" help:"Article id"`
	Format string `short:"f" enum:"json,html,text,markdown" default:"markdown" help:"Output format: json, html, text or markdown"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Limit int `short:"n" default:"20" help:"Maximum number of articles, 0 for all"`
}

// SiteConfigCmd is the "siteconfig" subcommand.
type SiteConfigCmd struct {
	URL string `arg:"" help:"Page URL"`
}

// VersionCmd is the "version" subcommand.
type VersionCmd struct{}
