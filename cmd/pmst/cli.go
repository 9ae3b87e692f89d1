package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/pmst"
	"github.com/fwojciec/pmst/registry"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Config   *pmst.Config
	Parser   pmst.Parser
	Reports  pmst.ReportService
	Enricher *registry.Enricher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose    bool   `short:"v" help:"Log debug output to stderr"`
	ConfigFile string `name:"config" type:"path" env:"PMST_CONFIG" help:"YAML configuration file"`

	Report   ReportCmd   `cmd:"" help:"Extract data from a PMST report"`
	List     ListCmd     `cmd:"" help:"List saved reports"`
	Show     ShowCmd     `cmd:"" help:"Show a saved report"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a saved report"`
	Geometry GeometryCmd `cmd:"" help:"Validate a query geometry"`
	Defaults DefaultsCmd `cmd:"" name:"config" help:"Print the effective configuration"`
}

// ReportCmd is the "report" subcommand.
type ReportCmd struct {
	File    string `arg:"" type:"existingfile" help:"Report file (.html or .pdf)"`
	Name    string `short:"n" help:"Report name (defaults to the file name)"`
	Fetch   bool   `short:"f" help:"Fetch and classify linked registry entities"`
	Save    bool   `short:"s" help:"Save the report to the database"`
	Force   bool   `help:"Save even if the same file was saved before"`
	JSON    bool   `name:"json" help:"Print the report as JSON"`
	Browser bool   `help:"Render registry pages in a headless browser (requires --fetch)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Limit int `short:"l" help:"Maximum number of reports to list"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID   string `arg:"" help:"Report ID"`
	JSON bool   `name:"json" help:"Print the report as JSON"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Report ID"`
	Force bool   `help:"Confirm deletion"`
}

// GeometryCmd is the "geometry" subcommand.
type GeometryCmd struct {
	Kind    string   `short:"k" help:"Geometry kind (point, line, polygon)"`
	System  string   `help:"Coordinate system (dd, dms)"`
	Coords  []string `short:"c" name:"coord" sep:"none" help:"Coordinate pair as lat,lon (repeatable)"`
	Buffer  float64  `short:"b" default:"1" help:"Buffer distance"`
	Contact string   `help:"Contact email"`
}

// DefaultsCmd is the "config" subcommand.
type DefaultsCmd struct{}
