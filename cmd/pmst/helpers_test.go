package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/pmst"
	main "github.com/fwojciec/pmst/cmd/pmst"
	"github.com/fwojciec/pmst/goquery"
	"github.com/stretchr/testify/require"
)

const (
	speciesURL = "https://www.environment.gov.au/cgi-bin/sprat/public/publicspecies.pl?taxon_id=197"

	reportHTML = `<!DOCTYPE html>
<html>
<head><title>EPBC Act Protected Matters Report</title></head>
<body>
<p><span>Report created: 14/10/19 10:21:43</span></p>
<p><span>Buffer: 1.0Km</span></p>
<p><span>-27.4698 153.0251</span></p>
<table>
<tr><td><a href="` + speciesURL + `">Koala</a></td><td>Vulnerable</td></tr>
</table>
</body>
</html>`

	speciesPage = `<html><head><title>Phascolarctos cinereus (Koala)</title></head>
<body><p>EPBC Act Listing Status: <strong>Vulnerable</strong></p></body></html>`
)

// writeFile writes content to name inside a fresh temporary directory.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// testDeps returns dependencies with buffered output and default config.
func testDeps(reports pmst.ReportService) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:     context.Background(),
		Stdout:  stdout,
		Stderr:  stderr,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:  pmst.DefaultConfig(),
		Parser:  goquery.NewParser(),
		Reports: reports,
	}, stdout, stderr
}
