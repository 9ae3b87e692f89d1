package registry_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/pmst"
	"github.com/fwojciec/pmst/mock"
	"github.com/fwojciec/pmst/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnricher_Enrich(t *testing.T) {
	t.Parallel()

	t.Run("fills every kind from report links", func(t *testing.T) {
		t.Parallel()

		f := registry.NewFetcher(pages(t, map[string]string{
			speciesURL:   `<html><head><title>Koala</title></head><body><strong>Vulnerable</strong></body></html>`,
			communityURL: `<html><head><title>Woodland</title></head><body><table><tr><td>Endangered</td></tr></table></body></html>`,
			kefURL:       `<html><body><h1 class="header-all">Reefs</h1></body></html>`,
			heritageURL:  `<html><head><title>Reef</title></head><body><p>Listed: National Heritage List</p></body></html>`,
		}), testConfig(), registry.WithLimiter(noLimit()))
		report := &pmst.Report{URLs: []string{
			"https://www.environment.gov.au/epbc",
			communityURL,
			heritageURL,
			speciesURL,
			kefURL,
		}}

		res, err := registry.NewEnricher(f, pmst.DefaultLinkRules(), nil).Enrich(context.Background(), report)

		require.NoError(t, err)
		assert.Empty(t, res.Skips)
		assert.Empty(t, res.Duplicates)
		require.Len(t, report.Species, 1)
		assert.Equal(t, pmst.StatusVulnerable, report.Species[0].Status)
		require.Len(t, report.Communities, 1)
		assert.Equal(t, pmst.StatusEndangered, report.Communities[0].Status)
		require.Len(t, report.Features, 1)
		assert.Equal(t, "Reefs", report.Features[0].Name)
		require.Len(t, report.Heritage, 1)
		assert.Equal(t, pmst.ListingNationalHeritage, report.Heritage[0].Status)
		assert.Empty(t, report.Parks)
	})

	t.Run("drops duplicate ids keeping the first", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		mirror := "https://www.environment.gov.au/cgi-bin/sprat/public/publicspecies.pl?mirror=1&taxon_id=197"
		f := registry.NewFetcher(pages(t, map[string]string{
			speciesURL: `<html><head><title>Koala</title></head></html>`,
			mirror:     `<html><head><title>Koala mirror</title></head></html>`,
		}), testConfig(), registry.WithLimiter(noLimit()))
		report := &pmst.Report{URLs: []string{mirror, speciesURL}}

		res, err := registry.NewEnricher(f, pmst.DefaultLinkRules(), logger).Enrich(context.Background(), report)

		require.NoError(t, err)
		require.Len(t, report.Species, 1)
		assert.Equal(t, "Koala mirror", report.Species[0].Name)
		require.Len(t, res.Duplicates, 1)
		assert.Equal(t, registry.Duplicate{Kind: pmst.KindSpecies, ID: "197", URL: speciesURL}, res.Duplicates[0])
		assert.Contains(t, buf.String(), "skipped duplicate entity")
	})

	t.Run("keeps entities already on the report", func(t *testing.T) {
		t.Parallel()

		f := registry.NewFetcher(pages(t, map[string]string{
			speciesURL: `<html><head><title>Fetched</title></head></html>`,
		}), testConfig(), registry.WithLimiter(noLimit()))
		existing := &pmst.Entity{Kind: pmst.KindSpecies, ID: "197", Name: "Stored", URL: speciesURL}
		report := &pmst.Report{URLs: []string{speciesURL}, Species: []*pmst.Entity{existing}}

		res, err := registry.NewEnricher(f, pmst.DefaultLinkRules(), nil).Enrich(context.Background(), report)

		require.NoError(t, err)
		require.Len(t, report.Species, 1)
		assert.Equal(t, "Stored", report.Species[0].Name)
		assert.Len(t, res.Duplicates, 1)
	})

	t.Run("reports skips without failing", func(t *testing.T) {
		t.Parallel()

		f := registry.NewFetcher(pages(t, nil), testConfig(), registry.WithLimiter(noLimit()))
		report := &pmst.Report{URLs: []string{speciesURL, communityURL}}

		res, err := registry.NewEnricher(f, pmst.DefaultLinkRules(), nil).Enrich(context.Background(), report)

		require.NoError(t, err)
		assert.Len(t, res.Skips, 2)
		assert.Empty(t, report.Species)
		assert.Empty(t, report.Communities)
	})

	t.Run("warns about ambiguous links", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		rules := append(pmst.DefaultLinkRules(), pmst.LinkRule{Kind: pmst.KindPark, Pattern: "publicspecies"})
		f := registry.NewFetcher(pages(t, map[string]string{
			speciesURL: `<html><head><title>Koala</title></head></html>`,
		}), testConfig(), registry.WithLimiter(noLimit()))
		report := &pmst.Report{URLs: []string{speciesURL}}

		res, err := registry.NewEnricher(f, rules, logger).Enrich(context.Background(), report)

		require.NoError(t, err)
		assert.Equal(t, []string{speciesURL}, res.Ambiguous)
		assert.Contains(t, buf.String(), "url matches more than one kind")
		assert.Len(t, report.Species, 1)
		assert.Len(t, report.Parks, 1)
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		f := registry.NewFetcher(&mock.PageFetcher{
			FetchPageFn: func(context.Context, string) (pmst.Document, error) {
				cancel()
				return nil, context.Canceled
			},
		}, testConfig(), registry.WithLimiter(noLimit()))
		report := &pmst.Report{URLs: []string{speciesURL}}

		_, err := registry.NewEnricher(f, pmst.DefaultLinkRules(), nil).Enrich(ctx, report)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
