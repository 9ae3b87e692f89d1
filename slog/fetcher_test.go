package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/pmst"
	"github.com/fwojciec/pmst/mock"
	pmstslog "github.com/fwojciec/pmst/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>Buffer: 1Km</html>", nil
			},
		}

		fetcher := pmstslog.NewLoggingFetcher(inner, logger)
		html, err := fetcher.Fetch(context.Background(), "https://www.environment.gov.au/epbc")

		require.NoError(t, err)
		assert.Equal(t, "<html>Buffer: 1Km</html>", html)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "url=https://www.environment.gov.au/epbc")
		assert.Contains(t, output, "bytes=24")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("connection reset")
			},
		}

		fetcher := pmstslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://www.environment.gov.au/epbc")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "err=\"connection reset\"")
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	t.Run("delegates to inner fetcher", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		closeCalled := false
		inner := &mock.Fetcher{
			CloseFn: func() error {
				closeCalled = true
				return nil
			},
		}

		fetcher := pmstslog.NewLoggingFetcher(inner, logger)
		err := fetcher.Close()

		require.NoError(t, err)
		assert.True(t, closeCalled)
	})
}

func TestLoggingPageFetcher_FetchPage(t *testing.T) {
	t.Parallel()

	t.Run("logs page title", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PageFetcher{
			FetchPageFn: func(ctx context.Context, url string) (pmst.Document, error) {
				return &mock.Document{TitleFn: func() string { return "Koala" }}, nil
			},
		}

		doc, err := pmstslog.NewLoggingPageFetcher(inner, logger).FetchPage(context.Background(), "https://example.com/197")

		require.NoError(t, err)
		assert.Equal(t, "Koala", doc.Title())
		output := buf.String()
		assert.Contains(t, output, "fetch page")
		assert.Contains(t, output, "title=Koala")
	})

	t.Run("logs error without a document", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PageFetcher{
			FetchPageFn: func(ctx context.Context, url string) (pmst.Document, error) {
				return nil, pmst.Errorf(pmst.EFETCH, "HTTP 500")
			},
		}

		_, err := pmstslog.NewLoggingPageFetcher(inner, logger).FetchPage(context.Background(), "https://example.com/197")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "HTTP 500")
	})
}
