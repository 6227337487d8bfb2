package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/harvest"
	main "github.com/fwojciec/harvest/cmd/harvest"
	"github.com/fwojciec/harvest/estimate"
	"github.com/fwojciec/harvest/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokensCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("estimates PDFs and writes report", func(t *testing.T) {
		t.Parallel()

		flags := workspaceFlags(t)
		ws := flags.Workspace()
		require.NoError(t, ws.Ensure())
		require.NoError(t, os.WriteFile(filepath.Join(ws.PDFsDir(), "a.pdf"), []byte("%PDF"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(ws.PDFsDir(), "b.pdf"), []byte("%PDF"), 0644))

		reader := &mock.PDFReader{
			ReadTextFn: func(path string) (string, error) {
				if filepath.Base(path) == "b.pdf" {
					return "", harvest.Errorf(harvest.EINVALID, "encrypted")
				}
				return "Undang-undang tentang keuangan negara", nil
			},
		}
		counter := &mock.TokenCounter{
			CountTokensFn: func(context.Context, string) (int, error) { return 1500, nil },
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Estimator: &estimate.Estimator{
				PDFReader: reader,
				Counter:   counter,
				Now:       func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) },
			},
		}
		cmd := &main.TokensCmd{WorkspaceFlags: flags, Kind: "pdf", Language: "id"}

		require.NoError(t, cmd.Run(deps))

		path := filepath.Join(ws.TokensDir(), estimate.ReportName(estimate.KindPDF))
		report, err := estimate.ReadReport(path)
		require.NoError(t, err)
		assert.Equal(t, 2, report.Files)
		assert.Equal(t, 1, report.Documents)
		assert.Equal(t, 1, report.Errors)
		assert.Equal(t, int64(1500), report.Tokens)

		out := stdout.String()
		assert.Contains(t, out, "pdf: ~2k tokens in 1 documents from 2 files, 1 unreadable")
		assert.Contains(t, out, path)
		assert.NotContains(t, out, "total:")
	})

	t.Run("totals every kind", func(t *testing.T) {
		t.Parallel()

		flags := workspaceFlags(t)
		ws := flags.Workspace()
		require.NoError(t, ws.Ensure())
		require.NoError(t, os.WriteFile(filepath.Join(ws.PDFsDir(), "a.pdf"), []byte("%PDF"), 0644))

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Estimator: &estimate.Estimator{
				PDFReader: &mock.PDFReader{
					ReadTextFn: func(string) (string, error) { return "abcdefgh", nil },
				},
			},
		}
		cmd := &main.TokensCmd{WorkspaceFlags: flags, Kind: "all", Language: "en"}

		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "en", deps.Estimator.Language)
		out := stdout.String()
		assert.Contains(t, out, "pdf: ~2 tokens in 1 documents from 1 files")
		assert.Contains(t, out, "warc: ~0 tokens in 0 documents from 0 files")
		assert.Contains(t, out, "total: ~2 tokens")
		assert.FileExists(t, filepath.Join(ws.TokensDir(), "pdf_tokens.json"))
		assert.FileExists(t, filepath.Join(ws.TokensDir(), "warc_tokens.json"))
	})

	t.Run("reports missing directory", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Estimator: &estimate.Estimator{},
		}
		cmd := &main.TokensCmd{WorkspaceFlags: workspaceFlags(t), Kind: "warc"}

		err := cmd.Run(deps)

		assert.Equal(t, harvest.ENOTFOUND, harvest.ErrorCode(err))
		assert.Contains(t, stderr.String(), "does not exist")
	})
}
