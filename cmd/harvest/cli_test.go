package main_test

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/harvest/cmd/harvest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commands = []string{"links", "pdf", "warc", "tokens", "pack", "runs"}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	for _, cmd := range commands {
		assert.Contains(t, stdout.String(), cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_ParsesLinksFlags(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{
		"links", "https://example.go.id/list",
		"-p", "kemenkeu", "-s", "jdih",
		"--dir", "/tmp/out",
		"--load-more", "button.more",
		"--scroll",
		"--max-pages", "12",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://example.go.id/list", cli.Links.URL)
	assert.Equal(t, "kemenkeu", cli.Links.Project)
	assert.Equal(t, "jdih", cli.Links.Subproject)
	assert.Equal(t, "/tmp/out", cli.Links.Dir)
	assert.Equal(t, "button.more", cli.Links.LoadMore)
	assert.True(t, cli.Links.Scroll)
	assert.Equal(t, 12, cli.Links.MaxPages)
	assert.Equal(t, "links.csv", cli.Links.Output)
}

func TestCLI_ParsesTokensFlags(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"tokens", "warc", "-p", "a", "-s", "b", "--content", "main"})

	require.NoError(t, err)
	assert.Equal(t, "warc", cli.Tokens.Kind)
	assert.Equal(t, "main", cli.Tokens.Content)
	assert.Equal(t, "id", cli.Tokens.Language)
}

func TestCLI_RejectsUnknownKind(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"pack", "zip", "-p", "a", "-s", "b"})

	require.Error(t, err)
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("help shows kong output", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		for _, cmd := range commands {
			assert.Contains(t, stdout.String(), cmd)
		}
		assert.Contains(t, stdout.String(), "Usage:")
		assert.Contains(t, stdout.String(), "Flags:")
	})

	t.Run("no arguments is an error", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")

		err := m.Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("runs lists an empty history", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"runs"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No runs recorded")
	})

	t.Run("pack zips the workspace PDFs", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		pdfs := filepath.Join(root, "kemenkeu", "jdih", "pdfs")
		require.NoError(t, os.MkdirAll(pdfs, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(pdfs, "a.pdf"), []byte("%PDF-1.4"), 0644))

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"pack", "--dir", root, "-p", "kemenkeu", "-s", "jdih"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "warc: nothing to pack")

		zr, err := zip.OpenReader(filepath.Join(root, "kemenkeu", "jdih", "archives", "Zeus_kemenkeu_jdih_pdf_files.zip"))
		require.NoError(t, err)
		defer zr.Close()
		require.Len(t, zr.File, 1)
		assert.Equal(t, "a.pdf", zr.File[0].Name)
	})

	t.Run("pack without files is an error", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"pack", "--dir", t.TempDir(), "-p", "a", "-s", "b"}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
