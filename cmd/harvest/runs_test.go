package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/harvest"
	main "github.com/fwojciec/harvest/cmd/harvest"
	"github.com/fwojciec/harvest/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists runs", func(t *testing.T) {
		t.Parallel()

		var gotFilter harvest.RunFilter
		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, filter harvest.RunFilter) ([]*harvest.Run, error) {
				gotFilter = filter
				return []*harvest.Run{{
					ID:         "run-1",
					StartURL:   "https://jdih.example.go.id",
					Mode:       harvest.ModePagination,
					LinkCount:  120,
					StopReason: harvest.StopMaxPages,
					StartedAt:  time.Date(2024, 7, 1, 10, 5, 0, 0, time.UTC),
				}}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Runs: runs}
		cmd := &main.RunsCmd{URL: "https://jdih.example.go.id", Limit: 5}

		require.NoError(t, cmd.Run(deps))

		require.NotNil(t, gotFilter.StartURL)
		assert.Equal(t, "https://jdih.example.go.id", *gotFilter.StartURL)
		assert.Equal(t, 5, gotFilter.Limit)
		out := stdout.String()
		assert.Contains(t, out, "run-1")
		assert.Contains(t, out, "2024-07-01 10:05")
		assert.Contains(t, out, "120 links")
		assert.Contains(t, out, "max_pages")
	})

	t.Run("shows helpful message without runs", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunsFn: func(context.Context, harvest.RunFilter) ([]*harvest.Run, error) { return nil, nil },
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Runs: runs}

		require.NoError(t, (&main.RunsCmd{}).Run(deps))

		assert.Contains(t, stdout.String(), "No runs recorded")
	})

	t.Run("prints links of one run", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunLinksFn: func(_ context.Context, id string) ([]string, error) {
				assert.Equal(t, "run-1", id)
				return []string{"https://a", "https://b"}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Runs: runs}

		require.NoError(t, (&main.RunsCmd{ID: "run-1"}).Run(deps))

		assert.Equal(t, "https://a\nhttps://b\n", stdout.String())
	})

	t.Run("returns not found for unknown run", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunLinksFn: func(context.Context, string) ([]string, error) {
				return nil, harvest.Errorf(harvest.ENOTFOUND, "run not found")
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Runs: runs}

		err := (&main.RunsCmd{ID: "nope"}).Run(deps)

		assert.Equal(t, harvest.ENOTFOUND, harvest.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: run not found")
	})
}
