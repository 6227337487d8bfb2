package harvest_test

import (
	"testing"
	"time"

	"github.com/fwojciec/harvest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() harvest.ExplorationConfig {
	return harvest.ExplorationConfig{
		StartURL: "https://example.com/list",
		MaxPages: 3,
	}.WithDefaults()
}

func TestExplorationConfig_WithDefaults(t *testing.T) {
	t.Parallel()

	cfg := harvest.ExplorationConfig{StartURL: "https://example.com"}.WithDefaults()

	assert.Equal(t, "a", cfg.LinkSelector)
	assert.Equal(t, 5, cfg.MaxNoNewLinksStreak)
	assert.Equal(t, 5, cfg.MaxNoLoadMoreStreak)
	assert.Equal(t, 10, cfg.Scroll.MaxSteps)
	assert.Equal(t, 2*time.Second, cfg.Scroll.SettleWait)
	assert.Equal(t, 5, cfg.Scroll.StagnantStepsBeforeGiveUp)
	assert.Equal(t, 25*time.Second, cfg.ExtractTimeout)
	assert.Equal(t, 10*time.Second, cfg.ControlTimeout)
	assert.Equal(t, 0, cfg.MaxPages, "max pages is never defaulted")
}

func TestExplorationConfig_WithDefaults_KeepsExplicitValues(t *testing.T) {
	t.Parallel()

	cfg := harvest.ExplorationConfig{
		LinkSelector:        "a.doc",
		MaxNoNewLinksStreak: 2,
		Scroll:              harvest.ScrollConfig{MaxSteps: 3},
	}.WithDefaults()

	assert.Equal(t, "a.doc", cfg.LinkSelector)
	assert.Equal(t, 2, cfg.MaxNoNewLinksStreak)
	assert.Equal(t, 3, cfg.Scroll.MaxSteps)
}

func TestExplorationConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a valid config", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		require.NoError(t, cfg.Validate())
	})

	t.Run("rejects max pages below one", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.MaxPages = 0

		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
		assert.Contains(t, harvest.ErrorMessage(err), "max pages")
	})

	t.Run("rejects missing start URL", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.StartURL = ""

		err := cfg.Validate()
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})

	t.Run("rejects relative start URL", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.StartURL = "/list"

		err := cfg.Validate()
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})

	t.Run("rejects missing link selector", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.LinkSelector = ""

		err := cfg.Validate()
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})

	t.Run("rejects pagination template without placeholder", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.PaginationURLTemplate = "https://example.com/list?page=1"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, harvest.ErrorMessage(err), "{page_number}")
	})

	t.Run("rejects non-positive streak thresholds", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.MaxNoLoadMoreStreak = -1

		err := cfg.Validate()
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})

	t.Run("rejects negative durations", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.TurnDelay = -time.Second

		err := cfg.Validate()
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})
}

func TestExplorationConfig_PageURL(t *testing.T) {
	t.Parallel()

	cfg := harvest.ExplorationConfig{
		PaginationURLTemplate: "https://example.com/list?page={page_number}",
	}

	assert.True(t, cfg.Paginated())
	assert.Equal(t, "https://example.com/list?page=7", cfg.PageURL(7))
}
