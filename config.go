package harvest

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// PageNumberPlaceholder marks where the page number goes in a pagination URL template.
const PageNumberPlaceholder = "{page_number}"

// Defaults for ExplorationConfig.
const (
	DefaultLinkSelector        = "a"
	DefaultMaxPages            = 5
	DefaultMaxNoNewLinksStreak = 5
	DefaultMaxNoLoadMoreStreak = 5

	DefaultScrollMaxSteps                  = 10
	DefaultScrollSettleWait                = 2 * time.Second
	DefaultScrollStagnantStepsBeforeGiveUp = 5

	DefaultExtractTimeout  = 25 * time.Second
	DefaultControlTimeout  = 10 * time.Second
	DefaultTurnDelay       = 2 * time.Second
	DefaultClickSettle     = 1 * time.Second
	DefaultAfterClickDelay = 2 * time.Second
)

// ScrollConfig controls the scroll-and-wait sequence used to trigger lazy loading.
type ScrollConfig struct {
	MaxSteps                  int           `json:"maxSteps"`
	SettleWait                time.Duration `json:"settleWait"`
	StagnantStepsBeforeGiveUp int           `json:"stagnantStepsBeforeGiveUp"`
}

// ExplorationConfig describes one link exploration run.
type ExplorationConfig struct {
	StartURL     string `json:"startUrl"`
	LinkSelector string `json:"linkSelector"`

	// PaginationURLTemplate contains PageNumberPlaceholder. When set the
	// run walks numbered pages instead of interacting with controls.
	PaginationURLTemplate   string `json:"paginationUrlTemplate"`
	NextControlSelector     string `json:"nextControlSelector"`
	LoadMoreControlSelector string `json:"loadMoreControlSelector"`
	ScrollEnabled           bool   `json:"scrollEnabled"`

	MaxPages            int `json:"maxPages"`
	MaxNoNewLinksStreak int `json:"maxNoNewLinksStreak"`
	MaxNoLoadMoreStreak int `json:"maxNoLoadMoreStreak"`

	Scroll ScrollConfig `json:"scroll"`

	ExtractTimeout  time.Duration `json:"extractTimeout"`
	ControlTimeout  time.Duration `json:"controlTimeout"`
	TurnDelay       time.Duration `json:"turnDelay"`
	ClickSettle     time.Duration `json:"clickSettle"`
	AfterClickDelay time.Duration `json:"afterClickDelay"`
}

// WithDefaults returns a copy of the config with zero values replaced by defaults.
// MaxPages is left alone so that Validate can reject explicit bad values;
// callers that want the default page cap set it themselves.
func (c ExplorationConfig) WithDefaults() ExplorationConfig {
	if c.LinkSelector == "" {
		c.LinkSelector = DefaultLinkSelector
	}
	if c.MaxNoNewLinksStreak == 0 {
		c.MaxNoNewLinksStreak = DefaultMaxNoNewLinksStreak
	}
	if c.MaxNoLoadMoreStreak == 0 {
		c.MaxNoLoadMoreStreak = DefaultMaxNoLoadMoreStreak
	}
	if c.Scroll.MaxSteps == 0 {
		c.Scroll.MaxSteps = DefaultScrollMaxSteps
	}
	if c.Scroll.SettleWait == 0 {
		c.Scroll.SettleWait = DefaultScrollSettleWait
	}
	if c.Scroll.StagnantStepsBeforeGiveUp == 0 {
		c.Scroll.StagnantStepsBeforeGiveUp = DefaultScrollStagnantStepsBeforeGiveUp
	}
	if c.ExtractTimeout == 0 {
		c.ExtractTimeout = DefaultExtractTimeout
	}
	if c.ControlTimeout == 0 {
		c.ControlTimeout = DefaultControlTimeout
	}
	if c.TurnDelay == 0 {
		c.TurnDelay = DefaultTurnDelay
	}
	if c.ClickSettle == 0 {
		c.ClickSettle = DefaultClickSettle
	}
	if c.AfterClickDelay == 0 {
		c.AfterClickDelay = DefaultAfterClickDelay
	}
	return c
}

// Validate returns an EINVALID error if the config cannot drive a run.
func (c *ExplorationConfig) Validate() error {
	if c.StartURL == "" {
		return Errorf(EINVALID, "start URL required")
	}
	if err := validateURL(c.StartURL); err != nil {
		return Errorf(EINVALID, "invalid start URL %q: %v", c.StartURL, err)
	}
	if c.LinkSelector == "" {
		return Errorf(EINVALID, "link selector required")
	}
	if c.PaginationURLTemplate != "" {
		if !strings.Contains(c.PaginationURLTemplate, PageNumberPlaceholder) {
			return Errorf(EINVALID, "pagination URL must contain %s", PageNumberPlaceholder)
		}
		if err := validateURL(c.PageURL(1)); err != nil {
			return Errorf(EINVALID, "invalid pagination URL %q: %v", c.PaginationURLTemplate, err)
		}
	}
	if c.MaxPages < 1 {
		return Errorf(EINVALID, "max pages must be at least 1, got %d", c.MaxPages)
	}
	if c.MaxNoNewLinksStreak < 1 {
		return Errorf(EINVALID, "max no-new-links streak must be at least 1, got %d", c.MaxNoNewLinksStreak)
	}
	if c.MaxNoLoadMoreStreak < 1 {
		return Errorf(EINVALID, "max no-load-more streak must be at least 1, got %d", c.MaxNoLoadMoreStreak)
	}
	if c.Scroll.MaxSteps < 1 {
		return Errorf(EINVALID, "scroll steps must be at least 1, got %d", c.Scroll.MaxSteps)
	}
	if c.Scroll.StagnantStepsBeforeGiveUp < 1 {
		return Errorf(EINVALID, "stagnant scroll steps must be at least 1, got %d", c.Scroll.StagnantStepsBeforeGiveUp)
	}
	if c.Scroll.SettleWait < 0 || c.ExtractTimeout < 0 || c.ControlTimeout < 0 ||
		c.TurnDelay < 0 || c.ClickSettle < 0 || c.AfterClickDelay < 0 {
		return Errorf(EINVALID, "durations must not be negative")
	}
	return nil
}

// Paginated reports whether the config runs in templated-pagination mode.
func (c *ExplorationConfig) Paginated() bool {
	return c.PaginationURLTemplate != ""
}

// PageURL substitutes the page number into the pagination template.
func (c *ExplorationConfig) PageURL(page int) string {
	return strings.ReplaceAll(c.PaginationURLTemplate, PageNumberPlaceholder, strconv.Itoa(page))
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return errors.New("URL must be absolute")
	}
	return nil
}
