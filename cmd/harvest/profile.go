package main

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/fwojciec/harvest"
	"gopkg.in/yaml.v3"
)

// Profile is a site profile: the exploration settings of one listing,
// stored as YAML so a site can be harvested again without retyping them.
type Profile struct {
	StartURL         string        `yaml:"start_url"`
	LinkSelector     string        `yaml:"link_selector"`
	PaginationURL    string        `yaml:"pagination_url"`
	NextSelector     string        `yaml:"next_selector"`
	LoadMoreSelector string        `yaml:"load_more_selector"`
	Scroll           bool          `yaml:"scroll"`
	MaxPages         int           `yaml:"max_pages"`
	MaxNoNewLinks    int           `yaml:"max_no_new_links"`
	MaxNoLoadMore    int           `yaml:"max_no_load_more"`
	ScrollSteps      int           `yaml:"scroll_steps"`
	ScrollWait       time.Duration `yaml:"scroll_wait"`
	StagnantSteps    int           `yaml:"stagnant_steps"`
}

// LoadProfile reads a profile file. Unknown keys are rejected so typos do
// not silently fall back to defaults.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, harvest.Errorf(harvest.ENOTFOUND, "profile %s not found", path)
	} else if err != nil {
		return nil, err
	}

	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, harvest.Errorf(harvest.EINVALID, "malformed profile %s: %v", path, err)
	}
	return &p, nil
}

// Config converts the profile into an exploration config.
func (p *Profile) Config() harvest.ExplorationConfig {
	return harvest.ExplorationConfig{
		StartURL:                p.StartURL,
		LinkSelector:            p.LinkSelector,
		PaginationURLTemplate:   p.PaginationURL,
		NextControlSelector:     p.NextSelector,
		LoadMoreControlSelector: p.LoadMoreSelector,
		ScrollEnabled:           p.Scroll,
		MaxPages:                p.MaxPages,
		MaxNoNewLinksStreak:     p.MaxNoNewLinks,
		MaxNoLoadMoreStreak:     p.MaxNoLoadMore,
		Scroll: harvest.ScrollConfig{
			MaxSteps:                  p.ScrollSteps,
			SettleWait:                p.ScrollWait,
			StagnantStepsBeforeGiveUp: p.StagnantSteps,
		},
	}
}
