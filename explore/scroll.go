package explore

import (
	"context"

	"github.com/fwojciec/harvest"
)

// Scroll scrolls the page one viewport at a time to trigger lazy loading.
// It stops after cfg.MaxSteps steps, or earlier once the document height
// has stayed the same for cfg.StagnantStepsBeforeGiveUp consecutive steps.
// It returns the number of steps performed.
func Scroll(ctx context.Context, page harvest.Page, cfg harvest.ScrollConfig) (int, error) {
	height, err := page.Height(ctx)
	if err != nil {
		return 0, err
	}
	viewport, err := page.ViewportHeight(ctx)
	if err != nil {
		return 0, err
	}

	stagnant := 0
	for step := 1; step <= cfg.MaxSteps; step++ {
		if err := page.ScrollBy(ctx, viewport); err != nil {
			return step - 1, err
		}
		if err := page.Wait(ctx, cfg.SettleWait); err != nil {
			return step, err
		}

		newHeight, err := page.Height(ctx)
		if err != nil {
			return step, err
		}

		if newHeight == height {
			stagnant++
			if stagnant >= cfg.StagnantStepsBeforeGiveUp {
				return step, nil
			}
			continue
		}
		height = newHeight
		stagnant = 0
	}
	return cfg.MaxSteps, nil
}
