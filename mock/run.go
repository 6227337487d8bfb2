package mock

import (
	"context"

	"github.com/fwojciec/harvest"
)

var _ harvest.RunService = (*RunService)(nil)

// RunService is a mock implementation of harvest.RunService.
type RunService struct {
	CreateRunFn    func(ctx context.Context, run *harvest.Run, links []string) error
	FindRunByIDFn  func(ctx context.Context, id string) (*harvest.Run, error)
	FindRunsFn     func(ctx context.Context, filter harvest.RunFilter) ([]*harvest.Run, error)
	FindRunLinksFn func(ctx context.Context, id string) ([]string, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *harvest.Run, links []string) error {
	return s.CreateRunFn(ctx, run, links)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*harvest.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter harvest.RunFilter) ([]*harvest.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) FindRunLinks(ctx context.Context, id string) ([]string, error) {
	return s.FindRunLinksFn(ctx, id)
}
