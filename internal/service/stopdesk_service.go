package service

import (
	"context"

	"github.com/belghachem/beehouse/internal/domain/model"
	"github.com/belghachem/beehouse/internal/infra/repository/db"
)

type IStopDeskService interface {
	CreateStopDesk(ctx context.Context, desk *model.StopDesk) error
	GetStopDesk(ctx context.Context, stopDeskID uint) (*model.StopDesk, error)
	ListActiveStopDesks(ctx context.Context, wilaya string) ([]model.StopDesk, error)
}

type StopDeskService struct {
	stopDeskRepo db.IStopDeskRepository
}

func NewStopDeskService(stopDeskRepo db.IStopDeskRepository) *StopDeskService {
	return &StopDeskService{stopDeskRepo: stopDeskRepo}
}

func (s *StopDeskService) CreateStopDesk(ctx context.Context, desk *model.StopDesk) error {
	return s.stopDeskRepo.CreateStopDesk(ctx, desk)
}

func (s *StopDeskService) GetStopDesk(ctx context.Context, stopDeskID uint) (*model.StopDesk, error) {
	return s.stopDeskRepo.GetStopDeskByID(ctx, stopDeskID)
}

// ListActiveStopDesks returns active desks, narrowed to one wilaya when
// given.
func (s *StopDeskService) ListActiveStopDesks(ctx context.Context, wilaya string) ([]model.StopDesk, error) {
	if wilaya != "" {
		return s.stopDeskRepo.GetActiveStopDesksByWilaya(ctx, wilaya)
	}
	return s.stopDeskRepo.GetActiveStopDesks(ctx)
}

var _ IStopDeskService = (*StopDeskService)(nil)
