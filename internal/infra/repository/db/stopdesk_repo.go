package db

import (
	"context"
	"errors"

	"github.com/belghachem/beehouse/internal/domain/model"
	"gorm.io/gorm"
)

var (
	// ErrStopDeskNotFound stop desk does not exist
	ErrStopDeskNotFound = errors.New("stop desk not found")
)

type IStopDeskRepository interface {
	CreateStopDesk(ctx context.Context, desk *model.StopDesk) error
	GetStopDeskByID(ctx context.Context, stopDeskID uint) (*model.StopDesk, error)
	GetActiveStopDesks(ctx context.Context) ([]model.StopDesk, error)
	GetActiveStopDesksByWilaya(ctx context.Context, wilaya string) ([]model.StopDesk, error)
}

type StopDeskRepo struct {
	db *DbDao
}

func NewStopDeskRepo(db *DbDao) *StopDeskRepo {
	return &StopDeskRepo{db: db}
}

func (r *StopDeskRepo) CreateStopDesk(ctx context.Context, desk *model.StopDesk) error {
	return r.db.WithContext(ctx).Create(desk).Error
}

func (r *StopDeskRepo) GetStopDeskByID(ctx context.Context, stopDeskID uint) (*model.StopDesk, error) {
	var desk model.StopDesk
	err := r.db.WithContext(ctx).First(&desk, "stop_desk_id = ?", stopDeskID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStopDeskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &desk, nil
}

func (r *StopDeskRepo) GetActiveStopDesks(ctx context.Context) ([]model.StopDesk, error) {
	var desks []model.StopDesk
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("wilaya, city, name").
		Find(&desks).Error
	return desks, err
}

func (r *StopDeskRepo) GetActiveStopDesksByWilaya(ctx context.Context, wilaya string) ([]model.StopDesk, error) {
	var desks []model.StopDesk
	err := r.db.WithContext(ctx).
		Where("wilaya = ? AND is_active = ?", wilaya, true).
		Order("city, name").
		Find(&desks).Error
	return desks, err
}

var _ IStopDeskRepository = (*StopDeskRepo)(nil)
