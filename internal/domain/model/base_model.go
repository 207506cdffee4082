package model

import (
	"time"
)

type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
