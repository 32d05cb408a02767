package model

import "time"

// Season is a scoring period. A nil EndAt marks the current season.
type Season struct {
	ID        uint64     `gorm:"primaryKey;autoIncrement"`
	Name      string     `gorm:"column:name;size:120;not null"`
	StartAt   time.Time  `gorm:"column:start_at;not null;index"`
	EndAt     *time.Time `gorm:"column:end_at;index"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
}

func (Season) TableName() string {
	return "seasons"
}

func (s Season) IsCurrent() bool {
	return s.EndAt == nil
}
