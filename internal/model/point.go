package model

import "time"

// PointAdjustment is a manual signed correction to a user's season score.
type PointAdjustment struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `gorm:"column:user_id;not null;index:idx_point_adjustments_user_season"`
	SeasonID  uint64    `gorm:"column:season_id;not null;index:idx_point_adjustments_user_season"`
	Points    int64     `gorm:"column:points;not null"`
	Reason    string    `gorm:"column:reason;size:255"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (PointAdjustment) TableName() string {
	return "point_adjustments"
}

type GamePointType struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;size:120;not null"`
	Lookup    string    `gorm:"column:lookup;size:64;not null;uniqueIndex:uk_game_point_types_lookup"`
	Points    int64     `gorm:"column:points;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (GamePointType) TableName() string {
	return "game_point_types"
}

// GamePoint records one scored gameplay event worth its type's points.
type GamePoint struct {
	ID              uint64        `gorm:"primaryKey;autoIncrement"`
	UserID          uint64        `gorm:"column:user_id;not null;index:idx_game_points_user_season"`
	SeasonID        uint64        `gorm:"column:season_id;not null;index:idx_game_points_user_season"`
	GamePointTypeID uint64        `gorm:"column:game_point_type_id;not null;index"`
	GamePointType   GamePointType `gorm:"foreignKey:GamePointTypeID"`
	CreatedAt       time.Time     `gorm:"autoCreateTime"`
}

func (GamePoint) TableName() string {
	return "game_points"
}
