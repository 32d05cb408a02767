package model

import "time"

type GamblingStatus string

const (
	GamblingStatusPending GamblingStatus = "pending"
	GamblingStatusWon     GamblingStatus = "won"
	GamblingStatusLost    GamblingStatus = "lost"
)

type GamblingType struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;size:120;not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Lookup      *string   `gorm:"column:lookup;size:64;uniqueIndex:uk_gambling_types_lookup" json:"lookup,omitempty"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true" json:"isActive"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (GamblingType) TableName() string {
	return "gambling_types"
}

// GamblingPoints is a single wager. AssignmentID and TargetUserID are 0 when
// unset so the (user, type, assignment, target) unique index always applies.
type GamblingPoints struct {
	ID             uint64         `gorm:"primaryKey;autoIncrement"`
	UserID         uint64         `gorm:"column:user_id;not null;uniqueIndex:uk_gambling_points_tuple,priority:1"`
	GamblingTypeID uint64         `gorm:"column:gambling_type_id;not null;uniqueIndex:uk_gambling_points_tuple,priority:2"`
	AssignmentID   uint64         `gorm:"column:assignment_id;not null;default:0;uniqueIndex:uk_gambling_points_tuple,priority:3;index"`
	TargetUserID   uint64         `gorm:"column:target_user_id;not null;default:0;uniqueIndex:uk_gambling_points_tuple,priority:4"`
	SeasonID       uint64         `gorm:"column:season_id;not null;index"`
	Points         int64          `gorm:"column:points;not null"`
	Status         GamblingStatus `gorm:"column:status;size:16;not null;default:pending"`
	Successful     *bool          `gorm:"column:successful"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
}

func (GamblingPoints) TableName() string {
	return "gambling_points"
}

func (g GamblingPoints) IsPending() bool {
	return g.Status == GamblingStatusPending
}
