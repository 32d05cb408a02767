package model

import "time"

type EpisodeStatus string

const (
	EpisodeStatusPending   EpisodeStatus = "pending"
	EpisodeStatusNext      EpisodeStatus = "next"
	EpisodeStatusPublished EpisodeStatus = "published"
)

func (s EpisodeStatus) Valid() bool {
	switch s {
	case EpisodeStatusPending, EpisodeStatusNext, EpisodeStatusPublished:
		return true
	}
	return false
}

type Episode struct {
	ID          uint64        `gorm:"primaryKey;autoIncrement" json:"id"`
	Number      int           `gorm:"column:number;not null" json:"number"`
	Title       string        `gorm:"column:title;size:255;not null" json:"title"`
	Status      EpisodeStatus `gorm:"column:status;size:16;not null;default:pending;index" json:"status"`
	AirDate     *time.Time    `gorm:"column:air_date" json:"airDate,omitempty"`
	Assignments []Assignment  `gorm:"foreignKey:EpisodeID" json:"assignments"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Episode) TableName() string {
	return "episodes"
}

type Movie struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"column:title;size:255;not null" json:"title"`
	Year      int       `gorm:"column:year" json:"year,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Movie) TableName() string {
	return "movies"
}

// Assignment ties a movie to an episode and the host who picked it.
type Assignment struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	EpisodeID uint64    `gorm:"column:episode_id;not null;index" json:"episodeId"`
	MovieID   uint64    `gorm:"column:movie_id;not null;index" json:"movieId"`
	Movie     Movie     `gorm:"foreignKey:MovieID" json:"movie"`
	UserID    uint64    `gorm:"column:user_id;index" json:"userId"`
	Type      string    `gorm:"column:type;size:32" json:"type"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Assignment) TableName() string {
	return "assignments"
}
