package model

import "time"

type User struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Email     string    `gorm:"column:email;size:255;not null;uniqueIndex:uk_users_email"`
	Name      string    `gorm:"column:name;size:120"`
	IsAdmin   bool      `gorm:"column:is_admin;not null;default:false"`
	Points    int64     `gorm:"column:points;not null;default:0"` // denormalized running total, not read by the ledger
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
