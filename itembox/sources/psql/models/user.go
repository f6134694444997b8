package models

import "time"

type User struct {
	ID             int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Email          string    `json:"email" gorm:"type:varchar(320);not null;uniqueIndex"`
	HashedPassword string    `json:"-" gorm:"column:hashed_password;type:varchar(255);not null"`
	Username       string    `json:"username" gorm:"type:varchar(255)"`
	FullName       *string   `json:"full_name,omitempty" gorm:"type:varchar(255)"`
	Disabled       bool      `json:"disabled" gorm:"not null;default:false"`
	DateCreated    time.Time `json:"date_created" gorm:"autoCreateTime;<-:create"`
}

func (User) TableName() string {
	return "users"
}
