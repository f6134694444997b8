package models

import (
	"time"

	"gorm.io/gorm"
)

// Item belongs to exactly one user through UserID. User only carries the
// foreign key constraint and is never loaded.
type Item struct {
	ID          int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      int       `json:"user_id" gorm:"not null;index"`
	User        User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:NO ACTION"`
	ItemText    string    `json:"item_text" gorm:"type:text;index"`
	ImageNames  []string  `json:"item_images_names" gorm:"column:item_images_names;type:text;serializer:json"`
	DateCreated time.Time `json:"date_created" gorm:"autoCreateTime;<-:create"`
}

func (Item) TableName() string {
	return "items"
}

func (i *Item) AfterFind(tx *gorm.DB) error {
	if i.ImageNames == nil {
		i.ImageNames = []string{}
	}
	return nil
}
