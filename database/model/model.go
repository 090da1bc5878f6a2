package model

import (
	"time"

	"github.com/astatica/portfolio/util/json_util"
)

// Admin is an administrator credential record. Created once by the bootstrap
// and only ever updated through the CLI.
type Admin struct {
	Id           int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Work is a single portfolio entry. The slug is unique and never changes
// once assigned; Categories and Credits are stored as raw JSON lists.
type Work struct {
	Id          int                  `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string               `json:"title" form:"title"`
	Slug        string               `json:"slug" gorm:"uniqueIndex;not null"`
	Categories  json_util.RawMessage `json:"categories" gorm:"type:text"`
	Description string               `json:"description" form:"description"`
	YoutubeUrl  string               `json:"youtubeUrl" form:"youtubeUrl"`
	CoverImage  string               `json:"coverImage"`
	Credits     json_util.RawMessage `json:"credits" gorm:"type:text"`
	CreatedAt   time.Time            `json:"createdAt"`
}
