package model

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// File is one uploaded media object. It stays provisional until the
// submission that references it has been written.
type File struct {
	ID            string `json:"id" gorm:"type:uuid;primarykey"`
	Title         string `json:"title"`
	Path          string `json:"path"`
	URL           string `json:"url"`
	Mime          string `json:"mime"`
	Size          int64  `json:"size"`
	IsProvisional bool   `json:"is_provisional" gorm:"index"`
	SubmissionID  string `json:"submission_id,omitempty" gorm:"index"`
	CreatedByID   string `json:"created_by_id" gorm:"type:uuid"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     sql.NullTime `gorm:"index"`
}

type PruneResponse struct {
	Pruned int `json:"pruned"`
}

func (base *File) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID != "" {
		return
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return err
	}

	base.ID = id.String()
	return
}

func FileURLs(files []File) []string {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		urls = append(urls, f.URL)
	}
	return urls
}
