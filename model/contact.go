package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactSubmission struct {
	ID        string    `json:"id" gorm:"type:uuid;primarykey"`
	Name      string    `json:"name" validate:"required,max=120"`
	Email     string    `json:"email" validate:"required,email"`
	Phone     string    `json:"phone,omitempty" validate:"omitempty,contact"`
	Message   string    `json:"message" validate:"required,max=4000"`
	CreatedAt time.Time `json:"created_at"`
}

// FlatmateQuery is a student looking for someone to share a flat with.
type FlatmateQuery struct {
	ID            string    `json:"id" gorm:"type:uuid;primarykey"`
	Name          string    `json:"name" validate:"required,max=120"`
	Phone         string    `json:"phone" validate:"required,contact"`
	PreferredArea string    `json:"preferred_area" validate:"max=200"`
	Budget        int       `json:"budget" validate:"min=0"`
	MoveInMonth   string    `json:"move_in_month" validate:"max=40"`
	Message       string    `json:"message" validate:"max=4000"`
	CreatedAt     time.Time `json:"created_at"`
}

func (ContactSubmission) TableName() string {
	return "contact_submissions"
}

func (FlatmateQuery) TableName() string {
	return "flatmate_queries"
}

func (base *ContactSubmission) BeforeCreate(tx *gorm.DB) (err error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return err
	}

	base.ID = id.String()
	return
}

func (base *FlatmateQuery) BeforeCreate(tx *gorm.DB) (err error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return err
	}

	base.ID = id.String()
	return
}
