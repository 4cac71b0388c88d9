package handler

import (
	"time"

	"gorm.io/gorm"

	"campusnest/pgp"
	"campusnest/storage"
)

type Handler struct {
	DB          *gorm.DB
	Media       storage.Store
	Signer      *pgp.Signer
	JWTSecret   []byte
	AdminEmails []string
	Limits      Limits
}

type Limits struct {
	MaxImageBytes  int64
	MaxVideoBytes  int64
	OrphanMediaAge time.Duration
}

type UpdateResponse struct {
	Updated int64 `json:"updated"`
}

type ListResponse struct {
	Total int64       `json:"total"`
	Items interface{} `json:"items"`
}

type CreatedResponse struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
}

type LinkResponse struct {
	URL string `json:"url"`
}
