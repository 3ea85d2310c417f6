package models

import (
	"time"
)

type Product struct {
	ID       string  `gorm:"primaryKey;type:uuid"  json:"id"`
	Name     string  `gorm:"not null"              json:"name"`
	Stock    string  `json:"stock"`
	Price    float64 `gorm:"not null"              json:"price"`
	Code     string  `gorm:"index"                 json:"code,omitempty"`
	ImageURL string  `json:"img"`
}

type User struct {
	ID           string    `gorm:"primaryKey;type:uuid"  json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"  json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `gorm:"not null"              json:"-"`
	Role         string    `gorm:"not null;default:user" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Counter backs a named code sequence. Value only ever grows.
type Counter struct {
	Name  string `gorm:"primaryKey"         json:"name"`
	Value int64  `gorm:"not null;default:0" json:"value"`
}
