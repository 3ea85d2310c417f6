package repo

import (
	"gorm.io/gorm"

	"github.com/avidela/product-catalog/internal/sequence"
)

type GormRepo struct {
	DB  *gorm.DB
	Seq *sequence.Generator
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db, Seq: &sequence.Generator{DB: db}}
}
