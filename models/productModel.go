package models

import (
	"gorm.io/gorm"
)

type ProductImage struct {
	gorm.Model
	Url       string `json:"url" binding:"required"`
	ProductID uint   `json:"productId" binding:"required"`
}

type Product struct {
	gorm.Model
	Name        string         `json:"name" binding:"required,min=3"`
	Slug        string         `json:"slug" gorm:"size:191;uniqueIndex" binding:"required,min=3"`
	Category    string         `json:"category" gorm:"index" binding:"required,min=3"`
	Brand       string         `json:"brand" binding:"required,min=3"`
	Description string         `json:"description" binding:"required,min=3"`
	Price       Money          `json:"price" gorm:"type:decimal(12,2);not null"`
	Stock       int            `json:"stock" binding:"min=0"`
	Rating      Money          `json:"rating" gorm:"type:decimal(3,2);not null"`
	NumReviews  int            `json:"numReviews"`
	IsFeatured  bool           `json:"isFeatured"`
	Banner      string         `json:"banner"`
	Images      []ProductImage `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// ImageURL returns the first image, used as the cart and order thumbnail.
func (p Product) ImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].Url
}
