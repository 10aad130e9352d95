package repositories

import (
	"context"

	"github.com/Kariqs/prostore-api/models"
	"gorm.io/gorm"
)

type ProductQuery struct {
	Page     int
	Limit    int
	Search   string
	Category string
}

type ProductPage struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

type ProductRepository interface {
	FindProduct(ctx context.Context, id uint) (*models.Product, error)
}

type GormProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) FindProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Preload("Images").First(&product, id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *GormProductRepository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Preload("Images").Where("slug = ?", slug).First(&product).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *GormProductRepository) List(ctx context.Context, q ProductQuery) (ProductPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 4
	}

	filter := func(db *gorm.DB) *gorm.DB {
		if q.Search != "" {
			db = db.Where("name LIKE ?", "%"+q.Search+"%")
		}
		if q.Category != "" {
			db = db.Where("category = ?", q.Category)
		}
		return db
	}

	page := ProductPage{Page: q.Page, Limit: q.Limit}
	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Product{}).Scopes(filter).Count(&page.Total).Error; err != nil {
		return ProductPage{}, err
	}
	err := db.Preload("Images").
		Scopes(filter).
		Order("created_at desc").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&page.Products).Error
	if err != nil {
		return ProductPage{}, err
	}
	return page, nil
}

func (r *GormProductRepository) Featured(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Images").
		Where("is_featured = ?", true).
		Order("created_at desc").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *GormProductRepository) AddImage(ctx context.Context, image *models.ProductImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}
