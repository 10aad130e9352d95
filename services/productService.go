package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Kariqs/prostore-api/cache"
	"github.com/Kariqs/prostore-api/models"
	"github.com/Kariqs/prostore-api/pricing"
	"github.com/Kariqs/prostore-api/repositories"
	"go.uber.org/zap"
)

type ProductCatalog interface {
	repositories.ProductRepository
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	List(ctx context.Context, q repositories.ProductQuery) (repositories.ProductPage, error)
	Featured(ctx context.Context, limit int) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	AddImage(ctx context.Context, image *models.ProductImage) error
}

type ImageUploader interface {
	Upload(ctx context.Context, productID uint, filename, contentType string, body io.Reader) (string, error)
}

type ImageFile struct {
	Filename    string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

type UploadReport struct {
	URLs   []string `json:"urls"`
	Failed []string `json:"failed,omitempty"`
}

type ProductService struct {
	products ProductCatalog
	cache    cache.Cache
	images   ImageUploader
	log      *zap.Logger
}

func NewProductService(products ProductCatalog, c cache.Cache, images ImageUploader, log *zap.Logger) *ProductService {
	return &ProductService{products: products, cache: c, images: images, log: log}
}

func (s *ProductService) List(ctx context.Context, q repositories.ProductQuery) (repositories.ProductPage, error) {
	key := fmt.Sprintf("list:%d:%d:%s:%s", q.Page, q.Limit, q.Search, q.Category)
	if raw, ok, err := s.cache.Get(ctx, key); err != nil {
		s.log.Warn("Product cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		var page repositories.ProductPage
		if err := json.Unmarshal(raw, &page); err == nil {
			return page, nil
		}
	}

	page, err := s.products.List(ctx, q)
	if err != nil {
		return repositories.ProductPage{}, fmt.Errorf("listing products: %w", err)
	}

	if raw, err := json.Marshal(page); err == nil {
		if err := s.cache.Set(ctx, key, raw); err != nil {
			s.log.Warn("Product cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return page, nil
}

func (s *ProductService) Featured(ctx context.Context, limit int) ([]models.Product, error) {
	return s.products.Featured(ctx, limit)
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.products.FindBySlug(ctx, slug)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	return product, err
}

func (s *ProductService) Create(ctx context.Context, product *models.Product) error {
	if err := validatePrice(product.Price); err != nil {
		return err
	}
	if err := s.products.Create(ctx, product); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// UploadImages stores each file and links it to the product. Files that fail
// are reported by name; the rest are kept.
func (s *ProductService) UploadImages(ctx context.Context, productID uint, files []ImageFile) (*UploadReport, error) {
	if _, err := s.products.FindProduct(ctx, productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	report := &UploadReport{}
	for _, file := range files {
		url, err := s.uploadOne(ctx, productID, file)
		if err != nil {
			s.log.Warn("Image upload failed", zap.String("file", file.Filename), zap.Error(err))
			report.Failed = append(report.Failed, file.Filename)
			continue
		}
		if err := s.products.AddImage(ctx, &models.ProductImage{Url: url, ProductID: productID}); err != nil {
			s.log.Error("Saving product image failed", zap.String("url", url), zap.Error(err))
			report.Failed = append(report.Failed, file.Filename)
			continue
		}
		report.URLs = append(report.URLs, url)
	}

	s.invalidate(ctx)
	return report, nil
}

func (s *ProductService) uploadOne(ctx context.Context, productID uint, file ImageFile) (string, error) {
	if s.images == nil {
		return "", ErrUploadsDisabled
	}
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return s.images.Upload(ctx, productID, file.Filename, file.ContentType, f)
}

// OnOrderPaid drops cached listings once a paid order has taken stock.
func (s *ProductService) OnOrderPaid(ctx context.Context, _ *models.Order) {
	s.invalidate(ctx)
}

func (s *ProductService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("Product cache invalidation failed", zap.Error(err))
	}
}

// validatePrice rejects negative prices and prices with sub-cent digits, which
// the decimal(12,2) column would silently round.
func validatePrice(price models.Money) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", pricing.ErrInvalidValue)
	}
	if !price.Equal(price.Truncate(2)) {
		return fmt.Errorf("%w: price must have at most two decimal places", pricing.ErrInvalidValue)
	}
	return nil
}
