package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/Kariqs/prostore-api/cache"
	"github.com/Kariqs/prostore-api/models"
	"github.com/Kariqs/prostore-api/pricing"
	"github.com/Kariqs/prostore-api/repositories"
	"github.com/Kariqs/prostore-api/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeUploader struct {
	uploaded map[string]string
}

func (u *fakeUploader) Upload(_ context.Context, productID uint, filename, _ string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	if u.uploaded == nil {
		u.uploaded = map[string]string{}
	}
	u.uploaded[filename] = string(data)
	return fmt.Sprintf("https://cdn.example.com/products/%d-%s", productID, filename), nil
}

func imageFile(name, body string) ImageFile {
	return ImageFile{
		Filename:    name,
		ContentType: "image/jpeg",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewBufferString(body)), nil
		},
	}
}

func newProductService(t *testing.T, images ImageUploader) (*ProductService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	mem, err := cache.NewMemory(16)
	require.NoError(t, err)
	return NewProductService(repositories.NewProductRepository(db), mem, images, zap.NewNop()), db
}

func TestProductListIsCachedUntilWrite(t *testing.T) {
	ctx := context.Background()
	svc, db := newProductService(t, nil)
	testutil.CreateProduct(t, db, "Polo Shirt", "20", 3)

	q := repositories.ProductQuery{Page: 1, Limit: 10}
	page, err := svc.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	// written behind the service's back, so the cached page is served
	testutil.CreateProduct(t, db, "Jeans", "40", 3)
	page, err = svc.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "20.00", page.Products[0].Price.String())

	require.NoError(t, svc.Create(ctx, &models.Product{
		Name:  "Hoodie",
		Slug:  "hoodie",
		Price: models.MustMoney("55"),
		Stock: 2,
	}))
	page, err = svc.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
}

func TestCreateRejectsInvalidPrice(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProductService(t, nil)

	for _, price := range []string{"50.005", "-1"} {
		err := svc.Create(ctx, &models.Product{Name: "Socks", Slug: "socks-" + price, Price: models.MustMoney(price)})
		assert.ErrorIs(t, err, pricing.ErrInvalidValue, price)
	}

	product := &models.Product{Name: "Socks", Slug: "socks", Price: models.MustMoney("9.990")}
	require.NoError(t, svc.Create(ctx, product))
	stored, err := svc.GetBySlug(ctx, "socks")
	require.NoError(t, err)
	assert.Equal(t, "9.99", stored.Price.String())
}

func TestGetBySlug(t *testing.T) {
	ctx := context.Background()
	svc, db := newProductService(t, nil)
	created := testutil.CreateProduct(t, db, "Polo Shirt", "20", 3)

	product, err := svc.GetBySlug(ctx, "polo-shirt")
	require.NoError(t, err)
	assert.Equal(t, created.ID, product.ID)
	assert.Equal(t, "/images/polo-shirt.jpg", product.ImageURL())

	_, err = svc.GetBySlug(ctx, "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUploadImages(t *testing.T) {
	ctx := context.Background()
	uploader := &fakeUploader{}
	svc, db := newProductService(t, uploader)
	product := testutil.CreateProduct(t, db, "Polo Shirt", "20", 3)

	broken := ImageFile{
		Filename: "broken.jpg",
		Open:     func() (io.ReadCloser, error) { return nil, errors.New("unreadable") },
	}
	report, err := svc.UploadImages(ctx, product.ID, []ImageFile{
		imageFile("front.jpg", "front"),
		broken,
		imageFile("back.jpg", "back"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		fmt.Sprintf("https://cdn.example.com/products/%d-front.jpg", product.ID),
		fmt.Sprintf("https://cdn.example.com/products/%d-back.jpg", product.ID),
	}, report.URLs)
	assert.Equal(t, []string{"broken.jpg"}, report.Failed)
	assert.Equal(t, "front", uploader.uploaded["front.jpg"])

	stored, err := svc.GetBySlug(ctx, "polo-shirt")
	require.NoError(t, err)
	assert.Len(t, stored.Images, 3)

	_, err = svc.UploadImages(ctx, product.ID+10, []ImageFile{imageFile("x.jpg", "x")})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

// unlinkableCatalog uploads fine but cannot record the image row.
type unlinkableCatalog struct {
	ProductCatalog
}

func (unlinkableCatalog) AddImage(context.Context, *models.ProductImage) error {
	return errBoom
}

func TestUploadImagesReportsUnlinkedFiles(t *testing.T) {
	db := testutil.NewDB(t)
	mem, err := cache.NewMemory(16)
	require.NoError(t, err)
	catalog := unlinkableCatalog{ProductCatalog: repositories.NewProductRepository(db)}
	svc := NewProductService(catalog, mem, &fakeUploader{}, zap.NewNop())
	product := testutil.CreateProduct(t, db, "Polo Shirt", "20", 3)

	report, err := svc.UploadImages(context.Background(), product.ID, []ImageFile{imageFile("front.jpg", "front")})
	require.NoError(t, err)
	assert.Empty(t, report.URLs)
	assert.Equal(t, []string{"front.jpg"}, report.Failed)
}

func TestUploadImagesWithoutStore(t *testing.T) {
	svc, db := newProductService(t, nil)
	product := testutil.CreateProduct(t, db, "Polo Shirt", "20", 3)

	report, err := svc.UploadImages(context.Background(), product.ID, []ImageFile{imageFile("front.jpg", "front")})
	require.NoError(t, err)
	assert.Empty(t, report.URLs)
	assert.Equal(t, []string{"front.jpg"}, report.Failed)
}
