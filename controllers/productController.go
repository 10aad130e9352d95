package controllers

import (
	"io"
	"net/http"

	"github.com/Kariqs/prostore-api/models"
	"github.com/Kariqs/prostore-api/repositories"
	"github.com/Kariqs/prostore-api/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultPageSize     = 4
	defaultFeaturedSize = 4
)

type ProductController struct {
	products *services.ProductService
	log      *zap.Logger
}

func NewProductController(products *services.ProductService, log *zap.Logger) *ProductController {
	return &ProductController{products: products, log: log}
}

func (c *ProductController) GetProducts(ctx *gin.Context) {
	page, err := c.products.List(ctx.Request.Context(), repositories.ProductQuery{
		Page:     queryInt(ctx, "page", 1),
		Limit:    queryInt(ctx, "limit", defaultPageSize),
		Search:   ctx.Query("search"),
		Category: ctx.Query("category"),
	})
	if err != nil {
		respondWithError(ctx, c.log, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success":  true,
		"products": page.Products,
		"metadata": gin.H{
			"total": page.Total,
			"page":  page.Page,
			"limit": page.Limit,
		},
	})
}

func (c *ProductController) GetFeatured(ctx *gin.Context) {
	products, err := c.products.Featured(ctx.Request.Context(), queryInt(ctx, "limit", defaultFeaturedSize))
	if err != nil {
		respondWithError(ctx, c.log, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "products": products})
}

func (c *ProductController) GetProduct(ctx *gin.Context) {
	product, err := c.products.GetBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		respondWithError(ctx, c.log, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "product": product})
}

func (c *ProductController) CreateProduct(ctx *gin.Context) {
	var product models.Product
	if err := ctx.ShouldBindJSON(&product); err != nil {
		sendBindError(ctx, err)
		return
	}
	product.ID = 0
	product.Images = nil

	if err := c.products.Create(ctx.Request.Context(), &product); err != nil {
		respondWithError(ctx, c.log, err)
		return
	}
	sendSuccess(ctx, http.StatusCreated, "Product created successfully", gin.H{"product": product})
}

// UploadProductImages accepts a multipart form with one or more "images"
// files for the product in the path.
func (c *ProductController) UploadProductImages(ctx *gin.Context) {
	productID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid form data")
		return
	}
	headers := form.File["images"]
	if len(headers) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "No files uploaded")
		return
	}

	files := make([]services.ImageFile, 0, len(headers))
	for _, h := range headers {
		files = append(files, services.ImageFile{
			Filename:    h.Filename,
			ContentType: h.Header.Get("Content-Type"),
			Open:        func() (io.ReadCloser, error) { return h.Open() },
		})
	}

	report, err := c.products.UploadImages(ctx.Request.Context(), productID, files)
	if err != nil {
		respondWithError(ctx, c.log, err)
		return
	}

	response := gin.H{"urls": report.URLs}
	if len(report.Failed) > 0 {
		response["failed"] = report.Failed
	}
	sendSuccess(ctx, http.StatusOK, "Files processed", response)
}
