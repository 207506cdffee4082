package service

import (
	"context"

	"github.com/belghachem/beehouse/internal/domain/model"
	"github.com/belghachem/beehouse/internal/infra/repository/db"
	"github.com/belghachem/beehouse/internal/pkg/util"
)

type IProductService interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProduct(ctx context.Context, productID uint) (*model.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*model.Product, error)
	ListProducts(ctx context.Context, category string) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
}

type ProductService struct {
	productRepo db.IProductRepository
}

func NewProductService(productRepo db.IProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

func (s *ProductService) CreateProduct(ctx context.Context, product *model.Product) error {
	if product.Slug == "" {
		product.Slug = util.Slugify(product.Name)
	}
	return s.productRepo.CreateProduct(ctx, product)
}

func (s *ProductService) GetProduct(ctx context.Context, productID uint) (*model.Product, error) {
	return s.productRepo.GetProductByID(ctx, productID)
}

func (s *ProductService) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return s.productRepo.GetProductBySlug(ctx, slug)
}

func (s *ProductService) ListProducts(ctx context.Context, category string) ([]model.Product, error) {
	if category != "" {
		return s.productRepo.GetProductsByCategory(ctx, category)
	}
	return s.productRepo.GetAllProducts(ctx)
}

func (s *ProductService) UpdateProduct(ctx context.Context, product *model.Product) error {
	return s.productRepo.UpdateProduct(ctx, product)
}

var _ IProductService = (*ProductService)(nil)
