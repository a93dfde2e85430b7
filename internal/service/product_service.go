package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"smmagent/internal/models"
	"smmagent/internal/repository"
	"smmagent/internal/transfer"
)

type ProductService interface {
	Create(ctx context.Context, pc *transfer.ProductCreation) (*models.Product, error)
	List(ctx context.Context, skip, limit int) ([]*models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Update(ctx context.Context, id string, pu *transfer.ProductUpdate) (*models.Product, error)
	Remove(ctx context.Context, id string) error
	ContentPlan(ctx context.Context, id, contentType string, postCount int) (*models.ContentPlan, error)
}

type productService struct {
	pr repository.ProductRepository
}

func NewProductService(pr repository.ProductRepository) ProductService {
	return &productService{pr: pr}
}

func (s *productService) Create(ctx context.Context, pc *transfer.ProductCreation) (*models.Product, error) {
	var err error

	if pc == nil {
		err = errors.New("product creation data is nil")
		slog.Info(err.Error())
		return nil, err
	}
	if pc.Name == "" || pc.Description == "" {
		err = errors.New("product name and description are required")
		slog.Info(err.Error())
		return nil, err
	}
	if len(pc.Platforms) == 0 {
		err = errors.New("product must target at least one platform")
		slog.Info(err.Error())
		return nil, err
	}

	product := &models.Product{
		Name:           pc.Name,
		Description:    pc.Description,
		TargetAudience: pc.TargetAudience,
		Platforms:      pc.Platforms,
		Price:          pc.Price,
		Category:       pc.Category,
		Keywords:       pc.Keywords,
	}

	if _, err := s.pr.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) List(ctx context.Context, skip, limit int) ([]*models.Product, error) {
	return s.pr.List(ctx, skip, limit)
}

func (s *productService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.pr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, id string, pu *transfer.ProductUpdate) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if pu.Name != nil {
		product.Name = *pu.Name
	}
	if pu.Description != nil {
		product.Description = *pu.Description
	}
	if pu.TargetAudience != nil {
		product.TargetAudience = *pu.TargetAudience
	}
	if len(pu.Platforms) > 0 {
		product.Platforms = pu.Platforms
	}
	if pu.Price != nil {
		product.Price = *pu.Price
	}
	if pu.Category != nil {
		product.Category = *pu.Category
	}
	if len(pu.Keywords) > 0 {
		product.Keywords = pu.Keywords
	}

	if err := s.pr.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Remove(ctx context.Context, id string) error {
	return s.pr.Remove(ctx, id)
}

func (s *productService) ContentPlan(ctx context.Context, id, contentType string, postCount int) (*models.ContentPlan, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if contentType == "" {
		contentType = models.ContentTypePost
	}
	if postCount <= 0 {
		postCount = 5
	}

	return &models.ContentPlan{
		ProductID:   product.ID,
		ContentType: contentType,
		PostCount:   postCount,
		Platforms:   product.Platforms,
		CreatedAt:   time.Now(),
	}, nil
}
