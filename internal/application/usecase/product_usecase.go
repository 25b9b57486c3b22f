package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// ProductUseCase aplica reglas de negocio para productos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso con el puerto de persistencia.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create valida montos, completa valores por defecto y persiste. Slug repetido -> domain.ErrConflict.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if name == "" {
		return nil, domain.NewValidationError("name", "es obligatorio")
	}
	if slug == "" {
		return nil, domain.NewValidationError("slug", "es obligatorio")
	}
	if in.Price.IsNegative() {
		return nil, domain.NewValidationError("price", "no puede ser negativo")
	}
	if in.Discount.IsNegative() || in.Discount.GreaterThan(in.Price) {
		return nil, domain.NewValidationError("discount", "debe estar entre 0 y price")
	}

	selling := in.Price.Sub(in.Discount)
	if in.SellingPrice != nil {
		if in.SellingPrice.IsNegative() {
			return nil, domain.NewValidationError("selling_price", "no puede ser negativo")
		}
		selling = *in.SellingPrice
	}
	orderLimit := entity.DefaultOrderLimit
	if in.OrderLimit != nil {
		orderLimit = *in.OrderLimit
	}
	hero := strings.TrimSpace(in.HeroImage)
	if hero == "" {
		hero = entity.DefaultHeroImage
	}
	toDisplay := false
	if in.ToDisplay != nil {
		toDisplay = *in.ToDisplay
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	p := &entity.Product{
		Name:          name,
		Slug:          slug,
		Source:        in.Source,
		Description:   in.Description,
		Price:         in.Price,
		Discount:      in.Discount,
		SellingPrice:  selling,
		Stock:         in.Stock,
		OrderLimit:    orderLimit,
		Tags:          tags,
		HeroImage:     hero,
		IsFeatured:    in.IsFeatured,
		NewArrival:    in.NewArrival,
		ToDisplay:     toDisplay,
		RemovedStatus: in.RemovedStatus,
		Dimension: entity.Dimension{
			Height: in.Dimension.Height,
			Length: in.Dimension.Length,
			Width:  in.Dimension.Width,
			Weight: in.Dimension.Weight,
		},
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Source:        p.Source,
		Description:   p.Description,
		Price:         p.Price,
		Discount:      p.Discount,
		SellingPrice:  p.SellingPrice,
		Stock:         p.Stock,
		OrderLimit:    p.OrderLimit,
		Tags:          p.Tags,
		HeroImage:     p.HeroImage,
		IsFeatured:    p.IsFeatured,
		NewArrival:    p.NewArrival,
		ToDisplay:     p.ToDisplay,
		RemovedStatus: p.RemovedStatus,
		Dimension: dto.DimensionDTO{
			Height: p.Dimension.Height,
			Length: p.Dimension.Length,
			Width:  p.Dimension.Width,
			Weight: p.Dimension.Weight,
		},
		CreatedAt: p.CreatedAt,
	}
}
