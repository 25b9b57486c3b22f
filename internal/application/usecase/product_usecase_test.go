package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
)

func TestProductUseCase_Create_ValoresPorDefecto(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewProductRepository(memory.NewStore()))

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:     "Camisa",
		Slug:     "Camisa-Azul",
		Price:    decimal.RequireFromString("50.00"),
		Discount: decimal.RequireFromString("7.50"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "camisa-azul", out.Slug)
	assert.Equal(t, entity.DefaultOrderLimit, out.OrderLimit)
	assert.Equal(t, entity.DefaultHeroImage, out.HeroImage)
	assert.False(t, out.ToDisplay, "no se publica hasta pedirlo")
	assert.True(t, out.SellingPrice.Equal(decimal.RequireFromString("42.5")), "selling_price = price - discount")
	assert.NotNil(t, out.Tags)
}

func TestProductUseCase_Create_SellingPriceExplicito(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewProductRepository(memory.NewStore()))
	selling := decimal.RequireFromString("39.99")
	limit := 2

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:         "Gorra",
		Slug:         "gorra",
		Price:        decimal.RequireFromString("45"),
		SellingPrice: &selling,
		OrderLimit:   &limit,
	})
	require.NoError(t, err)
	assert.True(t, out.SellingPrice.Equal(selling))
	assert.Equal(t, 2, out.OrderLimit)
}

func TestProductUseCase_Create_Errores(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewProductRepository(memory.NewStore()))
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "A", Slug: "a", Price: decimal.NewFromInt(1)})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "B", Slug: "A", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrConflict, "slug duplicado sin importar mayúsculas")

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "C", Slug: "c", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "D", Slug: "d", Price: decimal.NewFromInt(5), Discount: decimal.NewFromInt(6)})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
