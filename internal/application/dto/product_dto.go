package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DimensionDTO medidas del producto.
type DimensionDTO struct {
	Height decimal.Decimal `json:"height"`
	Length decimal.Decimal `json:"length"`
	Width  decimal.Decimal `json:"width"`
	Weight decimal.Decimal `json:"weight"`
}

// CreateProductRequest entrada para crear un producto. Los campos omitidos toman los valores por defecto.
type CreateProductRequest struct {
	Name          string           `json:"name" validate:"required,max=200"`
	Slug          string           `json:"slug" validate:"required,max=200"`
	Source        string           `json:"source" validate:"max=200"`
	Description   string           `json:"description" validate:"max=5000"`
	Price         decimal.Decimal  `json:"price"`
	Discount      decimal.Decimal  `json:"discount"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	Stock         int              `json:"stock" validate:"gte=0"`
	OrderLimit    *int             `json:"order_limit" validate:"omitempty,gte=1"`
	Tags          []string         `json:"tags" validate:"omitempty,max=50,dive,max=50"`
	HeroImage     string           `json:"heroimage" validate:"max=500"`
	IsFeatured    bool             `json:"is_featured"`
	NewArrival    bool             `json:"new_arrival"`
	ToDisplay     *bool            `json:"to_display"`
	RemovedStatus bool             `json:"removed_status"`
	Dimension     DimensionDTO     `json:"dimension"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	Source        string          `json:"source"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Discount      decimal.Decimal `json:"discount"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Stock         int             `json:"stock"`
	OrderLimit    int             `json:"order_limit"`
	Tags          []string        `json:"tags"`
	HeroImage     string          `json:"heroimage"`
	IsFeatured    bool            `json:"is_featured"`
	NewArrival    bool            `json:"new_arrival"`
	ToDisplay     bool            `json:"to_display"`
	RemovedStatus bool            `json:"removed_status"`
	Dimension     DimensionDTO    `json:"dimension"`
	CreatedAt     time.Time       `json:"created_at"`
}
