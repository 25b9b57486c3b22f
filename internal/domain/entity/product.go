package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valores por defecto al crear un producto.
const (
	DefaultOrderLimit = 5
	DefaultHeroImage  = "default.jpg"
)

// Dimension medidas físicas del producto.
type Dimension struct {
	Height decimal.Decimal
	Length decimal.Decimal
	Width  decimal.Decimal
	Weight decimal.Decimal
}

// Product artículo del catálogo. Slug es único.
type Product struct {
	ID            string
	Name          string
	Slug          string
	Source        string
	Description   string
	Price         decimal.Decimal
	Discount      decimal.Decimal
	SellingPrice  decimal.Decimal // price - discount si no se informa
	Stock         int
	OrderLimit    int
	Tags          []string
	HeroImage     string
	IsFeatured    bool
	NewArrival    bool
	ToDisplay     bool
	RemovedStatus bool
	Dimension     Dimension
	CreatedAt     time.Time
}
