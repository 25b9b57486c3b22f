package mongodb

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

type dimensionDoc struct {
	Height decimal.Decimal `bson:"height"`
	Length decimal.Decimal `bson:"length"`
	Width  decimal.Decimal `bson:"width"`
	Weight decimal.Decimal `bson:"weight"`
}

type productDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Slug          string             `bson:"slug"`
	Source        string             `bson:"source"`
	Description   string             `bson:"description"`
	Price         decimal.Decimal    `bson:"price"`
	Discount      decimal.Decimal    `bson:"discount"`
	SellingPrice  decimal.Decimal    `bson:"selling_price"`
	Stock         int                `bson:"stock"`
	OrderLimit    int                `bson:"order_limit"`
	Tags          []string           `bson:"tags"`
	HeroImage     string             `bson:"heroimage"`
	IsFeatured    bool               `bson:"is_featured"`
	NewArrival    bool               `bson:"new_arrival"`
	ToDisplay     bool               `bson:"to_display"`
	RemovedStatus bool               `bson:"removed_status"`
	Dimension     dimensionDoc       `bson:"dimension"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func (d *productDoc) toEntity() *entity.Product {
	return &entity.Product{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Slug:          d.Slug,
		Source:        d.Source,
		Description:   d.Description,
		Price:         d.Price,
		Discount:      d.Discount,
		SellingPrice:  d.SellingPrice,
		Stock:         d.Stock,
		OrderLimit:    d.OrderLimit,
		Tags:          d.Tags,
		HeroImage:     d.HeroImage,
		IsFeatured:    d.IsFeatured,
		NewArrival:    d.NewArrival,
		ToDisplay:     d.ToDisplay,
		RemovedStatus: d.RemovedStatus,
		Dimension: entity.Dimension{
			Height: d.Dimension.Height,
			Length: d.Dimension.Length,
			Width:  d.Dimension.Width,
			Weight: d.Dimension.Weight,
		},
		CreatedAt: d.CreatedAt,
	}
}

// ProductRepo implementación del puerto ProductRepository sobre MongoDB.
type ProductRepo struct {
	store *Store
	coll  *mongo.Collection
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store, coll: store.collection(collProducts)}
}

// Create persiste un producto. Slug duplicado -> domain.ErrConflict.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	doc := productDoc{
		ID:            primitive.NewObjectID(),
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
		Dimension: dimensionDoc{
			Height: p.Dimension.Height,
			Length: p.Dimension.Length,
			Width:  p.Dimension.Width,
			Weight: p.Dimension.Weight,
		},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}

	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrConflict
		}
		return mapError("insert product", err)
	}
	p.ID = doc.ID.Hex()
	p.CreatedAt = doc.CreatedAt
	return nil
}

// GetBySlug obtiene un producto por slug.
func (r *ProductRepo) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	var doc productDoc
	if err := r.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&doc); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, mapError("get product by slug", err)
	}
	return doc.toEntity(), nil
}
