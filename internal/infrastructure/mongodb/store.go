package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/Tienda-api/pkg/config"
)

// Nombres de colecciones.
const (
	collUsers    = "users"
	collRoles    = "roles"
	collProducts = "products"
)

// Store agrupa el cliente compartido (pool interno, seguro para goroutines), la base
// de datos y el tope de tiempo por operación.
type Store struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

// Connect abre el cliente con el registro de codecs propio, sin reintentos automáticos,
// y verifica la conexión con un ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	opts := options.Client().
		ApplyURI(cfg.URL).
		SetRegistry(NewRegistry()).
		SetRetryReads(false).
		SetRetryWrites(false).
		SetServerSelectionTimeout(cfg.Timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("conectar mongodb: %w", err)
	}
	s := NewStore(client, cfg.Database, cfg.Timeout)
	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return s, nil
}

// NewStore envuelve un cliente ya conectado.
func NewStore(client *mongo.Client, database string, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Store{client: client, db: client.Database(database), timeout: timeout}
}

// Ping verifica que el primario responda dentro del timeout.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.client.Ping(ctx, nil); err != nil {
		return mapError("ping", err)
	}
	return nil
}

// Close desconecta el cliente.
func (s *Store) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// EnsureIndexes crea los índices únicos de los que dependen las reglas de unicidad
// (email, nombre de rol, slug). Es idempotente.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string]string{
		collUsers:    "email",
		collRoles:    "role_name",
		collProducts: "slug",
	}
	for coll, field := range indexes {
		cctx, cancel := s.withTimeout(ctx)
		_, err := s.db.Collection(coll).Indexes().CreateOne(cctx, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true).SetName(field + "_unique"),
		})
		cancel()
		if err != nil {
			return mapError("crear índice "+coll+"."+field, err)
		}
	}
	return nil
}

// Drop elimina la base de datos completa (tests de integración).
func (s *Store) Drop(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.db.Drop(ctx)
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}
