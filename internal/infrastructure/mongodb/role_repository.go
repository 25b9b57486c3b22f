package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

type permissionDoc struct {
	ModelName string `bson:"model_name"`
	Create    bool   `bson:"create"`
	Read      bool   `bson:"read"`
	Update    bool   `bson:"update"`
	Delete    bool   `bson:"delete"`
}

type roleDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	RoleName  string             `bson:"role_name"`
	Models    []permissionDoc    `bson:"models"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d *roleDoc) toEntity() *entity.Role {
	perms := make([]entity.Permission, 0, len(d.Models))
	for _, m := range d.Models {
		perms = append(perms, entity.Permission{
			ModelName: m.ModelName,
			Create:    m.Create,
			Read:      m.Read,
			Update:    m.Update,
			Delete:    m.Delete,
		})
	}
	return &entity.Role{ID: d.ID.Hex(), Name: d.RoleName, Permissions: perms, CreatedAt: d.CreatedAt}
}

// RoleRepo implementación del puerto RoleRepository sobre MongoDB.
type RoleRepo struct {
	store *Store
	coll  *mongo.Collection
}

// NewRoleRepository construye el adaptador de persistencia para roles.
func NewRoleRepository(store *Store) *RoleRepo {
	return &RoleRepo{store: store, coll: store.collection(collRoles)}
}

// Create persiste un rol. El índice único sobre role_name resuelve la carrera
// entre dos creaciones simultáneas del mismo nombre.
func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	models := make([]permissionDoc, 0, len(role.Permissions))
	for _, p := range role.Permissions {
		models = append(models, permissionDoc{
			ModelName: p.ModelName,
			Create:    p.Create,
			Read:      p.Read,
			Update:    p.Update,
			Delete:    p.Delete,
		})
	}
	doc := roleDoc{
		ID:        primitive.NewObjectID(),
		RoleName:  role.Name,
		Models:    models,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrRoleAlreadyExists
		}
		return mapError("insert role", err)
	}
	role.ID = doc.ID.Hex()
	role.CreatedAt = doc.CreatedAt
	return nil
}

// GetByID obtiene un rol por ID.
func (r *RoleRepo) GetByID(ctx context.Context, id string) (*entity.Role, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, "get role by id", bson.M{"_id": oid})
}

// GetByName obtiene un rol por nombre exacto.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	return r.findOne(ctx, "get role by name", bson.M{"role_name": name})
}

// GetByIDs devuelve los roles existentes en el orden en que el almacén los entrega.
func (r *RoleRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Role, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return nil, nil
	}

	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()
	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, mapError("list roles by ids", err)
	}
	defer cursor.Close(ctx)

	var docs []roleDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, mapError("decode roles", err)
	}
	roles := make([]*entity.Role, 0, len(docs))
	for i := range docs {
		roles = append(roles, docs[i].toEntity())
	}
	return roles, nil
}

func (r *RoleRepo) findOne(ctx context.Context, op string, filter bson.M) (*entity.Role, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	var doc roleDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, mapError(op, err)
	}
	return doc.toEntity(), nil
}
