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

var _ repository.UserRepository = (*UserRepo)(nil)

type userDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Username    string               `bson:"username"`
	FullName    string               `bson:"full_name"`
	Email       string               `bson:"email"`
	Password    string               `bson:"password"`
	PhoneNumber string               `bson:"phone_number"`
	Roles       []primitive.ObjectID `bson:"roles"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

func (d *userDoc) toEntity() *entity.User {
	roles := make([]string, 0, len(d.Roles))
	for _, id := range d.Roles {
		roles = append(roles, id.Hex())
	}
	return &entity.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		FullName:     d.FullName,
		Email:        d.Email,
		PasswordHash: d.Password,
		PhoneNumber:  d.PhoneNumber,
		Roles:        roles,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// UserRepo implementación del puerto UserRepository sobre MongoDB.
type UserRepo struct {
	store *Store
	coll  *mongo.Collection
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(store *Store) *UserRepo {
	return &UserRepo{store: store, coll: store.collection(collUsers)}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	roles, err := toObjectIDs(user.Roles)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := userDoc{
		ID:          primitive.NewObjectID(),
		Username:    user.Username,
		FullName:    user.FullName,
		Email:       user.Email,
		Password:    user.PasswordHash,
		PhoneNumber: user.PhoneNumber,
		Roles:       roles,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailAlreadyExists
		}
		return mapError("insert user", err)
	}
	user.ID = doc.ID.Hex()
	user.Roles = fromObjectIDs(roles)
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

// GetByID obtiene un usuario por ID. Un id que no es ObjectID se trata como inexistente.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, "get user by id", bson.M{"_id": oid})
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "get user by email", bson.M{"email": email})
}

// AddRole agrega el rol con $addToSet (idempotente).
func (r *UserRepo) AddRole(ctx context.Context, userID, roleID string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	rid, err := primitive.ObjectIDFromHex(roleID)
	if err != nil {
		return domain.ErrRoleNotFound
	}

	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{
		"$addToSet": bson.M{"roles": rid},
		"$set":      bson.M{"updated_at": time.Now().UTC().Truncate(time.Millisecond)},
	})
	if err != nil {
		return mapError("add role to user", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdatePasswordHash reemplaza el hash almacenado.
func (r *UserRepo) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{
		"$set": bson.M{"password": hash, "updated_at": time.Now().UTC().Truncate(time.Millisecond)},
	})
	if err != nil {
		return mapError("update password hash", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) findOne(ctx context.Context, op string, filter bson.M) (*entity.User, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, mapError(op, err)
	}
	return doc.toEntity(), nil
}

func toObjectIDs(ids []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, domain.NewValidationError("roles", "contiene un id inválido")
		}
		out = append(out, oid)
	}
	return out, nil
}

func fromObjectIDs(ids []primitive.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}
