// Package memory implementa los puertos de persistencia en memoria con las mismas reglas de
// unicidad que el adaptador MongoDB. Se usa en tests y en desarrollo local sin base de datos.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var (
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.RoleRepository    = (*RoleRepo)(nil)
	_ repository.ProductRepository = (*ProductRepo)(nil)
)

// Store datos compartidos por los tres repositorios.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*entity.User
	roles    map[string]*entity.Role
	products map[string]*entity.Product
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]*entity.User),
		roles:    make(map[string]*entity.Role),
		products: make(map[string]*entity.Product),
	}
}

func newID() string { return primitive.NewObjectID().Hex() }

func now() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

// UserRepo usuarios en memoria.
type UserRepo struct{ s *Store }

// NewUserRepository construye el repositorio de usuarios.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	user.ID = newID()
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt
	if user.Roles == nil {
		user.Roles = []string{}
	}
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if u, ok := r.s.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) AddRole(ctx context.Context, userID, roleID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if !u.HasRole(roleID) {
		u.Roles = append(u.Roles, roleID)
	}
	u.UpdatedAt = now()
	return nil
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	u.UpdatedAt = now()
	return nil
}

// RoleRepo roles en memoria.
type RoleRepo struct{ s *Store }

// NewRoleRepository construye el repositorio de roles.
func NewRoleRepository(s *Store) *RoleRepo { return &RoleRepo{s: s} }

func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.roles {
		if existing.Name == role.Name {
			return domain.ErrRoleAlreadyExists
		}
	}
	role.ID = newID()
	role.CreatedAt = now()
	r.s.roles[role.ID] = cloneRole(role)
	return nil
}

func (r *RoleRepo) GetByID(ctx context.Context, id string) (*entity.Role, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if role, ok := r.s.roles[id]; ok {
		return cloneRole(role), nil
	}
	return nil, nil
}

func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, role := range r.s.roles {
		if role.Name == name {
			return cloneRole(role), nil
		}
	}
	return nil, nil
}

func (r *RoleRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Role, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Role
	for _, id := range ids {
		if role, ok := r.s.roles[id]; ok {
			out = append(out, cloneRole(role))
		}
	}
	return out, nil
}

// ProductRepo productos en memoria.
type ProductRepo struct{ s *Store }

// NewProductRepository construye el repositorio de productos.
func NewProductRepository(s *Store) *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.products {
		if existing.Slug == p.Slug {
			return domain.ErrConflict
		}
	}
	p.ID = newID()
	p.CreatedAt = now()
	cp := *p
	cp.Tags = slices.Clone(p.Tags)
	r.s.products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.Slug == slug {
			cp := *p
			cp.Tags = slices.Clone(p.Tags)
			return &cp, nil
		}
	}
	return nil, nil
}

func cloneUser(u *entity.User) *entity.User {
	cp := *u
	cp.Roles = slices.Clone(u.Roles)
	return &cp
}

func cloneRole(r *entity.Role) *entity.Role {
	cp := *r
	cp.Permissions = slices.Clone(r.Permissions)
	return &cp
}
