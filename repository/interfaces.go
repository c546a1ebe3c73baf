package repository

import (
	"context"

	"blogManagement/models"
)

// RoleRepository defines operations on Role entities.
type RoleRepositoryI interface {
	Create(ctx context.Context, name string) (*models.Role, error)
	GetByID(ctx context.Context, id int64) (*models.Role, error)
	GetByName(ctx context.Context, name string) (*models.Role, error)
	List(ctx context.Context) ([]models.Role, error)
	Delete(ctx context.Context, id int64) error
}

// UserRepository defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	Update(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// PostRepository defines operations on Post entities.
type PostRepositoryI interface {
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]models.Post, error)
	Update(ctx context.Context, id int64, upd models.PostUpdate) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
}
