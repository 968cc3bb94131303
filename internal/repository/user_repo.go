package repository

import (
	"errors"

	"gorm.io/gorm"

	"taskhub/internal/model"
	pkgErrors "taskhub/pkg/responses"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id int64) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	Authenticate(username, password string) (*model.User, error)
	Count() (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	var existing model.User
	err := r.db.Where("username = ?", user.Username).First(&existing).Error
	if err == nil {
		return pkgErrors.New(pkgErrors.CodeConflict, "Username already taken")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "query user failed", err)
	}

	if err := r.db.Create(user).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "create user failed", err)
	}
	return nil
}

func (r *userRepository) FindByID(id int64) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrUserNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "query user failed", err)
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrUserNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "query user failed", err)
	}
	return &user, nil
}

// Authenticate checks the credential verbatim against the stored one.
func (r *userRepository) Authenticate(username, password string) (*model.User, error) {
	var user model.User
	err := r.db.Where("username = ? AND password = ?", username, password).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.New(pkgErrors.CodeUnauthorized, "Login failed")
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "query user failed", err)
	}
	return &user, nil
}

func (r *userRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&model.User{}).Count(&n).Error; err != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "count users failed", err)
	}
	return n, nil
}
