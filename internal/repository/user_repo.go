package repository

import (
	"errors"

	"hospital-appointment-api/internal/authz"
	"hospital-appointment-api/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindUserByUsername finds a user by username
func (r *UserRepository) FindUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByID finds a user by ID
func (r *UserRepository) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a new user
func (r *UserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// ListUsers returns users visible under the given scope. A hospital
// scope with IncludeUnassigned also covers staff and patient accounts
// not yet attached to any hospital.
func (r *UserRepository) ListUsers(scope authz.Scope) ([]models.User, error) {
	q := r.db.Order("username ASC")
	switch scope.Kind {
	case authz.ScopeAll:
		if scope.ExcludeUserID != 0 {
			q = q.Where("id <> ?", scope.ExcludeUserID)
		}
	case authz.ScopeHospital:
		if scope.IncludeUnassigned {
			q = q.Where("hospital_id = ? OR (hospital_id IS NULL AND role IN ?)",
				scope.HospitalID, []string{string(authz.RoleStaff), string(authz.RolePatient)})
		} else {
			q = q.Where("hospital_id = ?", scope.HospitalID)
		}
	default:
		return []models.User{}, nil
	}

	var users []models.User
	err := q.Find(&users).Error
	return users, err
}

// CreateRefreshToken creates a new refresh token
func (r *UserRepository) CreateRefreshToken(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

// FindRefreshTokenByHash finds a refresh token by its hash
func (r *UserRepository) FindRefreshTokenByHash(hash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.Where("token_hash = ? AND revoked = ?", hash, false).
		Preload("User").
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("refresh token not found or revoked")
		}
		return nil, err
	}
	return &token, nil
}

// RevokeRefreshTokenByHash marks a refresh token as revoked by its hash
func (r *UserRepository) RevokeRefreshTokenByHash(hash string) error {
	return r.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", hash).
		Update("revoked", true).Error
}
