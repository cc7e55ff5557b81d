package store

import (
	"context"

	"github.com/taskflow-dev/taskflow/internal/models"
	"gorm.io/gorm"
)

// Store is the persistence boundary. It owns the soft-delete filtering
// convention (gorm's DeletedAt: tombstoned rows persist but are excluded
// from every standard query) and all cross-entity lookups.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *Store) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User

	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// FindUsersByIDs resolves a set of user ids into rows, for response
// assembly (task assignee/creator briefs).
func (s *Store) FindUsersByIDs(ctx context.Context, ids []uint) (map[uint]models.User, error) {
	users := make(map[uint]models.User, len(ids))

	if len(ids) == 0 {
		return users, nil
	}

	var rows []models.User

	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}

	for _, u := range rows {
		users[u.ID] = u
	}

	return users, nil
}
