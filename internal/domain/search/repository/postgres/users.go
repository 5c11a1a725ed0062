package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Conte777/catalog-search-bot/internal/domain/search/deps"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/entities"
	pkgerrors "github.com/Conte777/catalog-search-bot/pkg/errors"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user ledger repository
func NewUserRepository(db *gorm.DB) deps.UserRepository {
	return &userRepository{db: db}
}

// Upsert inserts the user or refreshes the profile and last_seen, keeping joined_at and search_count
func (r *userRepository) Upsert(ctx context.Context, user *entities.User) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "first_name", "last_name", "last_seen"}),
		}).
		Omit("search_count").
		Create(user).Error
	if err != nil {
		return fmt.Errorf("failed to upsert user %d: %w", user.UserID, err)
	}
	return nil
}

// IncrementSearchCount atomically adds one to search_count
func (r *userRepository) IncrementSearchCount(ctx context.Context, userID int64) error {
	res := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("user_id = ?", userID).
		UpdateColumn("search_count", gorm.Expr("search_count + ?", 1))
	if res.Error != nil {
		return fmt.Errorf("failed to increment search count for %d: %w", userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return pkgerrors.NewNotFoundError(fmt.Sprintf("user %d not found", userID))
	}
	return nil
}

// ListIDs pages user ids with keyset pagination
func (r *userRepository) ListIDs(ctx context.Context, afterID int64, limit int) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("user_id > ?", afterID).
		Order("user_id").
		Limit(limit).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return ids, nil
}

// Stats returns total users and the sum of all search counts
func (r *userRepository) Stats(ctx context.Context) (int64, int64, error) {
	var users int64
	if err := r.db.WithContext(ctx).Model(&entities.User{}).Count(&users).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var searches int64
	err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Select("COALESCE(SUM(search_count), 0)").
		Scan(&searches).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to sum searches: %w", err)
	}

	return users, searches, nil
}
