package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Conte777/catalog-search-bot/internal/domain/search/deps"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/entities"
	searcherrors "github.com/Conte777/catalog-search-bot/internal/domain/search/errors"
)

type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new request ledger repository
func NewRequestRepository(db *gorm.DB) deps.RequestRepository {
	return &requestRepository{db: db}
}

// Create stores a new request
func (r *requestRepository) Create(ctx context.Context, req *entities.Request) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("failed to create request for user %d: %w", req.UserID, err)
	}
	return nil
}

// GetByID returns a request by id
func (r *requestRepository) GetByID(ctx context.Context, id string) (*entities.Request, error) {
	var req entities.Request
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, searcherrors.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request %s: %w", id, err)
	}
	return &req, nil
}

// ListPending returns pending requests, oldest first
func (r *requestRepository) ListPending(ctx context.Context) ([]entities.Request, error) {
	var reqs []entities.Request
	err := r.db.WithContext(ctx).
		Where("status = ?", entities.RequestStatusPending).
		Order("requested_at").
		Find(&reqs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	return reqs, nil
}

// Resolve moves a pending request to resolved
func (r *requestRepository) Resolve(ctx context.Context, id string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.Request{}).
		Where("id = ? AND status = ?", id, entities.RequestStatusPending).
		Updates(map[string]any{
			"status":      entities.RequestStatusResolved,
			"resolved_at": at,
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to resolve request %s: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
