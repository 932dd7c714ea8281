package goals

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/akarpov/welltrack/internal/storage"
	"github.com/go-playground/validator/v10"
)

var (
	ErrDuplicateGoal   = errors.New("goal already exists for this category")
	ErrInvalidCategory = errors.New("invalid goal category")
	ErrValidation      = errors.New("goal values must be finite, calories positive")
)

var validCategories = []string{CategoryNutrition}

// Storage defines the interface for goal storage operations
type Storage interface {
	GetGoal(ctx context.Context, ownerUserID string, category string) (*storage.GoalRow, error)
	GoalExists(ctx context.Context, ownerUserID string, category string) (bool, error)
	UpsertGoal(ctx context.Context, ownerUserID string, category string, upsert storage.GoalUpsert) (*storage.GoalRow, error)
}

// Service handles goal business logic. Validation happens here, before the
// store; the store itself never re-validates.
type Service struct {
	storage  Storage
	validate *validator.Validate
}

// NewService creates a new goals service.
func NewService(storage Storage) *Service {
	return &Service{
		storage:  storage,
		validate: validator.New(),
	}
}

// Exists reports whether the user already has a goal in the category.
// Absence is a normal false, never an error.
func (s *Service) Exists(ctx context.Context, ownerUserID string, category string) (bool, error) {
	if !isValidCategory(category) {
		return false, ErrInvalidCategory
	}
	return s.storage.GoalExists(ctx, ownerUserID, category)
}

// Create stores a brand-new goal. A goal already present for (user, category)
// is rejected with ErrDuplicateGoal via an explicit existence pre-check.
// The check-then-act window is accepted: the storage layer's unique key makes
// a concurrent double-create degrade to an update, never a duplicate row.
func (s *Service) Create(ctx context.Context, ownerUserID string, category string, req UpsertGoalRequest) (*GoalDTO, error) {
	if !isValidCategory(category) {
		return nil, ErrInvalidCategory
	}
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	exists, err := s.storage.GoalExists(ctx, ownerUserID, category)
	if err != nil {
		return nil, fmt.Errorf("failed to check goal existence: %w", err)
	}
	if exists {
		return nil, ErrDuplicateGoal
	}

	return s.upsert(ctx, ownerUserID, category, req)
}

// Update overwrites the goal for (user, category), creating it if the user
// somehow has none yet.
func (s *Service) Update(ctx context.Context, ownerUserID string, category string, req UpsertGoalRequest) (*GoalDTO, error) {
	if !isValidCategory(category) {
		return nil, ErrInvalidCategory
	}
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	return s.upsert(ctx, ownerUserID, category, req)
}

// Fetch returns the stored goal or nil when the user has none yet.
// Callers treat nil as "use default thresholds".
func (s *Service) Fetch(ctx context.Context, ownerUserID string, category string) (*GoalDTO, error) {
	if !isValidCategory(category) {
		return nil, ErrInvalidCategory
	}

	row, err := s.storage.GetGoal(ctx, ownerUserID, category)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goal: %w", err)
	}
	if row == nil {
		return nil, nil
	}

	dto := toDTO(row)
	return &dto, nil
}

func (s *Service) upsert(ctx context.Context, ownerUserID string, category string, req UpsertGoalRequest) (*GoalDTO, error) {
	row, err := s.storage.UpsertGoal(ctx, ownerUserID, category, storage.GoalUpsert{
		CalorieGoal: req.CalorieGoal,
		ProteinGoal: req.ProteinGoal,
		CarbGoal:    req.CarbGoal,
		FatGoal:     req.FatGoal,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert goal: %w", err)
	}

	dto := toDTO(row)
	return &dto, nil
}

func (s *Service) validateRequest(req UpsertGoalRequest) error {
	// validator tags reject negatives and NaN; Inf still passes gt/gte.
	for _, v := range []float64{req.CalorieGoal, req.ProteinGoal, req.CarbGoal, req.FatGoal} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrValidation
		}
	}
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func toDTO(row *storage.GoalRow) GoalDTO {
	return GoalDTO{
		ID:          row.ID,
		Category:    row.Category,
		CalorieGoal: row.CalorieGoal,
		ProteinGoal: row.ProteinGoal,
		CarbGoal:    row.CarbGoal,
		FatGoal:     row.FatGoal,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func isValidCategory(category string) bool {
	for _, valid := range validCategories {
		if category == valid {
			return true
		}
	}
	return false
}
