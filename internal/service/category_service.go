package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"shop-catalog/internal/model"
	"shop-catalog/internal/repository"

	"github.com/rs/zerolog"
)

// categoryService implements CategoryService.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, logger zerolog.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "category").Logger(),
	}
}

// List retrieves every category in creation order.
func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.List(ctx, 0, 0)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	s.logger.Debug().Int("count", len(categories)).Msg("retrieved categories")
	return categories, nil
}

// Page retrieves one page of categories.
func (s *categoryService) Page(ctx context.Context, req model.PageRequest) (model.Page[model.Category], error) {
	total, err := s.categoryRepo.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count categories")
		return model.Page[model.Category]{}, fmt.Errorf("failed to count categories: %w", err)
	}

	if !req.Within(total) {
		s.logger.Debug().
			Int("page", req.Number).
			Int64("total", total).
			Msg("category page out of range")
		return model.Page[model.Category]{}, model.ErrInvalidPage
	}

	categories, err := s.categoryRepo.List(ctx, req.Size, req.Offset())
	if err != nil {
		s.logger.Error().Err(err).Int("page", req.Number).Msg("failed to list categories")
		return model.Page[model.Category]{}, fmt.Errorf("failed to list categories: %w", err)
	}

	return model.Page[model.Category]{Items: categories, Count: total}, nil
}

// GetByID retrieves a single category by ID.
func (s *categoryService) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("category_id", id).Msg("failed to get category by ID")
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	if category == nil {
		s.logger.Debug().Int64("category_id", id).Msg("category not found")
		return nil, model.ErrCategoryNotFound
	}

	return category, nil
}

// Create validates and stores a new category.
func (s *categoryService) Create(ctx context.Context, input model.CategoryInput) (*model.Category, error) {
	input, err := validateCategoryInput(input)
	if err != nil {
		s.logger.Debug().Err(err).Msg("rejected category input")
		return nil, err
	}

	tx, err := s.categoryRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	category, err := s.categoryRepo.Create(ctx, tx, input)
	if err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create category")
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("category_id", category.ID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info().
		Int64("category_id", category.ID).
		Str("name", category.Name).
		Msg("category created")

	return category, nil
}

// Update validates and overwrites the writable fields of a category.
func (s *categoryService) Update(ctx context.Context, id int64, input model.CategoryInput) (*model.Category, error) {
	input, err := validateCategoryInput(input)
	if err != nil {
		s.logger.Debug().Err(err).Int64("category_id", id).Msg("rejected category input")
		return nil, err
	}

	tx, err := s.categoryRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	category, err := s.categoryRepo.Update(ctx, tx, id, input)
	if err != nil {
		s.logger.Error().Err(err).Int64("category_id", id).Msg("failed to update category")
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	if category == nil {
		s.logger.Debug().Int64("category_id", id).Msg("category not found")
		err = model.ErrCategoryNotFound
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("category_id", id).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.logger.Info().Int64("category_id", id).Msg("category updated")

	return category, nil
}

// validateCategoryInput trims the text fields and checks the name constraints.
func validateCategoryInput(input model.CategoryInput) (model.CategoryInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		input.Description = &description
	}

	verr := model.NewValidationError()
	switch {
	case input.Name == "":
		verr.Add("name", "This field may not be blank.")
	case utf8.RuneCountInString(input.Name) > model.MaxNameLength:
		verr.Add("name", fmt.Sprintf("Ensure this field has no more than %d characters.", model.MaxNameLength))
	}

	if !verr.Empty() {
		return input, verr
	}
	return input, nil
}
