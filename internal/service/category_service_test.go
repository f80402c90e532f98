package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"shop-catalog/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool {
	return &v
}

func testCategories() []model.Category {
	now := time.Now().UTC()
	return []model.Category{
		{ID: 1, Name: "Fruits", Active: true, DateCreated: now, DateUpdated: now},
		{ID: 2, Name: "Légumes", DateCreated: now, DateUpdated: now},
	}
}

func TestCategoryService_List(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	tests := []struct {
		name        string
		mockReturn  []model.Category
		mockError   error
		expectError bool
	}{
		{
			name:       "Success",
			mockReturn: testCategories(),
		},
		{
			name:       "Empty",
			mockReturn: []model.Category{},
		},
		{
			name:        "Repository error",
			mockError:   errors.New("database error"),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCategoryRepository)
			service := NewCategoryService(mockRepo, logger)

			mockRepo.On("List", ctx, 0, 0).Return(tt.mockReturn, tt.mockError)

			categories, err := service.List(ctx)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, categories)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.mockReturn, categories)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCategoryService_Page(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	tests := []struct {
		name          string
		req           model.PageRequest
		total         int64
		expectList    bool
		expectedLimit int
		expectedOff   int
		expectedError error
	}{
		{
			name:          "First page",
			req:           model.PageRequest{Number: 1, Size: 2},
			total:         5,
			expectList:    true,
			expectedLimit: 2,
			expectedOff:   0,
		},
		{
			name:          "Last partial page",
			req:           model.PageRequest{Number: 3, Size: 2},
			total:         5,
			expectList:    true,
			expectedLimit: 2,
			expectedOff:   4,
		},
		{
			name:          "First page of empty listing",
			req:           model.PageRequest{Number: 1, Size: 2},
			total:         0,
			expectList:    true,
			expectedLimit: 2,
			expectedOff:   0,
		},
		{
			name:          "Page past the end",
			req:           model.PageRequest{Number: 4, Size: 2},
			total:         5,
			expectedError: model.ErrInvalidPage,
		},
		{
			name:          "Page zero",
			req:           model.PageRequest{Number: 0, Size: 2},
			total:         5,
			expectedError: model.ErrInvalidPage,
		},
		{
			name:          "Page whose offset overflows",
			req:           model.PageRequest{Number: 1844674407370955162, Size: 10},
			total:         3,
			expectedError: model.ErrInvalidPage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCategoryRepository)
			service := NewCategoryService(mockRepo, logger)

			mockRepo.On("Count", ctx).Return(tt.total, nil)
			if tt.expectList {
				mockRepo.On("List", ctx, tt.expectedLimit, tt.expectedOff).Return(testCategories(), nil)
			}

			page, err := service.Page(ctx, tt.req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.total, page.Count)
				assert.Len(t, page.Items, 2)
			}

			mockRepo.AssertExpectations(t)
		})
	}

	t.Run("Count error", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		service := NewCategoryService(mockRepo, logger)

		mockRepo.On("Count", ctx).Return(int64(0), errors.New("database error"))

		_, err := service.Page(ctx, model.PageRequest{Number: 1, Size: 10})
		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCategoryService_GetByID(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	category := &testCategories()[0]

	tests := []struct {
		name          string
		id            int64
		mockReturn    *model.Category
		mockError     error
		expectedError error
		expectError   bool
	}{
		{
			name:       "Category found",
			id:         1,
			mockReturn: category,
		},
		{
			name:          "Category not found",
			id:            999,
			expectedError: model.ErrCategoryNotFound,
			expectError:   true,
		},
		{
			name:        "Repository error",
			id:          1,
			mockError:   errors.New("database error"),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCategoryRepository)
			service := NewCategoryService(mockRepo, logger)

			mockRepo.On("GetByID", ctx, tt.id).Return(tt.mockReturn, tt.mockError)

			result, err := service.GetByID(ctx, tt.id)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
				if tt.expectedError != nil {
					assert.ErrorIs(t, err, tt.expectedError)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.mockReturn, result)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCategoryService_Create_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockCategoryRepository)
	mockTx := new(MockTx)
	service := NewCategoryService(mockRepo, logger)

	expectedInput := model.CategoryInput{Name: "Media", Description: stringPtr("Books and films"), Active: boolPtr(true)}
	created := &model.Category{ID: 3, Name: "Media", Description: "Books and films", Active: true}

	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockRepo.On("Create", ctx, mockTx, expectedInput).Return(created, nil)
	mockTx.On("Commit", ctx).Return(nil)

	result, err := service.Create(ctx, model.CategoryInput{
		Name:        "  Media ",
		Description: stringPtr("Books and films\n"),
		Active:      boolPtr(true),
	})

	require.NoError(t, err)
	assert.Equal(t, created, result)
	assert.True(t, mockTx.committed)
	assert.False(t, mockTx.rolledBack)

	mockRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
}

func TestCategoryService_Create_ValidationErrors(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	tests := []struct {
		name          string
		input         model.CategoryInput
		expectedField string
		expectedMsg   string
	}{
		{
			name:          "Blank name",
			input:         model.CategoryInput{Name: ""},
			expectedField: "name",
			expectedMsg:   "This field may not be blank.",
		},
		{
			name:          "Whitespace name",
			input:         model.CategoryInput{Name: "   "},
			expectedField: "name",
			expectedMsg:   "This field may not be blank.",
		},
		{
			name:          "Name too long",
			input:         model.CategoryInput{Name: strings.Repeat("é", model.MaxNameLength+1)},
			expectedField: "name",
			expectedMsg:   "Ensure this field has no more than 255 characters.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCategoryRepository)
			service := NewCategoryService(mockRepo, logger)

			result, err := service.Create(ctx, tt.input)

			assert.Nil(t, result)
			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, []string{tt.expectedMsg}, verr.Fields[tt.expectedField])

			mockRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
		})
	}

	t.Run("Name at the limit is accepted", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockTx := new(MockTx)
		service := NewCategoryService(mockRepo, logger)

		name := strings.Repeat("é", model.MaxNameLength)
		mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
		mockRepo.On("Create", ctx, mockTx, model.CategoryInput{Name: name}).
			Return(&model.Category{ID: 1, Name: name}, nil)
		mockTx.On("Commit", ctx).Return(nil)

		_, err := service.Create(ctx, model.CategoryInput{Name: name})
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestCategoryService_Create_TransactionRollback(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("Insert fails", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockTx := new(MockTx)
		service := NewCategoryService(mockRepo, logger)

		mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
		mockRepo.On("Create", ctx, mockTx, mock.AnythingOfType("model.CategoryInput")).
			Return(nil, errors.New("insert failed"))
		mockTx.On("Rollback", ctx).Return(nil)

		result, err := service.Create(ctx, model.CategoryInput{Name: "Media"})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, mockTx.rolledBack)
		assert.False(t, mockTx.committed)
		mockTx.AssertExpectations(t)
	})

	t.Run("Commit fails", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockTx := new(MockTx)
		service := NewCategoryService(mockRepo, logger)

		mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
		mockRepo.On("Create", ctx, mockTx, mock.AnythingOfType("model.CategoryInput")).
			Return(&model.Category{ID: 1, Name: "Media"}, nil)
		mockTx.On("Commit", ctx).Return(errors.New("commit failed"))
		mockTx.On("Rollback", ctx).Return(nil)

		result, err := service.Create(ctx, model.CategoryInput{Name: "Media"})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, mockTx.rolledBack)
		mockTx.AssertExpectations(t)
	})

	t.Run("Begin fails", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		service := NewCategoryService(mockRepo, logger)

		mockRepo.On("BeginTx", ctx).Return(nil, errors.New("pool closed"))

		result, err := service.Create(ctx, model.CategoryInput{Name: "Media"})

		assert.Error(t, err)
		assert.Nil(t, result)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCategoryService_Update(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockTx := new(MockTx)
		service := NewCategoryService(mockRepo, logger)

		input := model.CategoryInput{Name: "Fresh fruits", Description: stringPtr("Seasonal")}
		updated := &model.Category{ID: 1, Name: "Fresh fruits", Description: "Seasonal", Active: true}

		mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
		mockRepo.On("Update", ctx, mockTx, int64(1), input).Return(updated, nil)
		mockTx.On("Commit", ctx).Return(nil)

		result, err := service.Update(ctx, 1, input)

		require.NoError(t, err)
		assert.Equal(t, updated, result)
		assert.True(t, mockTx.committed)
		mockRepo.AssertExpectations(t)
		mockTx.AssertExpectations(t)
	})

	t.Run("Unknown category rolls back", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockTx := new(MockTx)
		service := NewCategoryService(mockRepo, logger)

		mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
		mockRepo.On("Update", ctx, mockTx, int64(999), mock.AnythingOfType("model.CategoryInput")).Return(nil, nil)
		mockTx.On("Rollback", ctx).Return(nil)

		result, err := service.Update(ctx, 999, model.CategoryInput{Name: "Ghost"})

		assert.ErrorIs(t, err, model.ErrCategoryNotFound)
		assert.Nil(t, result)
		assert.True(t, mockTx.rolledBack)
		assert.False(t, mockTx.committed)
	})

	t.Run("Validation error skips the transaction", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		service := NewCategoryService(mockRepo, logger)

		result, err := service.Update(ctx, 1, model.CategoryInput{Name: " "})

		var verr *model.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Nil(t, result)
		mockRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
	})

	t.Run("Repository error rolls back", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockTx := new(MockTx)
		service := NewCategoryService(mockRepo, logger)

		mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
		mockRepo.On("Update", ctx, mockTx, int64(1), mock.AnythingOfType("model.CategoryInput")).
			Return(nil, errors.New("update failed"))
		mockTx.On("Rollback", ctx).Return(nil)

		_, err := service.Update(ctx, 1, model.CategoryInput{Name: "Fruits"})

		assert.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrCategoryNotFound)
		assert.True(t, mockTx.rolledBack)
	})
}
