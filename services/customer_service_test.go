package services

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "github.com/yashrajoria/atelier-backend/common/errors"
	"github.com/yashrajoria/atelier-backend/models"
	"gorm.io/gorm"
)

func TestGetCounts(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	users.On("CountByRole", ctx, models.RoleCustomer, (*bool)(nil)).Return(int64(10), nil)
	users.On("CountByRole", ctx, models.RoleCustomer, mock.AnythingOfType("*bool")).Return(int64(7), nil)
	svc := NewCustomerService(users, testLogger)

	counts, err := svc.GetCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, &models.CustomerCounts{Total: 10, Active: 7, Inactive: 3}, counts)
}

func TestGetCustomer_NotFound(t *testing.T) {
	ctx := context.Background()
	missing := uuid.New()
	staff := &models.User{ID: uuid.New(), Role: models.RoleStaff}

	users := new(MockUserRepository)
	users.On("FindByID", ctx, missing).Return(nil, gorm.ErrRecordNotFound)
	users.On("FindByID", ctx, staff.ID).Return(staff, nil)
	svc := NewCustomerService(users, testLogger)

	_, err := svc.GetCustomer(ctx, missing)
	appErr := apperrors.As(err)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, fmt.Sprintf("Customer not found with ID: %s", missing), appErr.Message)

	_, err = svc.GetCustomer(ctx, staff.ID)
	assert.Equal(t, http.StatusNotFound, apperrors.As(err).Code)
}

func TestUpdateCustomer(t *testing.T) {
	ctx := context.Background()
	customer := &models.User{ID: uuid.New(), Role: models.RoleCustomer, Username: "ana", Email: "ana@example.com", City: "Porto"}

	t.Run("Partial", func(t *testing.T) {
		c := *customer
		users := new(MockUserRepository)
		users.On("FindByID", ctx, c.ID).Return(&c, nil)
		users.On("Update", ctx, mock.AnythingOfType("*models.User")).Return(nil)
		svc := NewCustomerService(users, testLogger)

		phone := "+351 900 000 000"
		updated, err := svc.UpdateCustomer(ctx, c.ID, &models.UpdateCustomerRequest{Phone: &phone})
		require.NoError(t, err)
		assert.Equal(t, phone, updated.Phone)
		assert.Equal(t, "Porto", updated.City)
		users.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		c := *customer
		users := new(MockUserRepository)
		users.On("FindByID", ctx, c.ID).Return(&c, nil)
		users.On("ExistsByEmail", ctx, "bea@example.com").Return(true, nil)
		svc := NewCustomerService(users, testLogger)

		email := "bea@example.com"
		_, err := svc.UpdateCustomer(ctx, c.ID, &models.UpdateCustomerRequest{Email: &email})
		assert.Equal(t, http.StatusConflict, apperrors.As(err).Code)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()
	c := &models.User{ID: uuid.New(), Role: models.RoleCustomer, IsActive: true}
	users := new(MockUserRepository)
	users.On("FindByID", ctx, c.ID).Return(c, nil)
	users.On("Update", ctx, c).Return(nil)
	svc := NewCustomerService(users, testLogger)

	updated, err := svc.SetStatus(ctx, c.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	users.AssertExpectations(t)
}
