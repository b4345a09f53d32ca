package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	repoMocks "github.com/aaravmahajanofficial/storefront/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/services/mocks"
)

func TestSendEmail(t *testing.T) {
	ctx := context.Background()
	req := &models.EmailNotificationRequest{To: "test@example.com", Subject: "Hello", Content: "Hi there"}

	t.Run("Success", func(t *testing.T) {
		mockEmail := new(mocks.EmailService)
		notificationService := service.NewNotificationService(new(repoMocks.UserRepository), mockEmail)
		mockEmail.On("Send", ctx, req).Return(nil).Once()

		err := notificationService.SendEmail(ctx, req)

		assert.NoError(t, err)
		mockEmail.AssertExpectations(t)
	})

	t.Run("Provider failure", func(t *testing.T) {
		mockEmail := new(mocks.EmailService)
		notificationService := service.NewNotificationService(new(repoMocks.UserRepository), mockEmail)
		sendErr := errors.New("status code: 401")
		mockEmail.On("Send", ctx, req).Return(sendErr).Once()

		err := notificationService.SendEmail(ctx, req)

		assert.ErrorIs(t, err, sendErr)
	})

	t.Run("Disabled", func(t *testing.T) {
		notificationService := service.NewNotificationService(new(repoMocks.UserRepository), nil)

		assert.NoError(t, notificationService.SendEmail(ctx, req))
	})
}

func TestNotifyOrderPlaced(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	result := &models.CheckoutResult{
		Message: models.CheckoutMessage,
		OrderSummary: []models.OrderLine{
			{ProductID: "1", Name: "Lamp", Quantity: 2, Price: decimal.RequireFromString("10.00"), LineTotal: decimal.RequireFromString("20.00")},
		},
		Total: decimal.RequireFromString("20.00"),
	}

	t.Run("Sends a confirmation to the buyer", func(t *testing.T) {
		// Arrange
		mockUsers := new(repoMocks.UserRepository)
		mockEmail := new(mocks.EmailService)
		notificationService := service.NewNotificationService(mockUsers, mockEmail)

		mockUsers.On("GetUserByID", ctx, userID).Return(&models.User{ID: userID, Email: "ana@example.com", Name: "Ana"}, nil).Once()
		mockEmail.On("Send", ctx, mock.MatchedBy(func(req *models.EmailNotificationRequest) bool {
			return req.To == "ana@example.com" &&
				req.Subject == "Your order confirmation" &&
				assert.Contains(t, req.Content, "2 x Lamp @ 10.00 = 20.00") &&
				assert.Contains(t, req.HTMLContent, "Total: 20.00")
		})).Return(nil).Once()

		// Act
		notificationService.NotifyOrderPlaced(ctx, userID, result)

		// Assert
		mockUsers.AssertExpectations(t)
		mockEmail.AssertExpectations(t)
	})

	t.Run("Send failure is swallowed", func(t *testing.T) {
		mockUsers := new(repoMocks.UserRepository)
		mockEmail := new(mocks.EmailService)
		notificationService := service.NewNotificationService(mockUsers, mockEmail)

		mockUsers.On("GetUserByID", ctx, userID).Return(&models.User{ID: userID, Email: "ana@example.com"}, nil).Once()
		mockEmail.On("Send", ctx, mock.Anything).Return(errors.New("boom")).Once()

		assert.NotPanics(t, func() { notificationService.NotifyOrderPlaced(ctx, userID, result) })
		mockEmail.AssertExpectations(t)
	})

	t.Run("Unknown user", func(t *testing.T) {
		mockUsers := new(repoMocks.UserRepository)
		mockEmail := new(mocks.EmailService)
		notificationService := service.NewNotificationService(mockUsers, mockEmail)

		mockUsers.On("GetUserByID", ctx, userID).Return(nil, repository.ErrNotFound).Once()

		notificationService.NotifyOrderPlaced(ctx, userID, result)

		mockEmail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}
