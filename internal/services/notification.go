package service

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/pkg/sendgrid"
)

type NotificationService interface {
	SendEmail(ctx context.Context, req *models.EmailNotificationRequest) error
	NotifyOrderPlaced(ctx context.Context, userID uuid.UUID, result *models.CheckoutResult)
}

type notificationService struct {
	users        repository.UserRepository
	emailService sendgrid.EmailService
}

// NewNotificationService with a nil emailService drops every message.
func NewNotificationService(users repository.UserRepository, emailService sendgrid.EmailService) NotificationService {
	return &notificationService{users: users, emailService: emailService}
}

func (n *notificationService) SendEmail(ctx context.Context, req *models.EmailNotificationRequest) error {

	if n.emailService == nil {
		middleware.LoggerFromContext(ctx).Debug("Email delivery disabled", slog.String("subject", req.Subject))
		return nil
	}

	if err := n.emailService.Send(ctx, req); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// NotifyOrderPlaced is best effort: failures are logged and swallowed.
func (n *notificationService) NotifyOrderPlaced(ctx context.Context, userID uuid.UUID, result *models.CheckoutResult) {

	logger := middleware.LoggerFromContext(ctx)

	if n.emailService == nil {
		return
	}

	user, err := n.users.GetUserByID(ctx, userID)
	if err != nil {
		logger.Warn("Order confirmation skipped, user lookup failed", slog.String("error", err.Error()))
		return
	}

	req := orderConfirmation(user, result)

	if err := n.SendEmail(ctx, req); err != nil {
		logger.Warn("Order confirmation not delivered", slog.String("error", err.Error()))
		return
	}

	logger.Info("Order confirmation sent", slog.String("userId", userID.String()))
}

func orderConfirmation(user *models.User, result *models.CheckoutResult) *models.EmailNotificationRequest {

	var text, rows strings.Builder

	fmt.Fprintf(&text, "Hi %s,\n\n%s\n\n", user.Name, result.Message)

	for _, line := range result.OrderSummary {
		fmt.Fprintf(&text, "%d x %s @ %s = %s\n", line.Quantity, line.Name, line.Price.StringFixed(2), line.LineTotal.StringFixed(2))
		fmt.Fprintf(&rows, "<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			line.Quantity, html.EscapeString(line.Name), line.Price.StringFixed(2), line.LineTotal.StringFixed(2))
	}

	fmt.Fprintf(&text, "\nTotal: %s\n", result.Total.StringFixed(2))

	htmlBody := fmt.Sprintf("<p>Hi %s,</p><p>%s</p><table>%s</table><p><strong>Total: %s</strong></p>",
		html.EscapeString(user.Name), html.EscapeString(result.Message), rows.String(), result.Total.StringFixed(2))

	return &models.EmailNotificationRequest{
		To:          user.Email,
		Subject:     "Your order confirmation",
		Content:     text.String(),
		HTMLContent: htmlBody,
	}
}
