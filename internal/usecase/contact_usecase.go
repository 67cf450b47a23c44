package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ContactUsecase struct {
	messages repo.ContactMessageRepository
}

func NewContactUsecase(messages repo.ContactMessageRepository) *ContactUsecase {
	return &ContactUsecase{messages: messages}
}

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (u *ContactUsecase) Submit(ctx context.Context, in ContactInput) (*SuccessResponse, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Message) == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "All fields are required")
	}
	if !strings.Contains(in.Email, "@") {
		return nil, NewHTTPError(http.StatusBadRequest, "Invalid email")
	}

	if err := u.messages.Create(ctx, model.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
	}); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Failed to send message")
	}

	return &SuccessResponse{Message: "Message sent successfully"}, nil
}
