package handler

import (
	"time"

	"github.com/psikobank/user-registry/internal/core/domain"
	"github.com/psikobank/user-registry/internal/core/ports"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// envelope is the body of every response.
type envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func success(data any) envelope {
	return envelope{Status: statusSuccess, Data: data}
}

func successMessage(message string, data any) envelope {
	return envelope{Status: statusSuccess, Message: message, Data: data}
}

// userResponse is the public shape of a user. The password hash never leaves
// the service.
type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// userPage is one page of the listing together with its pagination metadata.
type userPage struct {
	CurrentPage int            `json:"current_page"`
	Data        []userResponse `json:"data"`
	PerPage     int            `json:"per_page"`
	Total       int64          `json:"total"`
	LastPage    int            `json:"last_page"`
	From        *int           `json:"from"`
	To          *int           `json:"to"`
}

func toUserPage(res *ports.ListUsersResult) userPage {
	page := userPage{
		CurrentPage: res.Page,
		Data:        make([]userResponse, len(res.Items)),
		PerPage:     res.Limit,
		Total:       res.Total,
		LastPage:    max(res.TotalPages, 1),
	}
	for i, u := range res.Items {
		page.Data[i] = toUserResponse(u)
	}
	if len(res.Items) > 0 {
		from := (res.Page-1)*res.Limit + 1
		to := from + len(res.Items) - 1
		page.From, page.To = &from, &to
	}
	return page
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// Swagger-only shapes.

type userEnvelope struct {
	Status  string       `json:"status" example:"success"`
	Message string       `json:"message,omitempty"`
	Data    userResponse `json:"data"`
}

type userPageEnvelope struct {
	Status string   `json:"status" example:"success"`
	Data   userPage `json:"data"`
}

type tokenEnvelope struct {
	Status string        `json:"status" example:"success"`
	Data   tokenResponse `json:"data"`
}

type messageEnvelope struct {
	Status  string `json:"status"  example:"error"`
	Message string `json:"message" example:"Unauthorized"`
}

type validationEnvelope struct {
	Status  string            `json:"status"  example:"error"`
	Message string            `json:"message" example:"validation failed"`
	Errors  map[string]string `json:"errors"`
}
