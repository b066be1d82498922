package dto

import (
	"fmt"
	"time"

	"github.com/proposalgen/proposal-backend/internal/models"
	"github.com/proposalgen/proposal-backend/internal/validation"
)

// ErrorResponse represents a standard error response.
// Redirect tells the client which page to return to.
type ErrorResponse struct {
	Error    string                  `json:"error"`
	Code     string                  `json:"code,omitempty"`
	Redirect string                  `json:"redirect,omitempty"`
	Fields   []validation.FieldError `json:"fields,omitempty"`
}

// UserResponse represents a user without credentials
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse represents an issued access token
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AuthResponse represents the result of register or login
type AuthResponse struct {
	User  UserResponse  `json:"user"`
	Token TokenResponse `json:"token"`
}

// ProposalResponse represents a stored proposal with download links
type ProposalResponse struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Content     string            `json:"content"`
	ProjectType string            `json:"project_type"`
	GeneratedAt time.Time         `json:"generated_at"`
	Downloads   map[string]string `json:"downloads"`
}

// ProposalListResponse represents the dashboard list
type ProposalListResponse struct {
	Proposals []models.ProposalSummary `json:"proposals"`
	Total     int                      `json:"total"`
}

// NewUserResponse converts a user model
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// NewProposalResponse converts a proposal model and adds download links for formats
func NewProposalResponse(p *models.Proposal, formats []string) ProposalResponse {
	downloads := make(map[string]string, len(formats))
	for _, f := range formats {
		downloads[f] = fmt.Sprintf("/api/proposals/%d/download/%s", p.ID, f)
	}

	return ProposalResponse{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		ProjectType: p.ProjectType,
		GeneratedAt: p.GeneratedAt,
		Downloads:   downloads,
	}
}
