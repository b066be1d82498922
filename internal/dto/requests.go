package dto

import "github.com/proposalgen/proposal-backend/internal/models"

// RegisterRequest represents the request to create an account
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the request to sign in
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateProposalRequest represents the proposal generation form
type CreateProposalRequest struct {
	ProjectName   string  `json:"project_name"`
	ProjectType   string  `json:"project_type"`
	Description   string  `json:"description"`
	Budget        float64 `json:"budget"`
	DurationWeeks int     `json:"duration_weeks"`
	WritingStyle  string  `json:"writing_style"`
	Complexity    string  `json:"complexity"`
	Audience      string  `json:"audience"`
	ContactEmail  string  `json:"contact_email"`
	MobileNumber  string  `json:"mobile_number"`
	Language      string  `json:"language"`
}

// ToModel converts the form into a domain request
func (r CreateProposalRequest) ToModel() models.ProposalRequest {
	return models.ProposalRequest{
		ProjectName:   r.ProjectName,
		ProjectType:   r.ProjectType,
		Description:   r.Description,
		Budget:        r.Budget,
		DurationWeeks: r.DurationWeeks,
		WritingStyle:  r.WritingStyle,
		Complexity:    r.Complexity,
		Audience:      r.Audience,
		ContactEmail:  r.ContactEmail,
		MobileNumber:  r.MobileNumber,
		Language:      r.Language,
	}
}
