package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proposalgen/proposal-backend/internal/models"
)

func validRequest() models.ProposalRequest {
	return models.ProposalRequest{
		ProjectName:   "Borehole Project",
		ProjectType:   models.ProjectTypeOtherBusiness,
		Description:   "Drilling a borehole to supply clean water to the village.",
		Budget:        1500000,
		DurationWeeks: 12,
		WritingStyle:  models.WritingStyleProfessional,
		Complexity:    models.ComplexityMedium,
		Audience:      "Donors",
		ContactEmail:  "amina@example.com",
		Language:      models.LanguageEnglish,
	}
}

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()

	var errs Errors
	require.True(t, errors.As(err, &errs), "expected validation.Errors, got %v", err)

	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, fe.Field)
	}
	return fields
}

func TestValidateProposalRequest_Valid(t *testing.T) {
	assert.NoError(t, ValidateProposalRequest(validRequest()))

	req := validRequest()
	req.MobileNumber = "+2557123456"
	req.Language = models.LanguageSwahili
	assert.NoError(t, ValidateProposalRequest(req))
}

func TestValidateProposalRequest_Fields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.ProposalRequest)
		field  string
	}{
		{"short name", func(r *models.ProposalRequest) { r.ProjectName = "B" }, "project_name"},
		{"multiline name", func(r *models.ProposalRequest) { r.ProjectName = "Bore\nhole" }, "project_name"},
		{"unknown type", func(r *models.ProposalRequest) { r.ProjectType = "Mining" }, "project_type"},
		{"short description", func(r *models.ProposalRequest) { r.Description = "too short" }, "description"},
		{"long description", func(r *models.ProposalRequest) { r.Description = strings.Repeat("a", 501) }, "description"},
		{"zero budget", func(r *models.ProposalRequest) { r.Budget = 0 }, "budget"},
		{"zero duration", func(r *models.ProposalRequest) { r.DurationWeeks = 0 }, "duration_weeks"},
		{"unknown style", func(r *models.ProposalRequest) { r.WritingStyle = "Poetic" }, "writing_style"},
		{"unknown complexity", func(r *models.ProposalRequest) { r.Complexity = "Extreme" }, "complexity"},
		{"short audience", func(r *models.ProposalRequest) { r.Audience = "A" }, "audience"},
		{"bad email", func(r *models.ProposalRequest) { r.ContactEmail = "not-an-email" }, "contact_email"},
		{"short mobile", func(r *models.ProposalRequest) { r.MobileNumber = "12345" }, "mobile_number"},
		{"letters in mobile", func(r *models.ProposalRequest) { r.MobileNumber = "2557123abcd" }, "mobile_number"},
		{"unknown language", func(r *models.ProposalRequest) { r.Language = "fr" }, "language"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)

			err := ValidateProposalRequest(req)
			require.Error(t, err)
			assert.Equal(t, []string{tc.field}, fieldsOf(t, err))
		})
	}
}

func TestValidateProposalRequest_CollectsAllErrors(t *testing.T) {
	err := ValidateProposalRequest(models.ProposalRequest{})
	require.Error(t, err)

	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "project_name")
	assert.Contains(t, fields, "budget")
	assert.Contains(t, fields, "contact_email")
	assert.NotContains(t, fields, "mobile_number")
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("amina_01"))
	assert.Error(t, ValidateUsername("abc"))
	assert.Error(t, ValidateUsername("1amina"))
	assert.Error(t, ValidateUsername("amina!"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("password123"))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 73)))
}
