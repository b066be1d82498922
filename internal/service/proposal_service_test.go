package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/proposalgen/proposal-backend/internal/ai"
	"github.com/proposalgen/proposal-backend/internal/export"
	"github.com/proposalgen/proposal-backend/internal/logger"
	"github.com/proposalgen/proposal-backend/internal/models"
	"github.com/proposalgen/proposal-backend/internal/pkg/apperror"
	"github.com/proposalgen/proposal-backend/internal/repository"
	"github.com/proposalgen/proposal-backend/internal/storage"
)

func init() {
	logger.SetOutput(io.Discard)
}

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) VerifyCredentials(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string, meta ai.HeaderMeta) (string, error) {
	args := m.Called(ctx, prompt, meta)
	return args.String(0), args.Error(1)
}

type mockProposalRepo struct {
	mock.Mock
}

func (m *mockProposalRepo) Create(ctx context.Context, p *models.Proposal) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil {
		p.ID = 1
	}
	return args.Error(0)
}

func (m *mockProposalRepo) GetByID(ctx context.Context, id int64) (*models.Proposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Proposal), args.Error(1)
}

func (m *mockProposalRepo) ListByUser(ctx context.Context, userID int64) ([]models.ProposalSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.ProposalSummary), args.Error(1)
}

type mockExporter struct {
	mock.Mock
}

func (m *mockExporter) Export(ctx context.Context, format export.Format, content, filename, dir string) (string, error) {
	args := m.Called(ctx, format, content, filename, dir)
	return args.String(0), args.Error(1)
}

var fixedNow = time.Date(2026, 3, 1, 9, 5, 7, 0, time.UTC)

func validRequest() models.ProposalRequest {
	return models.ProposalRequest{
		ProjectName:   "Borehole Project",
		ProjectType:   models.ProjectTypeAgriculture,
		Description:   "Drill a borehole to supply clean water to the village farms.",
		Budget:        1500000,
		DurationWeeks: 12,
		WritingStyle:  models.WritingStyleProfessional,
		Complexity:    models.ComplexityMedium,
		Audience:      "Donors",
		ContactEmail:  "a@b.co",
	}
}

func newTestProposalService(t *testing.T, repo ProposalRepository, gen Generator, exp Exporter) (*ProposalService, *storage.ArtifactStorage) {
	t.Helper()

	artifacts, err := storage.NewArtifactStorage(t.TempDir())
	require.NoError(t, err)

	svc := NewProposalService(repo, gen, exp, artifacts)
	svc.now = func() time.Time { return fixedNow }
	return svc, artifacts
}

func TestProposalService_Submit_Success(t *testing.T) {
	repo := new(mockProposalRepo)
	gen := new(mockGenerator)
	svc, _ := newTestProposalService(t, repo, gen, new(mockExporter))

	gen.On("VerifyCredentials", mock.Anything).Return(nil)
	gen.On("Generate", mock.Anything, mock.AnythingOfType("string"), mock.MatchedBy(func(meta ai.HeaderMeta) bool {
		return meta.Title == "Borehole Project" && meta.GeneratedAt.Equal(fixedNow) && meta.DurationWeeks == 12
	})).Return("# Borehole Project\n\nbody", nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Proposal")).Return(nil)

	proposal, err := svc.Submit(context.Background(), 7, validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), proposal.ID)
	assert.Equal(t, int64(7), proposal.UserID)
	assert.Equal(t, "Borehole Project", proposal.Title)
	assert.Equal(t, models.ProjectTypeAgriculture, proposal.ProjectType)
	assert.Equal(t, "# Borehole Project\n\nbody", proposal.Content)
	assert.Equal(t, fixedNow, proposal.GeneratedAt)

	gen.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestProposalService_Submit_PromptUsesLanguage(t *testing.T) {
	repo := new(mockProposalRepo)
	gen := new(mockGenerator)
	svc, _ := newTestProposalService(t, repo, gen, new(mockExporter))

	req := validRequest()
	req.Language = "SW"

	gen.On("VerifyCredentials", mock.Anything).Return(nil)
	gen.On("Generate", mock.Anything, ai.BuildPrompt(normalizeRequest(req), "sw"), mock.Anything).Return("text", nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Submit(context.Background(), 7, req)
	require.NoError(t, err)

	gen.AssertExpectations(t)
}

func TestProposalService_Submit_CredentialFailureShortCircuits(t *testing.T) {
	repo := new(mockProposalRepo)
	gen := new(mockGenerator)
	svc, _ := newTestProposalService(t, repo, gen, new(mockExporter))

	gen.On("VerifyCredentials", mock.Anything).Return(apperror.Authentication(errors.New("401")))

	_, err := svc.Submit(context.Background(), 7, validRequest())

	assert.Equal(t, apperror.ErrCodeAuthentication, apperror.CodeOf(err))
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProposalService_Submit_GenerationFailure(t *testing.T) {
	repo := new(mockProposalRepo)
	gen := new(mockGenerator)
	svc, _ := newTestProposalService(t, repo, gen, new(mockExporter))

	gen.On("VerifyCredentials", mock.Anything).Return(nil)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("provider exploded"))

	_, err := svc.Submit(context.Background(), 7, validRequest())

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.ErrCodeGeneration, appErr.Code)
	assert.Equal(t, apperror.MsgGenerationFailed, appErr.Message)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProposalService_Submit_SaveFailure(t *testing.T) {
	repo := new(mockProposalRepo)
	gen := new(mockGenerator)
	svc, _ := newTestProposalService(t, repo, gen, new(mockExporter))

	gen.On("VerifyCredentials", mock.Anything).Return(nil)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("text", nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	_, err := svc.Submit(context.Background(), 7, validRequest())

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.ErrCodeDatabaseError, appErr.Code)
	assert.Equal(t, apperror.MsgSaveFailed, appErr.Message)
}

func TestProposalService_Submit_Validation(t *testing.T) {
	gen := new(mockGenerator)
	svc, _ := newTestProposalService(t, new(mockProposalRepo), gen, new(mockExporter))

	req := validRequest()
	req.Budget = 0
	req.Description = "too short"

	_, err := svc.Submit(context.Background(), 7, req)

	assert.True(t, apperror.IsValidation(err))
	gen.AssertNotCalled(t, "VerifyCredentials", mock.Anything)
}

func TestProposalService_Get_Authorization(t *testing.T) {
	repo := new(mockProposalRepo)
	svc, _ := newTestProposalService(t, repo, new(mockGenerator), new(mockExporter))

	repo.On("GetByID", mock.Anything, int64(1)).Return(&models.Proposal{ID: 1, UserID: 7, Content: "x"}, nil)
	repo.On("GetByID", mock.Anything, int64(2)).Return(nil, repository.ErrProposalNotFound)

	p, err := svc.Get(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.Equal(t, "x", p.Content)

	_, foreignErr := svc.Get(context.Background(), 8, 1)
	_, missingErr := svc.Get(context.Background(), 8, 2)

	assert.True(t, apperror.IsForbidden(foreignErr))
	assert.True(t, apperror.IsForbidden(missingErr))
	assert.Equal(t, foreignErr.Error(), missingErr.Error())
}

func TestProposalService_Download(t *testing.T) {
	repo := new(mockProposalRepo)
	exp := new(mockExporter)
	svc, artifacts := newTestProposalService(t, repo, new(mockGenerator), exp)

	repo.On("GetByID", mock.Anything, int64(5)).Return(&models.Proposal{ID: 5, UserID: 7, Content: "# T"}, nil)
	path := filepath.Join(artifacts.Dir(), "proposal_5_20260301090507.docx")
	exp.On("Export", mock.Anything, export.FormatDOCX, "# T", "proposal_5_20260301090507.docx", artifacts.Dir()).Return(path, nil)

	artifact, err := svc.Download(context.Background(), 7, 5, "docx")
	require.NoError(t, err)

	assert.Equal(t, path, artifact.Path)
	assert.Equal(t, "proposal_5_20260301090507.docx", artifact.Filename)
	assert.Equal(t, export.FormatDOCX.ContentType(), artifact.ContentType)
	exp.AssertExpectations(t)
}

func TestProposalService_Download_ForeignNeverExports(t *testing.T) {
	repo := new(mockProposalRepo)
	exp := new(mockExporter)
	svc, _ := newTestProposalService(t, repo, new(mockGenerator), exp)

	repo.On("GetByID", mock.Anything, int64(5)).Return(&models.Proposal{ID: 5, UserID: 7}, nil)

	for _, format := range []string{"pdf", "docx", "md"} {
		_, err := svc.Download(context.Background(), 8, 5, format)
		assert.True(t, apperror.IsForbidden(err), format)
	}
	exp.AssertNotCalled(t, "Export", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProposalService_Download_InvalidFormat(t *testing.T) {
	repo := new(mockProposalRepo)
	svc, _ := newTestProposalService(t, repo, new(mockGenerator), new(mockExporter))

	repo.On("GetByID", mock.Anything, int64(5)).Return(&models.Proposal{ID: 5, UserID: 7}, nil)

	_, err := svc.Download(context.Background(), 7, 5, "exe")

	assert.True(t, apperror.IsValidation(err))
}

func TestProposalService_Download_ExportFailure(t *testing.T) {
	repo := new(mockProposalRepo)
	exp := new(mockExporter)
	svc, _ := newTestProposalService(t, repo, new(mockGenerator), exp)

	repo.On("GetByID", mock.Anything, int64(5)).Return(&models.Proposal{ID: 5, UserID: 7}, nil)
	exp.On("Export", mock.Anything, export.FormatPDF, mock.Anything, mock.Anything, mock.Anything).
		Return("", apperror.ExportFailed(export.ErrRendererUnavailable))

	_, err := svc.Download(context.Background(), 7, 5, "pdf")

	assert.Equal(t, apperror.ErrCodeExport, apperror.CodeOf(err))
}

func TestProposalService_Release(t *testing.T) {
	svc, artifacts := newTestProposalService(t, new(mockProposalRepo), new(mockGenerator), new(mockExporter))

	path := filepath.Join(artifacts.Dir(), "proposal_5_20260301090507.md")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	svc.Release(&Artifact{Path: path})

	assert.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return os.IsNotExist(err)
	}, time.Second, 10*time.Millisecond)
}
