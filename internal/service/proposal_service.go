package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/proposalgen/proposal-backend/internal/ai"
	"github.com/proposalgen/proposal-backend/internal/export"
	"github.com/proposalgen/proposal-backend/internal/goroutine"
	"github.com/proposalgen/proposal-backend/internal/logger"
	"github.com/proposalgen/proposal-backend/internal/metrics"
	"github.com/proposalgen/proposal-backend/internal/models"
	"github.com/proposalgen/proposal-backend/internal/pkg/apperror"
	"github.com/proposalgen/proposal-backend/internal/repository"
	"github.com/proposalgen/proposal-backend/internal/validation"
)

// Generator - сервис генерации текста.
type Generator interface {
	VerifyCredentials(ctx context.Context) error
	Generate(ctx context.Context, prompt string, meta ai.HeaderMeta) (string, error)
}

// ProposalRepository описывает хранилище предложений.
type ProposalRepository interface {
	Create(ctx context.Context, p *models.Proposal) error
	GetByID(ctx context.Context, id int64) (*models.Proposal, error)
	ListByUser(ctx context.Context, userID int64) ([]models.ProposalSummary, error)
}

// Exporter строит файл выгрузки.
type Exporter interface {
	Export(ctx context.Context, format export.Format, content, filename, dir string) (string, error)
}

// ArtifactStore - каталог файлов выгрузки.
type ArtifactStore interface {
	Dir() string
	Filename(proposalID int64, ext string, now time.Time) string
	Remove(ctx context.Context, path string) error
}

// Artifact - готовый к отдаче файл.
type Artifact struct {
	Path        string
	Filename    string
	ContentType string
}

// ProposalService связывает генерацию, хранение и выгрузку предложений.
type ProposalService struct {
	repo      ProposalRepository
	generator Generator
	exporter  Exporter
	artifacts ArtifactStore
	now       func() time.Time
}

// NewProposalService создаёт сервис.
func NewProposalService(repo ProposalRepository, generator Generator, exporter Exporter, artifacts ArtifactStore) *ProposalService {
	return &ProposalService{
		repo:      repo,
		generator: generator,
		exporter:  exporter,
		artifacts: artifacts,
		now:       time.Now,
	}
}

// Submit проверяет форму, генерирует предложение и сохраняет его.
// Если ключ API отклонён, Generate не вызывается и запись не создаётся.
func (s *ProposalService) Submit(ctx context.Context, userID int64, req models.ProposalRequest) (*models.Proposal, error) {
	req = normalizeRequest(req)
	if err := validation.ValidateProposalRequest(req); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	prompt := ai.BuildPrompt(req, req.Language)

	if err := s.generator.VerifyCredentials(ctx); err != nil {
		metrics.GenerationsTotal.WithLabelValues(generationResult(err)).Inc()
		return nil, generationError(err)
	}

	generatedAt := s.now().UTC()
	meta := ai.HeaderMeta{
		Title:         req.ProjectName,
		GeneratedAt:   generatedAt,
		ContactEmail:  req.ContactEmail,
		MobileNumber:  req.MobileNumber,
		ProjectType:   req.ProjectType,
		Budget:        req.Budget,
		DurationWeeks: req.DurationWeeks,
	}

	start := time.Now()
	content, err := s.generator.Generate(ctx, prompt, meta)
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues(generationResult(err)).Inc()
		return nil, generationError(err)
	}

	proposal := &models.Proposal{
		Title:       req.ProjectName,
		Content:     content,
		ProjectType: req.ProjectType,
		GeneratedAt: generatedAt,
		UserID:      userID,
	}

	if err := s.repo.Create(ctx, proposal); err != nil {
		metrics.GenerationsTotal.WithLabelValues("save_error").Inc()
		logger.Log.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("proposal service: не удалось сохранить предложение")
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, apperror.MsgSaveFailed)
	}

	metrics.GenerationsTotal.WithLabelValues("success").Inc()
	logger.Log.WithFields(logrus.Fields{
		"user_id":     userID,
		"proposal_id": proposal.ID,
		"language":    req.Language,
	}).Info("proposal service: предложение сгенерировано")

	return proposal, nil
}

// List возвращает предложения пользователя, новые первыми.
func (s *ProposalService) List(ctx context.Context, userID int64) ([]models.ProposalSummary, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "failed to load proposals")
	}
	return items, nil
}

// Get возвращает предложение владельца.
// Чужое и несуществующее предложение дают одну и ту же ошибку.
func (s *ProposalService) Get(ctx context.Context, userID, id int64) (*models.Proposal, error) {
	proposal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProposalNotFound) {
			return nil, apperror.NotAuthorized()
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "failed to load proposal")
	}

	if proposal.UserID != userID {
		logger.Log.WithFields(logrus.Fields{
			"user_id":     userID,
			"proposal_id": id,
		}).Warn("proposal service: попытка доступа к чужому предложению")
		return nil, apperror.NotAuthorized()
	}

	return proposal, nil
}

// Download проверяет владельца и строит файл в нужном формате.
// Вызывающий обязан вызвать Release после отдачи файла.
func (s *ProposalService) Download(ctx context.Context, userID, id int64, format string) (*Artifact, error) {
	proposal, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, err
	}

	filename := s.artifacts.Filename(proposal.ID, f.Ext(), s.now())

	start := time.Now()
	path, err := s.exporter.Export(ctx, f, proposal.Content, filename, s.artifacts.Dir())
	metrics.ExportDuration.WithLabelValues(string(f)).Observe(time.Since(start).Seconds())
	metrics.ExportsTotal.WithLabelValues(string(f), metrics.Result(err)).Inc()
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"proposal_id": proposal.ID,
			"format":      f,
			"error":       err.Error(),
		}).Error("proposal service: не удалось выгрузить предложение")
		if apperror.CodeOf(err) == apperror.ErrCodeExport {
			return nil, err
		}
		return nil, apperror.ExportFailed(err)
	}

	return &Artifact{Path: path, Filename: filename, ContentType: f.ContentType()}, nil
}

// Release удаляет файл выгрузки в фоне. Ошибка удаления только логируется.
func (s *ProposalService) Release(artifact *Artifact) {
	if artifact == nil {
		return
	}
	goroutine.SafeGo("artifact_cleanup", func() {
		if err := s.artifacts.Remove(context.Background(), artifact.Path); err != nil {
			logger.Log.WithFields(logrus.Fields{
				"path":  artifact.Path,
				"error": err.Error(),
			}).Warn("proposal service: не удалось удалить файл выгрузки")
		}
	})
}

// normalizeRequest убирает пробелы по краям и подставляет язык по умолчанию.
func normalizeRequest(req models.ProposalRequest) models.ProposalRequest {
	req.ProjectName = strings.TrimSpace(req.ProjectName)
	req.ProjectType = strings.TrimSpace(req.ProjectType)
	req.Description = strings.TrimSpace(req.Description)
	req.WritingStyle = strings.TrimSpace(req.WritingStyle)
	req.Complexity = strings.TrimSpace(req.Complexity)
	req.Audience = strings.TrimSpace(req.Audience)
	req.ContactEmail = strings.ToLower(strings.TrimSpace(req.ContactEmail))
	req.MobileNumber = strings.TrimSpace(req.MobileNumber)
	req.Language = strings.ToLower(strings.TrimSpace(req.Language))
	if req.Language == "" {
		req.Language = models.LanguageEnglish
	}
	return req
}

// generationError приводит ошибку генератора к виду AUTHENTICATION_ERROR или GENERATION_FAILED.
func generationError(err error) error {
	switch apperror.CodeOf(err) {
	case apperror.ErrCodeAuthentication, apperror.ErrCodeGeneration:
		return err
	}
	return apperror.GenerationFailed(err)
}

func generationResult(err error) string {
	if apperror.CodeOf(err) == apperror.ErrCodeAuthentication {
		return "auth_error"
	}
	return "failed"
}
