package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/proposalgen/proposal-backend/internal/models"
	"github.com/proposalgen/proposal-backend/internal/repository/common"
)

// ErrProposalNotFound возвращается, когда предложение не найдено.
var ErrProposalNotFound = errors.New("proposal not found")

const proposalColumns = "id, title, content, project_type, generated_at, user_id"

// ProposalRepository хранит сгенерированные предложения.
// Обновления не предусмотрены: предложение создаётся один раз и удаляется каскадом вместе с пользователем.
type ProposalRepository struct {
	db *sqlx.DB
}

// NewProposalRepository создаёт экземпляр репозитория.
func NewProposalRepository(db *sqlx.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

// Create вставляет предложение в отдельной транзакции.
// Если вставка не удалась, транзакция откатывается и строка не становится видимой.
func (r *ProposalRepository) Create(ctx context.Context, p *models.Proposal) error {
	if p.GeneratedAt.IsZero() {
		p.GeneratedAt = time.Now().UTC()
	}

	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		query := tx.Rebind(`
			INSERT INTO proposals (title, content, project_type, generated_at, user_id)
			VALUES (?, ?, ?, ?, ?)
			RETURNING id
		`)

		if err := tx.QueryRowxContext(
			ctx, query,
			p.Title, p.Content, p.ProjectType, p.GeneratedAt, p.UserID,
		).Scan(&p.ID); err != nil {
			return fmt.Errorf("proposal repository: create %w", err)
		}

		return nil
	})
}

// GetByID возвращает предложение по идентификатору.
func (r *ProposalRepository) GetByID(ctx context.Context, id int64) (*models.Proposal, error) {
	p, err := common.GetByID[models.Proposal](ctx, r.db, "proposals", proposalColumns, id, ErrProposalNotFound)
	if err != nil {
		return nil, err
	}
	p.GeneratedAt = p.GeneratedAt.UTC()
	return p, nil
}

// ListByUser возвращает предложения пользователя, новые первыми.
func (r *ProposalRepository) ListByUser(ctx context.Context, userID int64) ([]models.ProposalSummary, error) {
	items := []models.ProposalSummary{}
	query := r.db.Rebind(`
		SELECT id, title, project_type, generated_at
		FROM proposals
		WHERE user_id = ?
		ORDER BY generated_at DESC, id DESC
	`)
	if err := r.db.SelectContext(ctx, &items, query, userID); err != nil {
		return nil, fmt.Errorf("proposal repository: list by user %w", err)
	}

	for i := range items {
		items[i].GeneratedAt = items[i].GeneratedAt.UTC()
	}
	return items, nil
}
