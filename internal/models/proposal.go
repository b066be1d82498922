package models

import "time"

// ProposalRequest - проверенные входные данные формы генерации.
// Не сохраняется, живёт в рамках одного запроса.
type ProposalRequest struct {
	ProjectName   string
	ProjectType   string
	Description   string
	Budget        float64
	DurationWeeks int
	WritingStyle  string
	Complexity    string
	Audience      string
	ContactEmail  string
	MobileNumber  string
	Language      string
}

// Proposal - сгенерированный документ пользователя. Content после создания не меняется.
type Proposal struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Content     string    `db:"content" json:"content"`
	ProjectType string    `db:"project_type" json:"project_type"`
	GeneratedAt time.Time `db:"generated_at" json:"generated_at"`
	UserID      int64     `db:"user_id" json:"user_id"`
}

// ProposalSummary - строка списка предложений без полного текста.
type ProposalSummary struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	ProjectType string    `db:"project_type" json:"project_type"`
	GeneratedAt time.Time `db:"generated_at" json:"generated_at"`
}
