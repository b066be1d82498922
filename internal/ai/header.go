package ai

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/proposalgen/proposal-backend/internal/domain/valueobject"
)

// Формат шапки документа. Шапка сохраняется в Content, поэтому менять её нельзя
// без миграции уже сохранённых предложений.
const (
	headerTimeLayout = "2006-01-02 15:04 UTC"
	headerSeparator  = "\n\n---\n\n"

	labelGeneratedOn = "**Generated on:** "
	labelPreparedBy  = "**Prepared by:** "
	labelProjectType = "**Project Type:** "
	labelBudget      = "**Budget:** "
	labelDuration    = "**Duration:** "
)

// ErrMalformedHeader - текст не начинается с шапки в ожидаемом формате.
var ErrMalformedHeader = errors.New("ai: шапка предложения в неизвестном формате")

// HeaderMeta - поля шапки, которые добавляются перед сгенерированным текстом.
type HeaderMeta struct {
	Title         string
	GeneratedAt   time.Time
	ContactEmail  string
	MobileNumber  string
	ProjectType   string
	Budget        float64
	DurationWeeks int
}

// ParsedHeader - поля, прочитанные из сохранённой шапки.
type ParsedHeader struct {
	Title         string
	GeneratedAt   time.Time
	PreparedBy    string
	ProjectType   string
	Budget        string
	Duration      string
	DurationWeeks int
}

// RenderHeader формирует markdown-шапку предложения.
func RenderHeader(m HeaderMeta) string {
	contact := m.ContactEmail
	if m.MobileNumber != "" {
		contact += " | " + m.MobileNumber
	}

	var b strings.Builder
	b.WriteString("# " + m.Title + "\n\n")
	b.WriteString(labelGeneratedOn + m.GeneratedAt.UTC().Format(headerTimeLayout) + "\n")
	b.WriteString(labelPreparedBy + contact + "\n")
	b.WriteString(labelProjectType + m.ProjectType + "\n")
	b.WriteString(labelBudget + valueobject.FormatTsh(m.Budget) + "\n")
	b.WriteString(labelDuration + valueobject.Duration{Weeks: m.DurationWeeks}.String())
	b.WriteString(headerSeparator)
	return b.String()
}

// ParseHeader разбирает шапку, созданную RenderHeader, и возвращает её поля и тело документа.
func ParseHeader(content string) (ParsedHeader, string, error) {
	idx := strings.Index(content, headerSeparator)
	if idx < 0 {
		return ParsedHeader{}, "", ErrMalformedHeader
	}
	head, body := content[:idx], content[idx+len(headerSeparator):]

	lines := strings.Split(head, "\n")
	if len(lines) != 7 || !strings.HasPrefix(lines[0], "# ") || lines[1] != "" {
		return ParsedHeader{}, "", ErrMalformedHeader
	}

	values := make([]string, 0, 5)
	for i, label := range []string{labelGeneratedOn, labelPreparedBy, labelProjectType, labelBudget, labelDuration} {
		line := lines[i+2]
		if !strings.HasPrefix(line, label) {
			return ParsedHeader{}, "", fmt.Errorf("%w: ожидалось %q", ErrMalformedHeader, label)
		}
		values = append(values, strings.TrimPrefix(line, label))
	}

	generatedAt, err := time.Parse(headerTimeLayout, values[0])
	if err != nil {
		return ParsedHeader{}, "", fmt.Errorf("%w: дата: %v", ErrMalformedHeader, err)
	}

	weeks, err := strconv.Atoi(strings.TrimSuffix(values[4], " weeks"))
	if err != nil {
		return ParsedHeader{}, "", fmt.Errorf("%w: срок: %v", ErrMalformedHeader, err)
	}

	return ParsedHeader{
		Title:         strings.TrimPrefix(lines[0], "# "),
		GeneratedAt:   generatedAt,
		PreparedBy:    values[1],
		ProjectType:   values[2],
		Budget:        values[3],
		Duration:      values[4],
		DurationWeeks: weeks,
	}, body, nil
}
