package ai

import (
	"fmt"
	"strings"

	"github.com/proposalgen/proposal-backend/internal/domain/valueobject"
	"github.com/proposalgen/proposal-backend/internal/models"
)

// systemPersona задаёт роль модели в system-сообщении.
const systemPersona = "You are an experienced project proposal writer. " +
	"You write complete, well-structured proposals for funders and stakeholders " +
	"and always answer in markdown."

// RequiredSections - разделы, которые должны быть в каждом предложении, в этом порядке.
var RequiredSections = []string{
	"Project Description",
	"Objectives",
	"Methodology",
	"Activities",
	"Budget Breakdown",
	"Timeline",
	"Expected Outcomes",
	"Sustainability",
	"Conclusion",
}

// LanguageName возвращает название языка для промпта; неизвестный код даёт English.
func LanguageName(code string) string {
	if name, ok := models.LanguageNames[code]; ok {
		return name
	}
	return models.LanguageNames[models.LanguageEnglish]
}

// BuildPrompt собирает промпт из проверенных данных формы.
// Поля вставляются как есть, без экранирования и обрезки; результат детерминирован.
func BuildPrompt(req models.ProposalRequest, language string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a project proposal in %s using the details below.\n\n", LanguageName(language))

	b.WriteString("Project details:\n")
	fmt.Fprintf(&b, "- Project Name: %s\n", req.ProjectName)
	fmt.Fprintf(&b, "- Project Type: %s\n", req.ProjectType)
	fmt.Fprintf(&b, "- Description: %s\n", req.Description)
	fmt.Fprintf(&b, "- Budget: %s\n", valueobject.FormatTsh(req.Budget))
	fmt.Fprintf(&b, "- Duration: %d weeks\n", req.DurationWeeks)
	fmt.Fprintf(&b, "- Complexity: %s\n", req.Complexity)
	fmt.Fprintf(&b, "- Target Audience: %s\n", req.Audience)
	fmt.Fprintf(&b, "- Contact Email: %s\n", req.ContactEmail)
	if req.MobileNumber != "" {
		fmt.Fprintf(&b, "- Mobile Number: %s\n", req.MobileNumber)
	}

	fmt.Fprintf(&b, "\nUse a %s writing style.\n", req.WritingStyle)
	b.WriteString("Include the following sections, each as a level-2 markdown heading (##), in this order:\n")
	for i, section := range RequiredSections {
		fmt.Fprintf(&b, "%d. %s\n", i+1, section)
	}

	b.WriteString("\nThe budget breakdown must add up to the total budget and the timeline must cover the full duration.\n")
	b.WriteString("Format the whole response as markdown. Do not add a document title; it is added separately.")

	return b.String()
}
