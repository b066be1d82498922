package export

import (
	"fmt"
	"io"

	"github.com/gomutex/godocx"
)

// writeDOCX собирает документ Word из блоков на шаблоне godocx и пишет его в w.
// Заголовок уровня N получает стиль HeadingN, остальные блоки идут обычными абзацами.
func writeDOCX(w io.Writer, blocks []Block) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("docx: не удалось создать документ: %w", err)
	}
	defer doc.Close()

	for _, block := range blocks {
		if block.Kind == BlockHeading {
			if _, err := doc.AddHeading(block.Text, uint(block.Level)); err != nil {
				return fmt.Errorf("docx: заголовок %q: %w", block.Text, err)
			}
			continue
		}
		doc.AddParagraph(block.Text)
	}

	if err := doc.Write(w); err != nil {
		return fmt.Errorf("docx: ошибка записи: %w", err)
	}
	return nil
}
