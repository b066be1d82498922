package export

import "strings"

// BlockKind - тип блока документа.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
)

// maxHeadingLevel - более глубокие заголовки сводятся к третьему уровню.
const maxHeadingLevel = 3

// Block - заголовок или абзац, полученный из markdown-текста.
type Block struct {
	Kind  BlockKind
	Level int
	Text  string
}

// ParseBlocks разбивает текст на блоки построчно.
// Строка, начинающаяся с '#', становится заголовком с уровнем по числу '#' (не больше 3),
// остальные непустые строки становятся абзацами. Пустые строки пропускаются, порядок сохраняется.
func ParseBlocks(content string) []Block {
	var blocks []Block

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			level := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
			if level > maxHeadingLevel {
				level = maxHeadingLevel
			}
			text := strings.TrimSpace(strings.Trim(trimmed, "#"))
			blocks = append(blocks, Block{Kind: BlockHeading, Level: level, Text: text})
			continue
		}

		blocks = append(blocks, Block{Kind: BlockParagraph, Text: trimmed})
	}

	return blocks
}

// firstHeading возвращает текст первого заголовка или fallback.
func firstHeading(blocks []Block, fallback string) string {
	for _, b := range blocks {
		if b.Kind == BlockHeading && b.Text != "" {
			return b.Text
		}
	}
	return fallback
}
