package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"

	"github.com/proposalgen/proposal-backend/internal/pkg/apperror"
)

// Format - формат выгрузки.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatDOCX     Format = "docx"
	FormatPDF      Format = "pdf"
)

// Formats - поддерживаемые форматы в порядке вывода.
var Formats = []Format{FormatPDF, FormatDOCX, FormatMarkdown}

// ParseFormat проверяет код формата.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return f, nil
	}
	return "", apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("invalid format %q", s))
}

// Ext - расширение файла без точки.
func (f Format) Ext() string {
	return string(f)
}

// ContentType - MIME-тип для ответа.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/markdown; charset=utf-8"
	}
}

// Exporter превращает сохранённый текст предложения в файл.
type Exporter struct {
	renderer PDFRenderer
}

// NewExporter создаёт экспортёр. renderer может быть nil, тогда PDF недоступен.
func NewExporter(renderer PDFRenderer) *Exporter {
	return &Exporter{renderer: renderer}
}

// Export выбирает нужный формат и возвращает путь к файлу.
func (e *Exporter) Export(ctx context.Context, format Format, content, filename, dir string) (string, error) {
	switch format {
	case FormatMarkdown:
		return e.Markdown(content, filename, dir)
	case FormatDOCX:
		return e.DOCX(content, filename, dir)
	case FormatPDF:
		return e.PDF(ctx, content, filename, dir)
	}
	return "", apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("invalid format %q", format))
}

// Markdown записывает текст без изменений.
func (e *Exporter) Markdown(content, filename, dir string) (string, error) {
	return writeFile(dir, filename, func(w io.Writer) error {
		_, err := io.WriteString(w, content)
		return err
	})
}

// DOCX записывает текст как документ Word: заголовки по '#', остальное абзацами.
func (e *Exporter) DOCX(content, filename, dir string) (string, error) {
	blocks := ParseBlocks(content)
	return writeFile(dir, filename, func(w io.Writer) error {
		return writeDOCX(w, blocks)
	}, "docx", "zip")
}

// PDF переводит markdown в HTML и отдаёт его движку PDF.
// Если движок недоступен или упал, файл не остаётся на диске.
func (e *Exporter) PDF(ctx context.Context, content, filename, dir string) (string, error) {
	if e.renderer == nil {
		return "", apperror.ExportFailed(ErrRendererUnavailable)
	}

	blocks := ParseBlocks(content)
	title := firstHeading(blocks, strings.TrimSuffix(filename, filepath.Ext(filename)))

	html, err := renderHTML(title, content)
	if err != nil {
		return "", apperror.ExportFailed(err)
	}

	doc := Document{Title: title, HTML: html, Blocks: blocks}
	return writeFile(dir, filename, func(w io.Writer) error {
		return e.renderer.Render(ctx, doc, w)
	}, "pdf")
}

// writeFile пишет в уникальный временный файл и переименовывает его после успешной проверки.
// Если указаны kinds, начало файла должно распознаваться filetype как один из них.
func writeFile(dir, filename string, write func(io.Writer) error, kinds ...string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperror.ExportFailed(fmt.Errorf("export: не удалось создать каталог %s: %w", dir, err))
	}

	target := filepath.Join(dir, filename)

	// у каждой выгрузки свой временный файл, даже если итоговое имя совпадает
	f, err := os.CreateTemp(dir, filename+".*.tmp")
	if err != nil {
		return "", apperror.ExportFailed(fmt.Errorf("export: не удалось создать файл: %w", err))
	}
	tempPath := f.Name()

	if err := write(f); err != nil {
		f.Close()
		_ = os.Remove(tempPath)
		return "", apperror.ExportFailed(err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tempPath)
		return "", apperror.ExportFailed(fmt.Errorf("export: ошибка закрытия файла: %w", err))
	}

	if err := sniff(tempPath, kinds); err != nil {
		_ = os.Remove(tempPath)
		return "", apperror.ExportFailed(err)
	}

	// CreateTemp создаёт файл с правами 0600
	if err := os.Chmod(tempPath, 0o644); err != nil {
		_ = os.Remove(tempPath)
		return "", apperror.ExportFailed(fmt.Errorf("export: не удалось выставить права: %w", err))
	}

	if err := os.Rename(tempPath, target); err != nil {
		_ = os.Remove(tempPath)
		return "", apperror.ExportFailed(fmt.Errorf("export: не удалось переименовать файл: %w", err))
	}

	return target, nil
}

// sniff проверяет тип файла по сигнатуре.
func sniff(path string, kinds []string) error {
	if len(kinds) == 0 {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("export: не удалось открыть файл: %w", err)
	}
	defer f.Close()

	head := make([]byte, 8192)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fmt.Errorf("export: не удалось прочитать файл: %w", err)
	}
	head = head[:n]

	kind, _ := filetype.Match(head)
	for _, k := range kinds {
		if kind.Extension == k {
			return nil
		}
	}

	return fmt.Errorf("export: неожиданный тип файла %q, ожидался %v", kind.Extension, kinds)
}
