package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/proposalgen/proposal-backend/internal/config"
)

// ErrRendererUnavailable - движок PDF не найден.
var ErrRendererUnavailable = errors.New("export: движок PDF недоступен")

// Document - всё, что нужно движку для построения PDF.
type Document struct {
	Title  string
	HTML   string
	Blocks []Block
}

// PDFRenderer строит PDF из документа и пишет его в w.
type PDFRenderer interface {
	Render(ctx context.Context, doc Document, w io.Writer) error
}

// Renderer - движок PDF с проверкой доступности для /health.
type Renderer interface {
	PDFRenderer
	Available() error
}

// NewRenderer выбирает движок PDF по конфигурации.
func NewRenderer(cfg config.ExportConfig) Renderer {
	if cfg.PDFEngine == config.PDFEngineGofpdf {
		return NewGofpdfRenderer()
	}
	return NewWkhtmltopdfRenderer(cfg.RendererPath)
}

// WkhtmltopdfRenderer запускает wkhtmltopdf как подпроцесс: HTML на stdin, PDF на stdout.
type WkhtmltopdfRenderer struct {
	path string
}

// NewWkhtmltopdfRenderer создаёт движок. Пустой path означает поиск wkhtmltopdf в PATH.
func NewWkhtmltopdfRenderer(path string) *WkhtmltopdfRenderer {
	if path == "" {
		path = "wkhtmltopdf"
	}
	return &WkhtmltopdfRenderer{path: path}
}

// Available проверяет, что бинарник wkhtmltopdf можно запустить.
func (r *WkhtmltopdfRenderer) Available() error {
	_, err := r.lookPath()
	return err
}

func (r *WkhtmltopdfRenderer) lookPath() (string, error) {
	bin, err := exec.LookPath(r.path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRendererUnavailable, r.path, err)
	}
	return bin, nil
}

func (r *WkhtmltopdfRenderer) Render(ctx context.Context, doc Document, w io.Writer) error {
	bin, err := r.lookPath()
	if err != nil {
		return err
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "--quiet", "--encoding", "utf-8", "--title", doc.Title, "-", "-")
	cmd.Stdin = strings.NewReader(doc.HTML)
	cmd.Stdout = w
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("export: wkhtmltopdf: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// GofpdfRenderer строит PDF без внешних программ, по блокам документа.
// Шрифты core, поэтому текст переводится в cp1252.
type GofpdfRenderer struct{}

func NewGofpdfRenderer() *GofpdfRenderer {
	return &GofpdfRenderer{}
}

// Available всегда nil: внешних зависимостей нет.
func (r *GofpdfRenderer) Available() error {
	return nil
}

var headingFontSize = map[int]float64{1: 18, 2: 15, 3: 13}

func (r *GofpdfRenderer) Render(ctx context.Context, doc Document, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(doc.Title, true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	for _, block := range doc.Blocks {
		switch block.Kind {
		case BlockHeading:
			pdf.Ln(3)
			pdf.SetFont("Helvetica", "B", headingFontSize[block.Level])
			pdf.MultiCell(0, 8, tr(block.Text), "", "L", false)
			pdf.Ln(1)
		default:
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 5.5, tr(block.Text), "", "L", false)
			pdf.Ln(1.5)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("export: gofpdf: %w", err)
	}
	return nil
}
