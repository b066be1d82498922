package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// filenameLayout - метка времени в имени файла выгрузки.
const filenameLayout = "20060102150405"

// ArtifactStorage отвечает за каталог временных файлов выгрузки.
type ArtifactStorage struct {
	rootPath string
}

// NewArtifactStorage создаёт каталог, если его ещё нет.
func NewArtifactStorage(rootPath string) (*ArtifactStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}

	return &ArtifactStorage{rootPath: rootPath}, nil
}

// Dir - каталог, куда пишутся файлы.
func (s *ArtifactStorage) Dir() string {
	return s.rootPath
}

// Filename возвращает имя файла вида proposal_<id>_<YYYYMMDDHHMMSS>.<ext>.
func (s *ArtifactStorage) Filename(proposalID int64, ext string, now time.Time) string {
	return fmt.Sprintf("proposal_%d_%s.%s", proposalID, now.UTC().Format(filenameLayout), sanitizeExt(ext))
}

// Remove удаляет файл выгрузки. Файлы вне каталога хранилища не трогаются.
func (s *ArtifactStorage) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	root, err := filepath.Abs(s.rootPath)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if rel, err := filepath.Rel(root, target); err != nil || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("storage: путь %s вне каталога %s", path, s.rootPath)
	}

	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}

// sanitizeExt оставляет в расширении только буквы и цифры.
func sanitizeExt(ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	var b strings.Builder
	for _, r := range strings.ToLower(ext) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "bin"
	}
	return b.String()
}
