package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"agro-advisory-api/config"
	"agro-advisory-api/logger"
)

var allowedImageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
}

// ImageStore persists uploaded crop photos under uuid filenames and prunes
// stale ones. Validation here is the upstream gate: scoring assumes any file
// it receives already passed the allow-list and size cap.
type ImageStore struct {
	dir       string
	maxBytes  int64
	retention time.Duration
	log       *logger.Logger
}

func NewImageStore(cfg config.UploadConfig, log *logger.Logger) (*ImageStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ImageStore{
		dir:       cfg.Dir,
		maxBytes:  cfg.MaxBytes,
		retention: time.Duration(cfg.RetentionHours) * time.Hour,
		log:       log,
	}, nil
}

// Allowed reports whether the filename carries a permitted image extension.
func (s *ImageStore) Allowed(filename string) bool {
	return allowedImageExts[strings.ToLower(filepath.Ext(filename))]
}

// MaxBytes is the upload size cap.
func (s *ImageStore) MaxBytes() int64 {
	return s.maxBytes
}

// Save writes the upload under a fresh uuid name and returns its path.
func (s *ImageStore) Save(data []byte, originalName string) (string, error) {
	if !s.Allowed(originalName) {
		return "", fmt.Errorf("file type not allowed: %s", filepath.Ext(originalName))
	}
	if int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("file too large: %d bytes (max %d)", len(data), s.maxBytes)
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(originalName))
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return path, nil
}

// CleanupStale removes uploads older than the retention window and returns
// how many were deleted.
func (s *ImageStore) CleanupStale() int {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.log.Warn("upload cleanup scan failed", "dir", s.dir, "error", err)
		return 0
	}

	removed := 0
	cutoff := time.Now().Add(-s.retention)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(s.dir, entry.Name())
			if err := os.Remove(path); err != nil {
				s.log.Warn("failed to remove stale upload", "path", path, "error", err)
				continue
			}
			removed++
		}
	}

	if removed > 0 {
		s.log.Info("pruned stale uploads", "removed", removed)
	}
	return removed
}
