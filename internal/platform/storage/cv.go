package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/avpavlenko/jobboard/internal/config"
	"github.com/avpavlenko/jobboard/internal/platform/logger"
)

// MaxCVBytes is the upload cap for a candidate CV.
const MaxCVBytes = 8 * 1024 * 1024

// CVStore persists a candidate's CV as opaque bytes on local disk at
// the single-file-per-candidate path the specification fixes, and
// fires a best-effort S3 mirror; a failed mirror never fails the
// request, it only gets logged. There is no multi-resume concept: a
// new upload overwrites the previous file outright.
type CVStore struct {
	dir string
	s3  *S3Client
	log *logger.Logger
}

func NewCVStore(cfg config.StorageConfig, s3 *S3Client, log *logger.Logger) *CVStore {
	return &CVStore{dir: cfg.CandidateCVDir, s3: s3, log: log}
}

// Save writes data to data/cv/<candidateID>.pdf, overwriting whatever
// was there before.
func (s *CVStore) Save(ctx context.Context, candidateID int64, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("cv upload is empty")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	path := s.path(candidateID)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}

	if s.s3 != nil {
		go s.mirror(candidateID, path, data)
	}

	return path, nil
}

// Load reads the candidate's CV, returning (nil, nil) when none has
// been uploaded yet.
func (s *CVStore) Load(ctx context.Context, candidateID int64) ([]byte, error) {
	data, err := os.ReadFile(s.path(candidateID))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *CVStore) path(candidateID int64) string {
	return filepath.Join(s.dir, fmt.Sprintf("%d.pdf", candidateID))
}

func (s *CVStore) mirror(candidateID int64, path string, data []byte) {
	ctx := context.Background()
	if err := s.s3.PutObject(ctx, path, "application/pdf", data); err != nil && s.log != nil {
		s.log.WithAction("cv_mirror").Sugar().Warnw("s3 cv mirror failed", "candidate_id", candidateID, "error", err)
	}
}
