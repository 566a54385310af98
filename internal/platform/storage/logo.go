package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/webp"

	"github.com/avpavlenko/jobboard/internal/config"
	"github.com/avpavlenko/jobboard/internal/platform/logger"
)

// MaxLogoBytes is the upload cap for a company logo.
const MaxLogoBytes = 2 * 1024 * 1024

var allowedLogoContentTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// LogoStore persists company logos to the local disk roots described
// by config.StorageConfig and fires a best-effort S3 mirror; a failed
// mirror never fails the request, it only gets logged.
type LogoStore struct {
	originalDir string
	processedDir string
	s3          *S3Client
	log         *logger.Logger
}

func NewLogoStore(cfg config.StorageConfig, s3 *S3Client, log *logger.Logger) *LogoStore {
	return &LogoStore{
		originalDir:  filepath.Join(cfg.CompanyLogosDir, "original"),
		processedDir: filepath.Join(cfg.CompanyLogosDir, "processed"),
		s3:           s3,
		log:          log,
	}
}

// Save validates contentType, writes the original upload and a
// deterministic square-fit PNG rendering to disk, and returns the
// processed logo's public path. The image-processing step here is a
// fixed-size square-fit re-encode with transparent padding, scaled by
// nearest-neighbour sampling; production-grade resizing is the
// out-of-scope external collaborator the specification calls out.
func (s *LogoStore) Save(ctx context.Context, companyID int64, contentType string, data []byte) (string, error) {
	if !allowedLogoContentTypes[contentType] {
		return "", fmt.Errorf("unsupported logo content type %q", contentType)
	}

	if err := os.MkdirAll(s.originalDir, 0o755); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.processedDir, 0o755); err != nil {
		return "", err
	}

	origExt := extensionForContentType(contentType)
	origPath := filepath.Join(s.originalDir, fmt.Sprintf("%d%s", companyID, origExt))
	if err := os.WriteFile(origPath, data, 0o644); err != nil {
		return "", err
	}

	processed, err := renderSquarePNG(data)
	if err != nil {
		return "", fmt.Errorf("logo processing failed: %w", err)
	}
	processedPath := filepath.Join(s.processedDir, fmt.Sprintf("%d.png", companyID))
	if err := os.WriteFile(processedPath, processed, 0o644); err != nil {
		return "", err
	}

	if s.s3 != nil {
		go s.mirror(companyID, origPath, origExt, data, processedPath, processed)
	}

	return processedPath, nil
}

func (s *LogoStore) mirror(companyID int64, origPath, origExt string, origData []byte, processedPath string, processedData []byte) {
	ctx := context.Background()
	if err := s.s3.PutObject(ctx, origPath, "application/octet-stream", origData); err != nil && s.log != nil {
		s.log.WithAction("logo_mirror_original").Sugar().Warnw("s3 logo mirror failed", "company_id", companyID, "error", err)
	}
	if err := s.s3.PutObject(ctx, processedPath, "image/png", processedData); err != nil && s.log != nil {
		s.log.WithAction("logo_mirror_processed").Sugar().Warnw("s3 logo mirror failed", "company_id", companyID, "error", err)
	}
}

func extensionForContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}

const logoSize = 256

// renderSquarePNG decodes any supported format and re-encodes a
// deterministic square-fit, fixed-size PNG: the whole image is scaled
// into the square, centred, and the uncovered area stays transparent.
func renderSquarePNG(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	side := bounds.Dx()
	if bounds.Dy() > side {
		side = bounds.Dy()
	}
	offX := bounds.Min.X - (side-bounds.Dx())/2
	offY := bounds.Min.Y - (side-bounds.Dy())/2

	dst := image.NewRGBA(image.Rect(0, 0, logoSize, logoSize))
	for y := 0; y < logoSize; y++ {
		srcY := offY + y*side/logoSize
		for x := 0; x < logoSize; x++ {
			srcX := offX + x*side/logoSize
			if !image.Pt(srcX, srcY).In(bounds) {
				continue
			}
			dst.Set(x, y, src.At(srcX, srcY))
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
