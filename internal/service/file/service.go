package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoding
	"io"
	"log/slog"
	"math"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

var ErrUnsupportedImage = errors.New("invalid file type: only jpg, jpeg, png allowed")

const (
	proofMaxBytes = 150 * 1024
	proofMinBytes = 50 * 1024
)

type FileService interface {
	// UploadAttendanceProof compresses a clock-in/out photo, stores it and
	// returns its public URL
	UploadAttendanceProof(ctx context.Context, userID string, date time.Time, file io.Reader, filename string, clockType string) (string, error)

	// DeleteFile removes a stored file by path
	DeleteFile(ctx context.Context, path string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadAttendanceProof stores the photo as
// attendance/{date}/{userID}-{clock_type}-{uuid}.jpg. Images are re-encoded
// as JPEG between 50KB and 150KB where possible.
func (s *fileServiceImpl) UploadAttendanceProof(ctx context.Context, userID string, date time.Time, file io.Reader, filename string, clockType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", ErrUnsupportedImage
	}

	buffer, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	compressed, err := compressImage(buffer, proofMaxBytes, proofMinBytes)
	if err != nil {
		return "", fmt.Errorf("failed to compress image: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate file name: %w", err)
	}

	name := fmt.Sprintf("%s-%s-%s.jpg", userID, strings.ToLower(clockType), id.String())
	p := path.Join("attendance", date.Format("2006-01-02"), name)

	stored, err := s.storage.Upload(ctx, bytes.NewReader(compressed), p, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload attendance proof: %w", err)
	}

	url, err := s.storage.GetURL(ctx, stored)
	if err != nil {
		if delErr := s.storage.Delete(ctx, stored); delErr != nil {
			slog.Warn("failed to remove orphaned proof photo", "path", stored, "error", delErr)
		}
		return "", fmt.Errorf("failed to build attendance proof url: %w", err)
	}

	slog.Debug("attendance proof stored", "user_id", userID, "path", stored, "bytes", len(compressed), "original_bytes", len(buffer))

	return url, nil
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// compressImage re-encodes an image as JPEG aiming for minSize..maxSize bytes,
// lowering quality first and downscaling when that is not enough. Images
// already in range are returned untouched.
func compressImage(buffer []byte, maxSize int, minSize int) ([]byte, error) {
	if len(buffer) <= maxSize && len(buffer) >= minSize {
		return buffer, nil
	}

	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()

	var compressed []byte
	for quality := 85; quality >= 50; quality -= 5 {
		compressed, err = encodeJPEG(img, quality)
		if err != nil {
			return nil, err
		}
		if len(compressed) <= maxSize {
			return compressed, nil
		}
	}

	// Still too large at the lowest quality; scale towards ~100KB.
	ratio := math.Sqrt(float64(100*1024) / float64(len(compressed)))
	width := max(int(float64(bounds.Dx())*ratio), 600)
	height := max(int(float64(bounds.Dy())*ratio), 400)

	if width >= bounds.Dx() && height >= bounds.Dy() {
		return compressed, nil
	}

	return encodeJPEG(resizeImage(img, width, height), 70)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// resizeImage scales src to width x height with CatmullRom interpolation.
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
