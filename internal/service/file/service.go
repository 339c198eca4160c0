package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"math"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// ErrUnsupportedImage is returned for proof photos that are not jpg or png.
var ErrUnsupportedImage = errors.New("invalid file type: only jpg, jpeg, png allowed")

const (
	// proof photos are re-encoded into this size window
	maxProofSize = 150 * 1024
	minProofSize = 50 * 1024
)

type FileService interface {
	// UploadAttendanceProof stores a check-in photo and returns its reference.
	UploadAttendanceProof(ctx context.Context, employeeID string, date time.Time, file io.Reader, filename string) (attendance.PhotoRef, error)

	// DeleteAttendanceProof removes a stored photo, used to clean up after a rejected check-in.
	DeleteAttendanceProof(ctx context.Context, ref attendance.PhotoRef) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadAttendanceProof implements FileService.
func (s *fileServiceImpl) UploadAttendanceProof(ctx context.Context, employeeID string, date time.Time, file io.Reader, filename string) (attendance.PhotoRef, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return attendance.PhotoRef{}, ErrUnsupportedImage
	}

	buffer, err := io.ReadAll(file)
	if err != nil {
		return attendance.PhotoRef{}, fmt.Errorf("failed to read image: %w", err)
	}

	compressed, err := compressImage(buffer, maxProofSize, minProofSize)
	if err != nil {
		return attendance.PhotoRef{}, fmt.Errorf("failed to compress image: %w", err)
	}

	// attendance/{date}/{employeeID}-{uuid}.jpg, always JPEG after compression
	key := path.Join("attendance", date.Format("2006-01-02"), fmt.Sprintf("%s-%s.jpg", employeeID, uuid.NewString()))

	storedKey, err := s.storage.Upload(ctx, bytes.NewReader(compressed), key, "image/jpeg")
	if err != nil {
		return attendance.PhotoRef{}, fmt.Errorf("failed to upload attendance proof: %w", err)
	}

	url, err := s.storage.GetURL(ctx, storedKey)
	if err != nil {
		_ = s.storage.Delete(ctx, storedKey)
		return attendance.PhotoRef{}, fmt.Errorf("failed to build attendance proof URL: %w", err)
	}

	return attendance.PhotoRef{URL: url, ID: storedKey}, nil
}

// DeleteAttendanceProof implements FileService.
func (s *fileServiceImpl) DeleteAttendanceProof(ctx context.Context, ref attendance.PhotoRef) error {
	if ref.ID == "" {
		return nil
	}
	return s.storage.Delete(ctx, ref.ID)
}

// ==================== HELPER FUNCTIONS ====================

// compressImage re-encodes an image as JPEG until it fits [minSize, maxSize].
// Images already inside the window are returned untouched.
func compressImage(buffer []byte, maxSize int, minSize int) ([]byte, error) {
	if len(buffer) <= maxSize && len(buffer) >= minSize {
		return buffer, nil
	}

	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var encoded []byte
	for quality := 85; quality >= 50; quality -= 5 {
		encoded, err = encodeJPEG(img, quality)
		if err != nil {
			return nil, err
		}
		if len(encoded) <= maxSize {
			return encoded, nil
		}
	}

	// Still too large: scale down towards the middle of the window.
	ratio := math.Sqrt(float64((maxSize+minSize)/2) / float64(len(encoded)))
	bounds := img.Bounds()
	width := max(int(float64(bounds.Dx())*ratio), 600)
	height := max(int(float64(bounds.Dy())*ratio), 400)

	return encodeJPEG(resizeImage(img, width, height), 70)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	// Use CatmullRom for high-quality downscaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
