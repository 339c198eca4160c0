package file

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for x := 0; x < 64; x++ {
		for y := 0; y < 48; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 5), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadAttendanceProof(t *testing.T) {
	local, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)
	svc := NewFileService(local)
	ctx := context.Background()

	date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	ref, err := svc.UploadAttendanceProof(ctx, "0001-0001", date, bytes.NewReader(testPNG(t)), "selfie.PNG")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref.ID, "attendance/2026-02-10/0001-0001-"))
	assert.True(t, strings.HasSuffix(ref.ID, ".jpg"))
	assert.Equal(t, "http://localhost:8080/uploads/"+ref.ID, ref.URL)

	assert.NoError(t, svc.DeleteAttendanceProof(ctx, ref))
}

func TestUploadAttendanceProof_RejectsNonImages(t *testing.T) {
	local, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)
	svc := NewFileService(local)

	_, err = svc.UploadAttendanceProof(context.Background(), "0001-0001", time.Now(), strings.NewReader("%PDF"), "proof.pdf")
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestDeleteAttendanceProof_EmptyRef(t *testing.T) {
	local, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	assert.NoError(t, NewFileService(local).DeleteAttendanceProof(context.Background(), attendance.PhotoRef{}))
}

func TestCompressImage_KeepsBufferInsideWindow(t *testing.T) {
	buf := bytes.Repeat([]byte{1}, 100)
	got, err := compressImage(buf, 200, 50)
	require.NoError(t, err)
	assert.Equal(t, buf, got)
}
