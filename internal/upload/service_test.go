package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"lsers_hub_backend/internal/assets"
	"lsers_hub_backend/internal/config"
	"lsers_hub_backend/internal/platform/kv"
	"lsers_hub_backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// A 1x1 transparent PNG.
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

func setupImageService(t *testing.T, maxBytes int64) (*ImageService, assets.Service) {
	t.Helper()
	cfg := config.Default()
	cfg.UploadMaxBytes = maxBytes
	a := assets.NewService(store.NewManager(kv.NewMemoryBackend(), zap.NewNop()), zap.NewNop())
	return NewImageService(a, cfg, zap.NewNop()), a
}

// newTestFileHeader builds a FileHeader the way gin would after parsing a multipart body.
func newTestFileHeader(t *testing.T, filename string, content []byte, contentType string) *multipart.FileHeader {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	if contentType != "" {
		partHeader.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(partHeader)
	require.NoError(t, err)
	_, err = io.Copy(part, bytes.NewReader(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	require.Len(t, form.File["file"], 1)
	return form.File["file"][0]
}

func TestSaveUploadedFile(t *testing.T) {
	ctx := context.Background()
	svc, a := setupImageService(t, 1<<20)

	id, err := svc.SaveUploadedFile(ctx, "d", newTestFileHeader(t, "dot.png", pngBytes, "image/png"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, assets.IDPrefix))

	payload, err := a.Get(ctx, "d", id)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(payload, "data:image/png;base64,"))

	contentType, data, err := DecodeDataURL(payload)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, pngBytes, data)
}

func TestSaveUploadedFileRejects(t *testing.T) {
	ctx := context.Background()

	t.Run("not an image", func(t *testing.T) {
		svc, _ := setupImageService(t, 1<<20)
		_, err := svc.SaveUploadedFile(ctx, "d", newTestFileHeader(t, "notes.txt", []byte("hello world"), "text/plain"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "UNSUPPORTED_MEDIA_TYPE")
	})

	t.Run("lying content type", func(t *testing.T) {
		svc, _ := setupImageService(t, 1<<20)
		_, err := svc.SaveUploadedFile(ctx, "d", newTestFileHeader(t, "fake.png", []byte("<html><body>hi</body></html>"), "image/png"))
		require.Error(t, err)
	})

	t.Run("too large", func(t *testing.T) {
		svc, _ := setupImageService(t, 16)
		_, err := svc.SaveUploadedFile(ctx, "d", newTestFileHeader(t, "dot.png", pngBytes, "image/png"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PAYLOAD_TOO_LARGE")
	})

	t.Run("nil header", func(t *testing.T) {
		svc, _ := setupImageService(t, 16)
		_, err := svc.SaveUploadedFile(ctx, "d", nil)
		require.Error(t, err)
	})
}

func TestDecodeDataURL(t *testing.T) {
	_, _, err := DecodeDataURL("https://example.com/a.png")
	assert.Error(t, err)
	_, _, err = DecodeDataURL("data:image/png,rawnotbase64")
	assert.Error(t, err)
}
