package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"
)

type fakeImageStorage struct {
	objects   map[string][]byte
	failAfter int // fail the Nth upload (1-based), 0 means never
	uploads   int
}

func newFakeImageStorage() *fakeImageStorage {
	return &fakeImageStorage{objects: make(map[string][]byte)}
}

func (f *fakeImageStorage) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	f.uploads++
	if f.failAfter > 0 && f.uploads >= f.failAfter {
		return "", errors.New("upload failed")
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	f.objects[objectPath] = b
	return objectPath, nil
}

func (f *fakeImageStorage) Delete(ctx context.Context, objectPath string) error {
	delete(f.objects, objectPath)
	return nil
}

func (f *fakeImageStorage) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.test/%s?signed=1", objectPath), nil
}

// testPNG encodes a solid-color PNG of the given dimensions
func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 30, G: 120, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestProcessAndUpload_Success(t *testing.T) {
	store := newFakeImageStorage()
	service := NewImageService(store)

	meta, err := service.ProcessAndUpload(context.Background(), 1, "customer", 7, testPNG(t, 1000, 800), "photo.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(store.objects) != 3 {
		t.Fatalf("Expected 3 stored variants, got %d", len(store.objects))
	}
	for _, p := range []string{meta.ThumbnailPath, meta.DisplayPath, meta.OriginalPath} {
		if _, ok := store.objects[p]; !ok {
			t.Errorf("Expected variant %s to be stored", p)
		}
		if !strings.HasPrefix(p, "1/customer/7/") {
			t.Errorf("Expected path scoped to workspace and entity, got %s", p)
		}
	}
	if meta.ThumbnailURL == "" || meta.DisplayURL == "" || meta.OriginalURL == "" {
		t.Error("Expected presigned URLs for all variants")
	}

	// variants are resized so the thumbnail must be the smallest payload
	if len(store.objects[meta.ThumbnailPath]) >= len(store.objects[meta.OriginalPath]) {
		t.Error("Expected thumbnail to be smaller than the original")
	}
}

func TestProcessAndUpload_TooLarge(t *testing.T) {
	service := NewImageService(newFakeImageStorage())

	data := make([]byte, MaxImageSize+1)
	_, err := service.ProcessAndUpload(context.Background(), 1, "customer", 7, data, "photo.png")
	if !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("Expected ErrImageTooLarge, got %v", err)
	}
}

func TestProcessAndUpload_InvalidFormat(t *testing.T) {
	service := NewImageService(newFakeImageStorage())

	_, err := service.ProcessAndUpload(context.Background(), 1, "customer", 7, testPNG(t, 100, 100), "notes.pdf")
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Expected ErrInvalidFormat, got %v", err)
	}
}

func TestProcessAndUpload_TooSmall(t *testing.T) {
	service := NewImageService(newFakeImageStorage())

	_, err := service.ProcessAndUpload(context.Background(), 1, "customer", 7, testPNG(t, 40, 40), "tiny.png")
	if !errors.Is(err, ErrImageTooSmall) {
		t.Errorf("Expected ErrImageTooSmall, got %v", err)
	}
}

func TestProcessAndUpload_InvalidImageData(t *testing.T) {
	service := NewImageService(newFakeImageStorage())

	_, err := service.ProcessAndUpload(context.Background(), 1, "customer", 7, []byte("not an image"), "photo.png")
	if !errors.Is(err, ErrInvalidImageData) {
		t.Errorf("Expected ErrInvalidImageData, got %v", err)
	}
}

func TestProcessAndUpload_CleansUpOnFailure(t *testing.T) {
	store := newFakeImageStorage()
	store.failAfter = 3 // first two variants succeed, the third fails
	service := NewImageService(store)

	_, err := service.ProcessAndUpload(context.Background(), 1, "customer", 7, testPNG(t, 1000, 800), "photo.png")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if len(store.objects) != 0 {
		t.Errorf("Expected earlier variants to be cleaned up, %d objects remain", len(store.objects))
	}
}

func TestProcessAndUpload_StorageNotConfigured(t *testing.T) {
	service := NewImageService(nil)

	if service.IsEnabled() {
		t.Error("Expected IsEnabled to be false without storage")
	}
	_, err := service.ProcessAndUpload(context.Background(), 1, "customer", 7, testPNG(t, 100, 100), "photo.png")
	if !errors.Is(err, ErrImageStorageNotConfigured) {
		t.Errorf("Expected ErrImageStorageNotConfigured, got %v", err)
	}
}

func TestImageDelete_EmptyPathIsNoop(t *testing.T) {
	service := NewImageService(nil)

	if err := service.Delete(context.Background(), ""); err != nil {
		t.Errorf("Expected nil for empty path, got %v", err)
	}
}

func TestGetPresignedURL(t *testing.T) {
	service := NewImageService(newFakeImageStorage())

	url, err := service.GetPresignedURL(context.Background(), "1/customer/7/abc_thumb.jpg")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(url, "1/customer/7/abc_thumb.jpg") {
		t.Errorf("Expected URL for the object path, got %s", url)
	}
}
