package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/brightsteps/brightsteps-backend/internal/repos"
)

func encodeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestProcessUploadedAvatar_CropAndResize(t *testing.T) {
	cases := []struct {
		name string
		w, h int
	}{
		{name: "landscape", w: 300, h: 120},
		{name: "portrait", w: 80, h: 200},
		{name: "square", w: 150, h: 150},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := processUploadedAvatar(encodeTestPNG(t, tc.w, tc.h), 512)
			if err != nil {
				t.Fatalf("processUploadedAvatar failed: %v", err)
			}
			img, err := png.Decode(bytes.NewReader(out.Bytes()))
			if err != nil {
				t.Fatalf("output is not a valid PNG: %v", err)
			}
			b := img.Bounds()
			if b.Dx() != 512 || b.Dy() != 512 {
				t.Errorf("expected 512x512 output, got %dx%d", b.Dx(), b.Dy())
			}
		})
	}
}

func TestProcessUploadedAvatar_RejectsGarbage(t *testing.T) {
	if _, err := processUploadedAvatar([]byte("not an image"), 512); err == nil {
		t.Fatal("expected an error for undecodable input")
	}
}

func TestCreateProfileAvatarFromImage_StoresAndReplaces(t *testing.T) {
	t.Setenv("MEDIA_DIR", t.TempDir())
	t.Setenv("AVATAR_FONT", "")

	conn := testDB(t)
	baby := seedBaby(t, conn, 5)
	svc, err := NewAvatarService(conn, testLogger(t), repos.NewBabyRepo(conn, testLogger(t)))
	if err != nil {
		t.Fatalf("avatar service init failed: %v", err)
	}
	ctx := context.Background()

	if err := svc.CreateProfileAvatarFromImage(ctx, nil, baby, encodeTestPNG(t, 240, 160)); err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if baby.AvatarPath == "" {
		t.Fatal("expected avatar path on the baby after upload")
	}
	firstPath := filepath.Join(os.Getenv("MEDIA_DIR"), baby.AvatarPath)
	data, err := os.ReadFile(firstPath)
	if err != nil {
		t.Fatalf("stored avatar unreadable: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("stored avatar is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 512 || b.Dy() != 512 {
		t.Errorf("expected 512x512 stored avatar, got %dx%d", b.Dx(), b.Dy())
	}

	// Re-upload replaces the file and cleans up the old one.
	if err := svc.CreateProfileAvatarFromImage(ctx, nil, baby, encodeTestPNG(t, 90, 90)); err != nil {
		t.Fatalf("second upload failed: %v", err)
	}
	if _, err := os.Stat(firstPath); !os.IsNotExist(err) {
		t.Errorf("expected the replaced avatar file to be deleted, stat err=%v", err)
	}

	var stored string
	if err := conn.Raw("SELECT avatar_path FROM babies WHERE id = ?", baby.ID).Scan(&stored).Error; err != nil {
		t.Fatalf("failed to read avatar path: %v", err)
	}
	if stored != baby.AvatarPath {
		t.Errorf("persisted path %q does not match in-memory path %q", stored, baby.AvatarPath)
	}
}

func TestCreateProfileAvatarFromImage_RejectsGarbage(t *testing.T) {
	t.Setenv("MEDIA_DIR", t.TempDir())
	t.Setenv("AVATAR_FONT", "")

	conn := testDB(t)
	baby := seedBaby(t, conn, 5)
	svc, err := NewAvatarService(conn, testLogger(t), repos.NewBabyRepo(conn, testLogger(t)))
	if err != nil {
		t.Fatalf("avatar service init failed: %v", err)
	}

	if err := svc.CreateProfileAvatarFromImage(context.Background(), nil, baby, []byte("junk")); err == nil {
		t.Fatal("expected an error for undecodable upload")
	}
	if baby.AvatarPath != "" {
		t.Errorf("avatar path should stay empty after a failed upload, got %q", baby.AvatarPath)
	}
}
