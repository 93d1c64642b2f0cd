package services

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/repos"
	"github.com/brightsteps/brightsteps-backend/internal/types"
	"github.com/brightsteps/brightsteps-backend/internal/utils"
)

// AvatarService renders a pastel initial-circle PNG for a baby profile and
// stores it under the media directory.
type AvatarService interface {
	CreateProfileAvatar(ctx context.Context, tx *gorm.DB, baby *types.Baby) error
	CreateProfileAvatarFromImage(ctx context.Context, tx *gorm.DB, baby *types.Baby, raw []byte) error
	RenderProfileAvatar(baby *types.Baby) (bytes.Buffer, error)
}

type avatarService struct {
	db       *gorm.DB
	log      *logger.Logger
	babyRepo repos.BabyRepo

	mediaDir string
	bgColors []color.NRGBA
	fontFace font.Face
	rng      *rand.Rand
}

var avatarPalette = []string{
	"#D6E8F7", "#D4F1E4", "#FFE5CC", "#F4D9E8", "#E8DAF5", "#FBE7D0",
}

func NewAvatarService(db *gorm.DB, log *logger.Logger, babyRepo repos.BabyRepo) (AvatarService, error) {
	serviceLog := log.With("service", "AvatarService")

	mediaDir := utils.GetEnv("MEDIA_DIR", "./media", serviceLog)
	if err := os.MkdirAll(filepath.Join(mediaDir, "avatars"), 0o755); err != nil {
		return nil, fmt.Errorf("could not create media dir: %w", err)
	}

	bgColors := make([]color.NRGBA, 0, len(avatarPalette))
	for _, h := range avatarPalette {
		r, g, b, err := parseHexRGB(h)
		if err != nil {
			return nil, fmt.Errorf("bad palette color %q: %w", h, err)
		}
		bgColors = append(bgColors, color.NRGBA{R: r, G: g, B: b, A: 255})
	}

	// The initial glyph is optional: without a font we still render the
	// pastel circle.
	var face font.Face
	fontPath := utils.GetEnv("AVATAR_FONT", "", serviceLog)
	if strings.TrimSpace(fontPath) != "" {
		loaded, err := loadFontFace(fontPath, 206)
		if err != nil {
			return nil, fmt.Errorf("could not load avatar font: %w", err)
		}
		face = loaded
	}

	return &avatarService{
		db:       db,
		log:      serviceLog,
		babyRepo: babyRepo,
		mediaDir: mediaDir,
		bgColors: bgColors,
		fontFace: face,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

func (as *avatarService) CreateProfileAvatar(ctx context.Context, tx *gorm.DB, baby *types.Baby) error {
	buf, err := as.RenderProfileAvatar(baby)
	if err != nil {
		return err
	}
	return as.storeAvatar(ctx, tx, baby, buf.Bytes())
}

func (as *avatarService) RenderProfileAvatar(baby *types.Baby) (bytes.Buffer, error) {
	const size = 512

	dc := gg.NewContext(size, size)

	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	base := as.bgColors[as.rng.Intn(len(as.bgColors))]
	dc.SetColor(base)
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	if as.fontFace != nil {
		initial := profileInitial(baby.BabyName)
		dc.SetFontFace(as.fontFace)
		tw, th := dc.MeasureString(initial)
		cx, cy := float64(size)/2, float64(size)/2
		dc.SetColor(color.NRGBA{R: 90, G: 90, B: 100, A: 255})
		dc.DrawString(initial, cx-(tw/2), cy+(th/2)-10)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf, nil
}

func (as *avatarService) CreateProfileAvatarFromImage(ctx context.Context, tx *gorm.DB, baby *types.Baby, raw []byte) error {
	processed, err := processUploadedAvatar(raw, 512)
	if err != nil {
		return err
	}
	return as.storeAvatar(ctx, tx, baby, processed.Bytes())
}

func (as *avatarService) storeAvatar(ctx context.Context, tx *gorm.DB, baby *types.Baby, data []byte) error {
	oldPath := strings.TrimSpace(baby.AvatarPath)

	// Versioned filename so browsers never serve a stale cached avatar.
	relPath := filepath.Join("avatars", fmt.Sprintf("%s_%d.png", baby.UUID.String(), time.Now().UnixNano()))
	fullPath := filepath.Join(as.mediaDir, relPath)

	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write avatar file: %w", err)
	}

	if err := as.babyRepo.UpdateAvatarPath(ctx, tx, baby.ID, relPath); err != nil {
		return fmt.Errorf("failed to update avatar path: %w", err)
	}
	baby.AvatarPath = relPath

	// Best-effort delete of the replaced file.
	if oldPath != "" && oldPath != relPath {
		if err := os.Remove(filepath.Join(as.mediaDir, oldPath)); err != nil && !os.IsNotExist(err) {
			as.log.Warn("failed to delete old avatar (ignored)", "path", oldPath, "error", err)
		}
	}
	return nil
}

func processUploadedAvatar(raw []byte, size int) (bytes.Buffer, error) {
	var out bytes.Buffer

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return out, fmt.Errorf("decode image: %w", err)
	}

	// Center-crop to square
	b := img.Bounds()
	w := b.Dx()
	h := b.Dy()
	side := w
	if h < w {
		side = h
	}
	x0 := b.Min.X + (w-side)/2
	y0 := b.Min.Y + (h-side)/2

	cropRect := image.Rect(0, 0, side, side)
	cropped := image.NewRGBA(cropRect)
	draw.Draw(cropped, cropRect, img, image.Point{X: x0, Y: y0}, draw.Src)

	// Resize to NxN
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), cropped, cropped.Bounds(), draw.Over, nil)

	// Circle clip with gg
	dc := gg.NewContext(size, size)
	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()
	dc.DrawImage(dst, 0, 0)

	if err := dc.EncodePNG(&out); err != nil {
		return out, fmt.Errorf("encode png: %w", err)
	}

	return out, nil
}

func parseHexRGB(s string) (r, g, b uint8, err error) {
	if strings.HasPrefix(s, "#") {
		s = s[1:]
	}
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("expected 6 hex chars")
	}

	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid hex")
	}
	return raw[0], raw[1], raw[2], nil
}

func profileInitial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "?"
	}
	return strings.ToUpper(name[:1])
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	face := truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	return face, nil
}
