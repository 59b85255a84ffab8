package window

import (
	"errors"
	"image/color"
	_ "image/png" // PNG decoder for ebitenutil.NewImageFromFile
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Sprite names, also the file names (plus .png) looked up in the assets dir.
const (
	SpriteBackground  = "background"
	SpritePlayerRight = "player_right"
	SpritePlayerLeft  = "player_left"
	SpriteEnemy       = "enemy"
	SpriteBullet      = "bullet"
)

// spriteFallbacks are the colours of the images generated for missing files.
var spriteFallbacks = map[string]color.RGBA{
	SpriteBackground:  {24, 28, 40, 255},
	SpritePlayerRight: {85, 255, 255, 255},
	SpritePlayerLeft:  {60, 200, 220, 255},
	SpriteEnemy:       {220, 60, 60, 255},
	SpriteBullet:      {255, 255, 85, 255},
}

// Sprites holds the images the window frontend draws with.
type Sprites struct {
	images map[string]*ebiten.Image
}

// LoadSprites loads every sprite from dir. Missing or unreadable files are
// replaced by a flat coloured image and logged; an empty dir generates all
// of them.
func LoadSprites(dir string, logger *log.Logger) *Sprites {
	s := &Sprites{images: make(map[string]*ebiten.Image, len(spriteFallbacks))}
	for name, fill := range spriteFallbacks {
		img, err := loadImage(dir, name)
		if err != nil {
			if !errors.Is(err, errNoAssetDir) {
				logger.Warn("using generated sprite", "sprite", name, "error", err)
			}
			img = ebiten.NewImage(1, 1)
			img.Fill(fill)
		}
		s.images[name] = img
	}
	return s
}

var errNoAssetDir = errors.New("no asset directory")

func loadImage(dir, name string) (*ebiten.Image, error) {
	if dir == "" {
		return nil, errNoAssetDir
	}
	path := assetPath(dir, name, ".png")
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	img, _, err := ebitenutil.NewImageFromFile(path)
	return img, err
}

func assetPath(dir, name, ext string) string {
	return filepath.Join(dir, name+ext)
}

// Get returns the named sprite.
func (s *Sprites) Get(name string) *ebiten.Image {
	return s.images[name]
}

// Draw draws the named sprite stretched over the given screen rectangle.
func (s *Sprites) Draw(dst *ebiten.Image, name string, x, y, w, h float64) {
	img := s.images[name]
	if img == nil {
		return
	}
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	dst.DrawImage(img, op)
}
