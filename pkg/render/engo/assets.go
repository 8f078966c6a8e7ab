// pkg/render/engo/assets.go
package engo

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/render"
)

const hudFontURL = "gomono.ttf"

// Palette holds the colours used for each kind of entity and the HUD.
type Palette struct {
	Background color.Color
	Ship       color.Color
	Asteroid   color.Color
	Bullet     color.Color
	HUD        color.Color
}

// DefaultPalette returns white-on-black vector colours.
func DefaultPalette() Palette {
	return Palette{
		Background: color.Black,
		Ship:       color.RGBA{0, 255, 255, 255},
		Asteroid:   color.RGBA{192, 192, 192, 255},
		Bullet:     color.RGBA{255, 255, 0, 255},
		HUD:        color.White,
	}
}

// shipDrawable returns the ship's wedge as a single triangle whose points are
// relative to the ship's bounding square: (0,0) is the top-left corner and
// (1,1) the bottom-right.
func shipDrawable(ship engine.EntityState) common.ComplexTriangles {
	wedge := render.ShipWedge(ship)
	side := 2 * ship.Radius
	points := make([]engo.Point, len(wedge))
	for i, v := range wedge {
		points[i] = engo.Point{
			X: float32((v.X - ship.Position.X + ship.Radius) / side),
			Y: float32((v.Y - ship.Position.Y + ship.Radius) / side),
		}
	}
	return common.ComplexTriangles{Points: points}
}

// asteroidDrawable is an outlined circle; the fill is left transparent.
func asteroidDrawable(p Palette, borderWidth float32) common.Circle {
	return common.Circle{BorderWidth: borderWidth, BorderColor: p.Asteroid}
}

func bulletDrawable() common.Circle {
	return common.Circle{}
}

// LoadHUDFont registers the embedded Go Mono face with engo and prepares it
// for text rendering. It needs a GL context.
func LoadHUDFont(size float64, fg color.Color) (*common.Font, error) {
	if err := engo.Files.LoadReaderData(hudFontURL, bytes.NewReader(gomono.TTF)); err != nil {
		return nil, fmt.Errorf("failed to load HUD font: %w", err)
	}
	font := &common.Font{
		URL:  hudFontURL,
		FG:   fg,
		Size: size,
	}
	if err := font.CreatePreloaded(); err != nil {
		return nil, fmt.Errorf("failed to prepare HUD font: %w", err)
	}
	return font, nil
}
