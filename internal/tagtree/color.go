package tagtree

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/sakif/diary/internal/apperror"
	"github.com/sakif/diary/internal/model"
)

// shadeStep is how far each shade level moves toward white.
const shadeStep = 0.15

var white = colorful.Color{R: 1, G: 1, B: 1}

// ShadeColor lightens base by (level-1) steps, blending in Lab space so the
// hue stays put while lightness rises. Level 1 returns base unchanged.
func ShadeColor(base string, level int) (string, error) {
	c, err := colorful.Hex(base)
	if err != nil {
		return "", apperror.ValidationFailed("baseColor", fmt.Sprintf("invalid color %q", base))
	}
	if level < model.MinShadeLevel || level > model.MaxShadeLevel {
		return "", apperror.ValidationFailed("shadeLevel",
			fmt.Sprintf("shade level must be between %d and %d", model.MinShadeLevel, model.MaxShadeLevel))
	}
	if level == model.MinShadeLevel {
		return c.Hex(), nil
	}
	return c.BlendLab(white, shadeStep*float64(level-1)).Clamped().Hex(), nil
}

// ChildShade is the conventional shade for a new child of parent: the
// parent's base color one level lighter, capped at the lightest level.
// ok is false when the parent has no base color to inherit.
func ChildShade(parent model.Tag) (base string, level int, ok bool) {
	if parent.BaseColor == "" {
		return "", 0, false
	}
	level = parent.ShadeLevel + 1
	if parent.ShadeLevel < model.MinShadeLevel {
		level = model.MinShadeLevel + 1
	}
	if level > model.MaxShadeLevel {
		level = model.MaxShadeLevel
	}
	return parent.BaseColor, level, true
}
