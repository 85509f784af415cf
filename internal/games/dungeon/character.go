package dungeon

import (
	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/deck"
)

// PartRole identifies a piece of the character sprite.
type PartRole int

const (
	RoleBody PartRole = iota
	RoleFace
	RoleLeftHand
	RoleRightHand
	RoleWeapon
)

// DefaultPartSize is the sprite size offsets are authored at.
const DefaultPartSize = 128

// Part describes one character sprite layer. Offsets are pixels in sprite
// space (y-up) at DefaultPartSize, with the character facing -Y.
type Part struct {
	Role         PartRole
	Name         string
	Glyph        rune
	Color        core.Color
	Size         int // 0 means DefaultPartSize
	Z            int
	Offset       core.Vec2
	ActionLinked bool // rotates with the swing
}

// CharacterParts is the fixed sprite set, ordered as authored.
var CharacterParts = [...]Part{
	{Role: RoleBody, Name: "Character", Glyph: '●', Color: core.ColorBrightWhite, Size: 128, Z: 1},
	{Role: RoleFace, Name: "CharacterFace", Glyph: '•', Color: core.ColorBrightYellow, Z: 4, Offset: core.V(0, -16)},
	{Role: RoleLeftHand, Name: "CharacterLeftHand", Glyph: 'o', Color: core.ColorYellow, Size: 128, Z: 3, Offset: core.V(12, -8)},
	{Role: RoleRightHand, Name: "CharacterRightHand", Glyph: 'o', Color: core.ColorYellow, Size: 128, Z: 3, Offset: core.V(-12, -8), ActionLinked: true},
	{Role: RoleWeapon, Name: "CharacterWeapon", Glyph: 'T', Color: core.ColorBrown, Size: 128, Z: 2, Offset: core.V(-20, -24), ActionLinked: true},
}

// Angle returns the icon angle of the part for a facing and swing angle.
func (p Part) Angle(facing, swing float64) float64 {
	if p.ActionLinked {
		return facing + swing
	}
	return facing
}

func (p Part) scaledOffset() core.Vec2 {
	size := p.Size
	if size == 0 {
		size = DefaultPartSize
	}
	return p.Offset.Scale(float64(size) / DefaultPartSize)
}

// CharacterIcons places every part at center.
func CharacterIcons(center core.Vec2, facing, swing float64) []deck.Icon {
	icons := make([]deck.Icon, 0, len(CharacterParts))
	for _, p := range CharacterParts {
		icons = append(icons, deck.Icon{
			Name:     p.Name,
			Glyph:    p.Glyph,
			Color:    p.Color,
			Position: center,
			Offset:   p.scaledOffset(),
			Angle:    p.Angle(facing, swing),
			Z:        p.Z,
		})
	}
	return icons
}
