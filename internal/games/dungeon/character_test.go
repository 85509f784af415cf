package dungeon

import (
	"testing"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

func TestCharacterIcons(t *testing.T) {
	center := core.V(1, 2)
	icons := CharacterIcons(center, 90, -30)

	if len(icons) != len(CharacterParts) {
		t.Fatalf("got %d icons, expected %d", len(icons), len(CharacterParts))
	}

	for i, icon := range icons {
		part := CharacterParts[i]
		if icon.Position != center {
			t.Errorf("%s: position %v, expected %v", part.Name, icon.Position, center)
		}
		want := 90.0
		if part.ActionLinked {
			want = 60
		}
		if icon.Angle != want {
			t.Errorf("%s: angle %v, expected %v", part.Name, icon.Angle, want)
		}
		if icon.Z != part.Z {
			t.Errorf("%s: z %d, expected %d", part.Name, icon.Z, part.Z)
		}
	}
}

func TestCharacterActionLinkedParts(t *testing.T) {
	linked := map[PartRole]bool{}
	for _, p := range CharacterParts {
		if p.ActionLinked {
			linked[p.Role] = true
		}
	}
	if len(linked) != 2 || !linked[RoleRightHand] || !linked[RoleWeapon] {
		t.Errorf("action-linked parts = %v, expected right hand and weapon", linked)
	}
}

func TestPartScaledOffset(t *testing.T) {
	p := Part{Offset: core.V(10, -20), Size: 64}
	if got := p.scaledOffset(); got != core.V(5, -10) {
		t.Errorf("scaledOffset = %v, expected (5, -10)", got)
	}

	p.Size = 0
	if got := p.scaledOffset(); got != core.V(10, -20) {
		t.Errorf("scaledOffset with default size = %v", got)
	}
}
