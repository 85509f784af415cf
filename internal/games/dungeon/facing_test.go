package dungeon

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

func TestFacingAngle(t *testing.T) {
	center := core.V(10, 20)

	tests := []struct {
		name    string
		pointer core.Vec2
		want    float64
	}{
		{"north", core.V(10, 21), 180},
		{"east", core.V(11, 20), 90},
		{"south", core.V(10, 19), 0},
		{"west", core.V(9, 20), 270},
		{"north east", core.V(11, 21), 135},
		{"same point", center, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FacingAngle(tt.pointer, center)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("FacingAngle = %v, expected %v", got, tt.want)
			}
			if got < 0 || got >= 360 {
				t.Errorf("FacingAngle = %v outside [0, 360)", got)
			}
		})
	}
}
