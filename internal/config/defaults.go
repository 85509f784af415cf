package config

import (
	_ "embed"
)

//go:embed defaults/dungeon.yaml
var defaultDungeonYAML []byte

//go:embed defaults/trackout.yaml
var defaultTrackoutYAML []byte

// DefaultDungeonConfig returns the default dungeon configuration.
func DefaultDungeonConfig() DungeonConfig {
	return DungeonConfig{
		Movement: DungeonMovement{
			Step: 0.00005,
		},
		Swing: DungeonSwing{
			DurationMS:  200,
			TargetAngle: -90,
		},
		View: DungeonView{
			Zoom:         16,
			CellWidthPx:  8,
			CellHeightPx: 16,
		},
		Map: DungeonMap{
			LayerID: "GeoJsonLayer",
		},
		Pick: DungeonPick{
			RadiusPx: 1,
		},
		Input: InputConfig{
			HoldMS: 150,
		},
	}
}

// DefaultTrackoutConfig returns the default trackout configuration.
func DefaultTrackoutConfig() TrackoutConfig {
	return TrackoutConfig{
		Vehicle: TrackoutVehicle{
			Mass:         1000,
			Width:        2,
			Length:       4,
			Restitution:  0.2,
			ForwardForce: 12000,
			ReverseForce: 6000,
			TurnImpulse:  150,
		},
		Physics: TrackoutPhysics{
			LinearDamping:     0.8,
			AngularDamping:    4,
			GroundHalfExtent:  5000, // 10000 x 10000 ground box
			GroundRestitution: 0.5,
		},
		Camera: TrackoutCamera{
			CellsPerUnit: 1,
		},
		Grid: TrackoutGrid{
			Size:     100,
			Step:     10,
			AxisSize: 8,
		},
		Input: InputConfig{
			HoldMS: 150,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "dungeon":
		return defaultDungeonYAML
	case "trackout":
		return defaultTrackoutYAML
	default:
		return nil
	}
}
