// Package config provides YAML-based game configuration loading for the
// dungeon and trackout games.
package config

import "time"

// DungeonConfig contains all configuration for the dungeon game.
type DungeonConfig struct {
	Movement DungeonMovement `yaml:"movement"`
	Swing    DungeonSwing    `yaml:"swing"`
	View     DungeonView     `yaml:"view"`
	Map      DungeonMap      `yaml:"map"`
	Pick     DungeonPick     `yaml:"pick"`
	Input    InputConfig     `yaml:"input"`
}

// DungeonMovement defines the per-frame movement step.
type DungeonMovement struct {
	// Step is added per frame per held direction, in degrees. It does not
	// scale with elapsed time.
	Step float64 `yaml:"step"`
}

// DungeonSwing defines the attack swing animation.
type DungeonSwing struct {
	DurationMS  int     `yaml:"duration_ms"`
	TargetAngle float64 `yaml:"target_angle"` // degrees at the end of wind-up times two
}

// Duration returns the swing duration.
func (s DungeonSwing) Duration() time.Duration {
	return time.Duration(s.DurationMS) * time.Millisecond
}

// DungeonView defines the camera and terminal cell geometry.
type DungeonView struct {
	Longitude    float64 `yaml:"longitude"`
	Latitude     float64 `yaml:"latitude"`
	Zoom         float64 `yaml:"zoom"`
	Pitch        float64 `yaml:"pitch"`
	Bearing      float64 `yaml:"bearing"`
	CellWidthPx  float64 `yaml:"cell_width_px"`
	CellHeightPx float64 `yaml:"cell_height_px"`
}

// DungeonMap selects the boundary map.
type DungeonMap struct {
	Path    string `yaml:"path"`     // empty means the embedded map
	LayerID string `yaml:"layer_id"` // layer queried for boundaries
}

// DungeonPick defines the boundary query.
type DungeonPick struct {
	RadiusPx float64 `yaml:"radius_px"`
}

// InputConfig defines how held keys are tracked on terminals that do not
// report key releases.
type InputConfig struct {
	HoldMS int `yaml:"hold_ms"` // 0 disables expiry
}

// Hold returns the key hold window.
func (c InputConfig) Hold() time.Duration {
	return time.Duration(c.HoldMS) * time.Millisecond
}

// TrackoutConfig contains all configuration for the trackout game.
type TrackoutConfig struct {
	Vehicle TrackoutVehicle `yaml:"vehicle"`
	Spawn   TrackoutSpawn   `yaml:"spawn"`
	Physics TrackoutPhysics `yaml:"physics"`
	Camera  TrackoutCamera  `yaml:"camera"`
	Grid    TrackoutGrid    `yaml:"grid"`
	Input   InputConfig     `yaml:"input"`
}

// TrackoutVehicle defines the car body and the key-to-force table.
type TrackoutVehicle struct {
	Mass         float64 `yaml:"mass"`
	Width        float64 `yaml:"width"`
	Length       float64 `yaml:"length"`
	Restitution  float64 `yaml:"restitution"`
	ForwardForce float64 `yaml:"forward_force"` // newtons along the heading
	ReverseForce float64 `yaml:"reverse_force"` // newtons against the heading
	TurnImpulse  float64 `yaml:"turn_impulse"`  // angular impulse per physics tick
}

// TrackoutSpawn is the transform restored by the reset key.
type TrackoutSpawn struct {
	X       float64 `yaml:"x"`
	Z       float64 `yaml:"z"`
	Heading float64 `yaml:"heading"` // degrees, 0 faces +Z
}

// TrackoutPhysics defines the physics world.
type TrackoutPhysics struct {
	LinearDamping     float64 `yaml:"linear_damping"`  // per second
	AngularDamping    float64 `yaml:"angular_damping"` // per second
	GroundHalfExtent  float64 `yaml:"ground_half_extent"`
	GroundRestitution float64 `yaml:"ground_restitution"`
}

// TrackoutCamera defines the top-down follow camera.
type TrackoutCamera struct {
	CellsPerUnit float64 `yaml:"cells_per_unit"` // horizontal cells per world unit
}

// TrackoutGrid defines the ground grid and axis helper.
type TrackoutGrid struct {
	Size     int `yaml:"size"`
	Step     int `yaml:"step"`
	AxisSize int `yaml:"axis_size"`
}
