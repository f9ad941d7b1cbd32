package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type ArenaSpec struct {
	Name        string          `yaml:"name"`
	Width       float64         `yaml:"width"`
	Height      float64         `yaml:"height"`
	Background  YAMLColor       `yaml:"background"`
	LootGoal    int             `yaml:"loot_goal"`
	Enemies     int             `yaml:"enemies"`
	PlayerStart VecSpec         `yaml:"player_start"`
	WaveGrowth  int             `yaml:"wave_growth"`
	EnemyKinds  []string        `yaml:"enemy_kinds"`
	SpawnMargin float64         `yaml:"spawn_margin"`
	HitFeedback HitFeedbackSpec `yaml:"hit_feedback"`
	LootBar     LootBarSpec     `yaml:"loot_bar"`
}

func LoadArenaSpec() (*ArenaSpec, error) {
	spec, err := LoadSpec[ArenaSpec]("arena.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type HitFeedbackSpec struct {
	Duration float64 `yaml:"duration"`
	Zoom     float64 `yaml:"zoom"`
	Flash    float64 `yaml:"flash"`
}

type LootBarSpec struct {
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	SmoothTime float64 `yaml:"smooth_time"`
}

type PlayerSpec struct {
	Name         string          `yaml:"name"`
	MoveSpeed    float64         `yaml:"move_speed"`
	DashSpeed    float64         `yaml:"dash_speed"`
	DashDistance float64         `yaml:"dash_distance"`
	Health       int             `yaml:"health"`
	Skill        string          `yaml:"skill"`
	Shape        ShapeSpec       `yaml:"shape"`
	RenderLayer  RenderLayerSpec `yaml:"render_layer"`
	Hurtbox      HurtboxSpec     `yaml:"hurtbox"`
	Strings      RopeSpec        `yaml:"strings"`
	Cast         CastSpec        `yaml:"cast"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	data, err := Load("player.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load player.yaml: %w", err)
	}
	var spec PlayerSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal player.yaml: %w", err)
	}
	return &spec, nil
}

// RopeSpec describes the player's strings. Anchors are offsets from the
// player's center; one rope is built per anchor.
type RopeSpec struct {
	Anchors       []VecSpec `yaml:"anchors"`
	Points        int       `yaml:"points"`
	SegmentLength float64   `yaml:"segment_length"`
	Damping       float64   `yaml:"damping"`
	Gravity       float64   `yaml:"gravity"`
	Iterations    int       `yaml:"iterations"`
	PullStrength  float64   `yaml:"pull_strength"`
	MaxPullAcc    float64   `yaml:"max_pull_acc"`
	WindStrength  float64   `yaml:"wind_strength"`
	Width         float64   `yaml:"width"`
	Color         YAMLColor `yaml:"color"`
}

type CastSpec struct {
	PullTime     float64   `yaml:"pull_time"`
	PullSpread   float64   `yaml:"pull_spread"`
	PullReach    float64   `yaml:"pull_reach"`
	WingOpenTime float64   `yaml:"wing_open_time"`
	WingLifetime float64   `yaml:"wing_lifetime"`
	WingSamples  int       `yaml:"wing_samples"`
	WingColor    YAMLColor `yaml:"wing_color"`
}

type EnemySpec struct {
	Name         string          `yaml:"name"`
	Kind         string          `yaml:"kind"`
	Health       int             `yaml:"health"`
	AggroRange   float64         `yaml:"aggro_range"`
	AggroTime    float64         `yaml:"aggro_time"`
	AttackSpeed  float64         `yaml:"attack_speed"`
	MoveSpeed    float64         `yaml:"move_speed"`
	BackoffSpeed float64         `yaml:"backoff_speed"`
	MinDistance  float64         `yaml:"min_distance"`
	MaxDistance  float64         `yaml:"max_distance"`
	Skill        string          `yaml:"skill"`
	AIScript     string          `yaml:"ai_script"`
	Separation   SteeringSpec    `yaml:"separation"`
	Edge         SteeringSpec    `yaml:"edge"`
	Shape        ShapeSpec       `yaml:"shape"`
	RenderLayer  RenderLayerSpec `yaml:"render_layer"`
	Hurtbox      HurtboxSpec     `yaml:"hurtbox"`
	HealthBar    HealthBarSpec   `yaml:"health_bar"`
}

// LoadEnemySpec loads enemy_<kind>.yaml.
func LoadEnemySpec(kind string) (*EnemySpec, error) {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return nil, fmt.Errorf("prefabs: empty enemy kind")
	}
	spec, err := LoadSpec[EnemySpec]("enemy_" + kind + ".yaml")
	if err != nil {
		return nil, err
	}
	if spec.Kind == "" {
		spec.Kind = kind
	}
	return &spec, nil
}

// SteeringSpec is shared by separation (Range is the radius) and edge
// avoidance (Range is the margin).
type SteeringSpec struct {
	Range    float64 `yaml:"range"`
	Strength float64 `yaml:"strength"`
}

type HealthBarSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetY float64 `yaml:"offset_y"`
}

type SkillSpec struct {
	Name        string          `yaml:"name"`
	TargetRange float64         `yaml:"target_range"`
	Speed       float64         `yaml:"speed"`
	Damage      int             `yaml:"damage"`
	MaxDistance float64         `yaml:"max_distance"`
	Muzzle      float64         `yaml:"muzzle"`
	Shape       ShapeSpec       `yaml:"shape"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
}

// LoadSkillSpec loads <name>.yaml for a projectile skill.
func LoadSkillSpec(name string) (*SkillSpec, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("prefabs: empty skill name")
	}
	spec, err := LoadSpec[SkillSpec](name + ".yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type PickupSpec struct {
	Name         string          `yaml:"name"`
	Value        int             `yaml:"value"`
	Radius       float64         `yaml:"radius"`
	StorageSpeed float64         `yaml:"storage_speed"`
	Animation    AnimationSpec   `yaml:"animation"`
	Shape        ShapeSpec       `yaml:"shape"`
	RenderLayer  RenderLayerSpec `yaml:"render_layer"`
}

func LoadPickupSpec() (*PickupSpec, error) {
	spec, err := LoadSpec[PickupSpec]("drop_globe.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type PortalSpec struct {
	Name        string          `yaml:"name"`
	Animation   AnimationSpec   `yaml:"animation"`
	Shape       ShapeSpec       `yaml:"shape"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
}

func LoadPortalSpec() (*PortalSpec, error) {
	spec, err := LoadSpec[PortalSpec]("portal.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type VecSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type ShapeSpec struct {
	Kind    string    `yaml:"kind"`
	Width   float64   `yaml:"width"`
	Height  float64   `yaml:"height"`
	Fill    YAMLColor `yaml:"fill"`
	Outline YAMLColor `yaml:"outline"`
}

type RenderLayerSpec struct {
	Index int `yaml:"index"`
}

type AnimationSpec struct {
	FrameCount int     `yaml:"frame_count"`
	FPS        float64 `yaml:"fps"`
}

type HurtboxSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

type YAMLColor struct {
	color.Color
}

// RGBAOr returns the color as color.RGBA, or fallback when unset.
func (c YAMLColor) RGBAOr(fallback color.RGBA) color.RGBA {
	if c.Color == nil {
		return fallback
	}
	return color.RGBAModel.Convert(c.Color).(color.RGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
