package component

// AI holds the static tuning of an enemy.
type AI struct {
	Kind         string
	AggroRange   float64
	AggroTime    float64
	AttackSpeed  float64
	MoveSpeed    float64
	BackoffSpeed float64
	MinDistance  float64
	MaxDistance  float64
	Skill        string
	AttackRange  float64

	SeparationRadius   float64
	SeparationStrength float64
	EdgeMargin         float64
	EdgeStrength       float64
}

// Cooldown returns the seconds between attacks.
func (a AI) Cooldown() float64 {
	if a.AttackSpeed <= 0 {
		return 0
	}
	return 1 / a.AttackSpeed
}

var AIComponent = NewComponent[AI]()
