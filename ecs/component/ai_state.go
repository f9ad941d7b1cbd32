package component

// AIState is the runtime side of an enemy's behaviour.
type AIState struct {
	Aggro           bool
	AggroRemaining  float64
	SinceAttack     float64
	SpeedScale      float64
	MinDistance     float64
	MaxDistance     float64
	ForceAttack     bool
	ScriptOverrides bool
}

var AIStateComponent = NewComponent[AIState]()
