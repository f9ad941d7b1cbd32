package component

// Team decides who can hurt whom: projectiles only damage the other team.
type Team int

const (
	TeamPlayer Team = iota + 1
	TeamEnemy
)

func (t Team) String() string {
	switch t {
	case TeamPlayer:
		return "player"
	case TeamEnemy:
		return "enemy"
	default:
		return "none"
	}
}

type Faction struct {
	Team Team
}

var FactionComponent = NewComponent[Faction]()
