package ecs

// EventType names something that happened during a frame.
type EventType string

const (
	EventEnemyKilled     EventType = "enemy_killed"
	EventPlayerHit       EventType = "player_hit"
	EventPlayerDied      EventType = "player_died"
	EventLootCollected   EventType = "loot_collected"
	EventPortalOpened    EventType = "portal_opened"
	EventWaveStarted     EventType = "wave_started"
	EventProjectileFired EventType = "projectile_fired"
)

// Event is a frame event payload. Entity is the subject (the killed enemy,
// the damaged player, ...); Value carries the amount when there is one.
type Event struct {
	Type   EventType
	Entity Entity
	Value  float64
	Data   any
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
