package simulation

// Kind identifies a gameplay notification.
type Kind string

const (
	KindNone           Kind = ""
	KindJumped         Kind = "jumped"
	KindLanded         Kind = "landed"
	KindStopJump       Kind = "stop-jump"
	KindSingleTapLeft  Kind = "single-tap-left"
	KindSingleTapRight Kind = "single-tap-right"
	KindDoubleTapLeft  Kind = "double-tap-left"
	KindDoubleTapRight Kind = "double-tap-right"
	KindAttack         Kind = "attack"
	KindAttackEnd      Kind = "attack-end"
	KindHit            Kind = "hit"
	KindRespawn        Kind = "respawn"
)

// Event is a notification raised by a controller and consumed by other
// subsystems. Entity is zero for events raised outside the ECS.
type Event struct {
	Kind   Kind
	Entity uint64
	// Step is the combo step for attack and hit events.
	Step int
	// Target is the entity struck by a hit.
	Target uint64
}
