package component

// Hitbox is the offensive AABB of a melee attack, relative to the entity
// transform and mirrored with facing. It only collides while Active.
type Hitbox struct {
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
	Damage  int
	Active  bool
	// Step is the combo step the current activation belongs to.
	Step int
	// HitTargets prevents one activation from damaging a target twice.
	HitTargets map[uint64]bool
}

var HitboxComponent = NewComponent[Hitbox]()
