package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type PlatformTag struct{}

var PlatformTagComponent = NewComponent[PlatformTag]()

// DummyTag marks a training target the player can hit.
type DummyTag struct{}

var DummyTagComponent = NewComponent[DummyTag]()
