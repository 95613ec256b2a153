package component

type Health struct {
	Max     int
	Current int
	// Hits counts successful hits, for the HUD.
	Hits int
}

var HealthComponent = NewComponent[Health]()
