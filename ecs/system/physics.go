package system

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/platformer/controller"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypePlayerGround
	collisionTypeSolid
)

// PhysicsConfig maps controller units onto the pixel space the bodies live in.
type PhysicsConfig struct {
	PixelsPerUnit float64
	// Gravity is the downward acceleration in units per second squared.
	Gravity  float64
	TickRate int
}

func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{PixelsPerUnit: 32, Gravity: 9.81, TickRate: DefaultTickRate}
}

// PhysicsSystem is the kinematic collaborator of the avatar controller: it
// applies the controller's target velocity, integrates gravity and collisions
// on a Chipmunk space, and reports back velocity and the grounded signal.
type PhysicsSystem struct {
	space         *cp.Space
	cfg           PhysicsConfig
	dt            float64
	handlersReady bool

	entities     map[ecs.Entity]*bodyInfo
	groundShapes map[*cp.Shape]ecs.Entity
	playerStates map[ecs.Entity]*playerContactState
}

type bodyInfo struct {
	body         *cp.Body
	mainShape    *cp.Shape
	groundShape  *cp.Shape
	shapes       []*cp.Shape
	static       bool
	gravityScale float64
}

type playerContactState struct {
	grounded bool
}

func NewPhysicsSystem(cfg PhysicsConfig) *PhysicsSystem {
	def := DefaultPhysicsConfig()
	if cfg.PixelsPerUnit <= 0 {
		cfg.PixelsPerUnit = def.PixelsPerUnit
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = def.TickRate
	}
	ps := &PhysicsSystem{
		cfg:          cfg,
		dt:           1.0 / float64(cfg.TickRate),
		entities:     make(map[ecs.Entity]*bodyInfo),
		groundShapes: make(map[*cp.Shape]ecs.Entity),
		playerStates: make(map[ecs.Entity]*playerContactState),
	}
	ps.space = ps.newSpace()
	return ps
}

func (ps *PhysicsSystem) newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: ps.cfg.Gravity * ps.cfg.PixelsPerUnit})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// SetGravity changes gravity for subsequent steps.
func (ps *PhysicsSystem) SetGravity(gravity float64) {
	ps.cfg.Gravity = gravity
	ps.space.SetGravity(cp.Vector{X: 0, Y: gravity * ps.cfg.PixelsPerUnit})
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.syncWorldBounds(w)
	ps.resetPlayerContacts(w)
	ps.applyKinematics(w)

	ps.space.Step(ps.dt)

	ps.syncTransforms(w)
	ps.readKinematics(w)
	ps.flushPlayerContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	groundHandler := ps.space.NewCollisionHandler(collisionTypePlayerGround, collisionTypeSolid)
	groundHandler.UserData = ps
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		playerEntity, okA := sys.groundShapes[shapeA]
		if !okA {
			var okB bool
			playerEntity, okB = sys.groundShapes[shapeB]
			if !okB {
				return true
			}
		}

		n := arb.Normal()
		if !okA {
			n = n.Neg()
		}
		// Only count as grounded when the contact normal points from the
		// feet down into the surface (positive Y in screen-down coordinates).
		if n.Y <= 0.5 {
			return true
		}
		st := sys.playerStates[playerEntity]
		if st == nil {
			st = &playerContactState{}
			sys.playerStates[playerEntity] = st
		}
		st.grounded = true
		return true
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		bodyComp, ok := ecs.GetPtr(w, e, component.PhysicsBodyComponent)
		if !ok {
			continue
		}

		info := ps.entities[e]
		if info != nil {
			if gs, ok := ecs.Get(w, e, component.GravityScaleComponent); ok {
				info.gravityScale = gs.Scale
			}
			continue
		}

		transform, _ := ecs.Get(w, e, component.TransformComponent)
		isPlayer := ecs.Has(w, e, component.PlayerTagComponent)
		gravityScale := 1.0
		if gs, ok := ecs.Get(w, e, component.GravityScaleComponent); ok {
			gravityScale = gs.Scale
		}

		info = ps.createBodyInfo(transform, *bodyComp, isPlayer, gravityScale)
		ps.entities[e] = info
		if info.groundShape != nil {
			ps.groundShapes[info.groundShape] = e
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.mainShape
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, bodyComp component.PhysicsBody, isPlayer bool, gravityScale float64) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	if width <= 0 || height <= 0 {
		width = 32
		height = 32
	}

	info := &bodyInfo{static: bodyComp.Static, gravityScale: gravityScale}

	if bodyComp.Static {
		bb := cp.BB{
			L: transform.X - width/2,
			B: transform.Y - height/2,
			R: transform.X + width/2,
			T: transform.Y + height/2,
		}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)

		info.body = ps.space.StaticBody
		info.mainShape = shape
		info.shapes = []*cp.Shape{shape}
		return info
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	// infinite moment keeps the avatar upright
	body := cp.NewBody(mass, cp.INFINITY)
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(body, gravity.Mult(info.gravityScale), damping, dt)
	})

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeSolid)
	if isPlayer {
		shape.SetCollisionType(collisionTypePlayer)
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info.body = body
	info.mainShape = shape
	info.shapes = []*cp.Shape{shape}

	if isPlayer {
		groundShape := ps.createGroundSensor(width, height, body)
		ps.space.AddShape(groundShape)
		info.groundShape = groundShape
		info.shapes = append(info.shapes, groundShape)
	}

	return info
}

func (ps *PhysicsSystem) createGroundSensor(width, height float64, body *cp.Body) *cp.Shape {
	groundBB := cp.BB{
		L: -width * 0.45,
		B: height / 2.0,
		R: width * 0.45,
		T: height/2.0 + 2,
	}

	groundShape := cp.NewBox2(body, groundBB, 0)
	groundShape.SetSensor(true)
	groundShape.SetCollisionType(collisionTypePlayerGround)
	return groundShape
}

// syncWorldBounds walls off the top and sides of the level. The bottom is
// left open so the avatar can fall out and respawn.
func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	bounds, _ := ecs.Get(w, boundsEntity, component.LevelBoundsComponent)

	worldW := bounds.Width
	worldH := bounds.Height
	if worldW <= 0 || worldH <= 0 {
		return
	}

	thickness := 1.0
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},           // top
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},           // left
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}}, // right
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
	}

	ps.entities[boundsEntity] = info
}

func (ps *PhysicsSystem) resetPlayerContacts(w *ecs.World) {
	players := w.Query(component.PlayerCollisionComponent.Kind())
	seen := make(map[ecs.Entity]struct{}, len(players))
	for _, e := range players {
		seen[e] = struct{}{}
		st := ps.playerStates[e]
		if st == nil {
			st = &playerContactState{}
			ps.playerStates[e] = st
		}
		st.grounded = false
	}

	for e := range ps.playerStates {
		if _, ok := seen[e]; !ok {
			delete(ps.playerStates, e)
		}
	}
}

func (ps *PhysicsSystem) flushPlayerContacts(w *ecs.World) {
	for e, st := range ps.playerStates {
		pc, ok := ecs.GetPtr(w, e, component.PlayerCollisionComponent)
		if !ok {
			continue
		}
		pc.Grounded = st.grounded
	}
}

// applyKinematics hands the controller's target to the body. Horizontal speed
// snaps to the target; vertical speed is the resolved value, which gravity
// then integrates during the step.
func (ps *PhysicsSystem) applyKinematics(w *ecs.World) {
	ppu := ps.cfg.PixelsPerUnit
	ecs.ForEach2(w, component.KinematicComponent, component.PhysicsBodyComponent, func(_ ecs.Entity, kin *component.Kinematic, body *component.PhysicsBody) {
		if body.Body == nil || body.Static {
			return
		}
		body.Body.SetVelocity(kin.Target.X*ppu, -kin.Target.Y*ppu)
	})
}

func (ps *PhysicsSystem) readKinematics(w *ecs.World) {
	ppu := ps.cfg.PixelsPerUnit
	ecs.ForEach2(w, component.KinematicComponent, component.PhysicsBodyComponent, func(_ ecs.Entity, kin *component.Kinematic, body *component.PhysicsBody) {
		if body.Body == nil || body.Static {
			return
		}
		v := body.Body.Velocity()
		kin.Velocity = controller.Vector{X: v.X / ppu, Y: -v.Y / ppu}
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent, component.TransformComponent, func(_ ecs.Entity, body *component.PhysicsBody, transform *component.Transform) {
		if body.Body == nil || body.Static {
			return
		}
		pos := body.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && (ecs.Has(w, e, component.PhysicsBodyComponent) || ecs.Has(w, e, component.LevelBoundsComponent)) {
			continue
		}

		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
			delete(ps.groundShapes, shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}

		delete(ps.entities, e)
		delete(ps.playerStates, e)
	}
}
