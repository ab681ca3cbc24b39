// Command simpleScene drops a box and a sphere onto a static floor and
// prints each body's position and sleep state once per simulated second
// for ten simulated seconds.
package main

import (
	"fmt"

	feather "github.com/go-feather/rigidcore"
	"github.com/go-feather/rigidcore/actor"
	"github.com/go-feather/rigidcore/mathutil"
)

func main() {
	world := feather.NewWorld(feather.NewDefaultLogger("simpleScene"))

	world.Layers.AddLayer("world")
	world.Layers.AddLayer("debris")
	world.Layers.SetRule("world", "debris", true)
	world.Layers.SetRule("debris", "debris", true)

	world.CreateBody(actor.BodySpec{
		Transform: actor.Transform{Position: mathutil.Vec3{0, -0.5, 0}},
		Collider:  actor.NewBoxCollider(mathutil.Vec3{10, 0.5, 10}),
		IsDynamic: false,
		Material:  actor.Material{Restitution: 0.1, StaticFriction: 0.6, DynamicFriction: 0.5},
		Layer:     "world",
	})

	box := world.CreateBody(actor.BodySpec{
		Transform:      actor.Transform{Position: mathutil.Vec3{0, 3, 0}},
		Collider:       actor.NewBoxCollider(mathutil.Vec3{0.5, 0.5, 0.5}),
		IsDynamic:      true,
		Density:        1.0,
		UseGravity:     true,
		GravityFactor:  1.0,
		SleepThreshold: 0.05,
		Material:       actor.Material{Restitution: 0.2, StaticFriction: 0.5, DynamicFriction: 0.4},
		Layer:          "debris",
	})

	ball := world.CreateBody(actor.BodySpec{
		Transform:      actor.Transform{Position: mathutil.Vec3{1.5, 5, 0}},
		Collider:       actor.NewSphereCollider(0.4),
		IsDynamic:      true,
		Density:        1.0,
		UseGravity:     true,
		GravityFactor:  1.0,
		SleepThreshold: 0.05,
		Material:       actor.Material{Restitution: 0.6, StaticFriction: 0.3, DynamicFriction: 0.2},
		Layer:          "debris",
	})

	const dt = 1.0 / 60.0
	for tick := 0; tick < 600; tick++ {
		world.Update(dt, 1)

		if tick%60 == 0 {
			b, _ := world.GetBody(box)
			s, _ := world.GetBody(ball)
			fmt.Printf("t=%.2fs box=%v asleep=%v  ball=%v asleep=%v\n",
				float64(tick)*dt, b.Transform.Position, b.IsSleeping(),
				s.Transform.Position, s.IsSleeping())
		}
	}
}
