package narrowphase

import (
	"math"
	"testing"

	"github.com/go-feather/rigidcore/actor"
	"github.com/go-feather/rigidcore/mathutil"
)

func bodyAt(pos mathutil.Vec3, collider actor.Collider) *actor.RigidBody {
	rb := actor.NewRigidBody(actor.BodySpec{
		Transform: actor.NewTransform(),
		Collider:  collider,
		IsDynamic: true,
		Density:   1.0,
	})
	rb.Transform.Position = pos
	return rb
}

// =============================================================================
// Sphere-Sphere
// =============================================================================

func TestGenerate_SphereSphere_ShallowOverlap(t *testing.T) {
	a := bodyAt(mathutil.Vec3{0, 0, 0}, actor.NewSphereCollider(1))
	b := bodyAt(mathutil.Vec3{1.999, 0, 0}, actor.NewSphereCollider(1))

	m := Generate(a, b)

	if !m.Colliding || len(m.Contacts) != 1 {
		t.Fatalf("Generate() = %+v, want exactly one contact", m)
	}
	c := m.Contacts[0]
	if math.Abs(c.Penetration-0.001) > 1e-6 {
		t.Errorf("Penetration = %v, want ~0.001", c.Penetration)
	}
	if c.Normal.X() <= 0 {
		t.Errorf("Normal = %v, want +X direction", c.Normal)
	}
}

func TestGenerate_SphereSphere_Coincident(t *testing.T) {
	a := bodyAt(mathutil.Vec3{0, 0, 0}, actor.NewSphereCollider(1))
	b := bodyAt(mathutil.Vec3{0, 0, 0}, actor.NewSphereCollider(1))

	m := Generate(a, b)

	if !m.Colliding || len(m.Contacts) != 1 {
		t.Fatalf("Generate() = %+v, want exactly one contact", m)
	}
	c := m.Contacts[0]
	if c.Normal != mathutil.Up {
		t.Errorf("Normal = %v, want fallback (0,1,0)", c.Normal)
	}
	if math.Abs(c.Penetration-2.0) > 1e-9 {
		t.Errorf("Penetration = %v, want 2.0", c.Penetration)
	}
}

func TestGenerate_SphereSphere_NoOverlap(t *testing.T) {
	a := bodyAt(mathutil.Vec3{0, 0, 0}, actor.NewSphereCollider(1))
	b := bodyAt(mathutil.Vec3{3, 0, 0}, actor.NewSphereCollider(1))

	m := Generate(a, b)

	if m.Colliding {
		t.Errorf("Generate() = %+v, want not colliding", m)
	}
}

// =============================================================================
// Box-Box
// =============================================================================

func TestGenerate_BoxBox_ShallowOverlap(t *testing.T) {
	// Two unit cubes (half-extents 0.5) whose centers are 0.9 apart: combined
	// half-width on X is 1.0, so they overlap by 0.1.
	a := bodyAt(mathutil.Vec3{0, 0, 0}, actor.NewBoxCollider(mathutil.Vec3{0.5, 0.5, 0.5}))
	b := bodyAt(mathutil.Vec3{0.9, 0, 0}, actor.NewBoxCollider(mathutil.Vec3{0.5, 0.5, 0.5}))

	m := Generate(a, b)

	if !m.Colliding || len(m.Contacts) == 0 {
		t.Fatalf("Generate() = %+v, want at least one contact", m)
	}
	if math.Abs(math.Abs(m.Normal.X())-1.0) > 1e-6 || m.Normal.Y() != 0 || m.Normal.Z() != 0 {
		t.Errorf("Normal = %v, want (+-1,0,0)", m.Normal)
	}
	for _, c := range m.Contacts {
		if math.Abs(c.Penetration-0.1) > 1e-6 {
			t.Errorf("Penetration = %v, want ~0.1", c.Penetration)
		}
	}
}

func TestGenerate_BoxBox_NoOverlap(t *testing.T) {
	a := bodyAt(mathutil.Vec3{0, 0, 0}, actor.NewBoxCollider(mathutil.Vec3{0.5, 0.5, 0.5}))
	b := bodyAt(mathutil.Vec3{5, 0, 0}, actor.NewBoxCollider(mathutil.Vec3{0.5, 0.5, 0.5}))

	m := Generate(a, b)

	if m.Colliding {
		t.Errorf("Generate() = %+v, want not colliding", m)
	}
}

func TestGenerate_BoxBox_Stacked_FourContactsUpNormal(t *testing.T) {
	bottom := bodyAt(mathutil.Vec3{0, 0, 0}, actor.NewBoxCollider(mathutil.Vec3{1, 1, 1}))
	top := bodyAt(mathutil.Vec3{0, 1.95, 0}, actor.NewBoxCollider(mathutil.Vec3{1, 1, 1}))

	m := Generate(bottom, top)

	if !m.Colliding {
		t.Fatal("stacked boxes should be colliding")
	}
	if len(m.Contacts) != 4 {
		t.Errorf("len(Contacts) = %d, want 4 for two face-aligned boxes", len(m.Contacts))
	}
	if math.Abs(m.Normal.Y()-1.0) > 1e-6 {
		t.Errorf("Normal = %v, want (0,1,0)", m.Normal)
	}
	for _, c := range m.Contacts {
		if c.Penetration < 0 {
			t.Errorf("Contact.Penetration = %v, must be >= 0", c.Penetration)
		}
	}
}

func TestGenerate_BoxBox_NormalPointsFromAToB(t *testing.T) {
	a := bodyAt(mathutil.Vec3{-1, 0, 0}, actor.NewBoxCollider(mathutil.Vec3{1, 1, 1}))
	b := bodyAt(mathutil.Vec3{1, 0, 0}, actor.NewBoxCollider(mathutil.Vec3{1, 1, 1}))

	m := Generate(a, b)
	if !m.Colliding {
		t.Fatal("expected overlap")
	}
	if mathutil.Dot(m.Normal, b.Transform.Position.Sub(a.Transform.Position)) <= 0 {
		t.Errorf("Normal = %v does not point roughly from A to B", m.Normal)
	}
}

// =============================================================================
// Box-Sphere
// =============================================================================

func TestGenerate_BoxSphere_RestingOnTop(t *testing.T) {
	box := bodyAt(mathutil.Vec3{0, 0, 0}, actor.NewBoxCollider(mathutil.Vec3{1, 1, 1}))
	sphere := bodyAt(mathutil.Vec3{0, 1.9, 0}, actor.NewSphereCollider(1.0))

	m := Generate(box, sphere)

	if !m.Colliding || len(m.Contacts) != 1 {
		t.Fatalf("Generate() = %+v, want exactly one contact", m)
	}
	if math.Abs(m.Normal.Y()-1.0) > 1e-6 {
		t.Errorf("Normal = %v, want (0,1,0)", m.Normal)
	}
}

func TestGenerate_BoxSphere_OrderIndependent(t *testing.T) {
	box := bodyAt(mathutil.Vec3{0, 0, 0}, actor.NewBoxCollider(mathutil.Vec3{1, 1, 1}))
	sphere := bodyAt(mathutil.Vec3{0, 1.9, 0}, actor.NewSphereCollider(1.0))

	forward := Generate(box, sphere)
	backward := Generate(sphere, box)

	if !forward.Colliding || !backward.Colliding {
		t.Fatal("both orderings should detect the overlap")
	}
	sum := forward.Normal.Add(backward.Normal)
	if mathutil.Dot(sum, sum) > 1e-9 {
		t.Errorf("normals should be opposite: forward=%v backward=%v", forward.Normal, backward.Normal)
	}
}

func TestGenerate_BoxSphere_NoOverlap(t *testing.T) {
	box := bodyAt(mathutil.Vec3{0, 0, 0}, actor.NewBoxCollider(mathutil.Vec3{1, 1, 1}))
	sphere := bodyAt(mathutil.Vec3{0, 5, 0}, actor.NewSphereCollider(1.0))

	m := Generate(box, sphere)

	if m.Colliding {
		t.Errorf("Generate() = %+v, want not colliding", m)
	}
}
