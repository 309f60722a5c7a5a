package tile

import "testing"

func TestUniformCacheSentinels(t *testing.T) {
	c := NewUniformCache()
	if got := c.Get(0); got.Kind != Empty {
		t.Fatalf("Get(0) should return the Empty sentinel, got Kind=%v", got.Kind)
	}
	if got := c.Get(Opaque); got.Kind != Full {
		t.Fatalf("Get(Opaque) should return the Full sentinel, got Kind=%v", got.Kind)
	}
}

func TestUniformCacheSharesInstances(t *testing.T) {
	c := NewUniformCache()
	a := c.Get(500)
	b := c.Get(500)
	if a.Kind != Uniform || b.Kind != Uniform {
		t.Fatalf("expected Uniform tiles")
	}
	if a.Alpha != 500 || b.Alpha != 500 {
		t.Fatalf("expected alpha 500, got %d and %d", a.Alpha, b.Alpha)
	}
	// Different alphas must not collide.
	other := c.Get(700)
	if other.Alpha == a.Alpha {
		t.Fatalf("distinct alphas should not collide")
	}
}
