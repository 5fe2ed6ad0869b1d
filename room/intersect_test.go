package room

import (
	"math"
	"testing"

	"github.com/fogleman/pt/pt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVecNear(t *testing.T, want, got pt.Vector, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "X")
	assert.InDelta(t, want.Y, got.Y, delta, "Y")
	assert.InDelta(t, want.Z, got.Z, delta, "Z")
}

// A triangle standing in the plane x = k, straddling the x axis
func wallAt(k float64) Triangle {
	return Triangle{V(k, 1, 0), V(k, -1, 1), V(k, -1, -1)}
}

func TestIntersectTriangle(t *testing.T) {
	hit, ok := IntersectTriangle(NewRay(V(0, 0, 0), V(1, 0, 0)), wallAt(2))
	require.True(t, ok)
	assert.InDelta(t, 2, hit.Time, 1e-12)
	assertVecNear(t, V(2, 0, 0), hit.Point, 1e-12)
	assertVecNear(t, V(-1, 0, 0), hit.UnitNormal, 1e-12)
}

func TestIntersectTriangleOrthogonal(t *testing.T) {
	tests := []struct {
		name  string
		k     float64
		speed float64
	}{
		{"unit_near", 1, 1},
		{"unit_far", 10, 1},
		{"sound_near", 1, SPEED_OF_SOUND},
		{"sound_far", 25, SPEED_OF_SOUND},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := IntersectTriangle(NewRay(V(0, 0, 0), V(tt.speed, 0, 0)), wallAt(tt.k))
			require.True(t, ok)
			assert.InDelta(t, tt.k/tt.speed, hit.Time, 1e-12)
			assertVecNear(t, V(tt.k, 0, 0), hit.Point, 1e-9)
		})
	}
}

func TestIntersectTriangleMisses(t *testing.T) {
	tests := []struct {
		name string
		ray  Ray
	}{
		{"parallel", NewRay(V(0, 0, 0), V(0, 1, 0))},
		{"beside", NewRay(V(0, 5, 0), V(1, 0, 0))},
		{"above", NewRay(V(0, 0, 3), V(1, 0, 0))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := IntersectTriangle(tt.ray, wallAt(2))
			assert.False(t, ok)
		})
	}
}

func TestIntersectTriangleBehind(t *testing.T) {
	// Hits behind the origin are reported with a time before the segment start
	hit, ok := IntersectTriangle(NewRay(V(4, 0, 0), V(1, 0, 0)), wallAt(2))
	require.True(t, ok)
	assert.InDelta(t, -2, hit.Time, 1e-12)
}

func TestIntersectTriangleTimeOffset(t *testing.T) {
	ray := Ray{Origin: V(1, 0, 0), Direction: V(2, 0, 0), TimeOffset: 3}
	hit, ok := IntersectTriangle(ray, wallAt(5))
	require.True(t, ok)
	assert.InDelta(t, 5, hit.Time, 1e-12)
	assertVecNear(t, V(5, 0, 0), hit.Point, 1e-12)
}

func TestIntersectSphere(t *testing.T) {
	sphere := Sphere{Origin: V(5, 0, 0), Radius: 1}

	t.Run("through_centre", func(t *testing.T) {
		hits := IntersectSphere(NewRay(V(0, 0, 0), V(1, 0, 0)), sphere)
		require.Len(t, hits, 2)
		assert.InDelta(t, 4, hits[0].Time, 1e-12)
		assert.InDelta(t, 6, hits[1].Time, 1e-12)
		assertVecNear(t, V(4, 0, 0), hits[0].Point, 1e-12)
		assertVecNear(t, V(6, 0, 0), hits[1].Point, 1e-12)
		// Both normals face back toward the ray's origin
		assertVecNear(t, V(-1, 0, 0), hits[0].UnitNormal, 1e-12)
		assertVecNear(t, V(-1, 0, 0), hits[1].UnitNormal, 1e-12)
	})

	t.Run("tangent", func(t *testing.T) {
		hits := IntersectSphere(NewRay(V(0, 1, 0), V(1, 0, 0)), sphere)
		require.Len(t, hits, 1)
		assert.InDelta(t, 5, hits[0].Time, 1e-12)
		assertVecNear(t, V(5, 1, 0), hits[0].Point, 1e-12)
		assertVecNear(t, V(0, 1, 0), hits[0].UnitNormal, 1e-12)
	})

	t.Run("miss", func(t *testing.T) {
		assert.Empty(t, IntersectSphere(NewRay(V(0, 2, 0), V(1, 0, 0)), sphere))
	})

	t.Run("scaled_direction", func(t *testing.T) {
		hits := IntersectSphere(NewRay(V(0, 0, 0), V(SPEED_OF_SOUND, 0, 0)), sphere)
		require.Len(t, hits, 2)
		assert.InDelta(t, 4/SPEED_OF_SOUND, hits[0].Time, 1e-12)
		assert.InDelta(t, 6/SPEED_OF_SOUND, hits[1].Time, 1e-12)
		assertVecNear(t, V(4, 0, 0), hits[0].Point, 1e-9)
	})

	t.Run("time_offset", func(t *testing.T) {
		ray := Ray{Origin: V(0, 0, 0), Direction: V(1, 0, 0), TimeOffset: 1}
		hits := IntersectSphere(ray, sphere)
		require.Len(t, hits, 2)
		assert.InDelta(t, 5, hits[0].Time, 1e-12)
		assert.InDelta(t, 7, hits[1].Time, 1e-12)
		assertVecNear(t, V(4, 0, 0), hits[0].Point, 1e-12)
	})
}

func TestReflect(t *testing.T) {
	tests := []struct {
		name   string
		dir    pt.Vector
		normal pt.Vector
		want   pt.Vector
	}{
		{"normal_incidence", V(SPEED_OF_SOUND, 0, 0), V(-1, 0, 0), V(-SPEED_OF_SOUND, 0, 0)},
		{"normal_incidence_flipped_normal", V(SPEED_OF_SOUND, 0, 0), V(1, 0, 0), V(-SPEED_OF_SOUND, 0, 0)},
		{"oblique", V(1, -1, 0), V(0, 1, 0), V(1, 1, 0)},
		{"grazing", V(0, 0, 1), V(1, 0, 0), V(0, 0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := NewRay(V(0, 0, 0), tt.dir)
			hit := Hit{Time: 0.5, Point: V(1, 2, 3), UnitNormal: tt.normal}
			r := ray.Reflect(hit)
			assertVecNear(t, tt.want, r.Direction, 1e-12)
			assert.Equal(t, hit.Point, r.Origin)
			assert.Equal(t, hit.Time, r.TimeOffset)
			assert.InDelta(t, Mag(tt.dir), Mag(r.Direction), 1e-12)
		})
	}
}

func TestCompareHits(t *testing.T) {
	early := Hit{Time: 1}
	late := Hit{Time: 2}
	nan := Hit{Time: math.NaN()}

	assert.Equal(t, -1, CompareHits(early, late))
	assert.Equal(t, 1, CompareHits(late, early))
	assert.Equal(t, 0, CompareHits(early, early))
	assert.Equal(t, 0, CompareHits(nan, early))
	assert.Equal(t, 0, CompareHits(early, nan))
}

func TestEarliest(t *testing.T) {
	_, ok := earliest(nil)
	assert.False(t, ok)

	first := ObjectHit{Hit: Hit{Time: 2}, Reflectance: 0.1}
	tied := ObjectHit{Hit: Hit{Time: 2}, Reflectance: 0.2}
	receiver := ReceiverHit{Hit: Hit{Time: 1}, Intensity: 0.5}

	got, ok := earliest([]Interaction{first, tied})
	require.True(t, ok)
	assert.Equal(t, first, got)

	got, ok = earliest([]Interaction{first, receiver, tied})
	require.True(t, ok)
	assert.Equal(t, receiver, got)

	got, ok = earliest([]Interaction{ObjectHit{Hit: Hit{Time: math.NaN()}}, first})
	require.True(t, ok)
	assert.True(t, math.IsNaN(got.hit().Time))
}
