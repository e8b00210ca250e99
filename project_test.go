package gosieterm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangleMesh(points ...Vec3) *Mesh {
	m := NewMesh()
	_ = m.AddFace(CellSolid, points...)
	return m
}

func TestBackfaceCulling(t *testing.T) {
	cam := NewCamera(40, 20, 90, 0.1)
	front := []Vec3{{-1, -1, -5}, {1, -1, -5}, {0, 1, -5}}
	back := []Vec3{{0, 1, -5}, {1, -1, -5}, {-1, -1, -5}}

	testCases := []struct {
		name    string
		points  []Vec3
		culling bool
		want    int
	}{
		{"front face, culling on", front, true, 1},
		{"back face, culling on", back, true, 0},
		{"back face, culling off", back, false, 1},
		{"front face, culling off", front, false, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := triangleMesh(tc.points...)
			m.BackfaceCulling = tc.culling
			prims, err := cam.ProjectObject(m)
			require.NoError(t, err)
			assert.Len(t, prims, tc.want)
		})
	}
}

func TestCubeFacesSeenHeadOn(t *testing.T) {
	cam := NewCamera(40, 20, 90, 0.1)
	cube := NewCube(2)
	cube.Transform = NewTransformT(V3(0, 0, -10))

	prims, err := cam.ProjectObject(cube)
	require.NoError(t, err)
	require.Len(t, prims, 1, "only the front face turns towards the camera")
	assert.True(t, almostEqual(9, prims[0].Depth))
	assert.Equal(t, NewCell('#'), prims[0].Shape.(Polygon).Fill)

	cube.BackfaceCulling = false
	prims, err = cam.ProjectObject(cube)
	require.NoError(t, err)
	assert.Len(t, prims, 6)
}

func TestFaceDepthIsMeanVertexDepth(t *testing.T) {
	cam := NewCamera(40, 20, 90, 0.1)
	m := triangleMesh(V3(-1, -1, -4), V3(1, -1, -5), V3(0, 1, -6))

	prims, err := cam.ProjectObject(m)
	require.NoError(t, err)
	require.Len(t, prims, 1)
	assert.True(t, almostEqual(5, prims[0].Depth))

	poly, ok := prims[0].Shape.(Polygon)
	require.True(t, ok)
	assert.True(t, poly.Filled)
	assert.Len(t, poly.Vertices, 3)
}

func TestNearPolicy(t *testing.T) {
	straddling := []Vec3{{-1, -1, -5}, {1, -1, -5}, {0, 1, 1}}

	testCases := []struct {
		name      string
		policy    NearPolicy
		wantFaces int
		wantVerts int
		wantLines int
	}{
		{"cull", NearCull, 0, 0, 0},
		{"clip", NearClip, 1, 4, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cam := NewCamera(40, 20, 90, 1)
			cam.NearPolicy = tc.policy

			prims, err := cam.ProjectObject(triangleMesh(straddling...))
			require.NoError(t, err)
			require.Len(t, prims, tc.wantFaces)
			if tc.wantFaces > 0 {
				poly := prims[0].Shape.(Polygon)
				assert.Len(t, poly.Vertices, tc.wantVerts)
				assert.Greater(t, prims[0].Depth, 1.0)
			}

			prims, err = cam.ProjectObject(NewLine3D(V3(0, 0, -5), V3(0, 0, 5), CellSolid))
			require.NoError(t, err)
			assert.Len(t, prims, tc.wantLines)
		})
	}
}

func TestMeshFullyBehindCamera(t *testing.T) {
	for _, policy := range []NearPolicy{NearCull, NearClip} {
		cam := NewCamera(40, 20, 90, 0.1)
		cam.NearPolicy = policy
		cube := NewCube(2)
		cube.BackfaceCulling = false
		cube.Transform = NewTransformT(V3(0, 0, 10))

		prims, err := cam.ProjectObject(cube)
		require.NoError(t, err)
		assert.Empty(t, prims)
	}
}

func TestDisplayModes(t *testing.T) {
	cam := NewCamera(40, 20, 90, 0.1)

	t.Run("points", func(t *testing.T) {
		cube := NewCube(2, NewCell('o'))
		cube.Mode = DisplayPoints
		cube.Transform = NewTransformT(V3(0, 0, -10))

		prims, err := cam.ProjectObject(cube)
		require.NoError(t, err)
		require.Len(t, prims, 8)
		for _, p := range prims {
			pt, ok := p.Shape.(Point)
			require.True(t, ok)
			assert.Equal(t, NewCell('o'), pt.Fill)
		}
	})

	t.Run("wireframe", func(t *testing.T) {
		cube := NewCube(2)
		cube.Mode = DisplayWireframe
		cube.BackfaceCulling = false
		cube.Transform = NewTransformT(V3(0, 0, -10))

		prims, err := cam.ProjectObject(cube)
		require.NoError(t, err)
		require.Len(t, prims, 6)
		for _, p := range prims {
			assert.False(t, p.Shape.(Polygon).Filled)
		}
	})
}

func TestLine3DProjection(t *testing.T) {
	cam := NewCamera(40, 20, 90, 0.1)
	l := NewLine3D(V3(-1, 0, 0), V3(1, 0, 0), NewCell('-'))
	l.Transform = NewTransformT(V3(0, 0, -5))

	prims, err := cam.ProjectObject(l)
	require.NoError(t, err)
	require.Len(t, prims, 1)
	line := prims[0].Shape.(Line)
	assert.Equal(t, V2(16, 10), line.A)
	assert.Equal(t, V2(24, 10), line.B)
	assert.True(t, almostEqual(5, prims[0].Depth))
}

func TestProjectObjectErrors(t *testing.T) {
	cam := NewCamera(40, 20, 90, 0.1)
	var nilMesh *Mesh
	var nilLine *Line3D
	bad := NewMesh()
	bad.Vertices = []Vec3{{0, 0, -5}, {1, 0, -5}, {0, 1, -5}}
	bad.Faces = []Face{{Indices: []int{0, 1, 7}}}
	short := NewMesh()
	short.Vertices = []Vec3{{0, 0, -5}, {1, 0, -5}}
	short.Faces = []Face{{Indices: []int{0, 1}}}

	testCases := []struct {
		name string
		obj  Object3D
	}{
		{"nil object", nil},
		{"nil mesh", nilMesh},
		{"nil line", nilLine},
		{"index out of range", bad},
		{"face with two vertices", short},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := cam.ProjectObject(tc.obj)
			assert.ErrorIs(t, err, ErrInvalidGeometry)
		})
	}
}

func TestZeroNearPlane(t *testing.T) {
	grazing := []Vec3{{1, 0, -1e-200}, {6, 0, -5}, {6, 2, -5}}

	testCases := []struct {
		name   string
		policy NearPolicy
	}{
		{"cull", NearCull},
		{"clip", NearClip},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			vp, err := NewViewportSized(20, 10, CellBackground, 90, 0)
			require.NoError(t, err)
			vp.Camera.NearPolicy = tc.policy
			m := triangleMesh(grazing...)
			m.BackfaceCulling = false
			vp.AddObject(m)

			prims, err := vp.Primitives()
			require.NoError(t, err)
			if tc.policy == NearCull {
				assert.Empty(t, prims)
			}
			for _, p := range prims {
				for _, v := range p.Shape.(Polygon).Vertices {
					assert.Greater(t, v.X, 10, "vertex %v is mirrored to the left", v)
				}
			}

			_, err = vp.Render()
			require.NoError(t, err)
			for _, p := range vp.Canvas.Pixels() {
				assert.GreaterOrEqual(t, p.Pos.X, 10)
			}
		})
	}
}
