package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestModelCenterBaseAnchorUsesMinY(t *testing.T) {
	cases := []struct {
		name string
		box  Box3
		want mgl32.Vec3
	}{
		{
			name: "unit cube at origin",
			box:  NewBox3(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}),
			want: mgl32.Vec3{0, -1, 0},
		},
		{
			name: "building on the ground plane",
			box:  NewBox3(mgl32.Vec3{-40, 0, -25}, mgl32.Vec3{60, 92, 35}),
			want: mgl32.Vec3{10, 0, 5},
		},
		{
			name: "raised asymmetric box",
			box:  NewBox3(mgl32.Vec3{2, 3.5, -8}, mgl32.Vec3{6, 10.5, -2}),
			want: mgl32.Vec3{4, 3.5, -5},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ModelCenter(tc.box, AnchorBase)
			assert.Equal(t, tc.box.Min[1], got[1])
			assert.InDelta(t, tc.want[0], got[0], 1e-6)
			assert.InDelta(t, tc.want[2], got[2], 1e-6)
		})
	}
}

func TestModelCenterCentroid(t *testing.T) {
	box := NewBox3(mgl32.Vec3{-40, 0, -25}, mgl32.Vec3{60, 92, 35})
	assert.Equal(t, mgl32.Vec3{10, 46, 5}, ModelCenter(box, AnchorCentroid))
}

func TestModelCenterEmptyBoxIsOrigin(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{}, ModelCenter(EmptyBox(), AnchorBase))
	assert.Equal(t, mgl32.Vec3{}, ModelCenter(EmptyBox(), AnchorCentroid))
}

func TestBoxUnionIgnoresEmpty(t *testing.T) {
	a := NewBox3(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})
	assert.Equal(t, a, EmptyBox().Union(a))
	assert.Equal(t, a, a.Union(EmptyBox()))

	b := NewBox3(mgl32.Vec3{-2, 0.5, 0}, mgl32.Vec3{0, 3, 4})
	assert.Equal(t, NewBox3(mgl32.Vec3{-2, 0, 0}, mgl32.Vec3{1, 3, 4}), a.Union(b))
}

func TestBoxApplyMatrix4(t *testing.T) {
	box := NewBox3(mgl32.Vec3{-1, 0, -1}, mgl32.Vec3{1, 2, 1})

	moved := box.ApplyMatrix4(mgl32.Translate3D(10, 5, -3))
	assert.Equal(t, NewBox3(mgl32.Vec3{9, 5, -4}, mgl32.Vec3{11, 7, -2}), moved)

	scaled := box.ApplyMatrix4(mgl32.Scale3D(2, 3, 4))
	assert.Equal(t, NewBox3(mgl32.Vec3{-2, 0, -4}, mgl32.Vec3{2, 6, 4}), scaled)

	// A quarter turn around Y swaps the X and Z extents.
	turned := NewBox3(mgl32.Vec3{-1, 0, -3}, mgl32.Vec3{1, 1, 3}).ApplyMatrix4(mgl32.HomogRotate3DY(mgl32.DegToRad(90)))
	assert.InDelta(t, -3, turned.Min[0], 1e-5)
	assert.InDelta(t, 3, turned.Max[0], 1e-5)
	assert.InDelta(t, -1, turned.Min[2], 1e-5)
	assert.InDelta(t, 1, turned.Max[2], 1e-5)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#c8f0f9")
	assert.NoError(t, err)
	assert.Equal(t, uint32(0xc8f0f9), c.Hex())

	c, err = ParseColor("0xa0a0fc")
	assert.NoError(t, err)
	assert.Equal(t, ColorFromHex(0xa0a0fc), c)

	c, err = ParseColor("#fff")
	assert.NoError(t, err)
	assert.Equal(t, uint32(0xffffff), c.Hex(), "short form expands each digit")

	c, err = ParseColor("c8f0f980")
	assert.NoError(t, err)
	assert.Equal(t, uint32(0xc8f0f9), c.Hex(), "alpha is dropped")

	for _, bad := range []string{"", "#", "zzzzzz", "#c8f0g9", "#c8f0f", "0x"} {
		_, err = ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
