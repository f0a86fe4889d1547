package segment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPadLen(t *testing.T) {
	tests := []struct {
		curLen int
		align  int
		want   int
	}{
		{0, AlignU64, 0},
		{1, AlignU64, 7},
		{8, AlignU64, 0},
		{9, AlignU32, 3},
		{4, AlignU32, 0},
		{3, AlignU8, 0},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, PadLen(tt.curLen, tt.align))
	}
}

func TestAlignedUp(t *testing.T) {
	require.Equal(t, 8, AlignedUp(1, AlignU64))
	require.Equal(t, 0, AlignedUp(0, AlignU64))
	require.Equal(t, 16, AlignedUp(13, AlignU64))
	require.Equal(t, 12, AlignedUp(10, AlignU32))
}

func TestIsAligned(t *testing.T) {
	require.True(t, IsAligned(0, AlignU64))
	require.True(t, IsAligned(16, AlignU64))
	require.False(t, IsAligned(9, AlignU64))
	require.True(t, IsAligned(4, AlignU32))
	require.True(t, IsAligned(7, AlignU8))
}

func TestAlignedUp_AlwaysSatisfiesIsAligned(t *testing.T) {
	for curLen := range 40 {
		for _, align := range []int{AlignU64, AlignU32, AlignU8} {
			got := AlignedUp(curLen, align)
			require.True(t, IsAligned(got, align))
			require.GreaterOrEqual(t, got, curLen)
			require.Less(t, got, curLen+align)
		}
	}
}
