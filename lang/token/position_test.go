package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPositionString(t *testing.T) {
	require.Equal(t, "main.he:3:7", Position{Filename: "main.he", Line: 3, Col: 7}.String())
	require.Equal(t, "3:7", Position{Line: 3, Col: 7}.String())
	require.Equal(t, "main.he", Position{Filename: "main.he"}.String())
	require.Equal(t, "-", Position{}.String())
}

func TestFormatPos(t *testing.T) {
	pos := Position{Filename: "main.he", Line: 2, Col: 5, Offset: 12}
	require.Equal(t, "", FormatPos(PosNone, pos))
	require.Equal(t, "main.he:2:5", FormatPos(PosLong, pos))
	require.Equal(t, "2:5(+12)", FormatPos(PosOffsets, pos))
}
