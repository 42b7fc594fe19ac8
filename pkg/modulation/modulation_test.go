package modulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectMostEfficient_PicksHighestQualifying(t *testing.T) {
	schemes := DefaultSchemes()
	best, ok := SelectMostEfficient(schemes, 20, 300)
	assert.True(t, ok)
	assert.Equal(t, "16QAM", best.Name)
}

func TestSelectMostEfficient_FallsBackUnderLowOSNR(t *testing.T) {
	schemes := DefaultSchemes()
	best, ok := SelectMostEfficient(schemes, 7, 300)
	assert.True(t, ok)
	assert.Equal(t, "BPSK", best.Name)
}

func TestSelectMostEfficient_NoneQualify(t *testing.T) {
	schemes := DefaultSchemes()
	_, ok := SelectMostEfficient(schemes, 2, 300)
	assert.False(t, ok)
}

func TestScheme_NumSlots_100Gbps_BPSK_Is4(t *testing.T) {
	schemes := DefaultSchemes()
	bpsk := schemes[0]
	assert.Equal(t, 4, bpsk.NumSlots(100))
}
