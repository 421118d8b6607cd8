package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_StripsAccentsAndTitles(t *testing.T) {
	assert.Equal(t, "jan novak", Normalize("Ing. arch. Jan Novák"))
	assert.Equal(t, "petra svobodova", Normalize("Petra Svobodová, MBA"))
	assert.Equal(t, "jan novak", Normalize("JUDr. Jan Novák, Ph.D"))
	assert.Equal(t, "plain name", Normalize("Plain   Name"))
}

func TestCompare_SetDifferences(t *testing.T) {
	diff := Compare(
		[]string{"Jan Novák", "Petra Svobodová"},
		[]string{"Ing. Jan Novák", "Karel Dvořák"},
	)

	assert.Equal(t, []string{"Petra Svobodová"}, diff.MissingInExternal)
	assert.Equal(t, []string{"Karel Dvořák"}, diff.ExtraInExternal)
}

func TestCompare_IdenticalSetsYieldNoDiff(t *testing.T) {
	diff := Compare([]string{"Jan Novák"}, []string{"jan novak"})
	assert.Empty(t, diff.MissingInExternal)
	assert.Empty(t, diff.ExtraInExternal)
}
