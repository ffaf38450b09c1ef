package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStemBasic(t *testing.T) {
	assert.Equal(t, "shohei-ohtani", Stem("Shohei Ohtani"))
	assert.Equal(t, "bobby-witt-jr", Stem("Bobby Witt Jr."))
}

func TestStemFoldsAccents(t *testing.T) {
	assert.Equal(t, "jose-ramirez", Stem("José Ramírez"))
	assert.Equal(t, "eugenio-suarez", Stem("Eugenio Suárez"))
}

func TestStemOverrides(t *testing.T) {
	// Periods are stripped before the override lookup, so both forms of an
	// initialed name converge on the same key.
	assert.Equal(t, "c.j.-abrams", Stem("CJ Abrams"))
	assert.Equal(t, "c.j.-abrams", Stem("C.J. Abrams"))
	assert.Equal(t, "j.t.-realmuto", Stem("J.T. Realmuto"))
	assert.Equal(t, "benjamin-williamson", Stem("Ben Williamson"))
}

func TestStemDeterministic(t *testing.T) {
	first := Stem("Andrés Giménez")
	second := Stem("Andrés Giménez")
	assert.Equal(t, first, second)
}
