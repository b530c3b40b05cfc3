package genre

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/apperr"
)

func TestGenre_Validate(t *testing.T) {
	g := NewGenre("  悲劇 ")
	assert.Equal(t, "悲劇", g.Name)
	assert.NoError(t, g.Validate())
	assert.NotZero(t, g.CreatedAt)

	blank := NewGenre("   ")
	assert.ErrorIs(t, blank.Validate(), ErrGenreNameRequired)
	assert.ErrorIs(t, blank.Validate(), apperr.ErrValidation)
}
