package play

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/actor"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/apperr"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/genre"
)

func TestPlay_Validate(t *testing.T) {
	p := NewPlay("ハムレット", "シェイクスピアの悲劇")
	assert.NoError(t, p.Validate())
	assert.NotZero(t, p.CreatedAt)

	p.Title = ""
	assert.ErrorIs(t, p.Validate(), ErrPlayTitleRequired)
}

func TestPlay_RelationIDs(t *testing.T) {
	p := NewPlay("ハムレット", "")
	assert.Empty(t, p.GenreIDs())
	assert.Empty(t, p.ActorIDs())

	p.Genres = []*genre.Genre{{ID: "g-1", Name: "悲劇"}}
	p.Actors = []*actor.Actor{{ID: "a-1"}, {ID: "a-2"}}
	assert.Equal(t, []string{"g-1"}, p.GenreIDs())
	assert.Equal(t, []string{"a-1", "a-2"}, p.ActorIDs())
}

func TestParseFilter(t *testing.T) {
	const (
		actor1 = "bbbbbbbb-0000-4000-8000-000000000001"
		actor2 = "bbbbbbbb-0000-4000-8000-000000000002"
		genre1 = "cccccccc-0000-4000-8000-000000000001"
	)

	t.Run("指定なし", func(t *testing.T) {
		f, err := ParseFilter("", "", "")
		require.NoError(t, err)
		assert.Equal(t, Filter{}, f)
	})

	t.Run("題名と俳優・ジャンルで絞り込む", func(t *testing.T) {
		f, err := ParseFilter(" ham ", actor1+", "+strings.ToUpper(actor2)+",,"+actor1, genre1)
		require.NoError(t, err)
		assert.Equal(t, "ham", f.Title)
		assert.Equal(t, []string{actor1, actor2}, f.ActorIDs)
		assert.Equal(t, []string{genre1}, f.GenreIDs)
	})

	t.Run("UUIDでない俳優IDは検証エラー", func(t *testing.T) {
		_, err := ParseFilter("", "1,2", "")
		assert.ErrorIs(t, err, ErrInvalidFilterID)
		assert.ErrorIs(t, err, apperr.ErrValidation)
		assert.Contains(t, err.Error(), "actors=1")
	})

	t.Run("UUIDでないジャンルIDは検証エラー", func(t *testing.T) {
		_, err := ParseFilter("", "", "drama")
		assert.ErrorIs(t, err, ErrInvalidFilterID)
		assert.Contains(t, err.Error(), "genres=drama")
	})
}
