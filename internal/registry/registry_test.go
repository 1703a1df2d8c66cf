package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxtixador/scrapernhl/internal/config"
	"github.com/maxtixador/scrapernhl/pkg/models"
)

func TestNewRegistersAllLeagues(t *testing.T) {
	reg := New(config.Feeds())

	leagues := reg.Leagues()
	assert.Equal(t, []models.League{
		models.LeagueAHL,
		models.LeagueOHL,
		models.LeaguePWHL,
		models.LeagueQMJHL,
		models.LeagueWHL,
	}, leagues)
}

func TestModuleFamilyMatchesFeedType(t *testing.T) {
	reg := New(config.Feeds())

	for league, feed := range config.Feeds() {
		module, err := reg.Module(league)
		require.NoError(t, err)
		assert.Equal(t, league, module.Key())
		assert.Equal(t, feed.Type, module.Feed().Type)
		assert.NotEmpty(t, module.DisplayName())
	}

	_, err := reg.Module(models.League("NHL"))
	assert.Error(t, err)
}
