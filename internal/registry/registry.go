package registry

import (
	"fmt"
	"sort"

	"github.com/maxtixador/scrapernhl/internal/leagues/gamecenter"
	"github.com/maxtixador/scrapernhl/internal/leagues/statview"
	"github.com/maxtixador/scrapernhl/pkg/contracts"
	"github.com/maxtixador/scrapernhl/pkg/models"
)

// Registry manages the available league modules.
type Registry struct {
	modules map[models.League]contracts.LeagueModule
}

// New creates a registry with one module per configured league feed,
// choosing the adapter family from the feed type.
func New(feeds map[models.League]contracts.FeedConfig) *Registry {
	r := &Registry{
		modules: make(map[models.League]contracts.LeagueModule),
	}
	for league, feed := range feeds {
		switch feed.Type {
		case contracts.FeedStatview:
			r.Register(statview.New(league, displayNames[league], feed))
		default:
			r.Register(gamecenter.New(league, displayNames[league], feed))
		}
	}
	return r
}

var displayNames = map[models.League]string{
	models.LeagueQMJHL: "Quebec Maritimes Junior Hockey League",
	models.LeagueOHL:   "Ontario Hockey League",
	models.LeagueWHL:   "Western Hockey League",
	models.LeagueAHL:   "American Hockey League",
	models.LeaguePWHL:  "Professional Women's Hockey League",
}

// Register adds a league module to the registry.
func (r *Registry) Register(module contracts.LeagueModule) {
	r.modules[module.Key()] = module
}

// Module retrieves a league module by key.
func (r *Registry) Module(league models.League) (contracts.LeagueModule, error) {
	module, ok := r.modules[league]
	if !ok {
		return nil, fmt.Errorf("league module not found: %s", league)
	}
	return module, nil
}

// Leagues returns all registered league keys in stable order.
func (r *Registry) Leagues() []models.League {
	keys := make([]models.League, 0, len(r.modules))
	for key := range r.modules {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
