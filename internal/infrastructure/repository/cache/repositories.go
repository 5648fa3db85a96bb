package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/manager"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/player"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/schedule"
	basecache "github.com/kastanis/unrivaled-league-snapbacks-3s/internal/platform/cache"
)

// The decorators wrap the reference data repositories: managers, the player
// pool and the schedule are read on almost every request and change rarely.
// Lineups, stats and scores stay uncached; they are the write path.

type ManagerRepository struct {
	next  manager.Repository
	cache *basecache.Store
}

func NewManagerRepository(next manager.Repository, cache *basecache.Store) *ManagerRepository {
	return &ManagerRepository{next: next, cache: cache}
}

func (r *ManagerRepository) List(ctx context.Context) ([]manager.Manager, error) {
	v, err := r.cache.GetOrLoad(ctx, "manager:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]manager.Manager(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]manager.Manager)
	return append([]manager.Manager(nil), items...), nil
}

func (r *ManagerRepository) GetByID(ctx context.Context, managerID string) (manager.Manager, bool, error) {
	key := "manager:id:" + managerID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, managerID)
		if err != nil {
			return nil, err
		}
		return cachedManagerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return manager.Manager{}, false, err
	}

	cached, _ := v.(cachedManagerByID)
	return cached.value, cached.exists, nil
}

type cachedManagerByID struct {
	value  manager.Manager
	exists bool
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	key := "player:id:" + playerID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	ids := append([]string(nil), playerIDs...)
	sort.Strings(ids)
	key := "player:ids:" + strings.Join(ids, ",")
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.GetByIDs(ctx, playerIDs)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

type ScheduleRepository struct {
	next  schedule.Repository
	cache *basecache.Store
}

func NewScheduleRepository(next schedule.Repository, cache *basecache.Store) *ScheduleRepository {
	return &ScheduleRepository{next: next, cache: cache}
}

func (r *ScheduleRepository) List(ctx context.Context) ([]schedule.Game, error) {
	v, err := r.cache.GetOrLoad(ctx, "schedule:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]schedule.Game(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]schedule.Game)
	return append([]schedule.Game(nil), items...), nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, gameID string) (schedule.Game, bool, error) {
	key := "schedule:id:" + gameID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, gameID)
		if err != nil {
			return nil, err
		}
		return cachedGameByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return schedule.Game{}, false, err
	}

	cached, _ := v.(cachedGameByID)
	return cached.value, cached.exists, nil
}

func (r *ScheduleRepository) ListByDate(ctx context.Context, date string) ([]schedule.Game, error) {
	key := "schedule:date:" + date
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByDate(ctx, date)
		if err != nil {
			return nil, err
		}
		return append([]schedule.Game(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]schedule.Game)
	return append([]schedule.Game(nil), items...), nil
}

func (r *ScheduleRepository) ListDates(ctx context.Context) ([]string, error) {
	v, err := r.cache.GetOrLoad(ctx, "schedule:dates", func(ctx context.Context) (any, error) {
		items, err := r.next.ListDates(ctx)
		if err != nil {
			return nil, err
		}
		return append([]string(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]string)
	return append([]string(nil), items...), nil
}

// UpsertMany drops every schedule key after a feed refresh lands.
func (r *ScheduleRepository) UpsertMany(ctx context.Context, games []schedule.Game) error {
	if err := r.next.UpsertMany(ctx, games); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "schedule:")
	return nil
}

type cachedGameByID struct {
	value  schedule.Game
	exists bool
}
