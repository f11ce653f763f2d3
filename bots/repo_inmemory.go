package bots

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryRepo is a map-backed Repo used in tests and local development.
type InMemoryRepo struct {
	mu   sync.RWMutex
	bots map[string]Bot
}

var _ Repo = (*InMemoryRepo)(nil)

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{bots: make(map[string]Bot)}
}

func (r *InMemoryRepo) Get(_ context.Context, botID string) (*Bot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bot, ok := r.bots[botID]
	if !ok {
		return nil, ErrNotFound
	}
	return &bot, nil
}

func (r *InMemoryRepo) Create(_ context.Context, bot *Bot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bots[bot.BotID]; ok {
		return ErrAlreadyExists
	}
	now := time.Now()
	bot.CreatedAt = now
	bot.UpdatedAt = now
	r.bots[bot.BotID] = *bot
	return nil
}

func (r *InMemoryRepo) Update(_ context.Context, botID string, upd UpdateRequest) (*Bot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bot, ok := r.bots[botID]
	if !ok {
		return nil, ErrNotFound
	}
	bot.Apply(upd)
	bot.UpdatedAt = time.Now()
	r.bots[botID] = bot
	return &bot, nil
}

func (r *InMemoryRepo) Delete(_ context.Context, botID string) (*Bot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bot, ok := r.bots[botID]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.bots, botID)
	return &bot, nil
}

func (r *InMemoryRepo) List(_ context.Context, opts ListOptions) ([]Bot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.filtered(opts)
	if opts.Skip >= len(matched) {
		return []Bot{}, nil
	}
	matched = matched[opts.Skip:]
	if opts.Take > 0 && opts.Take < len(matched) {
		matched = matched[:opts.Take]
	}
	return matched, nil
}

func (r *InMemoryRepo) Count(_ context.Context, opts ListOptions) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.filtered(opts)), nil
}

func (r *InMemoryRepo) ListByOwner(_ context.Context, ownerID string) ([]Bot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := []Bot{}
	for _, bot := range r.bots {
		if bot.OwnerID == ownerID {
			owned = append(owned, bot)
		}
	}
	sortByID(owned)
	return owned, nil
}

func (r *InMemoryRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	owned, err := r.ListByOwner(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	return len(owned), nil
}

func (r *InMemoryRepo) filtered(opts ListOptions) []Bot {
	matched := []Bot{}
	for _, bot := range r.bots {
		if opts.IsPromoted != nil && bot.IsPromoted != *opts.IsPromoted {
			continue
		}
		if opts.IsPending != nil && bot.IsPending != *opts.IsPending {
			continue
		}
		matched = append(matched, bot)
	}
	sortByID(matched)
	return matched
}

func sortByID(list []Bot) {
	sort.Slice(list, func(i, j int) bool { return list[i].BotID < list[j].BotID })
}
