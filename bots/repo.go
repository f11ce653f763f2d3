package bots

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("bot not found")
	ErrAlreadyExists = errors.New("bot already exists")
)

// ListOptions carries pagination and the optional listing filters.
type ListOptions struct {
	Skip       int
	Take       int
	IsPromoted *bool
	IsPending  *bool
}

type Repo interface {
	Get(ctx context.Context, botID string) (*Bot, error)
	Create(ctx context.Context, bot *Bot) error
	Update(ctx context.Context, botID string, upd UpdateRequest) (*Bot, error)
	Delete(ctx context.Context, botID string) (*Bot, error)
	List(ctx context.Context, opts ListOptions) ([]Bot, error)
	Count(ctx context.Context, opts ListOptions) (int, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Bot, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}
