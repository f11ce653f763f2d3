// Package postgres implements the bots repository on pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mdcommunity/mdbots-api/bots"
)

const botColumns = `
	bot_id, owner_id, username, avatar_url, banner_url, short_description,
	description, is_verified_bot, is_slash_commands, author_id, author_username,
	is_pending, is_promoted, total_votes, last_vote_at, created_at, updated_at`

type Repo struct {
	db *pgxpool.Pool
}

var _ bots.Repo = (*Repo)(nil)

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Get(ctx context.Context, botID string) (*bots.Bot, error) {
	query := `SELECT` + botColumns + ` FROM bots WHERE bot_id = $1`
	bot, err := scanBot(r.db.QueryRow(ctx, query, botID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, bots.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bot: %w", err)
	}
	return bot, nil
}

func (r *Repo) Create(ctx context.Context, bot *bots.Bot) error {
	query := `
		INSERT INTO bots (
			bot_id, owner_id, username, avatar_url, banner_url, short_description,
			description, is_verified_bot, is_slash_commands, author_id, author_username,
			is_pending, is_promoted, total_votes, last_vote_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		) RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		bot.BotID, bot.OwnerID, bot.Username, bot.AvatarURL, bot.BannerURL, bot.ShortDescription,
		bot.Description, bot.IsVerifiedBot, bot.IsSlashCommands, bot.AuthorID, bot.AuthorUsername,
		bot.IsPending, bot.IsPromoted, bot.TotalVotes, bot.LastVoteAt,
	).Scan(&bot.CreatedAt, &bot.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return bots.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create bot: %w", err)
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, botID string, upd bots.UpdateRequest) (*bots.Bot, error) {
	set, args := updateColumns(upd)
	if len(set) == 0 {
		return r.Get(ctx, botID)
	}
	set = append(set, "updated_at = now()")
	args = append(args, botID)

	query := fmt.Sprintf(
		`UPDATE bots SET %s WHERE bot_id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), botColumns,
	)
	bot, err := scanBot(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, bots.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update bot: %w", err)
	}
	return bot, nil
}

func (r *Repo) Delete(ctx context.Context, botID string) (*bots.Bot, error) {
	query := `DELETE FROM bots WHERE bot_id = $1 RETURNING` + botColumns
	bot, err := scanBot(r.db.QueryRow(ctx, query, botID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, bots.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete bot: %w", err)
	}
	return bot, nil
}

func (r *Repo) List(ctx context.Context, opts bots.ListOptions) ([]bots.Bot, error) {
	where, args := listFilters(opts)
	args = append(args, opts.Skip, opts.Take)
	query := fmt.Sprintf(
		`SELECT %s FROM bots %s ORDER BY created_at DESC OFFSET $%d LIMIT $%d`,
		botColumns, where, len(args)-1, len(args),
	)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bots: %w", err)
	}
	defer rows.Close()
	return collectBots(rows)
}

func (r *Repo) Count(ctx context.Context, opts bots.ListOptions) (int, error) {
	where, args := listFilters(opts)
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM bots `+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count bots: %w", err)
	}
	return total, nil
}

func (r *Repo) ListByOwner(ctx context.Context, ownerID string) ([]bots.Bot, error) {
	query := `SELECT` + botColumns + ` FROM bots WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bots by owner: %w", err)
	}
	defer rows.Close()
	return collectBots(rows)
}

func (r *Repo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM bots WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count bots by owner: %w", err)
	}
	return total, nil
}

func listFilters(opts bots.ListOptions) (string, []any) {
	clauses := []string{}
	args := []any{}
	if opts.IsPromoted != nil {
		args = append(args, *opts.IsPromoted)
		clauses = append(clauses, fmt.Sprintf("is_promoted = $%d", len(args)))
	}
	if opts.IsPending != nil {
		args = append(args, *opts.IsPending)
		clauses = append(clauses, fmt.Sprintf("is_pending = $%d", len(args)))
	}
	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func updateColumns(upd bots.UpdateRequest) ([]string, []any) {
	set := []string{}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.OwnerID != nil {
		add("owner_id", *upd.OwnerID)
	}
	if upd.Username != nil {
		add("username", *upd.Username)
	}
	if upd.ShortDescription != nil {
		add("short_description", *upd.ShortDescription)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.IsVerifiedBot != nil {
		add("is_verified_bot", *upd.IsVerifiedBot)
	}
	if upd.IsSlashCommands != nil {
		add("is_slash_commands", *upd.IsSlashCommands)
	}
	if upd.AuthorID != nil {
		add("author_id", *upd.AuthorID)
	}
	if upd.AuthorUsername != nil {
		add("author_username", *upd.AuthorUsername)
	}
	if upd.IsPending != nil {
		add("is_pending", *upd.IsPending)
	}
	if upd.IsPromoted != nil {
		add("is_promoted", *upd.IsPromoted)
	}
	if upd.TotalVotes != nil {
		add("total_votes", *upd.TotalVotes)
	}
	if upd.LastVoteAt != nil {
		add("last_vote_at", *upd.LastVoteAt)
	}
	return set, args
}

func scanBot(row pgx.Row) (*bots.Bot, error) {
	bot := &bots.Bot{}
	err := row.Scan(
		&bot.BotID, &bot.OwnerID, &bot.Username, &bot.AvatarURL, &bot.BannerURL, &bot.ShortDescription,
		&bot.Description, &bot.IsVerifiedBot, &bot.IsSlashCommands, &bot.AuthorID, &bot.AuthorUsername,
		&bot.IsPending, &bot.IsPromoted, &bot.TotalVotes, &bot.LastVoteAt, &bot.CreatedAt, &bot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return bot, nil
}

func collectBots(rows pgx.Rows) ([]bots.Bot, error) {
	list := []bots.Bot{}
	for rows.Next() {
		bot, err := scanBot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bot: %w", err)
		}
		list = append(list, *bot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bots: %w", err)
	}
	return list, nil
}
