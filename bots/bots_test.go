package bots_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mdcommunity/mdbots-api/bots"
	"github.com/mdcommunity/mdbots-api/internal/httperror"
)

func TestCreateRequestValidate(t *testing.T) {
	valid := bots.CreateRequest{
		BotID:            "123456789",
		OwnerID:          "U1",
		ShortDescription: "A bot that does very useful things",
	}

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, valid.Validate())
	})

	t.Run("missing botId", func(t *testing.T) {
		req := valid
		req.BotID = ""
		err := req.Validate()
		require.Error(t, err)
		require.Equal(t, http.StatusBadRequest, httperror.From(err).StatusCode)
	})

	t.Run("short description too short", func(t *testing.T) {
		req := valid
		req.ShortDescription = "too short"
		require.Error(t, req.Validate())
	})

	t.Run("short description too long", func(t *testing.T) {
		req := valid
		for len(req.ShortDescription) <= 140 {
			req.ShortDescription += " padding"
		}
		require.Error(t, req.Validate())
	})
}

func TestUpdateRequestValidate(t *testing.T) {
	t.Run("empty update is valid", func(t *testing.T) {
		require.NoError(t, bots.UpdateRequest{}.Validate())
	})

	t.Run("short description bounds still apply", func(t *testing.T) {
		bad := "nope"
		require.Error(t, bots.UpdateRequest{ShortDescription: &bad}.Validate())
	})
}

func TestBotApply(t *testing.T) {
	promoted := true
	votes := 41
	when := time.Now()
	name := "renamed#0001"

	bot := bots.Bot{BotID: "B1", OwnerID: "U1", Username: "old#0001"}
	bot.Apply(bots.UpdateRequest{
		Username:   &name,
		IsPromoted: &promoted,
		TotalVotes: &votes,
		LastVoteAt: &when,
	})

	require.Equal(t, "renamed#0001", bot.Username)
	require.True(t, bot.IsPromoted)
	require.Equal(t, 41, bot.TotalVotes)
	require.Equal(t, &when, bot.LastVoteAt)
	require.Equal(t, "U1", bot.OwnerID)
}

func TestInMemoryRepo(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) *bots.InMemoryRepo {
		t.Helper()
		repo := bots.NewInMemoryRepo()
		for _, bot := range []bots.Bot{
			{BotID: "B1", OwnerID: "U1", IsPromoted: true},
			{BotID: "B2", OwnerID: "U1"},
			{BotID: "B3", OwnerID: "U2", IsPending: true},
		} {
			b := bot
			require.NoError(t, repo.Create(ctx, &b))
		}
		return repo
	}

	t.Run("create rejects duplicates", func(t *testing.T) {
		repo := seed(t)
		err := repo.Create(ctx, &bots.Bot{BotID: "B1"})
		require.ErrorIs(t, err, bots.ErrAlreadyExists)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := seed(t).Get(ctx, "nope")
		require.ErrorIs(t, err, bots.ErrNotFound)
	})

	t.Run("list with pagination", func(t *testing.T) {
		repo := seed(t)
		page, err := repo.List(ctx, bots.ListOptions{Skip: 1, Take: 1})
		require.NoError(t, err)
		require.Len(t, page, 1)
		require.Equal(t, "B2", page[0].BotID)

		total, err := repo.Count(ctx, bots.ListOptions{})
		require.NoError(t, err)
		require.Equal(t, 3, total)
	})

	t.Run("list with filters", func(t *testing.T) {
		promoted := true
		page, err := seed(t).List(ctx, bots.ListOptions{IsPromoted: &promoted, Take: 10})
		require.NoError(t, err)
		require.Len(t, page, 1)
		require.Equal(t, "B1", page[0].BotID)
	})

	t.Run("by owner", func(t *testing.T) {
		repo := seed(t)
		owned, err := repo.ListByOwner(ctx, "U1")
		require.NoError(t, err)
		require.Len(t, owned, 2)

		total, err := repo.CountByOwner(ctx, "U1")
		require.NoError(t, err)
		require.Equal(t, 2, total)
	})

	t.Run("update and delete", func(t *testing.T) {
		repo := seed(t)
		desc := "a perfectly valid description"
		updated, err := repo.Update(ctx, "B2", bots.UpdateRequest{ShortDescription: &desc})
		require.NoError(t, err)
		require.Equal(t, desc, updated.ShortDescription)

		deleted, err := repo.Delete(ctx, "B2")
		require.NoError(t, err)
		require.Equal(t, "B2", deleted.BotID)

		_, err = repo.Get(ctx, "B2")
		require.ErrorIs(t, err, bots.ErrNotFound)
	})
}
