// Package bots holds the bot-record domain model, its request validation,
// and the repository contract the HTTP layer depends on.
package bots

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mdcommunity/mdbots-api/internal/httperror"
)

// Bot is a listed bot record. Only the owner (ownerId matching the
// session subject) may update or delete it.
type Bot struct {
	BotID            string     `json:"botId"`
	OwnerID          string     `json:"ownerId"`
	Username         string     `json:"username"`
	AvatarURL        string     `json:"avatarUrl"`
	BannerURL        string     `json:"bannerUrl"`
	ShortDescription string     `json:"shortDescription"`
	Description      string     `json:"description,omitempty"`
	IsVerifiedBot    bool       `json:"isVerifiedBot"`
	IsSlashCommands  bool       `json:"isSlashCommands"`
	AuthorID         string     `json:"authorId"`
	AuthorUsername   string     `json:"authorUsername"`
	IsPending        bool       `json:"isPending"`
	IsPromoted       bool       `json:"isPromoted"`
	TotalVotes       int        `json:"totalVotes"`
	LastVoteAt       *time.Time `json:"lastVoteAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// CreateRequest is the accepted creation payload. Username and asset URLs
// are not part of it: they are fetched from the provider at creation time.
type CreateRequest struct {
	BotID            string `json:"botId" validate:"required"`
	OwnerID          string `json:"ownerId" validate:"required"`
	ShortDescription string `json:"shortDescription" validate:"required,min=10,max=140"`
	Description      string `json:"description"`
	IsSlashCommands  bool   `json:"isSlashCommands"`
}

// UpdateRequest is a partial update; nil fields are left untouched.
type UpdateRequest struct {
	OwnerID          *string    `json:"ownerId"`
	Username         *string    `json:"username"`
	ShortDescription *string    `json:"shortDescription" validate:"omitempty,min=10,max=140"`
	Description      *string    `json:"description"`
	IsVerifiedBot    *bool      `json:"isVerifiedBot"`
	IsSlashCommands  *bool      `json:"isSlashCommands"`
	AuthorID         *string    `json:"authorId"`
	AuthorUsername   *string    `json:"authorUsername"`
	IsPending        *bool      `json:"isPending"`
	IsPromoted       *bool      `json:"isPromoted"`
	TotalVotes       *int       `json:"totalVotes"`
	LastVoteAt       *time.Time `json:"lastVoteAt"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (r CreateRequest) Validate() error {
	return validationError(validate.Struct(r))
}

func (r UpdateRequest) Validate() error {
	return validationError(validate.Struct(r))
}

// validationError maps the first failed rule to a BadRequest the way the
// API reports every malformed payload.
func validationError(err error) error {
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return httperror.BadRequest(fmt.Sprintf("%s failed validation on the '%s' rule", fe.Field(), fe.Tag()))
	}
	return httperror.BadRequest("invalid payload")
}

// Apply copies the non-nil update fields onto the record.
func (b *Bot) Apply(upd UpdateRequest) {
	if upd.OwnerID != nil {
		b.OwnerID = *upd.OwnerID
	}
	if upd.Username != nil {
		b.Username = *upd.Username
	}
	if upd.ShortDescription != nil {
		b.ShortDescription = *upd.ShortDescription
	}
	if upd.Description != nil {
		b.Description = *upd.Description
	}
	if upd.IsVerifiedBot != nil {
		b.IsVerifiedBot = *upd.IsVerifiedBot
	}
	if upd.IsSlashCommands != nil {
		b.IsSlashCommands = *upd.IsSlashCommands
	}
	if upd.AuthorID != nil {
		b.AuthorID = *upd.AuthorID
	}
	if upd.AuthorUsername != nil {
		b.AuthorUsername = *upd.AuthorUsername
	}
	if upd.IsPending != nil {
		b.IsPending = *upd.IsPending
	}
	if upd.IsPromoted != nil {
		b.IsPromoted = *upd.IsPromoted
	}
	if upd.TotalVotes != nil {
		b.TotalVotes = *upd.TotalVotes
	}
	if upd.LastVoteAt != nil {
		b.LastVoteAt = upd.LastVoteAt
	}
}
