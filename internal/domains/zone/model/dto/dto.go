package dto

import (
	"tzbot/internal/domains/zone/model"
)

type RegisterRequest struct {
	GuildID  model.GuildID `json:"-" validate:"gt=0"`
	Person   string        `json:"person" validate:"required,max=100"`
	Timezone string        `json:"timezone" validate:"required,timezone"`
}

// CreateEntryRequest is the HTTP body for registering an entry. The guild
// comes from the path.
type CreateEntryRequest struct {
	Person   string `json:"person" validate:"required,max=100"`
	Timezone string `json:"timezone" validate:"required"`
}

func (r CreateEntryRequest) ToRegisterRequest(guildID model.GuildID) RegisterRequest {
	return RegisterRequest{
		GuildID:  guildID,
		Person:   r.Person,
		Timezone: r.Timezone,
	}
}

type EntryResponse struct {
	Person   string `json:"person"`
	Timezone string `json:"timezone"`
}

type EntriesResponse struct {
	GuildID string          `json:"guild_id"`
	Entries []EntryResponse `json:"entries"`
}

func (r *EntriesResponse) FromModels(guildID model.GuildID, entries []model.Entry) {
	r.GuildID = guildID.String()
	r.Entries = make([]EntryResponse, len(entries))

	for i, entry := range entries {
		r.Entries[i] = EntryResponse{Person: entry.Person, Timezone: entry.Timezone}
	}
}

type ReportResponse struct {
	GuildID string   `json:"guild_id"`
	Report  string   `json:"report"`
	Errors  []string `json:"errors,omitempty"`
}
