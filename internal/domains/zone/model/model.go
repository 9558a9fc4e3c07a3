package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

const (
	EntityName = "zone"
)

var (
	ErrUnknownTimezone        = errors.New("unknown timezone")
	ErrPersonTooLong          = errors.New("person name too long")
	ErrUnresolvableTimezone   = errors.New("stored timezone can no longer be resolved")
	ErrPersistenceUnreadable  = errors.New("persisted zones unreadable")
	ErrPersistenceWriteFailed = errors.New("failed to persist zones")
)

// GuildID is a chat community snowflake. It is written as a JSON number and
// read back from either a number or a decimal string.
type GuildID uint64

func ParseGuildID(s string) (GuildID, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid guild id %q: %w", s, err)
	}

	return GuildID(id), nil
}

func (g GuildID) String() string {
	return strconv.FormatUint(uint64(g), 10)
}

func (g GuildID) MarshalJSON() ([]byte, error) {
	return strconv.AppendUint(nil, uint64(g), 10), nil
}

func (g *GuildID) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid guild id %s: %w", data, err)
	}

	*g = GuildID(id)

	return nil
}

// Entry is one registered person. On disk it is the pair [person, timezone].
type Entry struct {
	Person   string
	Timezone string
}

func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{e.Person, e.Timezone})
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("invalid entry %s: %w", data, err)
	}

	if len(pair) != 2 {
		return fmt.Errorf("invalid entry %s: expected [person, timezone]", data)
	}

	e.Person, e.Timezone = pair[0], pair[1]

	return nil
}

// GuildRecord is a guild and its entries in insertion order. On disk it is
// the pair [guildId, [entry, ...]].
type GuildRecord struct {
	GuildID GuildID
	Entries []Entry
}

func (r GuildRecord) MarshalJSON() ([]byte, error) {
	entries := r.Entries
	if entries == nil {
		entries = []Entry{}
	}

	return json.Marshal([2]any{r.GuildID, entries})
}

func (r *GuildRecord) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("invalid guild record: %w", err)
	}

	if len(pair) != 2 {
		return errors.New("invalid guild record: expected [guildId, entries]")
	}

	if err := json.Unmarshal(pair[0], &r.GuildID); err != nil {
		return err
	}

	r.Entries = nil
	if err := json.Unmarshal(pair[1], &r.Entries); err != nil {
		return fmt.Errorf("invalid entries for guild %s: %w", r.GuildID, err)
	}

	return nil
}

// Snapshot is the whole registry as persisted to disk.
type Snapshot struct {
	Data []GuildRecord `json:"data"`
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	data := s.Data
	if data == nil {
		data = []GuildRecord{}
	}

	return json.Marshal(struct {
		Data []GuildRecord `json:"data"`
	}{Data: data})
}
