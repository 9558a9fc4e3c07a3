package registry

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"tzbot/internal/domains/zone/model"
)

// Registry holds every guild's entries for the life of the process. One lock
// covers all guilds; writes are rare and reads are short.
//
// revision changes on every Add. It starts from the clock so values handed out
// by an earlier process are not repeated.
type Registry struct {
	mu       sync.RWMutex
	guilds   map[model.GuildID][]model.Entry
	revision uint64
}

// New builds a registry from a loaded snapshot. Records for the same guild are
// concatenated in snapshot order.
func New(snapshot model.Snapshot) *Registry {
	r := &Registry{
		guilds:   make(map[model.GuildID][]model.Entry, len(snapshot.Data)),
		revision: uint64(time.Now().UnixNano()), //nolint:gosec
	}

	for _, record := range snapshot.Data {
		r.guilds[record.GuildID] = append(r.guilds[record.GuildID], record.Entries...)
	}

	return r
}

// Get returns a copy of the guild's entries; an unknown guild has none.
func (r *Registry) Get(guildID model.GuildID) []model.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.guilds[guildID])
}

// Read returns the guild's entries together with the registry revision they
// were read at.
func (r *Registry) Read(guildID model.GuildID) ([]model.Entry, uint64) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.guilds[guildID]), r.revision
}

// Add appends an entry to the guild, creating it if needed. Duplicates are kept.
func (r *Registry) Add(guildID model.GuildID, person, timezone string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.guilds[guildID] = append(r.guilds[guildID], model.Entry{Person: person, Timezone: timezone})
	r.revision++
}

// Snapshot copies the full registry, guilds ordered by id. Guilds without
// entries are left out.
func (r *Registry) Snapshot() model.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data := make([]model.GuildRecord, 0, len(r.guilds))
	for guildID, entries := range r.guilds {
		if len(entries) == 0 {
			continue
		}

		data = append(data, model.GuildRecord{GuildID: guildID, Entries: slices.Clone(entries)})
	}

	slices.SortFunc(data, func(a, b model.GuildRecord) int {
		return cmp.Compare(a.GuildID, b.GuildID)
	})

	return model.Snapshot{Data: data}
}
