package registry_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tzbot/internal/domains/zone/model"
	"tzbot/internal/domains/zone/registry"
)

const guild model.GuildID = 123456789012345678

func TestRegistry_GetUnknownGuild(t *testing.T) {
	reg := registry.New(model.Snapshot{})

	assert.Empty(t, reg.Get(guild))
}

func TestRegistry_AddKeepsDuplicatesInOrder(t *testing.T) {
	reg := registry.New(model.Snapshot{})

	reg.Add(guild, "Alice", "US/Eastern")
	reg.Add(guild, "Bob", "Europe/London")
	reg.Add(guild, "Alice", "US/Eastern")

	assert.Equal(t, []model.Entry{
		{Person: "Alice", Timezone: "US/Eastern"},
		{Person: "Bob", Timezone: "Europe/London"},
		{Person: "Alice", Timezone: "US/Eastern"},
	}, reg.Get(guild))
	assert.Empty(t, reg.Get(guild+1))
}

func TestRegistry_GetReturnsCopy(t *testing.T) {
	reg := registry.New(model.Snapshot{})
	reg.Add(guild, "Alice", "US/Eastern")

	entries := reg.Get(guild)
	entries[0].Person = "Mallory"

	assert.Equal(t, "Alice", reg.Get(guild)[0].Person)
}

func TestRegistry_NewConcatenatesDuplicateGuildRecords(t *testing.T) {
	reg := registry.New(model.Snapshot{Data: []model.GuildRecord{
		{GuildID: 2, Entries: []model.Entry{{Person: "Bob", Timezone: "Europe/London"}}},
		{GuildID: 1, Entries: []model.Entry{{Person: "Alice", Timezone: "US/Eastern"}}},
		{GuildID: 2, Entries: []model.Entry{{Person: "Carol", Timezone: "Asia/Tokyo"}}},
		{GuildID: 3},
	}})

	assert.Equal(t, []model.Entry{
		{Person: "Bob", Timezone: "Europe/London"},
		{Person: "Carol", Timezone: "Asia/Tokyo"},
	}, reg.Get(2))
	assert.Empty(t, reg.Get(3))

	snapshot := reg.Snapshot()
	require.Len(t, snapshot.Data, 2)
	assert.Equal(t, model.GuildID(1), snapshot.Data[0].GuildID)
	assert.Equal(t, model.GuildID(2), snapshot.Data[1].GuildID)
}

func TestRegistry_ReadRevision(t *testing.T) {
	reg := registry.New(model.Snapshot{})

	entries, before := reg.Read(guild)
	assert.Empty(t, entries)

	_, same := reg.Read(guild)
	assert.Equal(t, before, same)

	reg.Add(guild, "Alice", "US/Eastern")

	entries, after := reg.Read(guild)
	assert.Len(t, entries, 1)
	assert.NotEqual(t, before, after)

	reg.Add(guild+1, "Bob", "Europe/London")

	_, other := reg.Read(guild)
	assert.NotEqual(t, after, other)
}

func TestRegistry_SnapshotIsDetached(t *testing.T) {
	reg := registry.New(model.Snapshot{})
	reg.Add(guild, "Alice", "US/Eastern")

	snapshot := reg.Snapshot()
	reg.Add(guild, "Bob", "Europe/London")

	require.Len(t, snapshot.Data, 1)
	assert.Len(t, snapshot.Data[0].Entries, 1)
	assert.Len(t, reg.Get(guild), 2)
}

func TestRegistry_ConcurrentAdd(t *testing.T) {
	reg := registry.New(model.Snapshot{})

	const writers = 50

	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			reg.Add(guild, fmt.Sprintf("person-%d", i), "UTC")
			_ = reg.Get(guild)
			_ = reg.Snapshot()
		}()
	}

	wg.Wait()

	entries := reg.Get(guild)
	require.Len(t, entries, writers)

	seen := make(map[string]bool, writers)
	for _, entry := range entries {
		seen[entry.Person] = true
	}
	assert.Len(t, seen, writers)
}
