package adminview

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaiiae/hackathon-signup/datastores"
)

func seed(t *testing.T) (*datastores.RegistrationsInmem, []*datastores.Registration) {
	t.Helper()
	s := datastores.NewRegistrationsInmem(
		&datastores.Registration{Name: "Ana Silva", Email: "ana@x.com", Interest: datastores.InterestTourism,
			Timestamp: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)},
		&datastores.Registration{Name: "Bruno", Email: "bruno@x.com"},
	)
	rs, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	return s, rs
}

func TestEditor_SaveChangesOnlyEditedField(t *testing.T) {
	ctx := context.Background()
	store, rs := seed(t)
	e := &Editor{Store: store}

	require.NoError(t, e.Begin(ctx, rs[0].ID))
	id, editing := e.Editing()
	require.True(t, editing)
	assert.Equal(t, rs[0].ID, id)

	require.NoError(t, e.Edit(func(d *datastores.Registration) { d.Email = "new@x.com" }))
	saved, err := e.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", saved.Email)

	_, editing = e.Editing()
	assert.False(t, editing)

	after, err := store.LoadAll(ctx)
	require.NoError(t, err)
	want := *rs[0]
	want.Email = "new@x.com"
	assert.Equal(t, &want, after[0])
	assert.Equal(t, rs[1], after[1])
}

func TestEditor_CancelLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	store, rs := seed(t)
	e := &Editor{Store: store}

	require.NoError(t, e.Begin(ctx, rs[1].ID))
	require.NoError(t, e.Edit(func(d *datastores.Registration) { d.Name = "changed" }))
	e.Cancel()

	_, err := e.Save(ctx)
	require.ErrorIs(t, err, ErrNotEditing)

	after, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, rs, after)
}

func TestEditor_OneRowAtATime(t *testing.T) {
	ctx := context.Background()
	store, rs := seed(t)
	e := &Editor{Store: store}

	require.NoError(t, e.Begin(ctx, rs[0].ID))
	require.NoError(t, e.Edit(func(d *datastores.Registration) { d.Name = "draft of first" }))
	require.NoError(t, e.Begin(ctx, rs[1].ID))

	id, _ := e.Editing()
	assert.Equal(t, rs[1].ID, id)
	_, err := e.Save(ctx)
	require.NoError(t, err)

	after, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana Silva", after[0].Name, "first draft was discarded")
}

func TestEditor_EditKeepsID(t *testing.T) {
	ctx := context.Background()
	store, rs := seed(t)
	e := &Editor{Store: store}

	require.ErrorIs(t, e.Edit(func(*datastores.Registration) {}), ErrNotEditing)
	require.NoError(t, e.Begin(ctx, rs[0].ID))
	require.NoError(t, e.Edit(func(d *datastores.Registration) { d.ID = datastores.RegistrationID{} }))
	saved, err := e.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, rs[0].ID, saved.ID)
}

func TestSummarize(t *testing.T) {
	all := []*datastores.Registration{
		{Interest: datastores.InterestTourism},
		{Interest: datastores.InterestTourism},
		{},
	}
	s := Summarize(all, all[:1], 0)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Filtered)
	assert.Equal(t, DefaultCapacity, s.Capacity)
	assert.Equal(t, 4, s.OccupancyPercent)
	assert.Equal(t, 2, s.ByInterest[datastores.InterestTourism])
	assert.Equal(t, 1, s.ByInterest[datastores.InterestNone])
}
