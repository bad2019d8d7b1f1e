package dashboard_test

import (
	"errors"
	"fmt"
	"testing"

	"shopadmin/internal/dashboard"
	"shopadmin/internal/media"
	"shopadmin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func files(names ...string) []media.File {
	out := make([]media.File, len(names))
	for i, n := range names {
		out[i] = media.File{Name: n, Size: 1, Data: []byte("x")}
	}
	return out
}

func TestImageSelection_RejectsFifthImage(t *testing.T) {
	sel := &dashboard.ImageSelection{}
	require.NoError(t, sel.Stage(files("1.jpg", "2.jpg", "3.jpg", "4.jpg")...))
	before := sel.Staged()

	err := sel.Stage(files("5.jpg")...)
	assert.ErrorIs(t, err, dashboard.ErrTooManyImages)
	assert.Equal(t, 4, sel.Len())
	assert.Equal(t, before, sel.Staged())
}

func TestImageSelection_BatchOverLimitIsRejectedWhole(t *testing.T) {
	sel := &dashboard.ImageSelection{}
	require.NoError(t, sel.Stage(files("1.jpg", "2.jpg")...))

	assert.ErrorIs(t, sel.Stage(files("3.jpg", "4.jpg", "5.jpg")...), dashboard.ErrTooManyImages)
	assert.Equal(t, 2, sel.Len())
}

func TestImageSelection_RemoveAndReset(t *testing.T) {
	sel := &dashboard.ImageSelection{}
	require.NoError(t, sel.Stage(files("a.jpg", "b.jpg", "c.jpg")...))
	staged := sel.Staged()

	ids := map[string]bool{}
	for _, s := range staged {
		assert.NotEmpty(t, s.PreviewID)
		ids[s.PreviewID] = true
	}
	assert.Len(t, ids, 3)

	require.NoError(t, sel.Remove(1))
	assert.Equal(t, []string{"a.jpg", "c.jpg"}, []string{sel.Files()[0].Name, sel.Files()[1].Name})
	assert.Equal(t, []string{staged[1].PreviewID}, sel.Revoked())

	assert.Error(t, sel.Remove(5))

	sel.Reset()
	assert.Zero(t, sel.Len())
	assert.ElementsMatch(t, []string{staged[0].PreviewID, staged[1].PreviewID, staged[2].PreviewID}, sel.Revoked())

	// Room for four again after a reset.
	assert.NoError(t, sel.Stage(files("1", "2", "3", "4")...))
}

func TestModal_Lifecycle(t *testing.T) {
	m := dashboard.NewModal()
	assert.Equal(t, dashboard.StateClosed, m.State)

	require.NoError(t, m.Open(dashboard.ActionCreate))
	assert.ErrorIs(t, m.Open(dashboard.ActionUpdate), dashboard.ErrInvalidTransition)
	assert.ErrorIs(t, m.Succeed(), dashboard.ErrInvalidTransition)

	require.NoError(t, m.Submit())
	require.NoError(t, m.Fail(errors.New("price is required")))
	assert.Equal(t, dashboard.StateFailed, m.State)
	assert.Equal(t, "price is required", m.Err)

	// Retry after a failure.
	require.NoError(t, m.Submit())
	assert.Empty(t, m.Err)
	require.NoError(t, m.Succeed())
	assert.Equal(t, dashboard.StateSucceeded, m.State)
	assert.ErrorIs(t, m.Submit(), dashboard.ErrInvalidTransition)

	m.Close()
	assert.Equal(t, dashboard.StateClosed, m.State)
	assert.Empty(t, m.Action)
}

func TestOpenModal(t *testing.T) {
	m := dashboard.OpenModal(dashboard.ActionUpdate)
	assert.Equal(t, dashboard.StateOpen, m.State)
	assert.Equal(t, dashboard.ActionUpdate, m.Action)
	assert.NoError(t, m.Submit())
	assert.ErrorIs(t, m.Open(dashboard.ActionCreate), dashboard.ErrInvalidTransition)
}

func TestModal_ViewHasNothingToSubmit(t *testing.T) {
	m := dashboard.NewModal()
	require.NoError(t, m.Open(dashboard.ActionView))
	assert.ErrorIs(t, m.Submit(), dashboard.ErrInvalidTransition)

	m.Close()
	require.NoError(t, m.Open(dashboard.ActionDelete))
	assert.NoError(t, m.Submit())
}

func TestListView_Resolve(t *testing.T) {
	list := dashboard.NewListView()
	assert.Equal(t, dashboard.ListLoading, list.State)

	failed := list.Resolve(nil, fmt.Errorf("connection refused"))
	assert.Equal(t, dashboard.ListError, failed.State)
	assert.Equal(t, "connection refused", failed.Err)

	assert.Equal(t, dashboard.ListEmpty, list.Resolve(nil, nil).State)

	ready := list.Resolve([]models.Product{{ID: "1"}}, nil)
	assert.Equal(t, dashboard.ListReady, ready.State)
	assert.Len(t, ready.Products, 1)
}
