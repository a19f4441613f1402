package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vchernov/physcat/internal/model"
)

func newObject(id string, x, y, z float64) *model.PhysicalObject {
	return model.NewPhysicalObject(id, "Object "+id, model.TypeSensor, model.NewLocation(x, y, z))
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := New()
	obj := newObject("a", 1, 2, 3)

	require.NoError(t, r.Register(obj))
	assert.Equal(t, 1, r.Len())
	assert.True(t, r.Contains("a"))

	got, ok := r.Get("a")
	require.True(t, ok)
	assert.Same(t, obj, got)

	// Unknown id yields an explicit not-found indicator, not a
	// default record.
	got, ok = r.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestRegistry_Remove(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(newObject("a", 0, 0, 0)))

	removed, err := r.Remove("a")
	require.NoError(t, err)
	assert.Equal(t, "a", removed.ID())
	assert.Equal(t, 0, r.Len())

	removed, err = r.Remove("a")
	require.NoError(t, err)
	assert.Nil(t, removed)
}

func TestRegistry_EventOrdering(t *testing.T) {
	r := New()

	var order []string
	r.AddHandler(ObjectCreated, func(ev Event) error {
		order = append(order, "h1:"+ev.Object.ID())
		return nil
	})
	r.AddHandler(ObjectCreated, func(ev Event) error {
		order = append(order, "h2:"+ev.Object.ID())
		return nil
	})

	require.NoError(t, r.Register(newObject("a", 0, 0, 0)))

	// Handlers fire synchronously, in registration order.
	assert.Equal(t, []string{"h1:a", "h2:a"}, order)
}

func TestRegistry_EventCarriesObject(t *testing.T) {
	r := New()

	var seen Event
	r.AddHandler(ObjectCreated, func(ev Event) error {
		seen = ev
		return nil
	})

	obj := newObject("a", 1, 2, 3)
	require.NoError(t, r.Register(obj))

	assert.Equal(t, ObjectCreated, seen.Type)
	assert.Same(t, obj, seen.Object)
}

func TestRegistry_HandlerErrorPropagates(t *testing.T) {
	r := New()
	boom := errors.New("boom")

	firstRan := false
	r.AddHandler(ObjectCreated, func(Event) error {
		firstRan = true
		return nil
	})
	r.AddHandler(ObjectCreated, func(Event) error {
		return boom
	})
	thirdRan := false
	r.AddHandler(ObjectCreated, func(Event) error {
		thirdRan = true
		return nil
	})

	err := r.Register(newObject("a", 0, 0, 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	// The failing handler aborts the rest of the chain; effects of
	// handlers already invoked stay in place, and so does the object.
	assert.True(t, firstRan)
	assert.False(t, thirdRan)
	assert.True(t, r.Contains("a"))
}

func TestRegistry_HandlersPerEventType(t *testing.T) {
	r := New()

	var events []string
	for _, et := range []EventType{ObjectCreated, ObjectRemoved, ObjectMoved} {
		et := et
		r.AddHandler(et, func(ev Event) error {
			events = append(events, et.String()+":"+ev.Object.ID())
			return nil
		})
	}

	obj := newObject("a", 0, 0, 0)
	require.NoError(t, r.Register(obj))
	require.NoError(t, r.NotifyMoved(obj))
	_, err := r.Remove("a")
	require.NoError(t, err)

	assert.Equal(t, []string{"created:a", "moved:a", "removed:a"}, events)
}

func TestRegistry_Objects(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(newObject("c", 0, 0, 0)))
	require.NoError(t, r.Register(newObject("a", 0, 0, 0)))
	require.NoError(t, r.Register(newObject("b", 0, 0, 0)))

	objs := r.Objects()
	require.Len(t, objs, 3)
	assert.Equal(t, "a", objs[0].ID())
	assert.Equal(t, "b", objs[1].ID())
	assert.Equal(t, "c", objs[2].ID())
}
