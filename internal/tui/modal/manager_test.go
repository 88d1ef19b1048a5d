package modal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Get_memoizesByKey(t *testing.T) {
	sched := newTestScheduler()
	m := NewManager(sched)

	constructions := 0
	factory := func() Surface {
		constructions++
		return New("settings", Config{}, sched)
	}

	first := m.Get("settings", factory)
	second := m.Get("settings", factory)

	assert.Same(t, first, second, "same key yields reference-equal modals")
	assert.Equal(t, 1, constructions)
}

func TestManager_Keys_sorted(t *testing.T) {
	sched := newTestScheduler()
	m := NewManager(sched)

	for _, key := range []string{"zeta", "alpha", "mid"} {
		k := key
		m.Get(k, func() Surface { return New(k, Config{}, sched) })
	}

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, m.Keys())
}

func TestManager_Visible_ordersByPriorityThenKey(t *testing.T) {
	sched := newTestScheduler()
	m := NewManager(sched)

	mk := func(key string, p Priority) Surface {
		return m.Get(key, func() Surface { return New(key, Config{Priority: p}, sched) })
	}

	low := mk("b-low", PriorityLow)
	high := mk("a-high", PriorityHigh)
	normal := mk("c-normal", PriorityNormal)

	for _, s := range []Surface{low, high, normal} {
		s.(*Modal).Show()
	}

	visible := m.Visible()
	require.Len(t, visible, 3)
	assert.Same(t, low, visible[0])
	assert.Same(t, normal, visible[1])
	assert.Same(t, high, visible[2])

	assert.Same(t, high, m.Top())
}

func TestManager_Top_nilWhenNothingVisible(t *testing.T) {
	sched := newTestScheduler()
	m := NewManager(sched)
	m.Get("hidden", func() Surface { return New("hidden", Config{}, sched) })

	assert.Nil(t, m.Top())
	assert.False(t, m.AnyVisible())
	assert.False(t, m.AttemptCloseTop())
}

func TestManager_AttemptCloseTop_closesOnlyTopmost(t *testing.T) {
	sched := newTestScheduler()
	m := NewManager(sched)

	bottom := m.Get("bottom", func() Surface {
		return New("bottom", Config{Priority: PriorityLow}, sched)
	}).(*Modal)
	top := m.Get("top", func() Surface {
		return New("top", Config{Priority: PriorityHigh}, sched)
	}).(*Modal)

	bottom.Show()
	top.Show()

	assert.True(t, m.AttemptCloseTop())
	assert.False(t, top.Visible())
	assert.True(t, bottom.Visible())
}

func TestManager_Overlay_passthroughWithoutModals(t *testing.T) {
	m := NewManager(newTestScheduler())
	assert.Equal(t, "background", m.Overlay("background", 80, 24))
}

func TestManager_Overlay_containsModalContent(t *testing.T) {
	sched := newTestScheduler()
	m := NewManager(sched)

	modal := m.Get("hello", func() Surface {
		return New("hello", Config{
			Title:    "Hello",
			Template: func(_, _ int) string { return "modal-body" },
		}, sched)
	}).(*Modal)
	modal.Show()

	out := m.Overlay("background", 80, 24)
	assert.Contains(t, out, "modal-body")
}
