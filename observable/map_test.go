package observable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosmorg/gosmorg/observable"
	"github.com/gosmorg/gosmorg/testutil/logspy"
)

func Test_Map_EveryMutationNotifiesWithItsKind(t *testing.T) {
	tests := []struct {
		name   string
		kind   observable.MapModification
		mutate func(t *testing.T, m *observable.Map[string, int])
		expect map[string]int
	}{
		{
			name:   "set",
			kind:   observable.MapUpdated,
			mutate: func(t *testing.T, m *observable.Map[string, int]) { m.Set("c", 3) },
			expect: map[string]int{"a": 1, "b": 2, "c": 3},
		},
		{
			name:   "set_overwrites",
			kind:   observable.MapUpdated,
			mutate: func(t *testing.T, m *observable.Map[string, int]) { m.Set("a", 9) },
			expect: map[string]int{"a": 9, "b": 2},
		},
		{
			name: "delete",
			kind: observable.MapRemove,
			mutate: func(t *testing.T, m *observable.Map[string, int]) {
				require.NoError(t, m.Delete("a"))
			},
			expect: map[string]int{"b": 2},
		},
		{
			name:   "merge",
			kind:   observable.MapExtend,
			mutate: func(t *testing.T, m *observable.Map[string, int]) { m.Merge(map[string]int{"b": 9, "c": 3}) },
			expect: map[string]int{"a": 1, "b": 9, "c": 3},
		},
		{
			name: "pop_present",
			kind: observable.MapRemove,
			mutate: func(t *testing.T, m *observable.Map[string, int]) {
				assert.Equal(t, 1, m.Pop("a", -1))
			},
			expect: map[string]int{"b": 2},
		},
		{
			name: "pop_absent_returns_fallback_and_still_notifies",
			kind: observable.MapRemove,
			mutate: func(t *testing.T, m *observable.Map[string, int]) {
				assert.Equal(t, -1, m.Pop("missing", -1))
			},
			expect: map[string]int{"a": 1, "b": 2},
		},
		{
			name:   "clear",
			kind:   observable.MapClear,
			mutate: func(t *testing.T, m *observable.Map[string, int]) { m.Clear() },
			expect: map[string]int{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := observable.NewMap(observable.WithEntries(map[string]int{"a": 1, "b": 2}))
			require.NoError(t, err)

			allCalls := 0
			kindCalls := 0
			otherCalls := 0

			_, err = m.AddObserver(observable.OnChange(func() { allCalls++ }))
			require.NoError(t, err)
			_, err = m.AddObserverFor(tc.kind, observable.OnChange(func() { kindCalls++ }))
			require.NoError(t, err)

			for _, other := range []observable.MapModification{
				observable.MapUpdated, observable.MapExtend, observable.MapRemove, observable.MapClear,
			} {
				if other == tc.kind {
					continue
				}
				_, err = m.AddObserverFor(other, observable.OnChange(func() { otherCalls++ }))
				require.NoError(t, err)
			}

			tc.mutate(t, m)

			assert.Equal(t, 1, allCalls, "ALL observer should see exactly one notification")
			assert.Equal(t, 1, kindCalls, "kind observer should see exactly one notification")
			assert.Zero(t, otherCalls, "no other kind may be notified")
			assert.Equal(t, tc.expect, m.Entries())
		})
	}
}

func Test_Map_SetPopAnyScenario(t *testing.T) {
	m, err := observable.NewMap[string, int]()
	require.NoError(t, err)

	updatedCalls := 0
	removeCalls := 0

	_, err = m.AddObserverFor(observable.MapUpdated, observable.OnChange(func() { updatedCalls++ }))
	require.NoError(t, err)
	_, err = m.AddObserverFor(observable.MapRemove, observable.OnChange(func() { removeCalls++ }))
	require.NoError(t, err)

	m.Set("a", 1)
	assert.Equal(t, 1, updatedCalls)

	key, value, err := m.PopAny()
	require.NoError(t, err)
	assert.Equal(t, "a", key)
	assert.Equal(t, 1, value)
	assert.Equal(t, 1, removeCalls)
	assert.Zero(t, m.Len())

	_, _, err = m.PopAny()
	assert.ErrorIs(t, err, observable.ErrEmptyContainer)
	assert.Equal(t, 1, removeCalls, "failed PopAny must not notify")
}

func Test_Map_DeleteAbsentKeyDoesNotMutateOrNotify(t *testing.T) {
	m, err := observable.NewMap(observable.WithEntries(map[string]int{"a": 1}))
	require.NoError(t, err)

	calls := 0
	_, err = m.AddObserver(observable.OnChange(func() { calls++ }))
	require.NoError(t, err)

	assert.ErrorIs(t, m.Delete("missing"), observable.ErrKeyNotFound)
	assert.Zero(t, calls)
	assert.Equal(t, map[string]int{"a": 1}, m.Entries())
}

func Test_Map_RemovedObserverStopsReceivingNotifications(t *testing.T) {
	m, err := observable.NewMap[string, int]()
	require.NoError(t, err)

	removedCalls := 0
	keptCalls := 0

	sub, err := m.AddObserver(observable.OnChange(func() { removedCalls++ }))
	require.NoError(t, err)
	_, err = m.AddObserver(observable.OnChange(func() { keptCalls++ }))
	require.NoError(t, err)

	m.Set("a", 1)
	m.RemoveObserver(sub)
	m.Set("b", 2)

	assert.Equal(t, 1, removedCalls)
	assert.Equal(t, 2, keptCalls)
}

func Test_Map_RemoveUnknownSubscriptionLogsWarning(t *testing.T) {
	spy := logspy.New()

	m, err := observable.NewMap(observable.WithMapLogger[string, int](spy))
	require.NoError(t, err)

	sub, err := m.AddObserver(observable.OnChange(func() {}))
	require.NoError(t, err)

	m.RemoveObserver(sub)
	require.Empty(t, spy.RecordsAtLevel("warn"))

	m.RemoveObserver(sub)

	warnings := spy.RecordsAtLevel("warn")
	require.Len(t, warnings, 1)
	assert.Equal(t, "observer not found for removal", warnings[0].Message)
}

func Test_Map_Reads(t *testing.T) {
	m, err := observable.NewMap(observable.WithEntries(map[string]int{"a": 1, "b": 2}))
	require.NoError(t, err)

	assert.Equal(t, 2, m.Len())

	value, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, value)

	_, ok = m.Get("missing")
	assert.False(t, ok)

	assert.ElementsMatch(t, []string{"a", "b"}, m.Keys())

	entries := m.Entries()
	entries["a"] = 99
	value, _ = m.Get("a")
	assert.Equal(t, 1, value, "Entries must return a copy")
}

func Test_Map_MarshalJSON(t *testing.T) {
	m, err := observable.NewMap(observable.WithEntries(map[string]int{"a": 1}))
	require.NoError(t, err)

	data, err := m.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(data))

	empty, err := observable.NewMap[string, int]()
	require.NoError(t, err)

	data, err = empty.SnapshotJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}
