// go-cardlog
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-cardlog.
//
// go-cardlog is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-cardlog is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-cardlog; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package cardlog_test

import (
	"testing"

	"github.com/ZaparooProject/go-cardlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func testUIDs(n int) []cardlog.UID {
	uids := make([]cardlog.UID, n)
	for i := range uids {
		uids[i] = cardlog.MustUID(0xA0, byte(i))
	}
	return uids
}

func TestNewRegistry_InvalidCapacity(t *testing.T) {
	t.Parallel()

	for _, capacity := range []int{0, -1} {
		registry, err := cardlog.NewRegistry(capacity)
		require.ErrorIs(t, err, cardlog.ErrInvalidCapacity)
		assert.Nil(t, registry)
	}
}

func TestRegistry_InsertUntilFull(t *testing.T) {
	t.Parallel()

	registry, err := cardlog.NewRegistry(cardlog.DefaultCapacity)
	require.NoError(t, err)
	assert.True(t, registry.IsEmpty())

	uids := testUIDs(cardlog.DefaultCapacity + 1)
	for i := 0; i < cardlog.DefaultCapacity; i++ {
		index, insertErr := registry.Insert(uids[i])
		require.NoError(t, insertErr)
		assert.Equal(t, i, index)
	}

	index, err := registry.Insert(uids[cardlog.DefaultCapacity])
	require.ErrorIs(t, err, cardlog.ErrRegistryFull)
	assert.Equal(t, -1, index)

	assert.Equal(t, cardlog.DefaultCapacity, registry.Len())
	assert.True(t, registry.IsFull())
	assert.Equal(t, uids[:cardlog.DefaultCapacity], registry.Entries())
}

func TestRegistry_EntryAt(t *testing.T) {
	t.Parallel()

	registry, err := cardlog.NewRegistry(3)
	require.NoError(t, err)
	uids := testUIDs(2)
	for _, uid := range uids {
		_, err = registry.Insert(uid)
		require.NoError(t, err)
	}

	got, err := registry.EntryAt(1)
	require.NoError(t, err)
	assert.Equal(t, uids[1], got)

	for _, index := range []int{-1, 2, 3} {
		_, err = registry.EntryAt(index)
		require.ErrorIs(t, err, cardlog.ErrOutOfRange, "index %d", index)
	}
}

func TestRegistry_NextCursor(t *testing.T) {
	t.Parallel()

	registry, err := cardlog.NewRegistry(5)
	require.NoError(t, err)

	_, err = registry.NextCursor(0)
	require.ErrorIs(t, err, cardlog.ErrEmptyRegistry)

	for _, uid := range testUIDs(3) {
		_, err = registry.Insert(uid)
		require.NoError(t, err)
	}

	cursor := 0
	var visited []int
	for i := 0; i < 7; i++ {
		visited = append(visited, cursor)
		cursor, err = registry.NextCursor(cursor)
		require.NoError(t, err)
	}
	assert.Equal(t, []int{0, 1, 2, 0, 1, 2, 0}, visited)
}

func TestRegistry_EntriesIsCopy(t *testing.T) {
	t.Parallel()

	registry, err := cardlog.NewRegistry(2)
	require.NoError(t, err)
	uid := cardlog.MustUID(0x01, 0x02, 0x03, 0x04)
	_, err = registry.Insert(uid)
	require.NoError(t, err)

	entries := registry.Entries()
	entries[0] = cardlog.MustUID(0xFF)

	got, err := registry.EntryAt(0)
	require.NoError(t, err)
	assert.Equal(t, uid, got)
}

func TestProperty_RegistryNeverExceedsCapacity(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		capacity := rapid.IntRange(1, 16).Draw(rt, "capacity")
		inserts := rapid.IntRange(0, 40).Draw(rt, "inserts")

		registry, err := cardlog.NewRegistry(capacity)
		require.NoError(rt, err)

		uids := testUIDs(inserts)
		for i, uid := range uids {
			index, insertErr := registry.Insert(uid)
			if i < capacity {
				require.NoError(rt, insertErr)
				require.Equal(rt, i, index)
			} else {
				require.ErrorIs(rt, insertErr, cardlog.ErrRegistryFull)
			}
			require.LessOrEqual(rt, registry.Len(), capacity)
		}

		stored := min(inserts, capacity)
		require.Equal(rt, uids[:stored], registry.Entries())
	})
}

func TestProperty_CursorCyclesInOrder(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		size := rapid.IntRange(1, 10).Draw(rt, "size")
		steps := rapid.IntRange(1, 50).Draw(rt, "steps")

		registry, err := cardlog.NewRegistry(size)
		require.NoError(rt, err)
		for _, uid := range testUIDs(size) {
			_, err = registry.Insert(uid)
			require.NoError(rt, err)
		}

		cursor := 0
		for i := 0; i < steps; i++ {
			require.Equal(rt, i%size, cursor)
			cursor, err = registry.NextCursor(cursor)
			require.NoError(rt, err)
		}
	})
}
