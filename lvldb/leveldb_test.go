// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/kv"
)

func TestLevelDB(t *testing.T) {
	var (
		key        = []byte("123")
		value      = []byte("456")
		inValidKey = []byte("abc")
	)

	persistent, err := New(filepath.Join(t.TempDir(), "lvldb"), Options{16, 16})
	require.NoError(t, err)
	defer persistent.Close()

	mem, err := NewMem()
	require.NoError(t, err)
	defer mem.Close()

	for _, db := range []*LevelDB{persistent, mem} {
		require.NoError(t, db.Put(key, value))

		ret1, err := db.Get(key)
		assert.NoError(t, err)
		assert.Equal(t, value, ret1)

		has, err := db.Has(key)
		assert.NoError(t, err)
		assert.True(t, has)

		has, err = db.Has(inValidKey)
		assert.NoError(t, err)
		assert.False(t, has)

		require.NoError(t, db.Delete(key))
		_, err = db.Get(key)
		assert.True(t, db.IsNotFound(err))
	}
}

func TestLevelDBBulk(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	bulk := db.Bulk()
	require.NoError(t, bulk.Put([]byte("a"), []byte("1")))
	require.NoError(t, bulk.Put([]byte("b"), []byte("2")))
	require.NoError(t, bulk.Delete([]byte("a")))
	assert.Equal(t, 3, bulk.Len())

	has, _ := db.Has([]byte("b"))
	assert.False(t, has, "bulk must not be visible before write")

	require.NoError(t, bulk.Write())
	v, err := db.Get([]byte("b"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("2"), v)
	has, _ = db.Has([]byte("a"))
	assert.False(t, has)
}

func TestLevelDBSnapshotAndIterate(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	store := kv.Bucket("p/").NewStore(db)
	require.NoError(t, store.Put([]byte("1"), []byte("v1")))
	require.NoError(t, store.Put([]byte("2"), []byte("v2")))
	require.NoError(t, db.Put([]byte("q/1"), []byte("other")))

	snapshot := store.Snapshot()
	require.NoError(t, store.Put([]byte("1"), []byte("changed")))
	v, err := snapshot.Get([]byte("1"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("v1"), v)
	snapshot.Release()

	iter := store.Iterate(kv.Range{})
	defer iter.Release()
	var keys []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	assert.NoError(t, iter.Error())
	assert.Equal(t, []string{"1", "2"}, keys)
}
