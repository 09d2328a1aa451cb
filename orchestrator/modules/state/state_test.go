package state_test

import (
	"os"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/modules/state"

	"github.com/stretchr/testify/require"
)

func TestLevelDBState_SetGet(t *testing.T) {
	var (
		req       = require.New(t)
		dbPath    = "/tmp/cosign_test_SetGet"
		namespace = "test_namespace"
	)
	defer os.RemoveAll(dbPath)

	stg, err := state.NewLevelDBState(dbPath, namespace)
	req.NoError(err)

	key := state.MakeCompositeKeyString(namespace, state.SessionsKey)

	err = stg.Set(key, []byte(`{"batch":"value"}`))
	req.NoError(err)

	value, err := stg.Get(key)
	req.NoError(err)
	req.Equal([]byte(`{"batch":"value"}`), value)

	// Absent keys read back as nil without an error.
	value, err = stg.Get(state.MakeCompositeKeyString(namespace, "missing"))
	req.NoError(err)
	req.Nil(value)
}

func TestLevelDBState_Delete(t *testing.T) {
	var (
		req       = require.New(t)
		dbPath    = "/tmp/cosign_test_Delete"
		namespace = "test_namespace"
	)
	defer os.RemoveAll(dbPath)

	stg, err := state.NewLevelDBState(dbPath, namespace)
	req.NoError(err)

	key := state.MakeCompositeKeyString(namespace, state.SessionsKey)

	err = stg.Set(key, []byte("{}"))
	req.NoError(err)

	err = stg.Delete(key)
	req.NoError(err)

	value, err := stg.Get(key)
	req.NoError(err)
	req.Nil(value)

	// Deleting an absent key is not an error.
	err = stg.Delete(key)
	req.NoError(err)
}

func TestLevelDBState_InitKey(t *testing.T) {
	var (
		req       = require.New(t)
		dbPath    = "/tmp/cosign_test_InitKey"
		namespace = "test_namespace"
	)
	defer os.RemoveAll(dbPath)

	stg, err := state.NewLevelDBState(dbPath, namespace)
	req.NoError(err)

	key := state.MakeCompositeKeyString(namespace, state.SessionsKey)

	err = stg.InitKey(key, []byte("{}"))
	req.NoError(err)

	err = stg.Set(key, []byte(`{"batch":"live"}`))
	req.NoError(err)

	// A second init must not wipe live data.
	err = stg.InitKey(key, []byte("{}"))
	req.NoError(err)

	value, err := stg.Get(key)
	req.NoError(err)
	req.Equal([]byte(`{"batch":"live"}`), value)
}

func TestLevelDBState_Reset(t *testing.T) {
	var (
		req       = require.New(t)
		dbPath    = "/tmp/cosign_test_Reset"
		namespace = "test_namespace"
		re        = regexp.MustCompile(dbPath + `_(?P<ts>\d+)`)
	)
	defer os.RemoveAll(dbPath)

	stg, err := state.NewLevelDBState(dbPath, namespace)
	req.NoError(err)

	key := state.MakeCompositeKeyString(namespace, state.SessionsKey)

	err = stg.Set(key, []byte("{}"))
	req.NoError(err)

	timeBefore := time.Now().Unix()
	path, err := stg.Reset("")
	timeAfter := time.Now().Unix()

	req.NoError(err)
	submatches := re.FindStringSubmatch(path)
	req.Greater(len(submatches), 0)
	defer os.RemoveAll(path)

	ts, err := strconv.Atoi(submatches[1])
	req.NoError(err)
	req.GreaterOrEqual(int64(ts), timeBefore)
	req.LessOrEqual(int64(ts), timeAfter)

	value, err := stg.Get(key)
	req.NoError(err)
	req.Nil(value)
}
