package credentials

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKeysFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "elevenlabs_apis")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeKeysFile(t, "alice@example.com:sk_key_one\nbob@example.com:sk_key_two\n")

	pool, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2, pool.Size())
	key, err := pool.Current()
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", key.Account)
	assert.Equal(t, "sk_key_one", key.Secret)
}

func TestLoadFileSkipsMalformedLines(t *testing.T) {
	path := writeKeysFile(t, `# team keys
alice@example.com:sk_key_one

no-separator-here
bob@example.com:
carol@example.com:sk_key_three
`)

	pool, err := LoadFile(path)
	require.NoError(t, err)

	// Comment, blank, missing-separator and empty-secret lines are all
	// dropped; loading still succeeds on the two valid keys.
	require.Equal(t, 2, pool.Size())
	keys := pool.Keys()
	assert.Equal(t, "alice@example.com", keys[0].Account)
	assert.Equal(t, "carol@example.com", keys[1].Account)
}

func TestLoadFileTrimsWhitespace(t *testing.T) {
	path := writeKeysFile(t, "  alice@example.com : sk_key_one  \n")

	pool, err := LoadFile(path)
	require.NoError(t, err)

	key, err := pool.Current()
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", key.Account)
	assert.Equal(t, "sk_key_one", key.Secret)
}

func TestLoadFileEmpty(t *testing.T) {
	path := writeKeysFile(t, "# comments only\n\n")

	_, err := LoadFile(path)
	assert.ErrorIs(t, err, ErrNoKeysAvailable)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "does_not_exist"))
	assert.Error(t, err)
}

func TestNewPoolEmpty(t *testing.T) {
	_, err := NewPool(nil)
	assert.ErrorIs(t, err, ErrNoKeysAvailable)
}

func TestPoolRotationOrder(t *testing.T) {
	pool, err := NewPool([]Key{
		{Account: "a", Secret: "1"},
		{Account: "b", Secret: "2"},
		{Account: "c", Secret: "3"},
	})
	require.NoError(t, err)

	var seen []string
	for {
		key, err := pool.Current()
		if err != nil {
			assert.True(t, errors.Is(err, ErrPoolExhausted))
			break
		}
		seen = append(seen, key.Account)
		pool.Advance()
	}

	assert.Equal(t, []string{"a", "b", "c"}, seen)
}

func TestPoolNeverWraps(t *testing.T) {
	pool, err := NewPool([]Key{{Account: "a", Secret: "1"}})
	require.NoError(t, err)

	pool.Advance()
	// Advancing past the end stays exhausted.
	pool.Advance()
	pool.Advance()

	_, err = pool.Current()
	assert.ErrorIs(t, err, ErrPoolExhausted)
	assert.Equal(t, 0, pool.Remaining())
	assert.Equal(t, 1, pool.Size())
}

func TestPoolRemaining(t *testing.T) {
	pool, err := NewPool([]Key{
		{Account: "a", Secret: "1"},
		{Account: "b", Secret: "2"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, pool.Remaining())
	pool.Advance()
	assert.Equal(t, 1, pool.Remaining())
}
