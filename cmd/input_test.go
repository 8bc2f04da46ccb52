package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadArgs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.txt")
	data := "# names\nHomo sapiens\n\n  Mus musculus  \n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	res, err := readArgs([]string{"Escherichia coli", " "}, path)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"Escherichia coli", "Homo sapiens", "Mus musculus"}, res)

	res, err = readArgs(nil, "")
	require.NoError(t, err)
	assert.Empty(t, res)

	_, err = readArgs(nil, filepath.Join(t.TempDir(), "none.txt"))
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.ReadFileError, gnErr.Code)
}

func TestParseIDs(t *testing.T) {
	res, err := parseIDs([]string{"9606", "562", "9606"})
	require.NoError(t, err)
	assert.Equal(t, []int{9606, 562}, res)

	for _, v := range []string{"abc", "0", "-3", "9606.0"} {
		_, err = parseIDs([]string{v})
		var gnErr *gn.Error
		require.ErrorAs(t, err, &gnErr, v)
		assert.Equal(t, errcode.InvalidInputError, gnErr.Code, v)
	}
}

func TestLockCaches(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".cache", "gnlineage"), 0755))

	lock, err := lockCaches(home)
	require.NoError(t, err)

	_, err = lockCaches(home)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.LockBusyError, gnErr.Code)

	require.NoError(t, lock.Unlock())
	lock, err = lockCaches(home)
	require.NoError(t, err)
	assert.NoError(t, lock.Unlock())
}
