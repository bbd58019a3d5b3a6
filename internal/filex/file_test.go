package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureSubdDir_CreatesDirectoryInCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureSubdDir("export")
	require.NoError(t, err)

	want := filepath.Join(tmp, "export")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		perm := fi.Mode().Perm()
		require.Equal(t, os.FileMode(0o700), perm&0o700)
	}
}

func TestEnsureSubdDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	first, err := EnsureSubdDir("export")
	require.NoError(t, err)

	second, err := EnsureSubdDir("export")
	require.NoError(t, err)

	require.Equal(t, first, second)
	fi, err := os.Stat(second)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureSubdDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	require.NoError(t, os.WriteFile("export", []byte("x"), 0o660))

	_, err := EnsureSubdDir("export")
	require.Error(t, err, "should fail when a file exists with the same name")
}

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "plain key passes through", key: "settings", want: "settings"},
		{name: "dots and dashes kept", key: "wallet-0.state_v2", want: "wallet-0.state_v2"},
		{name: "path separators replaced", key: "channels/0/state", want: "channels_0_state"},
		{name: "windows separator replaced", key: `a\b`, want: "a_b"},
		{name: "spaces and unicode replaced", key: "my key é", want: "my_key__"},
		{name: "empty key", key: "", want: "item"},
		{name: "dot key", key: ".", want: "item"},
		{name: "dotdot key", key: "..", want: "item"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, SafeFileName(tc.key))
		})
	}
}
