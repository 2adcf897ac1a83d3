package inspect_test

import (
	"archive/tar"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vakoc/buildstamp/pkg/inspect"
	"github.com/vakoc/buildstamp/pkg/stamperrors"
)

// selfExecutable returns the path of the test binary, which carries embedded
// build info like any other compiled Go binary.
func selfExecutable(t *testing.T) string {
	t.Helper()

	exe, err := os.Executable()
	require.NoError(t, err)

	return exe
}

func TestFile(t *testing.T) {
	t.Parallel()

	rep, err := inspect.File(selfExecutable(t))
	require.NoError(t, err)

	assert.NotEmpty(t, rep.ID)
	assert.NotEmpty(t, rep.MainPath)
	assert.NotEmpty(t, rep.GoVersion)
}

func TestFileNoBuildInfo(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "not-a-binary")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o600))

	_, err := inspect.File(path)
	require.ErrorIs(t, err, stamperrors.ErrNoBuildInfo)
}

func TestArchive(t *testing.T) {
	t.Parallel()

	exe, err := os.ReadFile(selfExecutable(t))
	require.NoError(t, err)

	tcs := map[string]struct {
		name  string
		write func(t *testing.T, path string)
		err   error
	}{
		"tar.gz": {
			name: "dist.tar.gz",
			write: func(t *testing.T, path string) {
				t.Helper()
				writeTarGz(t, path, map[string][]byte{
					"README.md": []byte("not a binary"),
					"buildstamp": exe,
				})
			},
		},
		"gz": {
			name: "buildstamp.gz",
			write: func(t *testing.T, path string) {
				t.Helper()
				writeGz(t, path, exe)
			},
		},
		"no binary inside": {
			name: "empty.tar.gz",
			write: func(t *testing.T, path string) {
				t.Helper()
				writeTarGz(t, path, map[string][]byte{
					"README.md": []byte("not a binary"),
				})
			},
			err: stamperrors.ErrEmptyArchive,
		},
		"unsupported extension": {
			name: "dist.zip",
			write: func(t *testing.T, path string) {
				t.Helper()
				require.NoError(t, os.WriteFile(path, []byte("zip"), 0o600))
			},
			err: stamperrors.ErrUnsupportedArchive,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), tc.name)
			tc.write(t, path)

			rep, err := inspect.Archive(path)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, rep.MainPath)
			assert.Equal(t, path, rep.Target)
		})
	}
}

func TestURL(t *testing.T) {
	t.Parallel()

	exe, err := os.ReadFile(selfExecutable(t))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write(exe)
		assert.NoError(t, err)
	}))
	t.Cleanup(srv.Close)

	rep, err := inspect.URL(t.Context(), nil, srv.URL+"/buildstamp")
	require.NoError(t, err)
	assert.NotEmpty(t, rep.MainPath)
}

func TestAny(t *testing.T) {
	t.Parallel()

	rep, err := inspect.Any(t.Context(), nil, selfExecutable(t))
	require.NoError(t, err)
	assert.NotEmpty(t, rep.MainPath)
}

func TestSelf(t *testing.T) {
	t.Parallel()

	rep, err := inspect.Self()
	require.NoError(t, err)

	require.NotNil(t, rep.Stamp)
	assert.NotEmpty(t, rep.Stamp.Version)
	assert.Equal(t, "self", rep.Target)
}

func writeTarGz(t *testing.T, path string, entries map[string][]byte) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	for name, data := range entries {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name: name,
			Mode: 0o755,
			Size: int64(len(data)),
		}))

		_, err = tw.Write(data)
		require.NoError(t, err)
	}

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
}

func writeGz(t *testing.T, path string, data []byte) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)

	gz := gzip.NewWriter(f)

	_, err = gz.Write(data)
	require.NoError(t, err)

	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
}
