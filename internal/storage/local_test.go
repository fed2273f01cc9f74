package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeExt(t *testing.T) {
	cases := map[string]string{
		"card.pdf":       ".pdf",
		"LOGO.PNG":       ".png",
		"flyer.jpeg":     ".jpeg",
		"cut-path.svg":   ".svg",
		"scan.tiff":      ".tiff",
		"malware.exe":    "",
		"script.sh":      "",
		"noextension":    "",
		"archive.tar.gz": "",
	}
	for in, want := range cases {
		assert.Equal(t, want, SafeExt(in), "SafeExt(%q)", in)
	}
}

func TestLocalPutAndDelete(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/uploads")

	res, err := l.Put(context.Background(), strings.NewReader("%PDF-1.4 fake"), PutInput{
		Filename:    "visiting-card.pdf",
		ContentType: "application/pdf",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.URL, "/uploads/"))
	assert.True(t, strings.HasSuffix(res.Key, ".pdf"))

	data, err := os.ReadFile(filepath.Join(dir, res.Key))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))

	require.NoError(t, l.Delete(context.Background(), res.Key))
	_, err = os.Stat(filepath.Join(dir, res.Key))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalDeleteIgnoresPathTraversal(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/uploads")

	outside := filepath.Join(t.TempDir(), "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))

	// Delete flattens the key to its base name, so this misses.
	_ = l.Delete(context.Background(), "../"+outside)
	_, err := os.Stat(outside)
	assert.NoError(t, err)
}
