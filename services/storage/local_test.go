package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader builds a real *multipart.FileHeader by writing and re-reading a
// multipart body, the same way gin hands them to the upload handler.
func fileHeader(t *testing.T, name string, contents []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("images", name)
	require.NoError(t, err)
	_, err = fw.Write(contents)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(int64(buf.Len()) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["images"]
	require.Len(t, files, 1)
	return files[0]
}

func TestLocalStorageSaveWritesFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), fileHeader(t, "front.jpg", []byte("jpeg bytes")))
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^\d+-front\.jpg$`), ref.Filename)
	assert.Equal(t, "/uploads/"+ref.Filename, ref.Path)

	data, err := os.ReadFile(filepath.Join(dir, ref.Filename))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)
}

func TestLocalStorageSaveSanitizesOriginalName(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), fileHeader(t, "my rear view.png", []byte("png")))
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^\d+-my_rear_view\.png$`), ref.Filename)
	assert.NotContains(t, ref.Filename, " ")
}

func TestLocalStorageRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), fileHeader(t, "gone.jpg", []byte("x")))
	require.NoError(t, err)

	require.NoError(t, store.Remove(context.Background(), ref.Filename))
	_, statErr := os.Stat(filepath.Join(dir, ref.Filename))
	assert.True(t, os.IsNotExist(statErr))

	// removing twice stays silent so cleanup can run unconditionally
	assert.NoError(t, store.Remove(context.Background(), ref.Filename))
}

func TestNewLocalStorageCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "uploads")

	_, err := NewLocalStorage(root, "/uploads")
	require.NoError(t, err)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
