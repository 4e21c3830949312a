package filestorage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tpcell/portal/internal/pkg/apperrors"
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n%%EOF\n")

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	info, err := ls.Save(context.Background(), &Object{
		Reader:      bytes.NewReader(pdfBytes),
		Filename:    "Resume.PDF",
		ContentType: "application/pdf",
	}, "resumes")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(info.URL, "http://localhost:8080/uploads/resumes/"))
	assert.True(t, strings.HasSuffix(info.Path, ".pdf"))
	assert.Equal(t, int64(len(pdfBytes)), info.FileSize)

	onDisk, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(info.Path)))
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, onDisk)

	require.NoError(t, ls.Delete(context.Background(), info.URL))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(info.Path)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, ls.Delete(context.Background(), info.URL), "deleting twice is fine")
	assert.Error(t, ls.Delete(context.Background(), "http://elsewhere/x.pdf"))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "http://localhost/uploads")
	require.NoError(t, err)

	_, err = ls.Save(context.Background(), &Object{Reader: bytes.NewReader(pdfBytes), Filename: "a.pdf"}, "../etc")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	err = ls.Delete(context.Background(), "http://localhost/uploads/../secret.pdf")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestInspector(t *testing.T) {
	insp := NewInspector(1<<20, []string{"application/pdf", "image/png"})

	mime, err := insp.Inspect(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mime)

	_, err = insp.Inspect(bytes.NewReader([]byte("just some text")), 14)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFileType)

	_, err = insp.Inspect(bytes.NewReader(pdfBytes), 2<<20)
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
}
