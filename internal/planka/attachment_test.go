package planka

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadAttachmentMultipartForm(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("attachment body"), 0o600))

	var fileContent, nameField string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cards/c1/attachments", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		fileContent = string(content)
		assert.Equal(t, "report.txt", header.Filename)
		nameField = r.FormValue("name")

		fmt.Fprint(w, `{"item":{"id":"a1","cardId":"c1","name":"report.txt"}}`)
	}))
	defer server.Close()

	c := NewClient(server.URL, "t", nil)
	attachment, err := c.UploadAttachment(context.Background(), "c1", "report.txt", path)
	require.NoError(t, err)

	assert.Equal(t, "a1", attachment.ID)
	assert.Equal(t, "attachment body", fileContent)
	assert.Equal(t, "report.txt", nameField)
}

func TestUploadAttachmentNameDefaultsToFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.pdf")
	require.NoError(t, os.WriteFile(path, []byte("pdf"), 0o600))

	var nameField string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		nameField = r.FormValue("name")
		fmt.Fprint(w, `{"item":{"id":"a1","name":"scan.pdf"}}`)
	}))
	defer server.Close()

	c := NewClient(server.URL, "t", nil)
	_, err := c.UploadAttachment(context.Background(), "c1", "", path)
	require.NoError(t, err)
	assert.Equal(t, "scan.pdf", nameField)
}
