package planka

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/juju/errors"

	"github.com/BartekS5/kaiten2planka/pkg/models"
)

// UploadAttachment uploads a local file to a card as a multipart form.
// The file is buffered in memory; the engine enforces the attachment size
// ceiling before calling this, so the buffer is bounded.
func (c *Client) UploadAttachment(ctx context.Context, cardID, name, filePath string) (*models.PlankaAttachment, error) {
	if name == "" {
		name = filepath.Base(filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Annotatef(err, "opening attachment %s", filePath)
	}
	defer file.Close()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", name)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, errors.Annotatef(err, "reading attachment %s", filePath)
	}
	if err := form.WriteField("name", name); err != nil {
		return nil, errors.Trace(err)
	}
	if err := form.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	path := "/cards/" + cardID + "/attachments"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, errors.Trace(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", form.FormDataContentType())

	var env itemEnvelope
	if err := c.send(req, "POST "+path, &env); err != nil {
		return nil, err
	}
	var attachment models.PlankaAttachment
	if err := json.Unmarshal(env.Item, &attachment); err != nil {
		return nil, errors.Annotatef(err, "POST %s: decoding response", path)
	}
	return &attachment, nil
}
