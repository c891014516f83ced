package engine

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/BartekS5/kaiten2planka/pkg/logger"
	"github.com/BartekS5/kaiten2planka/pkg/models"
)

// migrateAttachments transfers every attachment of a card, skipping
// anything over the size ceiling.
func (m *Migrator) migrateAttachments(ctx context.Context, cardSourceID int, cardID string) {
	attachments, err := m.source.CardAttachments(ctx, cardSourceID)
	if err != nil {
		logger.Errorf("listing attachments for card %d: %v", cardSourceID, err)
		return
	}
	for _, attachment := range attachments {
		switch err := m.transferAttachment(ctx, cardID, attachment); {
		case errors.Is(err, errAttachmentTooLarge):
			logger.Warnf("attachment %q exceeds %d bytes, skipping", attachment.Name, m.opts.MaxAttachmentBytes)
			m.report.Skipped("attachment")
		case err != nil:
			logger.Errorf("transferring attachment %q to card %s: %v", attachment.Name, cardID, err)
			m.report.Failed("attachment")
		default:
			m.report.Created("attachment")
		}
	}
}

// errAttachmentTooLarge is the sentinel for size-ceiling skips.
var errAttachmentTooLarge = errors.New("attachment exceeds size ceiling")

// transferAttachment downloads one attachment to a scoped temporary file
// and uploads it. The size ceiling is enforced twice: on the declared
// metadata/header size before the body is consumed, and on the actual
// downloaded byte count in case the header was missing or wrong. The
// temporary file is removed on every exit path.
func (m *Migrator) transferAttachment(ctx context.Context, cardID string, attachment models.Attachment) error {
	max := m.opts.MaxAttachmentBytes
	if attachment.Size > max {
		return errAttachmentTooLarge
	}

	body, declared, err := m.source.DownloadAttachment(ctx, attachment.URL)
	if err != nil {
		return err
	}
	defer body.Close()
	if declared > max {
		return errAttachmentTooLarge
	}

	tmp, err := os.CreateTemp("", "kaiten2planka-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	written, err := io.Copy(tmp, io.LimitReader(body, max+1))
	if err != nil {
		return err
	}
	if written > max {
		return errAttachmentTooLarge
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	_, err = m.target.UploadAttachment(ctx, cardID, attachment.Name, tmp.Name())
	return err
}
