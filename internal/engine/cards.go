package engine

import (
	"context"
	"strconv"

	"github.com/BartekS5/kaiten2planka/internal/mapper"
	"github.com/BartekS5/kaiten2planka/pkg/logger"
	"github.com/BartekS5/kaiten2planka/pkg/models"
)

// migrateCards creates every card of a board, then its checklists,
// attachments, comments and external links. A card whose source column
// has no mapped list lands in the board's first available list instead of
// being dropped. Sub-entity failures stay scoped to their card.
func (m *Migrator) migrateCards(ctx context.Context, board models.Board, boardID, firstListID string) {
	cards, err := m.source.CardsForBoard(ctx, board.ID)
	if err != nil {
		logger.Errorf("listing cards for board %d: %v", board.ID, err)
		return
	}

	for i, card := range cards {
		listID, ok := m.ids.Get(mapper.KindList, strconv.Itoa(card.ColumnID))
		if !ok {
			if firstListID == "" {
				logger.Errorf("card %d: no list available on board %s", card.ID, boardID)
				m.report.Failed("card")
				continue
			}
			logger.Warnf("card %d references unmapped column %d, placing in first list of board %s",
				card.ID, card.ColumnID, boardID)
			listID = firstListID
		}

		// The board listing omits descriptions; fetch the full card and
		// fall back to the summary when the detail call fails.
		if detail, err := m.source.Card(ctx, card.ID); err == nil && detail != nil {
			detail.Tags = mergeTags(card.Tags, detail.Tags)
			card = *detail
		}

		created, err := m.target.CreateCard(ctx, listID, mapper.Card(card, int64(i+1)*m.opts.PositionStep))
		if err != nil || created == nil || created.ID == "" {
			logger.Errorf("creating card %q in list %s: %v", card.Title, listID, err)
			m.report.Failed("card")
			continue
		}
		m.report.Created("card")
		logger.Infof("created card %q", card.Title)

		m.attachLabels(ctx, card, boardID, created.ID)
		m.migrateChecklists(ctx, card.ID, created.ID)
		m.migrateAttachments(ctx, card.ID, created.ID)
		m.migrateComments(ctx, card.ID, created.ID)
		m.migrateLinks(ctx, card.ID, created.ID)
	}
}

func mergeTags(summary, detail []models.Tag) []models.Tag {
	if len(detail) > 0 {
		return detail
	}
	return summary
}

// attachLabels creates board labels for the card's tags on first use and
// attaches them to the card.
func (m *Migrator) attachLabels(ctx context.Context, card models.Card, boardID, cardID string) {
	for _, tag := range card.Tags {
		labelID, err := m.labelFor(ctx, boardID, tag)
		if err != nil {
			logger.Errorf("creating label %q on board %s: %v", tag.Name, boardID, err)
			continue
		}
		if err := m.target.AddCardLabel(ctx, cardID, labelID); err != nil {
			logger.Errorf("attaching label %q to card %s: %v", tag.Name, cardID, err)
		}
	}
}

// migrateChecklists recreates every checklist of a card. The checklist
// listing may omit items, so each checklist is re-fetched in full before
// its items are created. A failed item does not stop the remaining items.
func (m *Migrator) migrateChecklists(ctx context.Context, cardSourceID int, cardID string) {
	checklists, err := m.source.CardChecklists(ctx, cardSourceID)
	if err != nil {
		logger.Errorf("listing checklists for card %d: %v", cardSourceID, err)
		return
	}

	for _, summary := range checklists {
		checklist := summary
		if detail, err := m.source.Checklist(ctx, cardSourceID, summary.ID); err == nil && detail != nil {
			checklist = *detail
		} else if err != nil {
			logger.Warnf("fetching checklist %d detail: %v", summary.ID, err)
		}

		task, err := m.target.CreateTask(ctx, cardID, models.TaskCreate{Name: checklistName(checklist)})
		if err != nil || task == nil || task.ID == "" {
			logger.Errorf("creating checklist %q on card %s: %v", checklist.Name, cardID, err)
			m.report.Failed("checklist")
			continue
		}
		m.report.Created("checklist")

		for j, item := range checklist.Items {
			_, err := m.target.CreateTaskItem(ctx, task.ID, mapper.TaskItem(item, int64(j+1)*m.opts.PositionStep))
			if err != nil {
				logger.Errorf("creating checklist item %d on task %s: %v", item.ID, task.ID, err)
				m.report.Failed("checklist_item")
				continue
			}
			m.report.Created("checklist_item")
		}
	}
}

func checklistName(checklist models.Checklist) string {
	if checklist.Name == "" {
		return "Checklist"
	}
	return checklist.Name
}

// migrateComments recreates card comments with the author embedded as a
// text prefix; Planka attributes everything to the service account.
func (m *Migrator) migrateComments(ctx context.Context, cardSourceID int, cardID string) {
	comments, err := m.source.CardComments(ctx, cardSourceID)
	if err != nil {
		logger.Errorf("listing comments for card %d: %v", cardSourceID, err)
		return
	}
	for _, comment := range comments {
		if _, err := m.target.CreateComment(ctx, cardID, mapper.Comment(comment)); err != nil {
			logger.Errorf("creating comment on card %s: %v", cardID, err)
			m.report.Failed("comment")
			continue
		}
		m.report.Created("comment")
	}
}

// migrateLinks recreates the card's external links.
func (m *Migrator) migrateLinks(ctx context.Context, cardSourceID int, cardID string) {
	links, err := m.source.CardExternalLinks(ctx, cardSourceID)
	if err != nil {
		logger.Errorf("listing links for card %d: %v", cardSourceID, err)
		return
	}
	for _, link := range links {
		if _, err := m.target.CreateCardLink(ctx, cardID, mapper.Link(link)); err != nil {
			logger.Errorf("creating link %q on card %s: %v", link.URL, cardID, err)
			m.report.Failed("link")
			continue
		}
		m.report.Created("link")
	}
}
