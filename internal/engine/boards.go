package engine

import (
	"context"
	"strconv"

	"github.com/BartekS5/kaiten2planka/internal/mapper"
	"github.com/BartekS5/kaiten2planka/pkg/logger"
	"github.com/BartekS5/kaiten2planka/pkg/models"
)

// migrateBoards creates every board of a space inside the target project.
// Boards get sequential positions in source order; a failed board is
// skipped, its siblings still migrate.
func (m *Migrator) migrateBoards(ctx context.Context, space models.Space, projectID string) {
	boards, err := m.source.BoardsForSpace(ctx, space.ID)
	if err != nil {
		logger.Errorf("listing boards for space %d: %v", space.ID, err)
		return
	}

	for i, board := range boards {
		created, err := m.target.CreateBoard(ctx, projectID, mapper.Board(board, int64(i+1)))
		if err != nil || created == nil || created.ID == "" {
			logger.Errorf("creating board %q in project %s: %v", board.Title, projectID, err)
			m.report.Failed("board")
			continue
		}
		sourceID := strconv.Itoa(board.ID)
		if err := m.ids.Put(mapper.KindBoard, sourceID, created.ID); err != nil {
			logger.Warnf("board %s: %v", sourceID, err)
		}
		m.report.Created("board")
		logger.Infof("created board %q", board.Title)

		firstListID := m.migrateLists(ctx, board, created.ID)
		m.migrateCards(ctx, board, created.ID, firstListID)
	}
}

// migrateLists creates one target list per source column, spacing the
// positions so later manual reordering has room. When a board ends up
// with no lists at all (no columns, or every creation failed), exactly
// one fallback list is synthesized so the board is usable. Returns the
// first available list ID for the board.
func (m *Migrator) migrateLists(ctx context.Context, board models.Board, boardID string) string {
	columns, err := m.source.ColumnsForBoard(ctx, board.ID)
	if err != nil {
		logger.Errorf("listing columns for board %d: %v", board.ID, err)
	}

	firstListID := ""
	created := 0
	for i, column := range columns {
		list, err := m.target.CreateList(ctx, boardID, mapper.List(column, int64(i+1)*m.opts.PositionStep))
		if err != nil || list == nil || list.ID == "" {
			logger.Errorf("creating list %q on board %s: %v", column.Title, boardID, err)
			m.report.Failed("list")
			continue
		}
		sourceID := strconv.Itoa(column.ID)
		if err := m.ids.Put(mapper.KindList, sourceID, list.ID); err != nil {
			logger.Warnf("list %s: %v", sourceID, err)
		}
		m.report.Created("list")
		created++
		if firstListID == "" {
			firstListID = list.ID
		}
	}

	if created == 0 {
		fallback, err := m.target.CreateList(ctx, boardID, models.ListCreate{
			Name:     m.opts.FallbackListName,
			Position: m.opts.PositionStep,
			Type:     "active",
		})
		if err != nil || fallback == nil || fallback.ID == "" {
			logger.Errorf("creating fallback list on board %s: %v", boardID, err)
			m.report.Failed("list")
			return ""
		}
		m.report.Created("list")
		logger.Infof("synthesized %q on board %s", m.opts.FallbackListName, boardID)
		firstListID = fallback.ID
	}
	return firstListID
}

// labelFor returns the target label for a tag on a board, creating it on
// first use. Labels are board-scoped in Planka while tags are global in
// Kaiten, so the mapping key combines both IDs.
func (m *Migrator) labelFor(ctx context.Context, boardID string, tag models.Tag) (string, error) {
	key := boardID + "/" + strconv.Itoa(tag.ID)
	if labelID, ok := m.ids.Get(mapper.KindLabel, key); ok {
		return labelID, nil
	}

	position := int64(m.ids.Len(mapper.KindLabel)+1) * m.opts.PositionStep
	label, err := m.target.CreateLabel(ctx, boardID, mapper.Label(tag, position))
	if err != nil {
		m.report.Failed("label")
		return "", err
	}
	if err := m.ids.Put(mapper.KindLabel, key, label.ID); err != nil {
		logger.Warnf("label %s: %v", key, err)
	}
	m.report.Created("label")
	return label.ID, nil
}
