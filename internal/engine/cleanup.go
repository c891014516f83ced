package engine

import (
	"context"

	"github.com/juju/errors"

	"github.com/BartekS5/kaiten2planka/internal/planka"
	"github.com/BartekS5/kaiten2planka/pkg/logger"
	"github.com/BartekS5/kaiten2planka/pkg/models"
)

// CleanTarget deletes every project on the target together with its
// boards, lists and cards, in dependency order. Best-effort: it proceeds
// through the whole enumeration no matter what fails, and reports whether
// everything succeeded. Running it against an already-empty target is a
// successful no-op.
func (m *Migrator) CleanTarget(ctx context.Context) bool {
	projects, err := m.target.Projects(ctx)
	if err != nil {
		logger.Errorf("listing target projects: %v", err)
		return false
	}
	logger.Infof("cleanup: found %d projects to delete", len(projects))

	ok := true
	for _, project := range projects {
		if !m.deleteProjectTree(ctx, project) {
			ok = false
		}
	}
	return ok
}

// deleteProjectTree removes one project and everything under it. Board
// failures are recorded but do not stop sibling boards; the project
// delete itself gets one delayed retry when the target still considers
// boards attached (a 422 that resolves once deletion has settled).
func (m *Migrator) deleteProjectTree(ctx context.Context, project models.PlankaProject) bool {
	ok := true

	boards, err := m.target.BoardsForProject(ctx, project.ID)
	if err != nil {
		logger.Errorf("listing boards of project %s: %v", project.ID, err)
		ok = false
	}
	for _, board := range boards {
		if !m.deleteBoardTree(ctx, board.ID) {
			ok = false
		}
	}

	if err := m.target.DeleteProject(ctx, project.ID); err != nil {
		if !errors.IsNotValid(err) && !planka.IsTransient(err) {
			logger.Errorf("deleting project %s: %v", project.ID, err)
			return false
		}
		logger.Warnf("deleting project %s: %v, retrying after %s", project.ID, err, m.opts.ConsistencyDelay.Std())
		select {
		case <-m.clock().After(m.opts.ConsistencyDelay.Std()):
		case <-ctx.Done():
			return false
		}
		if err := m.target.DeleteProject(ctx, project.ID); err != nil {
			logger.Errorf("deleting project %s (retry): %v", project.ID, err)
			return false
		}
	}
	logger.Infof("deleted project %s", project.ID)
	return ok
}

// deleteBoardTree removes one board: cards first, then lists, then the
// board. A 403 on list deletion is a known target quirk and is skipped;
// any other failure is logged and the cascade continues with siblings.
func (m *Migrator) deleteBoardTree(ctx context.Context, boardID string) bool {
	ok := true

	lists, err := m.target.ListsForBoard(ctx, boardID)
	if err != nil {
		logger.Errorf("listing lists of board %s: %v", boardID, err)
		ok = false
	}
	for _, list := range lists {
		cards, err := m.target.CardsForList(ctx, list.ID)
		if err != nil {
			logger.Errorf("listing cards of list %s: %v", list.ID, err)
			ok = false
		}
		for _, card := range cards {
			if err := m.target.DeleteCard(ctx, card.ID); err != nil {
				logger.Errorf("deleting card %s: %v", card.ID, err)
				ok = false
			}
		}

		if err := m.target.DeleteList(ctx, list.ID); err != nil {
			if errors.IsForbidden(err) {
				logger.Warnf("deleting list %s: forbidden, skipping", list.ID)
				continue
			}
			logger.Errorf("deleting list %s: %v", list.ID, err)
			ok = false
		}
	}

	if err := m.target.DeleteBoard(ctx, boardID); err != nil {
		logger.Errorf("deleting board %s: %v", boardID, err)
		return false
	}
	return ok
}
