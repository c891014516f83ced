package engine

import (
	"context"
	"strconv"

	"github.com/juju/clock"

	"github.com/BartekS5/kaiten2planka/internal/config"
	"github.com/BartekS5/kaiten2planka/internal/mapper"
	"github.com/BartekS5/kaiten2planka/pkg/logger"
	"github.com/BartekS5/kaiten2planka/pkg/models"
)

// Migrator drives one end-to-end migration run. Execution is strictly
// sequential: one request in flight at a time, deterministic ordering,
// all shared state (ID table, report) owned by this struct.
type Migrator struct {
	source Source
	target Target
	ids    *IDTable
	report *Report
	opts   config.Options

	// Clock is used for every suspension point (consistency delays);
	// replaceable in tests.
	Clock clock.Clock
}

// New creates a Migrator. The ID table is injected so callers and tests
// control its lifetime; pass NewIDTable() for a fresh run.
func New(source Source, target Target, ids *IDTable, opts config.Options) *Migrator {
	return &Migrator{
		source: source,
		target: target,
		ids:    ids,
		report: NewReport(),
		opts:   opts,
		Clock:  clock.WallClock,
	}
}

func (m *Migrator) clock() clock.Clock {
	if m.Clock != nil {
		return m.Clock
	}
	return clock.WallClock
}

// Run executes the full pipeline: users, then every space with its boards,
// lists, cards and card sub-entities. The run is terminal when every
// discovered space has been processed or skipped; single-entity failures
// never halt it. Re-running against a never-cleaned target duplicates
// boards, lists and cards; only users are deduplicated (by email).
func (m *Migrator) Run(ctx context.Context) (*Report, error) {
	m.report.Started = m.clock().Now()
	logger.Infof("starting migration run %s", m.report.RunID)

	m.migrateUsers(ctx)

	spaces, err := m.source.Spaces(ctx)
	if err != nil {
		logger.Errorf("listing source spaces: %v", err)
	}
	for _, space := range spaces {
		m.migrateSpace(ctx, space)
	}

	m.report.Finished = m.clock().Now()
	logger.Infof("migration run %s finished\n%s", m.report.RunID, m.report.Summary())
	return m.report, nil
}

// migrateUsers creates every source user missing from the target. Users
// sharing an email with an existing target account are mapped, not
// re-created. User failures are never fatal to the run.
func (m *Migrator) migrateUsers(ctx context.Context) {
	sourceUsers, err := m.source.Users(ctx)
	if err != nil {
		logger.Errorf("listing source users: %v", err)
		return
	}

	targetUsers, err := m.target.Users(ctx)
	if err != nil {
		logger.Errorf("listing target users: %v", err)
		targetUsers = nil
	}
	byEmail := make(map[string]string, len(targetUsers))
	for _, u := range targetUsers {
		byEmail[u.Email] = u.ID
	}

	for _, user := range sourceUsers {
		sourceID := strconv.Itoa(user.ID)
		if existingID, ok := byEmail[user.Email]; ok {
			if err := m.ids.Put(mapper.KindUser, sourceID, existingID); err != nil {
				logger.Warnf("user %s: %v", sourceID, err)
			}
			m.report.Skipped("user")
			continue
		}

		created, err := m.target.CreateUser(ctx, mapper.User(user, m.opts.UserPassword))
		if err != nil {
			logger.Errorf("creating user %s (%s): %v", user.Email, sourceID, err)
			m.report.Failed("user")
			continue
		}
		byEmail[user.Email] = created.ID
		if err := m.ids.Put(mapper.KindUser, sourceID, created.ID); err != nil {
			logger.Warnf("user %s: %v", sourceID, err)
		}
		m.report.Created("user")
		logger.Infof("created user %s", user.Email)
	}
}

// migrateSpace creates the target project for one space and migrates its
// subtree. A space whose project cannot be created is skipped entirely;
// partial migration of a project-less space is never attempted.
func (m *Migrator) migrateSpace(ctx context.Context, space models.Space) {
	logger.Infof("processing space %q (%d)", space.Title, space.ID)

	project, err := m.target.CreateProject(ctx, mapper.Project(space))
	if err != nil || project == nil || project.ID == "" {
		logger.Errorf("creating project for space %d: %v", space.ID, err)
		m.report.Failed("project")
		return
	}
	sourceID := strconv.Itoa(space.ID)
	if err := m.ids.Put(mapper.KindProject, sourceID, project.ID); err != nil {
		logger.Warnf("space %s: %v", sourceID, err)
	}
	m.report.Created("project")

	m.migrateBoards(ctx, space, project.ID)
}
