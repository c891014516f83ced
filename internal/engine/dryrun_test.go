package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BartekS5/kaiten2planka/pkg/models"
)

func TestDryRunTraversesEverythingWithoutWrites(t *testing.T) {
	source := newFakeSource()
	source.users = []models.User{{ID: 1, FullName: "Alice", Email: "alice@example.com"}}
	source.spaces = []models.Space{{ID: 1, Title: "Engineering"}}
	source.boards[1] = []models.Board{{ID: 10, Title: "Sprint 1"}}
	source.columns[10] = []models.Column{{ID: 100, Title: "To Do"}}
	source.cards[10] = []models.Card{{ID: 1000, ColumnID: 100, Title: "Fix bug"}}
	source.cardDetails[1000] = &models.Card{ID: 1000, ColumnID: 100, Title: "Fix bug"}

	m, _ := newTestMigrator(source, newFakeTarget())
	m.target = NewDryRunTarget()

	report, err := m.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Counts{Created: 1}, report.Counts("user"))
	assert.Equal(t, Counts{Created: 1}, report.Counts("project"))
	assert.Equal(t, Counts{Created: 1}, report.Counts("board"))
	assert.Equal(t, Counts{Created: 1}, report.Counts("list"))
	assert.Equal(t, Counts{Created: 1}, report.Counts("card"))
}
