package engine

import (
	"context"

	"github.com/google/uuid"

	"github.com/BartekS5/kaiten2planka/pkg/models"
)

// DryRunTarget is a Target that performs no HTTP calls at all: creations
// return synthetic records with freshly minted IDs, listings are empty,
// deletions succeed. Wiring it in place of the real client lets the full
// traversal and report run without touching the target system.
type DryRunTarget struct{}

var _ Target = (*DryRunTarget)(nil)

// NewDryRunTarget returns a write-free Target.
func NewDryRunTarget() *DryRunTarget {
	return &DryRunTarget{}
}

func (*DryRunTarget) Projects(context.Context) ([]models.PlankaProject, error) {
	return nil, nil
}

func (*DryRunTarget) CreateProject(_ context.Context, create models.ProjectCreate) (*models.PlankaProject, error) {
	return &models.PlankaProject{ID: uuid.NewString(), Name: create.Name}, nil
}

func (*DryRunTarget) BoardsForProject(context.Context, string) ([]models.PlankaBoard, error) {
	return nil, nil
}

func (*DryRunTarget) CreateBoard(_ context.Context, projectID string, create models.BoardCreate) (*models.PlankaBoard, error) {
	return &models.PlankaBoard{ID: uuid.NewString(), ProjectID: projectID, Name: create.Name, Position: create.Position}, nil
}

func (*DryRunTarget) ListsForBoard(context.Context, string) ([]models.PlankaList, error) {
	return nil, nil
}

func (*DryRunTarget) CreateList(_ context.Context, boardID string, create models.ListCreate) (*models.PlankaList, error) {
	return &models.PlankaList{ID: uuid.NewString(), BoardID: boardID, Name: create.Name, Position: create.Position}, nil
}

func (*DryRunTarget) CardsForList(context.Context, string) ([]models.PlankaCard, error) {
	return nil, nil
}

func (*DryRunTarget) CreateCard(_ context.Context, listID string, create models.CardCreate) (*models.PlankaCard, error) {
	return &models.PlankaCard{ID: uuid.NewString(), ListID: listID, Name: create.Name, Description: create.Description}, nil
}

func (*DryRunTarget) CreateLabel(_ context.Context, _ string, create models.LabelCreate) (*models.PlankaLabel, error) {
	return &models.PlankaLabel{ID: uuid.NewString(), Name: create.Name, Color: create.Color}, nil
}

func (*DryRunTarget) AddCardLabel(context.Context, string, string) error {
	return nil
}

func (*DryRunTarget) CreateTask(_ context.Context, _ string, create models.TaskCreate) (*models.PlankaTask, error) {
	return &models.PlankaTask{ID: uuid.NewString(), Name: create.Name}, nil
}

func (*DryRunTarget) CreateTaskItem(_ context.Context, _ string, create models.TaskItemCreate) (*models.PlankaTaskItem, error) {
	return &models.PlankaTaskItem{ID: uuid.NewString(), Name: create.Name, IsCompleted: create.IsCompleted}, nil
}

func (*DryRunTarget) CreateComment(_ context.Context, _ string, create models.CommentCreate) (*models.PlankaComment, error) {
	return &models.PlankaComment{ID: uuid.NewString(), Text: create.Text}, nil
}

func (*DryRunTarget) CreateCardLink(_ context.Context, _ string, create models.CardLinkCreate) (*models.PlankaCardLink, error) {
	return &models.PlankaCardLink{ID: uuid.NewString(), URL: create.URL, Name: create.Name}, nil
}

func (*DryRunTarget) UploadAttachment(_ context.Context, _ string, name, _ string) (*models.PlankaAttachment, error) {
	return &models.PlankaAttachment{ID: uuid.NewString(), Name: name}, nil
}

func (*DryRunTarget) Users(context.Context) ([]models.PlankaUser, error) {
	return nil, nil
}

func (*DryRunTarget) CreateUser(_ context.Context, create models.UserCreate) (*models.PlankaUser, error) {
	return &models.PlankaUser{ID: uuid.NewString(), Name: create.Name, Username: create.Username, Email: create.Email}, nil
}

func (*DryRunTarget) DeleteCard(context.Context, string) error    { return nil }
func (*DryRunTarget) DeleteList(context.Context, string) error    { return nil }
func (*DryRunTarget) DeleteBoard(context.Context, string) error   { return nil }
func (*DryRunTarget) DeleteProject(context.Context, string) error { return nil }
