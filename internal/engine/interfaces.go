// Package engine drives the migration: it pulls records from the source,
// maps them, pushes them to the target in dependency order, and records
// the cross-system ID mappings. One linear pass, no backtracking; every
// failure is recovered at the smallest phase that has a fallback.
package engine

import (
	"context"
	"io"

	"github.com/BartekS5/kaiten2planka/pkg/models"
)

// Source is the read side of the migration. A fresh call re-reads from
// the start; no cursor is persisted between calls.
type Source interface {
	Spaces(ctx context.Context) ([]models.Space, error)
	BoardsForSpace(ctx context.Context, spaceID int) ([]models.Board, error)
	ColumnsForBoard(ctx context.Context, boardID int) ([]models.Column, error)
	CardsForBoard(ctx context.Context, boardID int) ([]models.Card, error)
	Card(ctx context.Context, cardID int) (*models.Card, error)
	CardChecklists(ctx context.Context, cardID int) ([]models.Checklist, error)
	Checklist(ctx context.Context, cardID, checklistID int) (*models.Checklist, error)
	CardAttachments(ctx context.Context, cardID int) ([]models.Attachment, error)
	CardComments(ctx context.Context, cardID int) ([]models.Comment, error)
	CardExternalLinks(ctx context.Context, cardID int) ([]models.ExternalLink, error)
	Users(ctx context.Context) ([]models.User, error)
	DownloadAttachment(ctx context.Context, fileURL string) (io.ReadCloser, int64, error)
}

// Target is the write side of the migration. Creation calls return the
// created record or a classified failure; deletes treat 404 as success.
type Target interface {
	Projects(ctx context.Context) ([]models.PlankaProject, error)
	CreateProject(ctx context.Context, create models.ProjectCreate) (*models.PlankaProject, error)
	BoardsForProject(ctx context.Context, projectID string) ([]models.PlankaBoard, error)
	CreateBoard(ctx context.Context, projectID string, create models.BoardCreate) (*models.PlankaBoard, error)
	ListsForBoard(ctx context.Context, boardID string) ([]models.PlankaList, error)
	CreateList(ctx context.Context, boardID string, create models.ListCreate) (*models.PlankaList, error)
	CardsForList(ctx context.Context, listID string) ([]models.PlankaCard, error)
	CreateCard(ctx context.Context, listID string, create models.CardCreate) (*models.PlankaCard, error)
	CreateLabel(ctx context.Context, boardID string, create models.LabelCreate) (*models.PlankaLabel, error)
	AddCardLabel(ctx context.Context, cardID, labelID string) error
	CreateTask(ctx context.Context, cardID string, create models.TaskCreate) (*models.PlankaTask, error)
	CreateTaskItem(ctx context.Context, taskID string, create models.TaskItemCreate) (*models.PlankaTaskItem, error)
	CreateComment(ctx context.Context, cardID string, create models.CommentCreate) (*models.PlankaComment, error)
	CreateCardLink(ctx context.Context, cardID string, create models.CardLinkCreate) (*models.PlankaCardLink, error)
	UploadAttachment(ctx context.Context, cardID, name, filePath string) (*models.PlankaAttachment, error)
	Users(ctx context.Context) ([]models.PlankaUser, error)
	CreateUser(ctx context.Context, create models.UserCreate) (*models.PlankaUser, error)
	DeleteCard(ctx context.Context, cardID string) error
	DeleteList(ctx context.Context, listID string) error
	DeleteBoard(ctx context.Context, boardID string) error
	DeleteProject(ctx context.Context, projectID string) error
}
