package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"

	"github.com/BartekS5/kaiten2planka/internal/config"
	"github.com/BartekS5/kaiten2planka/internal/planka"
	"github.com/BartekS5/kaiten2planka/pkg/models"
)

// fakeClock records every wait and returns immediately.
type fakeClock struct {
	waits []time.Duration
}

func (c *fakeClock) Now() time.Time { return time.Unix(1700000000, 0) }

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.waits = append(c.waits, d)
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	f()
	return nil
}

func (c *fakeClock) NewTimer(d time.Duration) clock.Timer {
	panic("NewTimer not used in tests")
}

// fakeSource serves canned Kaiten data.
type fakeSource struct {
	spaces          []models.Space
	boards          map[int][]models.Board
	columns         map[int][]models.Column
	cards           map[int][]models.Card
	cardDetails     map[int]*models.Card
	checklists      map[int][]models.Checklist
	checklistDetail map[int]*models.Checklist
	attachments     map[int][]models.Attachment
	comments        map[int][]models.Comment
	links           map[int][]models.ExternalLink
	users           []models.User
	fileContent     map[string]string
	fileDeclared    map[string]int64
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		boards:          map[int][]models.Board{},
		columns:         map[int][]models.Column{},
		cards:           map[int][]models.Card{},
		cardDetails:     map[int]*models.Card{},
		checklists:      map[int][]models.Checklist{},
		checklistDetail: map[int]*models.Checklist{},
		attachments:     map[int][]models.Attachment{},
		comments:        map[int][]models.Comment{},
		links:           map[int][]models.ExternalLink{},
		fileContent:     map[string]string{},
		fileDeclared:    map[string]int64{},
	}
}

func (s *fakeSource) Spaces(context.Context) ([]models.Space, error) { return s.spaces, nil }

func (s *fakeSource) BoardsForSpace(_ context.Context, spaceID int) ([]models.Board, error) {
	return s.boards[spaceID], nil
}

func (s *fakeSource) ColumnsForBoard(_ context.Context, boardID int) ([]models.Column, error) {
	return s.columns[boardID], nil
}

func (s *fakeSource) CardsForBoard(_ context.Context, boardID int) ([]models.Card, error) {
	return s.cards[boardID], nil
}

func (s *fakeSource) Card(_ context.Context, cardID int) (*models.Card, error) {
	if detail, ok := s.cardDetails[cardID]; ok {
		return detail, nil
	}
	return nil, errors.NotFoundf("card %d", cardID)
}

func (s *fakeSource) CardChecklists(_ context.Context, cardID int) ([]models.Checklist, error) {
	return s.checklists[cardID], nil
}

func (s *fakeSource) Checklist(_ context.Context, _, checklistID int) (*models.Checklist, error) {
	if detail, ok := s.checklistDetail[checklistID]; ok {
		return detail, nil
	}
	return nil, errors.NotFoundf("checklist %d", checklistID)
}

func (s *fakeSource) CardAttachments(_ context.Context, cardID int) ([]models.Attachment, error) {
	return s.attachments[cardID], nil
}

func (s *fakeSource) CardComments(_ context.Context, cardID int) ([]models.Comment, error) {
	return s.comments[cardID], nil
}

func (s *fakeSource) CardExternalLinks(_ context.Context, cardID int) ([]models.ExternalLink, error) {
	return s.links[cardID], nil
}

func (s *fakeSource) Users(context.Context) ([]models.User, error) { return s.users, nil }

func (s *fakeSource) DownloadAttachment(_ context.Context, fileURL string) (io.ReadCloser, int64, error) {
	content, ok := s.fileContent[fileURL]
	if !ok {
		return nil, 0, errors.NotFoundf("file %s", fileURL)
	}
	declared := int64(len(content))
	if d, ok := s.fileDeclared[fileURL]; ok {
		declared = d
	}
	return io.NopCloser(strings.NewReader(content)), declared, nil
}

type createdBoard struct {
	projectID string
	id        string
	create    models.BoardCreate
}

type createdList struct {
	boardID string
	id      string
	create  models.ListCreate
}

type createdCard struct {
	listID string
	id     string
	create models.CardCreate
}

type createdItem struct {
	taskID string
	create models.TaskItemCreate
}

type upload struct {
	cardID        string
	name          string
	path          string
	fileWasOnDisk bool
}

// fakeTarget records every write and can be preloaded with existing state
// for cleanup scenarios. Failure knobs inject classified write failures.
type fakeTarget struct {
	nextID int

	existingUsers   []models.PlankaUser
	projects        []models.PlankaProject
	boardsByProject map[string][]models.PlankaBoard
	listsByBoard    map[string][]models.PlankaList
	cardsByList     map[string][]models.PlankaCard

	failUserEmails        map[string]bool
	failListNames         map[string]bool
	failCommentTexts      map[string]bool
	failItemNames         map[string]bool
	forbiddenLists        map[string]bool
	projectDeleteFailures map[string]int

	createdUsers    []models.UserCreate
	createdProjects []models.PlankaProject
	createdBoards   []createdBoard
	createdLists    []createdList
	createdCards    []createdCard
	createdLabels   []models.LabelCreate
	cardLabels      [][2]string
	createdTasks    []models.TaskCreate
	createdItems    []createdItem
	createdComments []models.CommentCreate
	createdLinks    []models.CardLinkCreate
	uploads         []upload
	deleted         []string
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{
		boardsByProject:       map[string][]models.PlankaBoard{},
		listsByBoard:          map[string][]models.PlankaList{},
		cardsByList:           map[string][]models.PlankaCard{},
		failUserEmails:        map[string]bool{},
		failListNames:         map[string]bool{},
		failCommentTexts:      map[string]bool{},
		failItemNames:         map[string]bool{},
		forbiddenLists:        map[string]bool{},
		projectDeleteFailures: map[string]int{},
	}
}

func (t *fakeTarget) genID(prefix string) string {
	t.nextID++
	return fmt.Sprintf("%s-%d", prefix, t.nextID)
}

func validationErr(op string) error {
	return errors.NewNotValid(&planka.APIError{StatusCode: 422, Body: "injected failure"}, op)
}

func (t *fakeTarget) Projects(context.Context) ([]models.PlankaProject, error) {
	return t.projects, nil
}

func (t *fakeTarget) CreateProject(_ context.Context, create models.ProjectCreate) (*models.PlankaProject, error) {
	project := models.PlankaProject{ID: t.genID("project"), Name: create.Name}
	t.createdProjects = append(t.createdProjects, project)
	return &project, nil
}

func (t *fakeTarget) BoardsForProject(_ context.Context, projectID string) ([]models.PlankaBoard, error) {
	return t.boardsByProject[projectID], nil
}

func (t *fakeTarget) CreateBoard(_ context.Context, projectID string, create models.BoardCreate) (*models.PlankaBoard, error) {
	board := models.PlankaBoard{ID: t.genID("board"), ProjectID: projectID, Name: create.Name, Position: create.Position}
	t.createdBoards = append(t.createdBoards, createdBoard{projectID: projectID, id: board.ID, create: create})
	return &board, nil
}

func (t *fakeTarget) ListsForBoard(_ context.Context, boardID string) ([]models.PlankaList, error) {
	return t.listsByBoard[boardID], nil
}

func (t *fakeTarget) CreateList(_ context.Context, boardID string, create models.ListCreate) (*models.PlankaList, error) {
	if t.failListNames[create.Name] {
		return nil, validationErr("create list")
	}
	list := models.PlankaList{ID: t.genID("list"), BoardID: boardID, Name: create.Name, Position: create.Position}
	t.createdLists = append(t.createdLists, createdList{boardID: boardID, id: list.ID, create: create})
	return &list, nil
}

func (t *fakeTarget) CardsForList(_ context.Context, listID string) ([]models.PlankaCard, error) {
	return t.cardsByList[listID], nil
}

func (t *fakeTarget) CreateCard(_ context.Context, listID string, create models.CardCreate) (*models.PlankaCard, error) {
	card := models.PlankaCard{ID: t.genID("card"), ListID: listID, Name: create.Name, Description: create.Description}
	t.createdCards = append(t.createdCards, createdCard{listID: listID, id: card.ID, create: create})
	return &card, nil
}

func (t *fakeTarget) CreateLabel(_ context.Context, _ string, create models.LabelCreate) (*models.PlankaLabel, error) {
	t.createdLabels = append(t.createdLabels, create)
	return &models.PlankaLabel{ID: t.genID("label"), Name: create.Name, Color: create.Color}, nil
}

func (t *fakeTarget) AddCardLabel(_ context.Context, cardID, labelID string) error {
	t.cardLabels = append(t.cardLabels, [2]string{cardID, labelID})
	return nil
}

func (t *fakeTarget) CreateTask(_ context.Context, _ string, create models.TaskCreate) (*models.PlankaTask, error) {
	t.createdTasks = append(t.createdTasks, create)
	return &models.PlankaTask{ID: t.genID("task"), Name: create.Name}, nil
}

func (t *fakeTarget) CreateTaskItem(_ context.Context, taskID string, create models.TaskItemCreate) (*models.PlankaTaskItem, error) {
	if t.failItemNames[create.Name] {
		return nil, validationErr("create task item")
	}
	t.createdItems = append(t.createdItems, createdItem{taskID: taskID, create: create})
	return &models.PlankaTaskItem{ID: t.genID("item"), Name: create.Name, IsCompleted: create.IsCompleted}, nil
}

func (t *fakeTarget) CreateComment(_ context.Context, _ string, create models.CommentCreate) (*models.PlankaComment, error) {
	if t.failCommentTexts[create.Text] {
		return nil, validationErr("create comment")
	}
	t.createdComments = append(t.createdComments, create)
	return &models.PlankaComment{ID: t.genID("comment"), Text: create.Text}, nil
}

func (t *fakeTarget) CreateCardLink(_ context.Context, _ string, create models.CardLinkCreate) (*models.PlankaCardLink, error) {
	t.createdLinks = append(t.createdLinks, create)
	return &models.PlankaCardLink{ID: t.genID("link"), URL: create.URL, Name: create.Name}, nil
}

func (t *fakeTarget) UploadAttachment(_ context.Context, cardID, name, filePath string) (*models.PlankaAttachment, error) {
	_, statErr := os.Stat(filePath)
	t.uploads = append(t.uploads, upload{
		cardID:        cardID,
		name:          name,
		path:          filePath,
		fileWasOnDisk: statErr == nil,
	})
	return &models.PlankaAttachment{ID: t.genID("attachment"), Name: name}, nil
}

func (t *fakeTarget) Users(context.Context) ([]models.PlankaUser, error) {
	return t.existingUsers, nil
}

func (t *fakeTarget) CreateUser(_ context.Context, create models.UserCreate) (*models.PlankaUser, error) {
	if t.failUserEmails[create.Email] {
		return nil, validationErr("create user")
	}
	t.createdUsers = append(t.createdUsers, create)
	return &models.PlankaUser{ID: t.genID("user"), Name: create.Name, Username: create.Username, Email: create.Email}, nil
}

func (t *fakeTarget) DeleteCard(_ context.Context, cardID string) error {
	t.deleted = append(t.deleted, "card:"+cardID)
	return nil
}

func (t *fakeTarget) DeleteList(_ context.Context, listID string) error {
	if t.forbiddenLists[listID] {
		return errors.NewForbidden(&planka.APIError{StatusCode: 403, Body: "forbidden"}, "delete list")
	}
	t.deleted = append(t.deleted, "list:"+listID)
	return nil
}

func (t *fakeTarget) DeleteBoard(_ context.Context, boardID string) error {
	t.deleted = append(t.deleted, "board:"+boardID)
	return nil
}

func (t *fakeTarget) DeleteProject(_ context.Context, projectID string) error {
	if t.projectDeleteFailures[projectID] > 0 {
		t.projectDeleteFailures[projectID]--
		return errors.NewNotValid(&planka.APIError{StatusCode: 422, Body: "Must not have boards"}, "delete project")
	}
	t.deleted = append(t.deleted, "project:"+projectID)
	return nil
}

// newTestMigrator wires a migrator with a fake clock and small opts.
func newTestMigrator(source *fakeSource, target *fakeTarget) (*Migrator, *fakeClock) {
	opts := config.DefaultOptions()
	clk := &fakeClock{}
	m := New(source, target, NewIDTable(), opts)
	m.Clock = clk
	return m, clk
}

var _ Source = (*fakeSource)(nil)
var _ Target = (*fakeTarget)(nil)
