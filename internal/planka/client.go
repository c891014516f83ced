// Package planka implements the write side of the migration: typed,
// dependency-explicit creation and deletion calls against the Planka REST
// API. Every failure is classified by HTTP status (see failure.go); no
// call panics or returns an untyped error for a server-side refusal.
package planka

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/juju/errors"

	"github.com/BartekS5/kaiten2planka/pkg/models"
)

// Client talks to the Planka API.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// NewClient creates a Planka client. The URL should point at the API root
// (e.g. https://planka.example.com/api).
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    httpClient,
	}
}

// itemEnvelope wraps single-record Planka responses.
type itemEnvelope struct {
	Item json.RawMessage `json:"item"`
}

// itemsEnvelope wraps collection Planka responses.
type itemsEnvelope struct {
	Items json.RawMessage `json:"items"`
}

// do performs one request. A nil payload sends no body; a nil out discards
// the response body. Non-2xx statuses come back as classified failures.
func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return errors.Annotatef(err, "%s %s: encoding payload", method, path)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return errors.Trace(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, fmt.Sprintf("%s %s", method, path), out)
}

// send executes a prepared request and decodes the response into out.
func (c *Client) send(req *http.Request, op string, out interface{}) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return errors.Annotate(err, op)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return classifyResponse(op, resp.StatusCode, msg)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Annotatef(err, "%s: decoding response", op)
	}
	return nil
}

// postItem creates a record and decodes the {item: ...} envelope into out.
func (c *Client) postItem(ctx context.Context, path string, payload, out interface{}) error {
	var env itemEnvelope
	if err := c.do(ctx, http.MethodPost, path, payload, &env); err != nil {
		return err
	}
	if len(env.Item) == 0 {
		return errors.NotValidf("POST %s: response without item", path)
	}
	return errors.Trace(json.Unmarshal(env.Item, out))
}

// getItems lists records and decodes the {items: [...]} envelope into out.
func (c *Client) getItems(ctx context.Context, path string, out interface{}) error {
	var env itemsEnvelope
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return err
	}
	if len(env.Items) == 0 {
		return nil
	}
	return errors.Trace(json.Unmarshal(env.Items, out))
}

// Projects lists all target projects.
func (c *Client) Projects(ctx context.Context) ([]models.PlankaProject, error) {
	var projects []models.PlankaProject
	err := c.getItems(ctx, "/projects", &projects)
	return projects, err
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, create models.ProjectCreate) (*models.PlankaProject, error) {
	var project models.PlankaProject
	if err := c.postItem(ctx, "/projects", create, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// BoardsForProject lists the boards of one project.
func (c *Client) BoardsForProject(ctx context.Context, projectID string) ([]models.PlankaBoard, error) {
	var boards []models.PlankaBoard
	err := c.getItems(ctx, "/projects/"+projectID+"/boards", &boards)
	return boards, err
}

// CreateBoard creates a board inside a project.
func (c *Client) CreateBoard(ctx context.Context, projectID string, create models.BoardCreate) (*models.PlankaBoard, error) {
	var board models.PlankaBoard
	if err := c.postItem(ctx, "/projects/"+projectID+"/boards", create, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

// ListsForBoard lists the lists of one board.
func (c *Client) ListsForBoard(ctx context.Context, boardID string) ([]models.PlankaList, error) {
	var lists []models.PlankaList
	err := c.getItems(ctx, "/boards/"+boardID+"/lists", &lists)
	return lists, err
}

// CreateList creates a list on a board.
func (c *Client) CreateList(ctx context.Context, boardID string, create models.ListCreate) (*models.PlankaList, error) {
	var list models.PlankaList
	if err := c.postItem(ctx, "/boards/"+boardID+"/lists", create, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CardsForList lists the cards of one list.
func (c *Client) CardsForList(ctx context.Context, listID string) ([]models.PlankaCard, error) {
	var cards []models.PlankaCard
	err := c.getItems(ctx, "/lists/"+listID+"/cards", &cards)
	return cards, err
}

// CreateCard creates a card in a list. An empty description is replaced
// with a single space; the API rejects empty strings for that field.
func (c *Client) CreateCard(ctx context.Context, listID string, create models.CardCreate) (*models.PlankaCard, error) {
	if create.Description == "" {
		create.Description = " "
	}
	var card models.PlankaCard
	if err := c.postItem(ctx, "/lists/"+listID+"/cards", create, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// CreateLabel creates a label on a board.
func (c *Client) CreateLabel(ctx context.Context, boardID string, create models.LabelCreate) (*models.PlankaLabel, error) {
	var label models.PlankaLabel
	if err := c.postItem(ctx, "/boards/"+boardID+"/labels", create, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

// AddCardLabel attaches an existing board label to a card.
func (c *Client) AddCardLabel(ctx context.Context, cardID, labelID string) error {
	payload := map[string]string{"labelId": labelID}
	return c.do(ctx, http.MethodPost, "/cards/"+cardID+"/labels", payload, nil)
}

// CreateTask creates a checklist container on a card.
func (c *Client) CreateTask(ctx context.Context, cardID string, create models.TaskCreate) (*models.PlankaTask, error) {
	var task models.PlankaTask
	if err := c.postItem(ctx, "/cards/"+cardID+"/tasks", create, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTaskItem creates one checklist item in a task.
func (c *Client) CreateTaskItem(ctx context.Context, taskID string, create models.TaskItemCreate) (*models.PlankaTaskItem, error) {
	var item models.PlankaTaskItem
	if err := c.postItem(ctx, "/tasks/"+taskID+"/task-items", create, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateComment creates a comment on a card.
func (c *Client) CreateComment(ctx context.Context, cardID string, create models.CommentCreate) (*models.PlankaComment, error) {
	var comment models.PlankaComment
	if err := c.postItem(ctx, "/cards/"+cardID+"/comments", create, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// CreateCardLink creates an external link on a card.
func (c *Client) CreateCardLink(ctx context.Context, cardID string, create models.CardLinkCreate) (*models.PlankaCardLink, error) {
	var link models.PlankaCardLink
	if err := c.postItem(ctx, "/cards/"+cardID+"/links", create, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// Users lists all target accounts.
func (c *Client) Users(ctx context.Context) ([]models.PlankaUser, error) {
	var users []models.PlankaUser
	err := c.getItems(ctx, "/users", &users)
	return users, err
}

// CreateUser creates a target account.
func (c *Client) CreateUser(ctx context.Context, create models.UserCreate) (*models.PlankaUser, error) {
	var user models.PlankaUser
	if err := c.postItem(ctx, "/users", create, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
