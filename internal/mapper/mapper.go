// Package mapper converts Kaiten records into the field layout Planka
// expects. Every function here is pure: no I/O, deterministic output,
// documented defaults for missing source values.
package mapper

import (
	"fmt"
	"strings"

	"github.com/BartekS5/kaiten2planka/pkg/models"
	"github.com/BartekS5/kaiten2planka/pkg/utils"
)

// Kind identifies an entity kind for the generic Map dispatcher.
type Kind string

const (
	KindProject Kind = "project"
	KindBoard   Kind = "board"
	KindList    Kind = "list"
	KindCard    Kind = "card"
	KindUser    Kind = "user"
	KindLabel   Kind = "label"
)

// DefaultLabelColor is used when a Kaiten tag has no color.
const DefaultLabelColor = "#CCCCCC"

// MappingError reports a record the mapper cannot convert, either because
// the entity kind is unsupported or because the payload has the wrong
// shape. It is fatal to the single mapping call only.
type MappingError struct {
	Kind   Kind
	Reason string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("cannot map %s: %s", e.Kind, e.Reason)
}

// Map is the generic entry point: it dispatches to the per-kind mapper.
// Kinds whose target position is assigned by the orchestrator are mapped
// with position zero here; prefer the per-kind functions when the
// position matters.
func Map(kind Kind, record interface{}) (interface{}, error) {
	switch kind {
	case KindProject:
		space, ok := record.(models.Space)
		if !ok {
			return nil, shapeError(kind, record)
		}
		return Project(space), nil
	case KindBoard:
		board, ok := record.(models.Board)
		if !ok {
			return nil, shapeError(kind, record)
		}
		return Board(board, 0), nil
	case KindList:
		column, ok := record.(models.Column)
		if !ok {
			return nil, shapeError(kind, record)
		}
		return List(column, 0), nil
	case KindCard:
		card, ok := record.(models.Card)
		if !ok {
			return nil, shapeError(kind, record)
		}
		return Card(card, 0), nil
	case KindUser:
		user, ok := record.(models.User)
		if !ok {
			return nil, shapeError(kind, record)
		}
		return User(user, ""), nil
	case KindLabel:
		tag, ok := record.(models.Tag)
		if !ok {
			return nil, shapeError(kind, record)
		}
		return Label(tag, 0), nil
	default:
		return nil, &MappingError{Kind: kind, Reason: "unsupported entity kind"}
	}
}

func shapeError(kind Kind, record interface{}) error {
	return &MappingError{Kind: kind, Reason: fmt.Sprintf("unexpected payload type %T", record)}
}

// Project maps a Kaiten space to a Planka project.
func Project(space models.Space) models.ProjectCreate {
	name := space.Title
	if name == "" {
		name = fmt.Sprintf("Kaiten Space %d", space.ID)
	}
	return models.ProjectCreate{
		Name:        name,
		Description: space.Description,
		Type:        "private",
	}
}

// Board maps a Kaiten board to a Planka board. The position is assigned
// by the orchestrator (a sequential index, not Kaiten's position field,
// so target ordering is deterministic).
func Board(board models.Board, position int64) models.BoardCreate {
	name := board.Title
	if name == "" {
		name = "Unnamed Board"
	}
	return models.BoardCreate{
		Name:     name,
		Position: position,
	}
}

// List maps a Kaiten column to a Planka list.
func List(column models.Column, position int64) models.ListCreate {
	name := column.Title
	if name == "" {
		name = "Unnamed List"
	}
	return models.ListCreate{
		Name:     name,
		Position: position,
		Type:     "active",
	}
}

// Card maps a Kaiten card to a Planka card. Unparsable due dates map to
// absent rather than failing.
func Card(card models.Card, position int64) models.CardCreate {
	name := card.Title
	if name == "" {
		name = "Unnamed Card"
	}
	return models.CardCreate{
		Name:        name,
		Description: utils.OrPlaceholder(card.Description),
		Position:    position,
		Type:        "project",
		DueDate:     utils.NormalizeTimestamp(card.DueDate),
	}
}

// User maps a Kaiten user to a Planka account. The password is supplied
// by the caller; source passwords cannot be read.
func User(user models.User, password string) models.UserCreate {
	name := user.FullName
	if name == "" {
		name = "Unknown User"
	}
	return models.UserCreate{
		Name:     name,
		Email:    user.Email,
		Username: UsernameFromEmail(user.Email, user.ID),
		Password: password,
	}
}

// Label maps a Kaiten tag to a Planka board label.
func Label(tag models.Tag, position int64) models.LabelCreate {
	name := tag.Name
	if name == "" {
		name = "Unnamed Label"
	}
	color := tag.Color
	if color == "" {
		color = DefaultLabelColor
	}
	return models.LabelCreate{
		Name:     name,
		Color:    color,
		Position: position,
	}
}

// TaskItem maps a Kaiten checklist item to a Planka task item.
func TaskItem(item models.ChecklistItem, position int64) models.TaskItemCreate {
	return models.TaskItemCreate{
		Name:        utils.OrPlaceholder(item.Text),
		IsCompleted: item.Checked,
		Position:    position,
	}
}

// Comment maps a Kaiten comment to a Planka comment. Planka attributes
// every migrated comment to the service account, so the original author
// is embedded as a text prefix. Lossy, but the attribution survives.
func Comment(comment models.Comment) models.CommentCreate {
	author := comment.Author.FullName
	if author == "" {
		author = "Unknown User"
	}
	return models.CommentCreate{
		Text: fmt.Sprintf("[%s] %s", author, comment.Text),
	}
}

// Link maps a Kaiten external link to a Planka card link.
func Link(link models.ExternalLink) models.CardLinkCreate {
	name := link.Description
	if name == "" {
		name = link.URL
	}
	return models.CardLinkCreate{
		URL:  link.URL,
		Name: name,
	}
}

// UsernameFromEmail derives a Planka username from the email local part,
// keeping only the characters Planka accepts. A user without a usable
// email gets a stable fallback from the Kaiten ID.
func UsernameFromEmail(email string, kaitenID int) string {
	local := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		local = email[:at]
	}
	var b strings.Builder
	for _, r := range strings.ToLower(local) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return fmt.Sprintf("user_%d", kaitenID)
	}
	return b.String()
}
