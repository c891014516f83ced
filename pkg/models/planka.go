package models

// Planka entity identifiers are opaque strings, unlike Kaiten's integers.

// PlankaProject is a created target project.
type PlankaProject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlankaBoard is a created target board.
type PlankaBoard struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
	Name      string `json:"name"`
	Position  int64  `json:"position"`
}

// PlankaList is a created target list.
type PlankaList struct {
	ID       string `json:"id"`
	BoardID  string `json:"boardId"`
	Name     string `json:"name"`
	Position int64  `json:"position"`
}

// PlankaCard is a created target card.
type PlankaCard struct {
	ID          string `json:"id"`
	ListID      string `json:"listId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PlankaTask is a created checklist container on a card.
type PlankaTask struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlankaTaskItem is a created checklist item.
type PlankaTaskItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsCompleted bool   `json:"isCompleted"`
}

// PlankaAttachment is a created card attachment.
type PlankaAttachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlankaComment is a created card comment.
type PlankaComment struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// PlankaLabel is a created board label.
type PlankaLabel struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// PlankaCardLink is a created external link on a card.
type PlankaCardLink struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

// PlankaUser is a target account.
type PlankaUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Create parameter shapes. These are what the mappers produce and what the
// target writer serializes; parent identifiers travel separately because
// they address the URL, not the payload.

// ProjectCreate are the fields for a new Planka project.
type ProjectCreate struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
}

// BoardCreate are the fields for a new Planka board.
type BoardCreate struct {
	Name     string `json:"name"`
	Position int64  `json:"position"`
}

// ListCreate are the fields for a new Planka list.
type ListCreate struct {
	Name     string `json:"name"`
	Position int64  `json:"position"`
	Type     string `json:"type"`
}

// CardCreate are the fields for a new Planka card.
type CardCreate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Position    int64  `json:"position"`
	Type        string `json:"type"`
	DueDate     string `json:"dueDate,omitempty"`
}

// TaskCreate are the fields for a new checklist container.
type TaskCreate struct {
	Name string `json:"name"`
}

// TaskItemCreate are the fields for a new checklist item.
type TaskItemCreate struct {
	Name        string `json:"name"`
	IsCompleted bool   `json:"isCompleted"`
	Position    int64  `json:"position"`
}

// CommentCreate are the fields for a new card comment.
type CommentCreate struct {
	Text string `json:"text"`
}

// LabelCreate are the fields for a new board label.
type LabelCreate struct {
	Name     string `json:"name"`
	Color    string `json:"color"`
	Position int64  `json:"position"`
}

// CardLinkCreate are the fields for a new external link on a card.
type CardLinkCreate struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// UserCreate are the fields for a new Planka account.
type UserCreate struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
