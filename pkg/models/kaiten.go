// Package models defines the entity shapes exchanged with both APIs:
// the records read from Kaiten and the records created in Planka.
// Decoding is permissive: only the fields the migration depends on are
// declared, unknown server fields are ignored.
package models

// Space is a top-level Kaiten container of boards.
type Space struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Board is a Kaiten board inside a space.
type Board struct {
	ID          int     `json:"id"`
	SpaceID     int     `json:"space_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Position    float64 `json:"position"`
}

// Column is a lane on a Kaiten board. Cards reference it by column_id.
type Column struct {
	ID       int     `json:"id"`
	BoardID  int     `json:"board_id"`
	Title    string  `json:"title"`
	Position float64 `json:"position"`
}

// Card is the atomic Kaiten work item.
type Card struct {
	ID          int    `json:"id"`
	BoardID     int    `json:"board_id"`
	ColumnID    int    `json:"column_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Tags        []Tag  `json:"tags"`
}

// Checklist groups checkable items on a card. The list endpoint returns
// summaries only; Items is populated by the checklist detail endpoint.
type Checklist struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Items []ChecklistItem `json:"items"`
}

// ChecklistItem is a single checkable entry.
type ChecklistItem struct {
	ID        int     `json:"id"`
	Text      string  `json:"text"`
	Checked   bool    `json:"checked"`
	SortOrder float64 `json:"sort_order"`
}

// Attachment is a file attached to a Kaiten card.
type Attachment struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// Comment is a card comment. Author is embedded by the Kaiten API.
type Comment struct {
	ID      int    `json:"id"`
	Text    string `json:"text"`
	Created string `json:"created"`
	Author  User   `json:"author"`
}

// ExternalLink is a URL attached to a Kaiten card.
type ExternalLink struct {
	ID          int    `json:"id"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// User is a Kaiten account. Email is the cross-system dedup key.
type User struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// Tag is a Kaiten card tag; tags become Planka board labels.
type Tag struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
