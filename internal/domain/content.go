package domain

import "time"

// Blog is a published article. Blogs are the only entity projected into the
// vector index; title and content drive the indexed text.
type Blog struct {
	ID        int64
	Title     string
	Slug      string
	Author    string
	Category  string
	Thumbnail string
	Content   string // rich text (HTML)
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Blog status values.
const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
	BlogStatusArchived  = "archived"
)

// Project is a portfolio entry.
type Project struct {
	ID        int64
	Title     string
	Year      string
	Area      string
	Content   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Offering is a service the company sells.
type Offering struct {
	ID          int64
	Icon        string
	Title       string
	Description string
	Features    string
	Price       string
}

// Contact is an inbound contact-form submission.
type Contact struct {
	ID        int64
	Name      string
	Phone     string
	Email     string
	ServiceID int64
	Message   string
	Status    string
	Note      string
	HandledBy string
	HandledAt time.Time
	CreatedAt time.Time
}

// Contact status values.
const (
	ContactStatusPending = "pending"
	ContactStatusHandled = "handled"
	ContactStatusClosed  = "closed"
)
