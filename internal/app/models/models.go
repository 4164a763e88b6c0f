package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered user. The password hash is a bcrypt verifier; the
// plaintext password is never stored or compared directly.
type Account struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Book is one catalog entry. ReviewCount and AverageScore are recomputed
// inside the review-submission transaction.
type Book struct {
	ID           uuid.UUID
	Title        string
	Author       string
	Year         int
	ISBN         string
	ReviewCount  int
	AverageScore float64
}

// Review associates one account with one book. The store enforces at most one
// review per (account, book) pair.
type Review struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	BookID    uuid.UUID
	Username  string
	Rating    float64
	Body      string
	CreatedAt time.Time
}

// BookSummary is the JSON shape served by GET /api/:isbn. Field order matches
// the rendered key order; AverageScore is pre-formatted to one decimal digit.
type BookSummary struct {
	Title        string `json:"title"`
	Author       string `json:"author"`
	Year         int    `json:"year"`
	ISBN         string `json:"isbn"`
	ReviewCount  int    `json:"review_count"`
	AverageScore string `json:"average_score"`
}

// Rating is the external aggregate fetched from Goodreads. A nil *Rating
// means "no data" and is never an error at the page level.
type Rating struct {
	Average string
	Count   int
}

// Identity is the authentication state carried by one session. The zero value
// is anonymous; a non-empty Username implies the credentials passed
// verification when the identity was written to the session.
type Identity struct {
	Username string
}

// Anonymous reports whether no user is logged in for this session.
func (i Identity) Anonymous() bool { return i.Username == "" }

// NavLink is one entry of the navigation menu.
type NavLink struct {
	Path          string
	Label         string
	LoginRequired bool
}
