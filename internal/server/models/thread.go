package models

import "time"

// Thread is a discussion started in a category. StarterID is nil once the
// starter's account has been deleted; StarterName is kept.
type Thread struct {
	ID           string
	CategoryID   string
	Title        string
	Slug         string
	StarterID    *string
	StarterName  string
	Replies      int64
	IsClosed     bool
	StartedAt    time.Time
	LastPostedAt time.Time
}

// ThreadPage is one page of a keyset-paginated thread listing.
type ThreadPage struct {
	Items      []Thread
	NextCursor string
}

type Post struct {
	ID         string
	ThreadID   string
	PosterID   *string
	PosterName string
	Markup     string
	PostedAt   time.Time
}
