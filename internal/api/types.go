package api

import (
	"time"

	"github.com/dmitrijs2005/gophforum/internal/fielderrors"
)

type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	IsModerator bool      `json:"is_moderator"`
	JoinedAt    time.Time `json:"joined_at"`
}

type Category struct {
	ID        string `json:"id"`
	ParentID  string `json:"parent_id,omitempty"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Color     string `json:"color,omitempty"`
	Icon      string `json:"icon,omitempty"`
	BannerURL string `json:"banner_url,omitempty"`
	Threads   int64  `json:"threads"`
	Posts     int64  `json:"posts"`
	IsClosed  bool   `json:"is_closed"`
	Depth     int    `json:"depth"`
}

type Thread struct {
	ID           string    `json:"id"`
	CategoryID   string    `json:"category_id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	StarterName  string    `json:"starter_name"`
	Replies      int64     `json:"replies"`
	IsClosed     bool      `json:"is_closed"`
	StartedAt    time.Time `json:"started_at"`
	LastPostedAt time.Time `json:"last_posted_at"`
}

type Post struct {
	ID         string    `json:"id"`
	ThreadID   string    `json:"thread_id"`
	PosterName string    `json:"poster_name"`
	Markup     string    `json:"markup"`
	PostedAt   time.Time `json:"posted_at"`
}

// Settings are the forum limits a client needs to validate input locally.
type Settings struct {
	ForumName            string `json:"forum_name"`
	BulkActionLimit      int    `json:"bulk_action_limit"`
	PasswordMinLength    int    `json:"password_min_length"`
	PasswordMaxLength    int    `json:"password_max_length"`
	PostMinLength        int    `json:"post_min_length"`
	ThreadTitleMinLength int    `json:"thread_title_min_length"`
	ThreadTitleMaxLength int    `json:"thread_title_max_length"`
	UsernameMinLength    int    `json:"username_min_length"`
	UsernameMaxLength    int    `json:"username_max_length"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type SettingsRequest struct{}

type SettingsResponse struct {
	Settings Settings `json:"settings"`
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User         *User                    `json:"user,omitempty"`
	AccessToken  string                   `json:"access_token,omitempty"`
	RefreshToken string                   `json:"refresh_token,omitempty"`
	Errors       []fielderrors.FieldError `json:"errors,omitempty"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	User   *User                    `json:"user,omitempty"`
	Errors []fielderrors.FieldError `json:"errors,omitempty"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutResponse struct{}

type CategoriesRequest struct{}

type CategoriesResponse struct {
	Categories []Category `json:"categories"`
}

// ThreadsRequest pages through threads. Category is a slug; empty lists
// every category. Cursor is the NextCursor of the previous page.
type ThreadsRequest struct {
	Category string `json:"category,omitempty"`
	Cursor   string `json:"cursor,omitempty"`
}

type ThreadsResponse struct {
	Threads    []Thread `json:"threads"`
	NextCursor string   `json:"next_cursor,omitempty"`
}

type ThreadRequest struct {
	ID   string `json:"id"`
	Page int    `json:"page,omitempty"`
}

type ThreadResponse struct {
	Thread Thread `json:"thread"`
	Posts  []Post `json:"posts"`
}

type PostThreadRequest struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Markup   string `json:"markup"`
	IsClosed bool   `json:"is_closed,omitempty"`
}

type PostThreadResponse struct {
	Thread *Thread                  `json:"thread,omitempty"`
	Post   *Post                    `json:"post,omitempty"`
	Errors []fielderrors.FieldError `json:"errors,omitempty"`
}

type PostReplyRequest struct {
	Thread string `json:"thread"`
	Markup string `json:"markup"`
}

type PostReplyResponse struct {
	Thread *Thread                  `json:"thread,omitempty"`
	Post   *Post                    `json:"post,omitempty"`
	Errors []fielderrors.FieldError `json:"errors,omitempty"`
}

// BulkThreadsRequest names the threads a close or open action applies to.
type BulkThreadsRequest struct {
	Threads []string `json:"threads"`
}

type BulkThreadsResponse struct {
	Threads []Thread                 `json:"threads,omitempty"`
	Errors  []fielderrors.FieldError `json:"errors,omitempty"`
}

type MoveThreadsRequest struct {
	Threads  []string `json:"threads"`
	Category string   `json:"category"`
}

type DeleteThreadsResponse struct {
	Deleted []string                 `json:"deleted,omitempty"`
	Errors  []fielderrors.FieldError `json:"errors,omitempty"`
}
