package threads

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophforum/internal/server/models"
)

// ErrInvalidCursor is returned for cursors this package did not produce.
var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor points just past a thread in a listing.
type Cursor struct {
	LastPostedAt time.Time
	ID           string
}

// CursorAfter returns the cursor that continues a listing after t.
func CursorAfter(t models.Thread) Cursor {
	return Cursor{LastPostedAt: t.LastPostedAt, ID: t.ID}
}

// Encode renders c as an opaque URL-safe token.
func (c Cursor) Encode() string {
	raw := strconv.FormatInt(c.LastPostedAt.UnixMicro(), 10) + ":" + c.ID
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor parses a token made by Encode. The empty token decodes to
// nil, meaning "from the start".
func DecodeCursor(token string) (*Cursor, error) {
	if token == "" {
		return nil, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrInvalidCursor
	}
	ts, id, ok := strings.Cut(string(raw), ":")
	if !ok || id == "" {
		return nil, ErrInvalidCursor
	}
	us, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return nil, ErrInvalidCursor
	}
	return &Cursor{LastPostedAt: time.UnixMicro(us).UTC(), ID: id}, nil
}
