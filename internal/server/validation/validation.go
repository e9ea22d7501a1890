// Package validation checks mutation input and records failures as
// location-scoped field errors.
//
// Every check appends to a *fielderrors.List and reports whether the value
// passed, so callers can skip dependent checks for an input that already
// failed.
package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophforum/internal/fielderrors"
	"github.com/dmitrijs2005/gophforum/internal/server/models"
	"github.com/google/uuid"
)

// Error codes, re-exported from fielderrors.
const (
	CodeAllFieldsRequired  = fielderrors.CodeAllFieldsRequired
	CodeInvalidCredentials = fielderrors.CodeInvalidCredentials
	CodeMinLength          = fielderrors.CodeMinLength
	CodeMaxLength          = fielderrors.CodeMaxLength
	CodeUsername           = fielderrors.CodeUsername
	CodeUsernameTaken      = fielderrors.CodeUsernameTaken
	CodeEmail              = fielderrors.CodeEmail
	CodeEmailTaken         = fielderrors.CodeEmailTaken
	CodeThreadTitle        = fielderrors.CodeThreadTitle
	CodeMinItems           = fielderrors.CodeMinItems
	CodeMaxItems           = fielderrors.CodeMaxItems
	CodeUUID               = fielderrors.CodeUUID

	CodeNotAuthorized = fielderrors.CodeNotAuthorized
	CodeNotModerator  = fielderrors.CodeNotModerator

	CodeCategoryNotFound = fielderrors.CodeCategoryNotFound
	CodeCategoryClosed   = fielderrors.CodeCategoryClosed
	CodeCategorySame     = fielderrors.CodeCategorySame
	CodeThreadNotFound   = fielderrors.CodeThreadNotFound
	CodeThreadClosed     = fielderrors.CodeThreadClosed
)

var usernameRe = regexp.MustCompile(`^[0-9A-Za-z_]+$`)

func loc(field string) []string {
	return strings.Split(field, ".")
}

// Required adds one root error when any of values is blank.
func Required(l *fielderrors.List, values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			l.AddRoot(CodeAllFieldsRequired, "fill out all fields")
			return false
		}
	}
	return true
}

// Length checks the rune length of value against [min, max]. A max of 0
// means unbounded.
func Length(l *fielderrors.List, field, value string, min, max int) bool {
	n := utf8.RuneCountInString(value)
	if n < min {
		l.Add(loc(field), CodeMinLength, fmt.Sprintf("ensure this value has at least %d characters", min))
		return false
	}
	if max > 0 && n > max {
		l.Add(loc(field), CodeMaxLength, fmt.Sprintf("ensure this value has at most %d characters", max))
		return false
	}
	return true
}

func Username(l *fielderrors.List, field, value string, min, max int) bool {
	if !Length(l, field, value, min, max) {
		return false
	}
	if !usernameRe.MatchString(value) {
		l.Add(loc(field), CodeUsername, "username can only contain latin letters, digits and underscores")
		return false
	}
	return true
}

func Email(l *fielderrors.List, field, value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || !strings.Contains(value[strings.LastIndex(value, "@")+1:], ".") {
		l.Add(loc(field), CodeEmail, "value is not a valid email address")
		return false
	}
	return true
}

// ThreadTitle checks length and that the title has at least one letter or
// digit.
func ThreadTitle(l *fielderrors.List, field, value string, min, max int) bool {
	if !Length(l, field, value, min, max) {
		return false
	}
	if strings.IndexFunc(value, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) < 0 {
		l.Add(loc(field), CodeThreadTitle, "thread title must contain alphanumeric characters")
		return false
	}
	return true
}

func UUID(l *fielderrors.List, field, value string) bool {
	if _, err := uuid.Parse(value); err != nil {
		l.Add(loc(field), CodeUUID, "value is not a valid uuid")
		return false
	}
	return true
}

// IDList checks the item count against [1, max] at field and then each
// item at field.<index>. It returns the valid ids in input order with
// duplicates removed.
func IDList(l *fielderrors.List, field string, ids []string, max int) []string {
	if len(ids) == 0 {
		l.Add(loc(field), CodeMinItems, "ensure this value has at least 1 items")
		return nil
	}
	if max > 0 && len(ids) > max {
		l.Add(loc(field), CodeMaxItems, fmt.Sprintf("ensure this value has at most %d items", max))
		return nil
	}

	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for i, id := range ids {
		if !UUID(l, ItemField(field, i), id) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ItemField returns the location of the i-th element of a list field.
func ItemField(field string, i int) string {
	return field + "." + strconv.Itoa(i)
}

// Authorized adds a root error when there is no signed-in user.
func Authorized(l *fielderrors.List, user *models.User) bool {
	if user == nil {
		l.AddRoot(CodeNotAuthorized, "authorization is required")
		return false
	}
	return true
}

// Moderator adds a root error when user may not moderate. A missing user
// gets the not-authorized error instead.
func Moderator(l *fielderrors.List, user *models.User) bool {
	if !Authorized(l, user) {
		return false
	}
	if !user.CanModerate() {
		l.AddRoot(CodeNotModerator, "moderator permission is required")
		return false
	}
	return true
}

// CategoryOpen reports the category as missing when cat is nil, and as
// closed when it is closed and user may not moderate.
func CategoryOpen(l *fielderrors.List, field string, cat *models.Category, user *models.User) bool {
	if cat == nil {
		l.Add(loc(field), CodeCategoryNotFound, "category could not be found")
		return false
	}
	if cat.IsClosed && !user.CanModerate() {
		l.Add(loc(field), CodeCategoryClosed, "category is closed")
		return false
	}
	return true
}

// ThreadOpen is CategoryOpen for threads.
func ThreadOpen(l *fielderrors.List, field string, thread *models.Thread, user *models.User) bool {
	if thread == nil {
		l.Add(loc(field), CodeThreadNotFound, "thread could not be found")
		return false
	}
	if thread.IsClosed && !user.CanModerate() {
		l.Add(loc(field), CodeThreadClosed, "thread is closed")
		return false
	}
	return true
}

// ThreadExists adds not-found at field when thread is nil.
func ThreadExists(l *fielderrors.List, field string, thread *models.Thread) bool {
	if thread == nil {
		l.Add(loc(field), CodeThreadNotFound, "thread could not be found")
		return false
	}
	return true
}

// NewThreadIsClosed allows starting a closed thread only to moderators.
func NewThreadIsClosed(l *fielderrors.List, field string, isClosed bool, user *models.User) bool {
	if isClosed && !user.CanModerate() {
		l.Add(loc(field), CodeNotModerator, "you don't have permission to close threads")
		return false
	}
	return true
}
