package cli

import (
	"context"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophforum/internal/api"
	"github.com/dmitrijs2005/gophforum/internal/client/forms"
	"github.com/dmitrijs2005/gophforum/internal/client/session"
	"github.com/dmitrijs2005/gophforum/internal/common"
	"github.com/dmitrijs2005/gophforum/internal/fielderrors"
)

// Interactive input helpers, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	confirm       = Confirm
)

// allCategories stands for "no category filter" in positional arguments.
const allCategories = "-"

// submit runs fn as the single request of f within the request timeout and
// reports the failure if there is one.
func (a *App) submit(ctx context.Context, f *forms.Form, fn forms.Request) error {
	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	if _, err := f.Submit(ctx, fn); err != nil {
		return err
	}
	if f.State() == forms.Failed {
		return a.report(f)
	}
	return nil
}

// fetch is submit for reads, which have no field errors.
func (a *App) fetch(ctx context.Context, fn func(ctx context.Context) error) error {
	return a.submit(ctx, a.newForm(), func(ctx context.Context) ([]fielderrors.FieldError, error) {
		return nil, fn(ctx)
	})
}

func (a *App) reject(f *forms.Form, code string) error {
	f.Reject(code)
	return a.report(f)
}

func (a *App) render(v any) {
	fmt.Fprint(a.out, a.formatter.Format(v))
}

func (a *App) Login(ctx context.Context) error {
	login, err := getSimpleText(a.reader, a.t("login.title", "Log in")+"\nUser name or e-mail", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	f := a.newForm()
	if login == "" || len(password) == 0 {
		return a.reject(f, fielderrors.CodeAllFieldsRequired)
	}

	a.info(a.t("login.submitting", "Logging in..."))
	var user *session.User
	err = a.submit(ctx, f, func(ctx context.Context) ([]fielderrors.FieldError, error) {
		u, errs, err := a.auth.Login(ctx, login, string(password))
		user = u
		return errs, err
	})
	if err != nil {
		return err
	}

	a.alertSuccess(fmt.Sprintf(a.t("login.success", "Signed in as %s."), user.Name))
	return nil
}

func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, a.t("register.title", "Sign up")+"\nUser name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "E-mail", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	f := a.newForm()
	if name == "" || email == "" || len(password) == 0 {
		return a.reject(f, fielderrors.CodeAllFieldsRequired)
	}

	var user *session.User
	err = a.submit(ctx, f, func(ctx context.Context) ([]fielderrors.FieldError, error) {
		u, errs, err := a.auth.Register(ctx, name, email, string(password))
		user = u
		return errs, err
	})
	if err != nil {
		return err
	}

	a.alertSuccess(fmt.Sprintf(a.t("register.success", "Account %s created, you can now log in."), user.Name))
	return nil
}

// Logout always forgets the local session; a server that cannot be told
// only gets a warning in the log.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return a.reject(a.newForm(), fielderrors.CodeNotAuthorized)
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()
	if err := a.auth.Logout(ctx); err != nil {
		a.logger.Warn(ctx, "logout was not sent to the server", "error", err)
	}
	a.alertSuccess(a.t("logout.success", "Signed out."))
	return nil
}

func (a *App) Categories(ctx context.Context) error {
	var cats []api.Category
	err := a.fetch(ctx, func(ctx context.Context) (err error) {
		cats, err = a.forum.Categories(ctx)
		return err
	})
	if err != nil {
		return err
	}
	a.render(categoryRows(cats))
	return nil
}

// Threads lists one page of threads: threads [category|-] [cursor].
func (a *App) Threads(ctx context.Context, args []string) error {
	category, cursor := "", ""
	if len(args) > 0 && args[0] != allCategories {
		category = args[0]
	}
	if len(args) > 1 {
		cursor = args[1]
	}

	var page *api.ThreadsResponse
	err := a.fetch(ctx, func(ctx context.Context) (err error) {
		page, err = a.forum.Threads(ctx, category, cursor)
		return err
	})
	if err != nil {
		return err
	}

	a.render(threadRows(page.Threads))
	if page.NextCursor != "" {
		ref := category
		if ref == "" {
			ref = allCategories
		}
		a.info(fmt.Sprintf("More: threads %s %s", ref, page.NextCursor))
	}
	return nil
}

// Thread shows a thread with one page of posts: thread <id> [page].
func (a *App) Thread(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: thread <id> [page]")
	}
	page := 1
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid page %q", args[1])
		}
		page = n
	}

	var resp *api.ThreadResponse
	err := a.fetch(ctx, func(ctx context.Context) (err error) {
		resp, err = a.forum.Thread(ctx, args[0], page)
		return err
	})
	if err != nil {
		return err
	}

	a.render(threadRows([]api.Thread{resp.Thread}))
	a.render(postRows(resp.Posts, a.formatter))
	return nil
}

// PostThread starts a thread in a category: post <category>.
func (a *App) PostThread(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: post <category>")
	}
	f := a.newForm()
	if !a.isLoggedIn() {
		return a.reject(f, fielderrors.CodeNotAuthorized)
	}

	title, err := getSimpleText(a.reader, a.t("post_thread.title", "Start new thread")+"\nTitle", a.out)
	if err != nil {
		return err
	}
	markup, err := getMultiline(a.reader, "Message", a.out)
	if err != nil {
		return err
	}

	if title == "" || markup == "" {
		return a.reject(f, fielderrors.CodeAllFieldsRequired)
	}
	if code := a.checkTitle(ctx, title); code != "" {
		return a.reject(f, code)
	}

	var thread *api.Thread
	err = a.submit(ctx, f, func(ctx context.Context) ([]fielderrors.FieldError, error) {
		categoryID, err := a.forum.CategoryID(ctx, args[0])
		if err != nil {
			return nil, err
		}
		t, errs, err := a.forum.PostThread(ctx, api.PostThreadRequest{Category: categoryID, Title: title, Markup: markup})
		thread = t
		return errs, err
	})
	if err != nil {
		return err
	}

	a.alertSuccess(fmt.Sprintf(a.t("post_thread.success", "Thread %q posted."), thread.Title))
	a.render(threadRows([]api.Thread{*thread}))
	return nil
}

// checkTitle applies the forum's title length limits when they are known.
func (a *App) checkTitle(ctx context.Context, title string) string {
	sctx, cancel := a.requestContext(ctx)
	defer cancel()
	s, err := a.forum.Settings(sctx)
	if err != nil || s == nil {
		return ""
	}
	n := utf8.RuneCountInString(title)
	switch {
	case s.ThreadTitleMinLength > 0 && n < s.ThreadTitleMinLength:
		return fielderrors.CodeMinLength
	case s.ThreadTitleMaxLength > 0 && n > s.ThreadTitleMaxLength:
		return fielderrors.CodeMaxLength
	}
	return ""
}

// PostReply replies to a thread: reply <thread-id>.
func (a *App) PostReply(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: reply <thread-id>")
	}
	f := a.newForm()
	if !a.isLoggedIn() {
		return a.reject(f, fielderrors.CodeNotAuthorized)
	}

	markup, err := getMultiline(a.reader, "Message", a.out)
	if err != nil {
		return err
	}
	if markup == "" {
		return a.reject(f, fielderrors.CodeAllFieldsRequired)
	}

	err = a.submit(ctx, f, func(ctx context.Context) ([]fielderrors.FieldError, error) {
		_, errs, err := a.forum.PostReply(ctx, args[0], markup)
		return errs, err
	})
	if err != nil {
		return err
	}
	a.alertSuccess(a.t("post_reply.success", "Reply posted."))
	return nil
}

// checkSelection validates a moderation selection before it is sent.
func (a *App) checkSelection(ctx context.Context, f *forms.Form, ids []string) error {
	if !a.isLoggedIn() {
		return a.reject(f, fielderrors.CodeNotAuthorized)
	}
	if len(ids) == 0 {
		return a.reject(f, fielderrors.CodeNoThreadsSelected)
	}

	sctx, cancel := a.requestContext(ctx)
	defer cancel()
	if s, err := a.forum.Settings(sctx); err == nil && s != nil && s.BulkActionLimit > 0 && len(ids) > s.BulkActionLimit {
		return a.reject(f, fielderrors.CodeMaxItems)
	}
	return nil
}

type bulkFunc func(ctx context.Context, ids []string) ([]api.Thread, []fielderrors.FieldError, error)

func (a *App) bulk(ctx context.Context, ids []string, fn bulkFunc, successID, successText string) error {
	f := a.newForm()
	if err := a.checkSelection(ctx, f, ids); err != nil {
		return err
	}

	var threads []api.Thread
	err := a.submit(ctx, f, func(ctx context.Context) ([]fielderrors.FieldError, error) {
		t, errs, err := fn(ctx, ids)
		threads = t
		return errs, err
	})
	if err != nil {
		return err
	}

	a.alertSuccess(a.t(successID, successText))
	a.render(threadRows(threads))
	return nil
}

// CloseThreads closes threads: close <id>...
func (a *App) CloseThreads(ctx context.Context, args []string) error {
	return a.bulk(ctx, args, a.forum.CloseThreads, "moderation.close.success", "Threads closed.")
}

// OpenThreads reopens threads: open <id>...
func (a *App) OpenThreads(ctx context.Context, args []string) error {
	return a.bulk(ctx, args, a.forum.OpenThreads, "moderation.open.success", "Threads opened.")
}

// MoveThreads moves threads: move <category> <id>...
func (a *App) MoveThreads(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: move <category> <id>...")
	}
	category := args[0]
	return a.bulk(ctx, args[1:], func(ctx context.Context, ids []string) ([]api.Thread, []fielderrors.FieldError, error) {
		categoryID, err := a.forum.CategoryID(ctx, category)
		if err != nil {
			return nil, nil, err
		}
		return a.forum.MoveThreads(ctx, ids, categoryID)
	}, "moderation.move.success", "Threads moved.")
}

// DeleteThreads deletes threads after a confirmation: delete <id>...
func (a *App) DeleteThreads(ctx context.Context, args []string) error {
	f := a.newForm()
	if err := a.checkSelection(ctx, f, args); err != nil {
		return err
	}

	ok, err := confirm(a.reader, fmt.Sprintf("Delete %d thread(s)?", len(args)), a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.info("Aborted.")
		return nil
	}

	var deleted []string
	err = a.submit(ctx, f, func(ctx context.Context) ([]fielderrors.FieldError, error) {
		d, errs, err := a.forum.DeleteThreads(ctx, args)
		deleted = d
		return errs, err
	})
	if err != nil {
		return err
	}

	a.alertSuccess(a.t("moderation.delete.success", "Threads deleted."))
	a.render(deleted)
	return nil
}
