package grpc

import (
	"github.com/dmitrijs2005/gophforum/internal/api"
	"github.com/dmitrijs2005/gophforum/internal/server/config"
	"github.com/dmitrijs2005/gophforum/internal/server/models"
	"github.com/dmitrijs2005/gophforum/internal/server/services"
)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toAPIUser(u *models.User) *api.User {
	if u == nil {
		return nil
	}
	return &api.User{
		ID:          u.ID,
		Name:        u.Name,
		Slug:        u.Slug,
		IsModerator: u.CanModerate(),
		JoinedAt:    u.JoinedAt,
	}
}

func toAPICategory(c services.CategoryListing) api.Category {
	return api.Category{
		ID:        c.ID,
		ParentID:  deref(c.ParentID),
		Name:      c.Name,
		Slug:      c.Slug,
		Color:     deref(c.Color),
		Icon:      deref(c.Icon),
		BannerURL: c.BannerURL,
		Threads:   c.Threads,
		Posts:     c.Posts,
		IsClosed:  c.IsClosed,
		Depth:     c.Depth,
	}
}

func toAPIThread(t models.Thread) api.Thread {
	return api.Thread{
		ID:           t.ID,
		CategoryID:   t.CategoryID,
		Title:        t.Title,
		Slug:         t.Slug,
		StarterName:  t.StarterName,
		Replies:      t.Replies,
		IsClosed:     t.IsClosed,
		StartedAt:    t.StartedAt,
		LastPostedAt: t.LastPostedAt,
	}
}

func toAPIThreadPtr(t *models.Thread) *api.Thread {
	if t == nil {
		return nil
	}
	out := toAPIThread(*t)
	return &out
}

func toAPIThreads(ts []models.Thread) []api.Thread {
	out := make([]api.Thread, 0, len(ts))
	for _, t := range ts {
		out = append(out, toAPIThread(t))
	}
	return out
}

func toAPIPost(p models.Post) api.Post {
	return api.Post{
		ID:         p.ID,
		ThreadID:   p.ThreadID,
		PosterName: p.PosterName,
		Markup:     p.Markup,
		PostedAt:   p.PostedAt,
	}
}

func toAPIPostPtr(p *models.Post) *api.Post {
	if p == nil {
		return nil
	}
	out := toAPIPost(*p)
	return &out
}

func toAPISettings(f config.Forum) api.Settings {
	return api.Settings{
		ForumName:            f.Name,
		BulkActionLimit:      f.BulkActionLimit,
		PasswordMinLength:    f.PasswordMinLength,
		PasswordMaxLength:    f.PasswordMaxLength,
		PostMinLength:        f.PostMinLength,
		ThreadTitleMinLength: f.ThreadTitleMinLength,
		ThreadTitleMaxLength: f.ThreadTitleMaxLength,
		UsernameMinLength:    f.UsernameMinLength,
		UsernameMaxLength:    f.UsernameMaxLength,
	}
}
