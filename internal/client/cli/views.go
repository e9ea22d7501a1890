package cli

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/gophforum/internal/api"
	"github.com/dmitrijs2005/gophforum/internal/client/output"
)

const timeLayout = "2006-01-02 15:04"

type categoryRow struct {
	Slug    string `json:"slug" yaml:"slug" table:"SLUG"`
	Name    string `json:"name" yaml:"name" table:"NAME"`
	Threads int64  `json:"threads" yaml:"threads" table:"THREADS"`
	Posts   int64  `json:"posts" yaml:"posts" table:"POSTS"`
	Closed  bool   `json:"closed" yaml:"closed" table:"CLOSED"`
}

func categoryRows(cats []api.Category) []categoryRow {
	rows := make([]categoryRow, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, categoryRow{
			Slug:    c.Slug,
			Name:    strings.Repeat("  ", c.Depth) + c.Name,
			Threads: c.Threads,
			Posts:   c.Posts,
			Closed:  c.IsClosed,
		})
	}
	return rows
}

type threadRow struct {
	ID       string `json:"id" yaml:"id" table:"ID"`
	Title    string `json:"title" yaml:"title" table:"TITLE"`
	Starter  string `json:"starter" yaml:"starter" table:"STARTER"`
	Replies  int64  `json:"replies" yaml:"replies" table:"REPLIES"`
	Closed   bool   `json:"closed" yaml:"closed" table:"CLOSED"`
	LastPost string `json:"last_post" yaml:"last_post" table:"LAST POST"`
}

func threadRows(threads []api.Thread) []threadRow {
	rows := make([]threadRow, 0, len(threads))
	for _, t := range threads {
		rows = append(rows, threadRow{
			ID:       t.ID,
			Title:    t.Title,
			Starter:  t.StarterName,
			Replies:  t.Replies,
			Closed:   t.IsClosed,
			LastPost: formatTime(t.LastPostedAt),
		})
	}
	return rows
}

type postRow struct {
	Poster string `json:"poster" yaml:"poster" table:"POSTER"`
	Posted string `json:"posted" yaml:"posted" table:"POSTED"`
	Markup string `json:"markup" yaml:"markup" table:"MESSAGE"`
}

// postRows flattens multi-line posts when they are printed as a table.
func postRows(posts []api.Post, f output.Formatter) []postRow {
	_, table := f.(*output.TableFormatter)
	rows := make([]postRow, 0, len(posts))
	for _, p := range posts {
		markup := p.Markup
		if table {
			markup = strings.Join(strings.Fields(markup), " ")
		}
		rows = append(rows, postRow{Poster: p.PosterName, Posted: formatTime(p.PostedAt), Markup: markup})
	}
	return rows
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(timeLayout)
}
