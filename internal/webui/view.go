package webui

import (
	"time"

	"news_monitor/internal/datefmt"
	"news_monitor/internal/models"

	"github.com/samber/lo"
)

// Card is one rendered news item.
type Card struct {
	Key         string
	Title       string
	Link        string
	Summary     string
	PublishedAt string
}

// View is what the page shows for a State.
type View struct {
	Status           Status
	ShowLoading      bool
	ShowError        bool
	ShowEmpty        bool
	ErrorMessage     string
	Cards            []Card
	RefreshDisabled  bool
	DownloadDisabled bool
	UpdatedLabel     string
}

// View derives the render flags of s; loc is used for the "last updated" label.
func (s State) View(loc *time.Location) View {
	v := View{
		Status:           s.Status,
		ShowLoading:      s.Status == StatusLoading,
		ShowError:        s.Status == StatusError && s.Err != "",
		ShowEmpty:        s.Status == StatusSuccess && len(s.Items) == 0,
		ErrorMessage:     s.Err,
		RefreshDisabled:  s.Status == StatusLoading,
		DownloadDisabled: s.Status == StatusLoading || len(s.Items) == 0,
		Cards: lo.Map(s.Items, func(it models.NewsItem, _ int) Card {
			return Card{
				Key:         it.Key(),
				Title:       it.Title,
				Link:        it.Link,
				Summary:     it.Summary,
				PublishedAt: it.PublishedAt,
			}
		}),
	}
	if !s.UpdatedAt.IsZero() {
		v.UpdatedLabel = datefmt.MediumDateShortTime(s.UpdatedAt, loc)
	}
	return v
}
