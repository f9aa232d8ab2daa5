package service

import "github.com/voyagen/dramarail/internal/models"

// Card is the display form of a content item within a rail.
type Card struct {
	Rank           int              `json:"rank"`
	BookID         string           `json:"bookId"`
	BookName       string           `json:"bookName"`
	Cover          string           `json:"cover"`
	Introduction   string           `json:"introduction"`
	Tags           []string         `json:"tags,omitempty"`
	PlayCount      models.PlayCount `json:"playCount,omitzero"`
	PlayCountLabel string           `json:"playCountLabel,omitempty"`
	WatchURL       string           `json:"watchUrl"`
}

// defaultIntroduction fills cards whose item has no introduction.
const defaultIntroduction = "Watch now"

// Cards maps items to cards in order. Ranks start at 1.
func Cards(items []models.ContentItem, source string) []Card {
	cards := make([]Card, 0, len(items))
	for i, it := range items {
		intro := it.Introduction
		if intro == "" {
			intro = defaultIntroduction
		}
		tags := it.Tags
		if len(tags) == 0 {
			tags = it.TagNames
		}
		cards = append(cards, Card{
			Rank:           i + 1,
			BookID:         it.BookID,
			BookName:       it.BookName,
			Cover:          it.Cover,
			Introduction:   intro,
			Tags:           tags,
			PlayCount:      it.PlayCount,
			PlayCountLabel: FormatCount(it.PlayCount),
			WatchURL:       WatchURL(it.BookID, source),
		})
	}
	return cards
}

// RailView is a rail as served to clients.
type RailView struct {
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
	Error string `json:"-"`
}

// HomeView is the rendered homepage: both rails, possibly empty.
type HomeView struct {
	Featured RailView `json:"featured"`
	Trending RailView `json:"trending"`
}

// View renders the current rail contents. Failed rails render empty.
func (h *Home) View() HomeView {
	return HomeView{
		Featured: railView(h.Featured),
		Trending: railView(h.Trending),
	}
}

func railView(r *Rail) RailView {
	v := RailView{Name: r.Name(), Cards: Cards(r.Items(), models.SourceHomepage)}
	if err := r.Err(); err != nil {
		v.Error = err.Error()
	}
	return v
}
