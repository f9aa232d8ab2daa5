package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voyagen/dramarail/internal/models"
)

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   models.PlayCount
		want string
	}{
		{models.PlayCount{}, ""},
		{models.PlayCount{Raw: "999"}, "999"},
		{models.PlayCount{Raw: "1000"}, "1K"},
		{models.PlayCount{Raw: "1234"}, "1.2K"},
		{models.PlayCount{Raw: "45000", Quoted: true}, "45K"},
		{models.PlayCount{Raw: "2500000"}, "2.5M"},
		{models.PlayCount{Raw: "1500000000"}, "1.5B"},
		{models.PlayCount{Raw: "-1500"}, "-1.5K"},
		{models.PlayCount{Raw: "12.5"}, "12.5"},
		{models.PlayCount{Raw: "56.7K", Quoted: true}, "56.7K"},
		{models.PlayCount{Raw: " lots ", Quoted: true}, "lots"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCount(tt.in), "FormatCount(%+v)", tt.in)
	}
}

func TestWatchURL(t *testing.T) {
	assert.Equal(t, "/watch?bookId=42&source=homepage", WatchURL("42", models.SourceHomepage))
	assert.Equal(t, "/watch?bookId=a%26b", WatchURL("a&b", ""))
}

func TestCards(t *testing.T) {
	items := []models.ContentItem{
		{BookID: "1", BookName: "A", Cover: "c1", Introduction: "Intro", Tags: []string{"x"}, PlayCount: models.PlayCount{Raw: "2000"}},
		{BookID: "2", BookName: "B", TagNames: []string{"y"}},
	}
	cards := Cards(items, models.SourceHomepage)

	assert.Len(t, cards, 2)
	assert.Equal(t, 1, cards[0].Rank)
	assert.Equal(t, "Intro", cards[0].Introduction)
	assert.Equal(t, "2K", cards[0].PlayCountLabel)
	assert.Equal(t, []string{"x"}, cards[0].Tags)
	assert.Equal(t, "/watch?bookId=1&source=homepage", cards[0].WatchURL)

	assert.Equal(t, 2, cards[1].Rank)
	assert.Equal(t, defaultIntroduction, cards[1].Introduction)
	assert.Equal(t, []string{"y"}, cards[1].Tags)
	assert.Empty(t, cards[1].PlayCountLabel)

	assert.Empty(t, items[1].Introduction, "items are not mutated")
	assert.NotNil(t, Cards(nil, ""))
}
