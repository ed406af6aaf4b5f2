package render

import (
	"sort"
	"time"

	"github.com/Zachkp/portfolio-cms/internal/content"
)

type updateCard struct {
	content.Update
	Month string
	Year  int
}

type postCard struct {
	content.BlogPost
	Published string
}

type dated struct {
	at time.Time
	ok bool
}

// newestFirst orders by date descending; undated entries keep their
// relative order at the end.
func newestFirst(a, b dated) bool {
	if a.ok != b.ok {
		return a.ok
	}
	return a.at.After(b.at)
}

func updateCards(all []content.Update) []updateCard {
	cards := make([]updateCard, len(all))
	dates := make([]dated, len(all))
	for i, u := range all {
		cards[i] = updateCard{Update: u}
		if t, ok := content.ParseDate(u.Date); ok {
			cards[i].Month = t.Month().String()
			cards[i].Year = t.Year()
			dates[i] = dated{at: t, ok: true}
		}
	}
	sortTogether(cards, dates)
	return cards
}

func postCards(all []content.BlogPost) []postCard {
	var cards []postCard
	var dates []dated
	for _, p := range all {
		if p.Draft {
			continue
		}
		card := postCard{BlogPost: p}
		d := dated{}
		if t, ok := content.ParseDate(p.Date); ok {
			card.Published = t.Format("January 2, 2006")
			d = dated{at: t, ok: true}
		}
		cards = append(cards, card)
		dates = append(dates, d)
	}
	sortTogether(cards, dates)
	return cards
}

func sortTogether[T any](items []T, dates []dated) {
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return newestFirst(dates[idx[i]], dates[idx[j]]) })

	sorted := make([]T, len(items))
	for i, k := range idx {
		sorted[i] = items[k]
	}
	copy(items, sorted)
}
