package bot

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Component kinds. Each names what a pick from the select menu does.
const (
	kindAnime     = "anime"
	kindAiring    = "airing"
	kindCharacter = "char"
	kindAdd       = "add"
	kindRemove    = "remove"
)

const customIDLimit = 100

// pageState is everything a pagination view needs, carried in the custom ID
// of its components as kind:page:query. The select menu holds the page on
// screen and each pager button the page it leads to, which also keeps the
// three IDs in one message distinct.
type pageState struct {
	Kind  string
	Page  int
	Query string
}

func (p pageState) customID() string {
	prefix := p.Kind + ":" + strconv.Itoa(p.Page) + ":"
	q := p.Query
	if room := customIDLimit - utf8.RuneCountInString(prefix); utf8.RuneCountInString(q) > room {
		q = string([]rune(q)[:room])
	}
	return prefix + q
}

func (p pageState) withPage(page int) pageState {
	p.Page = page
	return p
}

func parseState(id string) (pageState, error) {
	parts := strings.SplitN(id, ":", 3)
	if len(parts) != 3 {
		return pageState{}, fmt.Errorf("malformed custom id %q", id)
	}
	switch parts[0] {
	case kindAnime, kindAiring, kindCharacter, kindAdd, kindRemove:
	default:
		return pageState{}, fmt.Errorf("unknown component kind %q", parts[0])
	}
	page, err := strconv.Atoi(parts[1])
	if err != nil || page < 1 {
		return pageState{}, fmt.Errorf("bad page in custom id %q", id)
	}
	return pageState{Kind: parts[0], Page: page, Query: parts[2]}, nil
}
