package crate

import (
	"karolbroda.com/platter/internal/track"
	"karolbroda.com/platter/internal/transfer"
)

// Ticket identifies one issued search. Only the newest ticket's results are
// shown; slower, older responses are dropped.
type Ticket struct {
	Seq  uint64
	Term string
}

// Crate is the list of records from the last search. All transitions
// return a new value.
type Crate struct {
	Term    string
	Results []track.Track
	Loading bool
	seq     uint64
}

func (c Crate) Begin(term string) (Crate, Ticket) {
	c.seq++
	c.Term = term
	c.Loading = true
	return c, Ticket{Seq: c.seq, Term: term}
}

func (c Crate) Arrive(ticket Ticket, results []track.Track) Crate {
	if ticket.Seq != c.seq {
		return c
	}
	c.Results = results
	c.Loading = false
	return c
}

func (c Crate) IsCurrent(ticket Ticket) bool {
	return ticket.Seq == c.seq
}

func (c Crate) ShowPlaceholder() bool {
	return len(c.Results) == 0 && !c.Loading
}

func (c Crate) ShowLoading() bool {
	return c.Loading
}

func (c Crate) Tokens() []track.Track {
	return c.Results
}

func (c Crate) Len() int {
	return len(c.Results)
}

func (c Crate) At(i int) (track.Track, bool) {
	if i < 0 || i >= len(c.Results) {
		return track.Track{}, false
	}
	return c.Results[i], true
}

// StartDrag packs token i for a drag gesture.
func (c Crate) StartDrag(i int) (transfer.Envelope, bool) {
	trk, ok := c.At(i)
	if !ok {
		return transfer.Envelope{}, false
	}
	env, err := transfer.Encode(trk)
	if err != nil {
		return transfer.Envelope{}, false
	}
	return env, true
}
