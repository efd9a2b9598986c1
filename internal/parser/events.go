package parser

import (
	"aspkit/internal/syntax"
)

type eventKind uint8

const (
	evTombstone eventKind = iota // брошенный или ещё не завершённый маркер
	evStart
	evToken
	evFinish
)

// event is one step of the flat parse log. The grammar never builds nodes
// directly: it records events, and sink replays them into a green tree.
type event struct {
	kind eventKind
	node syntax.NodeKind
	// forwardParent is the distance to the Start event of a node that was
	// opened later but wraps this one (see precede).
	forwardParent int
	tok           int // индекс в raw для evToken
}

type marker struct{ pos int }

type completed struct {
	pos  int
	kind syntax.NodeKind
}

func (p *Parser) start() marker {
	p.events = append(p.events, event{kind: evTombstone})
	return marker{pos: len(p.events) - 1}
}

func (p *Parser) complete(m marker, kind syntax.NodeKind) completed {
	ev := &p.events[m.pos]
	ev.kind = evStart
	ev.node = kind
	p.events = append(p.events, event{kind: evFinish})
	return completed{pos: m.pos, kind: kind}
}

// abandon drops the marker; its events become children of the parent.
func (p *Parser) abandon(m marker) {
	if m.pos == len(p.events)-1 {
		p.events = p.events[:m.pos]
	}
}

// precede opens a node that will wrap the already completed c.
func (p *Parser) precede(c completed) marker {
	m := p.start()
	p.events[c.pos].forwardParent = m.pos - c.pos
	return m
}

// flatten removes every node opened after m, keeping the tokens.
// Used when a production fails and is turned into an ErrorNode.
func (p *Parser) flatten(m marker) {
	out := p.events[:m.pos+1]
	for _, ev := range p.events[m.pos+1:] {
		if ev.kind == evToken {
			out = append(out, ev)
		}
	}
	p.events = out
}

// sink replays the events into b. Trivia preceding a node start or a token
// goes to the node that is open at that moment, so a non-empty node never
// begins with trivia. Trailing trivia goes to the node that was open
// before the sink ran (the span node).
func (p *Parser) sink(b *syntax.Builder) {
	r := 0
	flush := func() {
		for r < len(p.raw) && p.raw[r].IsTrivia() {
			b.TokenFor(p.raw[r])
			r++
		}
	}
	var kinds []syntax.NodeKind

	for i := range p.events {
		ev := p.events[i]
		switch ev.kind {
		case evStart:
			kinds = append(kinds[:0], ev.node)
			j, fp := i, ev.forwardParent
			for fp != 0 {
				j += fp
				kinds = append(kinds, p.events[j].node)
				fp = p.events[j].forwardParent
				p.events[j] = event{kind: evTombstone}
			}
			flush()
			for k := len(kinds) - 1; k >= 0; k-- {
				b.StartNode(kinds[k])
			}
		case evToken:
			flush()
			b.TokenFor(p.raw[ev.tok])
			r = ev.tok + 1
		case evFinish:
			b.FinishNode()
		}
	}
	for ; r < len(p.raw); r++ {
		b.TokenFor(p.raw[r])
	}
	p.events = p.events[:0]
}
