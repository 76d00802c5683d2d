// Package codec converts puzzles to and from the compact share form, a URL
// query string such as "s=20:i:a,5:i:s,5:o:n:2d&b=c:y,ia:sq".
//
// Each active part is "<number>:<part>:<op>" with ":p" appended for a
// one-third fill. The outer ring always carries the wedge modifier as a
// fourth field: "<number>:o:<op>:<modifier>[:p]". Bullseye fields are
// "key:code" pairs under b.
package codec

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"
)

// #region encode

// Encode returns the share form of p, or "" for an empty board.
func Encode(p board.Puzzle) string {
	var segs []string
	for _, w := range p.Wedges {
		for _, kind := range board.PartKinds[:board.OuterRing] {
			part := w.Parts[kind]
			if !part.Active() {
				continue
			}
			seg := fmt.Sprintf("%d:%s:%s", w.Number, partCodes[kind], operationCodes[part.Operation])
			if part.Partial {
				seg += ":p"
			}
			segs = append(segs, seg)
		}

		outer := w.Parts[board.OuterRing]
		if outer.Active() || outer.Partial || w.Modifier != board.Normal {
			seg := fmt.Sprintf("%d:o:%s:%s", w.Number, operationCodes[outer.Operation], modifierCodes[w.Modifier])
			if outer.Partial {
				seg += ":p"
			}
			segs = append(segs, seg)
		}
	}

	b := p.Bullseye
	var bull []string
	if b.InnerOperation.Active() {
		bull = append(bull, "ib:"+operationCodes[b.InnerOperation])
	}
	if b.OuterOperation.Active() {
		bull = append(bull, "ob:"+operationCodes[b.OuterOperation])
	}
	if code, ok := colorCodes[b.Color]; ok {
		bull = append(bull, "c:"+code)
	}
	if code, ok := actionCodes[b.InnerAction]; ok {
		bull = append(bull, "ia:"+code)
	}
	if code, ok := actionCodes[b.OuterAction]; ok {
		bull = append(bull, "oa:"+code)
	}

	var params []string
	if len(segs) > 0 {
		params = append(params, "s="+strings.Join(segs, ","))
	}
	if len(bull) > 0 {
		params = append(params, "b="+strings.Join(bull, ","))
	}
	return strings.Join(params, "&")
}

// ShareURL appends the share form of p to base.
func ShareURL(base string, p board.Puzzle) string {
	params := Encode(p)
	if params == "" {
		return base
	}
	return strings.TrimSuffix(base, "?") + "?" + params
}

// #endregion encode

// #region decode

// Decode rebuilds a puzzle on numbering from a share string. A full URL or a
// leading "?" is accepted. Malformed entries are skipped and unknown codes
// fall back to neutral values; only an unparseable query is an error.
func Decode(params string, numbering board.Numbering) (board.Puzzle, error) {
	p := board.NewPuzzle(numbering)

	params = queryOf(params)
	values, err := url.ParseQuery(params)
	if err != nil {
		return p, fmt.Errorf("parse share query: %w", err)
	}

	if s := values.Get("s"); s != "" {
		for _, seg := range strings.Split(s, ",") {
			p = decodeSegment(p, seg)
		}
	}
	if b := values.Get("b"); b != "" {
		for _, pair := range strings.Split(b, ",") {
			p.Bullseye = decodeBullseyeField(p.Bullseye, pair)
		}
	}
	return p, nil
}

func decodeSegment(p board.Puzzle, seg string) board.Puzzle {
	fields := strings.Split(seg, ":")
	if len(fields) < 3 {
		return p
	}
	number, err := strconv.Atoi(fields[0])
	if err != nil {
		return p
	}
	kind, ok := partByCode[fields[1]]
	if !ok {
		return p
	}
	i, ok := p.IndexOf(number)
	if !ok {
		return p
	}

	w := &p.Wedges[i]
	part := board.Part{Operation: decodeOperation(fields[2])}
	if kind == board.OuterRing {
		w.Modifier = board.Normal
		if len(fields) > 3 {
			w.Modifier = decodeModifier(fields[3])
		}
		part.Partial = len(fields) > 4 && fields[4] == "p"
	} else {
		part.Partial = len(fields) > 3 && fields[3] == "p"
	}
	w.Parts[kind] = part
	return p
}

func decodeBullseyeField(b board.Bullseye, pair string) board.Bullseye {
	key, code, ok := strings.Cut(pair, ":")
	if !ok || strings.Contains(code, ":") {
		return b
	}
	switch key {
	case "ib":
		b.InnerOperation = decodeOperation(code)
	case "ob":
		b.OuterOperation = decodeOperation(code)
	case "c":
		b.Color = decodeColor(code)
	case "ia":
		b.InnerAction = decodeAction(code)
	case "oa":
		b.OuterAction = decodeAction(code)
	}
	return b
}

// queryOf strips a leading "?" or the scheme, host and path of a full URL.
// Anything else is taken as the bare query, so a stray "?" inside a segment
// does not cut the s parameter.
func queryOf(params string) string {
	if strings.HasPrefix(params, "?") {
		return params[1:]
	}
	if u, err := url.Parse(params); err == nil && u.Scheme != "" {
		return u.RawQuery
	}
	return params
}

// #endregion decode
