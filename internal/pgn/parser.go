package pgn

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/corentings/chess/v2"
	"github.com/corentings/chess/v2/opening"
)

var headerRe = regexp.MustCompile(`\[(\w+)\s+"([^"]+)"\]`)

// ParsePGNHeaders extracts PGN header tags into a map
func ParsePGNHeaders(pgn string) map[string]string {
	out := map[string]string{}
	for _, line := range strings.Split(pgn, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "[") {
			continue
		}
		m := headerRe.FindStringSubmatch(line)
		if len(m) == 3 {
			out[m[1]] = m[2]
		}
	}
	return out
}

// SplitGames cuts a multi-game PGN stream into one text per game. A header line
// that follows movetext starts a new game.
func SplitGames(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var (
		games    []string
		cur      strings.Builder
		sawMoves bool
	)
	flush := func() {
		if text := strings.TrimSpace(cur.String()); text != "" {
			games = append(games, text)
		}
		cur.Reset()
		sawMoves = false
	}

	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		isHeader := strings.HasPrefix(trimmed, "[")
		if isHeader && sawMoves {
			flush()
		}
		if trimmed != "" && !isHeader {
			sawMoves = true
		}
		cur.WriteString(line)
		cur.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return games, nil
}

// Game is the subset of a PGN game the record store needs.
type Game struct {
	Headers map[string]string
	Plies   int
	Opening string // Opening tag, or the ECO book title when the tag is missing
	ECO     string
}

// ReadGame parses one game's text, replaying its moves to count plies and to
// classify the opening when the headers do not name it.
func ReadGame(text string) (Game, error) {
	headers := ParsePGNHeaders(text)

	pgnOpt, err := chess.PGN(strings.NewReader(text))
	if err != nil {
		return Game{}, fmt.Errorf("parse pgn: %w", err)
	}
	g := chess.NewGame(pgnOpt)
	moves := g.Moves()

	out := Game{
		Headers: headers,
		Plies:   len(moves),
		Opening: headers["Opening"],
		ECO:     headers["ECO"],
	}
	if out.Opening == "" && len(moves) > 0 {
		book := opening.NewBookECO()
		if found := book.Find(moves); found != nil {
			out.Opening = found.Title()
			if out.ECO == "" {
				out.ECO = found.Code()
			}
		}
	}
	return out, nil
}
