package chesscom

import "strings"

// drawCodes are the per-side result codes chess.com reports for a drawn game.
var drawCodes = map[string]bool{
	"agreed":             true,
	"repetition":         true,
	"stalemate":          true,
	"insufficient":       true,
	"50move":             true,
	"timevsinsufficient": true,
}

// ResultToken converts the two per-side result codes into a PGN result
// token. Combinations that do not describe a finished game yield "*".
func ResultToken(mg MonthlyGame) string {
	white := strings.ToLower(mg.White.Result)
	black := strings.ToLower(mg.Black.Result)
	switch {
	case white == "win" && black != "win":
		return "1-0"
	case black == "win" && white != "win":
		return "0-1"
	case drawCodes[white] && drawCodes[black]:
		return "1/2-1/2"
	default:
		return "*"
	}
}
