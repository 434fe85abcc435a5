package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/edcasillas/globalstats/internal/client/models"
)

var (
	headerColor = color.New(color.Bold)
	selfColor   = color.New(color.FgGreen, color.Bold)
	upColor     = color.New(color.FgGreen)
	downColor   = color.New(color.FgRed)
)

func renderUserStatistics(w io.Writer, stats *models.UserStatistics) {
	headerColor.Fprintf(w, "%s\n", stats.Name)
	renderValues(w, stats.Statistics)
}

func renderValues(w io.Writer, values []models.StatisticValue) {
	for _, v := range values {
		fmt.Fprintf(w, "  %-20s %12s  rank %-6s %s\n", v.Key, v.Value, v.Rank, change(v.ValueChange))
	}
}

// change colours a signed delta; zero is left blank.
func change(delta models.NumericString) string {
	n, err := delta.Int64()
	switch {
	case err != nil || n == 0:
		return ""
	case n > 0:
		return upColor.Sprintf("+%d", n)
	default:
		return downColor.Sprintf("%d", n)
	}
}

func renderRanks(w io.Writer, values ...models.LeaderboardValue) {
	for _, v := range values {
		line := fmt.Sprintf("%5s. %-24s %12s", v.Rank, v.Name, v.Value)
		if v.IsSelf {
			selfColor.Fprintln(w, line+"  <- you")
			continue
		}
		fmt.Fprintln(w, line)
	}
}
