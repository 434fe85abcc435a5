package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/prometheus/common/expfmt"

	"github.com/edcasillas/globalstats/internal/client/client"
	"github.com/edcasillas/globalstats/internal/client/services"
)

const defaultBoardLimit = 10

func (a *App) Share(ctx context.Context, args []string) error {
	sa, err := parseShareArgs(args)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: share key=value... [-name N] [-id X]")
		return err
	}
	stats, err := a.stats.Share(ctx, sa.values, sa.id, sa.name)
	if err != nil {
		return err
	}
	renderUserStatistics(a.out, stats)
	return nil
}

func (a *App) Get(ctx context.Context) error {
	stats, err := a.stats.GetStatistics(ctx)
	if err != nil {
		return err
	}
	if stats == nil {
		fmt.Fprintln(a.out, "No statistics yet. Use 'share' to submit some.")
		return nil
	}
	renderUserStatistics(a.out, stats)
	return nil
}

func (a *App) Link(ctx context.Context, args []string) error {
	var id string
	if len(args) > 0 {
		id = args[0]
	}
	if _, err := a.stats.LinkStatistic(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Link requested: %s\n", a.stats.LinkData().Bytes())
	return nil
}

func (a *App) Board(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(a.out, "Usage: board <id> [limit 0..%d]\n", services.MaxLeaderboardLimit)
		return client.ErrEmptyBoardID
	}
	limit := defaultBoardLimit
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("limit %q is not a number", args[1])
		}
		limit = n
	}
	board, err := a.boards.GetLeaderboard(ctx, args[0], limit)
	if err != nil {
		return err
	}
	if len(board.Data) == 0 {
		fmt.Fprintln(a.out, "Leaderboard is empty.")
		return nil
	}
	renderRanks(a.out, board.Data...)
	return nil
}

func (a *App) Section(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: section <id>")
		return client.ErrEmptyBoardID
	}
	section, err := a.boards.GetStatisticsSection(ctx, args[0])
	if errors.Is(err, client.ErrNoIdentity) {
		fmt.Fprintln(a.out, "Share a statistic first to get a rank.")
	}
	if err != nil {
		return err
	}
	for v := range section.All() {
		renderRanks(a.out, v)
	}
	return nil
}

func (a *App) Stats(context.Context) error {
	values := a.stats.Statistics()
	if len(values) == 0 {
		fmt.Fprintln(a.out, "Nothing cached yet.")
		return nil
	}
	renderValues(a.out, values)
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	id, err := a.stats.StatisticID(ctx)
	if err != nil {
		return err
	}
	name, err := a.stats.UserName(ctx)
	if err != nil {
		return err
	}
	if id == "" {
		id = "(none)"
	}
	if name == "" {
		name = "(none)"
	}
	fmt.Fprintf(a.out, "id:   %s\nname: %s\n", id, name)
	return nil
}

func (a *App) Metrics(context.Context) error {
	if a.registry == nil {
		return nil
	}
	families, err := a.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(a.out, mf); err != nil {
			return err
		}
	}
	return nil
}
