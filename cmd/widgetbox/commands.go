package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jask/widgetbox/internal/apperr"
	"github.com/jask/widgetbox/internal/calc"
	"github.com/jask/widgetbox/internal/celebrate"
	"github.com/jask/widgetbox/internal/color"
	"github.com/jask/widgetbox/internal/format"
	"github.com/jask/widgetbox/internal/joke"
	"github.com/jask/widgetbox/internal/password"
	"github.com/jask/widgetbox/internal/service"
	"github.com/jask/widgetbox/internal/session"
	"github.com/jask/widgetbox/internal/tip"
	"github.com/jask/widgetbox/internal/weather"
	"github.com/jask/widgetbox/internal/widget"
)

func (e *env) countdownCmd() *cobra.Command {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "countdown <seconds>",
		Short: "Count a number of seconds down to zero",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := session.NewCountdown(session.WithInterval(interval), session.WithLogger(e.logger))
			defer c.Close()
			if err := c.SetInput(args[0]); err != nil {
				return err
			}

			changes := make(chan session.CountdownSnapshot, 1)
			c.OnChange(func(s session.CountdownSnapshot) {
				select {
				case <-changes:
				default:
				}
				changes <- s
			})

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\r%s", c.Snapshot().Display())
			if err := c.Start(); err != nil {
				return err
			}
			for {
				select {
				case <-cmd.Context().Done():
					fmt.Fprintln(out)
					return nil
				case s := <-changes:
					fmt.Fprintf(out, "\r%s", s.Display())
					if s.State == session.Finished {
						fmt.Fprintln(out, "\nTime's up!")
						return nil
					}
				}
			}
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", session.TickInterval, "tick length")
	_ = cmd.Flags().MarkHidden("interval")
	return cmd
}

func (e *env) guessCmd() *cobra.Command {
	var target int
	cmd := &cobra.Command{
		Use:   "guess",
		Short: "Guess a number between 1 and 100, one guess per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			sb, err := e.scoreboard(ctx)
			if err != nil {
				return err
			}
			opts := []session.Option{session.WithLogger(e.logger)}
			if target >= session.TargetMin && target <= session.TargetMax {
				opts = append(opts, session.WithRand(func(int) int { return target - session.TargetMin }))
			}
			g := session.NewGuessGame(ctx, sb, opts...)
			defer g.Close()
			if err := g.Start(); err != nil {
				return err
			}
			return playGuess(ctx, g, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&target, "target", 0, "fix the number to guess")
	_ = cmd.Flags().MarkHidden("target")
	return cmd
}

// playGuess feeds lines from in to g until the game is won or in runs out.
func playGuess(ctx context.Context, g *session.GuessGame, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "I'm thinking of a number between 1 and 100.")
	sc := bufio.NewScanner(in)
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(out, "Your guess: ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		fb, err := g.Guess(sc.Text())
		if err != nil {
			fmt.Fprintln(out, apperr.Message(err))
			continue
		}
		fmt.Fprintln(out, fb.Message())
		if fb != session.Correct {
			continue
		}
		snap := g.Snapshot()
		fmt.Fprintf(out, "Game over! %d attempts in %s.\n", snap.Attempts, format.Clock(snap.Elapsed))
		if snap.NewBest {
			fmt.Fprintln(out, "New best score!")
		} else if snap.HasBest {
			fmt.Fprintf(out, "Best score: %d\n", snap.Best)
		}
		return nil
	}
}

func (e *env) weatherCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weather <city>",
		Short: "Show the current weather for a city",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := e.weatherClient().Current(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			printWeather(cmd.OutOrStdout(), r, time.Now())
			return nil
		},
	}
}

func printWeather(out io.Writer, r weather.Report, now time.Time) {
	fmt.Fprintf(out, "%s  %d°%s  %s\n", r.Place(), r.Temperature, r.Unit, r.Description)
	for _, line := range r.Lines(now) {
		fmt.Fprintln(out, "  "+line)
	}
}

func (e *env) jokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "joke",
		Short: "Print a random joke",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			j, err := e.jokeClient().Random(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), j.String())
			return nil
		},
	}
}

func (e *env) calcCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calc <a> <op> <b>",
		Short: "Add, subtract, multiply or divide two numbers",
		Long:  "Operators: + - x * × / ÷. The expression may also be given as one argument, e.g. \"12/4\".",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				a, b string
				op   calc.Op
				err  error
			)
			if len(args) == 3 {
				a, b = args[0], args[2]
				op, err = calc.ParseOp(args[1])
			} else {
				a, b, op, err = calc.ParseExpression(strings.Join(args, " "))
			}
			if err != nil {
				return err
			}
			res, err := calc.Evaluate(a, b, op)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func (e *env) colorCmd() *cobra.Command {
	var formatName string
	cmd := &cobra.Command{
		Use:   "color <hex>",
		Short: "Convert a hex color to hex, rgb or hsl",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if formatName == "all" {
				for _, f := range color.Formats() {
					s, err := color.Render(args[0], f)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%-4s %s\n", f, s)
				}
				return nil
			}
			f, err := color.ParseFormat(formatName)
			if err != nil {
				return err
			}
			s, err := color.Render(args[0], f)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, s)
			return nil
		},
	}
	cmd.Flags().StringVarP(&formatName, "format", "f", "all", "hex, rgb, hsl or all")
	return cmd
}

func (e *env) tipCmd() *cobra.Command {
	var (
		bill, percent float64
		people        int
	)
	cmd := &cobra.Command{
		Use:   "tip",
		Short: "Split a bill and tip between people",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := tip.Calculate(tip.Input{Bill: bill, TipPercent: percent, People: people})
			if err != nil {
				return err
			}
			sym := e.cfg.UI.CurrencySymbol
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Tip per person:   %s\n", format.Money(sym, res.TipPerPerson))
			fmt.Fprintf(out, "Total per person: %s\n", format.Money(sym, res.TotalPerPerson))
			return nil
		},
	}
	cmd.Flags().Float64Var(&bill, "bill", 0, "bill amount")
	cmd.Flags().Float64Var(&percent, "percent", tip.Presets[1], "tip percentage")
	cmd.Flags().IntVar(&people, "people", 1, "number of people")
	_ = cmd.MarkFlagRequired("bill")
	return cmd
}

func (e *env) passwordCmd() *cobra.Command {
	var (
		length                         int
		noUpper, noLower, noNum, noSym bool
		count                          int
	)
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Generate random passwords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("length") && e.cfg.Password.Length > 0 {
				length = e.cfg.Password.Length
			}
			opts := password.Options{
				Length:  length,
				Upper:   !noUpper,
				Lower:   !noLower,
				Numbers: !noNum,
				Symbols: !noSym && e.cfg.Password.Symbols,
			}
			if cmd.Flags().Changed("no-symbols") {
				opts.Symbols = !noSym
			}
			for i := 0; i < count; i++ {
				pw, err := password.Generate(opts)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), pw)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&length, "length", "l", password.DefaultLength, fmt.Sprintf("length (%d-%d)", password.MinLength, password.MaxLength))
	cmd.Flags().BoolVar(&noUpper, "no-upper", false, "exclude uppercase letters")
	cmd.Flags().BoolVar(&noLower, "no-lower", false, "exclude lowercase letters")
	cmd.Flags().BoolVar(&noNum, "no-numbers", false, "exclude digits")
	cmd.Flags().BoolVar(&noSym, "no-symbols", false, "exclude symbols")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "how many to generate")
	return cmd
}

func (e *env) clockCmd() *cobra.Command {
	var twelve bool
	cmd := &cobra.Command{
		Use:   "clock",
		Short: "Print the current time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()
			h24 := e.cfg.UI.Clock24h && !twelve
			line := format.TimeOfDay(now, h24)
			if !h24 {
				line += " " + format.Meridiem(now)
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}
	cmd.Flags().BoolVar(&twelve, "12h", false, "12 hour display")
	return cmd
}

func (e *env) birthdayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "birthday",
		Short: "Light the candles and celebrate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := celebrate.New(session.NewTickerScheduler())
			defer p.Close()
			var once sync.Once
			done := make(chan struct{})
			out := cmd.OutOrStdout()
			p.OnChange(func(s celebrate.Snapshot) {
				fmt.Fprintf(out, "\rCandles: %s%s", strings.Repeat("🔥", s.Lit), strings.Repeat("|", celebrate.Candles-s.Lit))
				if s.Lit == celebrate.Candles {
					once.Do(func() { close(done) })
				}
			})
			fmt.Fprintln(out, "Happy Birthday!")
			p.Celebrate()
			select {
			case <-done:
				fmt.Fprintln(out, "\n🎉 🎊 🎉 🎊 🎉")
			case <-cmd.Context().Done():
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func (e *env) bestCmd() *cobra.Command {
	var (
		reset   bool
		history int
	)
	cmd := &cobra.Command{
		Use:   "best",
		Short: "Show the guessing game's best score and recent games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			sb, err := e.scoreboard(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if reset {
				m := &service.MaintenanceService{DB: e.db}
				if err := m.ResetBest(ctx); err != nil {
					return err
				}
				e.logger.Info("best score reset")
				fmt.Fprintln(out, "Best score cleared.")
				return nil
			}
			best, ok, err := sb.LoadBest(ctx)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Best score: none yet")
			} else {
				fmt.Fprintf(out, "Best score: %d attempts\n", best)
			}
			played, err := sb.Played(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Games played: %d\n", played)
			if history <= 0 || played == 0 {
				return nil
			}
			games, err := sb.History(ctx, history)
			if err != nil {
				return err
			}
			for _, g := range games {
				fmt.Fprintf(out, "  %s  target %3d  %2d attempts  %s\n",
					g.FinishedAt.Local().Format("2006-01-02 15:04"), g.Target, g.Attempts, format.Clock(g.ElapsedSeconds))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "forget the best score")
	cmd.Flags().IntVar(&history, "history", 5, "recent games to list")
	return cmd
}

func (e *env) todayCmd() *cobra.Command {
	var city string
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Weather and a joke, fetched together",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				report     weather.Report
				j          joke.Joke
				werr, jerr error
			)
			g, ctx := errgroup.WithContext(cmd.Context())
			// failures are reported per widget, so neither goroutine fails the group
			g.Go(func() error {
				report, werr = e.weatherClient().Current(ctx, city)
				return nil
			})
			g.Go(func() error {
				j, jerr = e.jokeClient().Random(ctx)
				return nil
			})
			_ = g.Wait()

			out := cmd.OutOrStdout()
			now := time.Now()
			fmt.Fprintln(out, format.TimeOfDay(now, e.cfg.UI.Clock24h))
			if werr != nil {
				e.logger.Warn("today: weather", zap.Error(werr))
				fmt.Fprintln(out, "Weather: "+apperr.Message(werr))
			} else {
				printWeather(out, report, now)
			}
			if jerr != nil {
				e.logger.Warn("today: joke", zap.Error(jerr))
				fmt.Fprintln(out, "Joke: "+apperr.Message(jerr))
			} else {
				fmt.Fprintln(out, j.String())
			}
			if werr != nil && jerr != nil {
				return errors.New("nothing could be fetched")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&city, "city", "", "city for the weather card")
	_ = cmd.MarkFlagRequired("city")
	return cmd
}

func (e *env) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the widgets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, w := range widget.All() {
				fmt.Fprintf(out, "%-10s %s\n", w.ID, w.Description)
			}
			return nil
		},
	}
}
