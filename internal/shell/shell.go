package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tarediiran-industries.com/bikeshare-tools/internal/common"
	"tarediiran-industries.com/bikeshare-tools/internal/trips"
)

const separator = "----------------------------------------"

type State int

const (
	Prompting State = iota
	Reporting
	Paging
	Restarting
	Terminated
)

func (state State) String() string {
	switch state {
	case Prompting:
		return "prompting"
	case Reporting:
		return "reporting"
	case Paging:
		return "paging"
	case Restarting:
		return "restarting"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("State(%d)", int(state))
}

// Shell drives the prompt, report, page, restart loop over a line-oriented console.
type Shell struct {
	loader  *trips.Loader
	in      *bufio.Reader
	out     io.Writer
	metrics *common.Metrics

	state State
	sel   trips.Selection
	table *trips.Table
}

func New(loader *trips.Loader, in io.Reader, out io.Writer, metrics *common.Metrics) *Shell {
	return &Shell{
		loader:  loader,
		in:      bufio.NewReader(in),
		out:     out,
		metrics: metrics,
		state:   Prompting,
	}
}

func (shell *Shell) State() State {
	return shell.state
}

// Run loops until the user declines to restart or input ends. Load failures are
// returned to the caller.
func (shell *Shell) Run(ctx context.Context) error {
	for shell.state != Terminated {
		if ctx.Err() != nil {
			shell.state = Terminated
			break
		}

		var err error
		switch shell.state {
		case Prompting:
			err = shell.prompt()
		case Reporting:
			err = shell.report(ctx)
		case Paging:
			err = shell.page()
		case Restarting:
			err = shell.restart()
		}

		if errors.Is(err, io.EOF) {
			fmt.Fprintln(shell.out)
			shell.state = Terminated
			break
		}
		if err != nil {
			shell.state = Terminated
			return err
		}
	}

	return nil
}

// readLine returns one trimmed line of any length. A final line without a
// newline is still returned; io.EOF follows on the next call.
func (shell *Shell) readLine(prompt string) (string, error) {
	fmt.Fprint(shell.out, prompt)
	line, err := shell.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ask repeats prompt until normalize accepts the answer.
func (shell *Shell) ask(prompt string, normalize func(string) (string, bool)) (string, error) {
	for {
		answer, err := shell.readLine(prompt)
		if err != nil {
			return "", err
		}
		if value, ok := normalize(answer); ok {
			return value, nil
		}
		fmt.Fprintln(shell.out, "You did not enter a valid input.")
	}
}

func (shell *Shell) confirm(prompt string) (bool, error) {
	answer, err := shell.readLine(prompt)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "yes"), nil
}

func (shell *Shell) prompt() error {
	fmt.Fprintln(shell.out, "Hello! Let's explore some US bikeshare data!")

	cfg := shell.loader.Config()
	cityPrompt := fmt.Sprintf(
		"Enter the city name for which you would like to get statistics.\nEnter one of %s: ",
		joinChoices(cfg.CityNames()),
	)

	city, err := shell.ask(cityPrompt, func(input string) (string, bool) {
		return trips.NormalizeCity(cfg, input)
	})
	if err != nil {
		return err
	}

	month, err := shell.ask(
		"Enter the month name for which you would like to get statistics (through June).\nEnter 'all' for all months: ",
		trips.NormalizeMonth,
	)
	if err != nil {
		return err
	}

	day, err := shell.ask(
		"Enter the day name for which you would like to get statistics.\nEnter 'all' for all days: ",
		trips.NormalizeDay,
	)
	if err != nil {
		return err
	}

	fmt.Fprintln(shell.out, separator)

	shell.sel = trips.Selection{City: city, Month: month, Day: day}
	shell.state = Reporting
	return nil
}

func (shell *Shell) report(ctx context.Context) error {
	if shell.metrics != nil {
		shell.metrics.SessionsTotal.Inc()
	}

	table, err := shell.loader.Load(ctx, shell.sel.City)
	if err != nil {
		return err
	}

	shell.table = trips.Filter(table, shell.sel)
	RunReports(shell.out, shell.sel, shell.table, shell.metrics)

	shell.state = Paging
	return nil
}

func (shell *Shell) page() error {
	pager := trips.NewPager(shell.table, trips.DefaultPageSize)

	for {
		more, err := shell.confirm(fmt.Sprintf("\nWould you like to see %d lines of raw data? Enter yes or no.\n", trips.DefaultPageSize))
		if err != nil {
			return err
		}
		if !more {
			break
		}

		page, ok := pager.Next()
		if !ok {
			break
		}

		WritePage(shell.out, page)
		if page.Last {
			fmt.Fprintln(shell.out, "You have reached the end of the filtered data.")
			break
		}
	}

	shell.state = Restarting
	return nil
}

func (shell *Shell) restart() error {
	again, err := shell.confirm("\nWould you like to restart? Enter yes or no.\n")
	if err != nil {
		return err
	}

	shell.table = nil
	if again {
		shell.state = Prompting
	} else {
		shell.state = Terminated
	}
	return nil
}

func joinChoices(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	}
	return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
}
