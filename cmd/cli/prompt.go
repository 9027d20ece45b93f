package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"groupstat/adapters/stats/engine"
	"groupstat/domain/grouped"
	"groupstat/internal/report"
)

const msgInvalidInput = "Invalid input! Please enter numbers only."

// errInvalidEntry marks a non-numeric answer to a prompt
var errInvalidEntry = errors.New("invalid entry")

// runPrompt asks for the number of classes and each class's limits and
// frequency, then prints the class table and the statistics. Any
// non-numeric answer ends the session with a message; a count below one
// asks for no rows.
func runPrompt(in io.Reader, out io.Writer, statsEngine *engine.GroupedStatsEngine) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, "--- Grouped Data Statistics ---")

	count, err := askInt(scanner, out, "How many intervals (rows) do you want to enter? ")
	if err != nil {
		return promptFailed(out, err)
	}

	var rows []grouped.IntervalRow
	for i := 0; i < count; i++ {
		fmt.Fprintf(out, "\nRow %d:\n", i+1)
		var values [3]float64
		for j, label := range []string{"Lower Limit", "Upper Limit", "Frequency"} {
			v, err := askFloat(scanner, out, "  Enter "+label+": ")
			if err != nil {
				return promptFailed(out, err)
			}
			values[j] = v
		}
		rows = append(rows, grouped.NewIntervalRow(values[0], values[1], values[2]))
	}

	result, err := statsEngine.Compute(rows)
	if err != nil {
		if grouped.IsInvalidInput(err) && err.Error() == grouped.ReasonZeroTotal {
			fmt.Fprintln(out, "Error: Total frequency cannot be zero.")
			return nil
		}
		fmt.Fprintf(out, "An error occurred: %v\n", err)
		return nil
	}

	_, err = io.WriteString(out, report.Text(result))
	return err
}

func promptFailed(out io.Writer, err error) error {
	if errors.Is(err, errInvalidEntry) {
		fmt.Fprintln(out, msgInvalidInput)
		return nil
	}
	return err
}

func askLine(scanner *bufio.Scanner, out io.Writer, question string) (string, error) {
	fmt.Fprint(out, question)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(scanner.Text()), nil
}

func askInt(scanner *bufio.Scanner, out io.Writer, question string) (int, error) {
	line, err := askLine(scanner, out, question)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, errInvalidEntry
	}
	return n, nil
}

func askFloat(scanner *bufio.Scanner, out io.Writer, question string) (float64, error) {
	line, err := askLine(scanner, out, question)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, errInvalidEntry
	}
	return v, nil
}
