package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// prompter reads interactive input line by line and re-prompts until the
// answer is usable. Invalid input never propagates past this layer.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func (p *prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// nonEmpty asks until a non-blank answer is given.
func (p *prompter) nonEmpty(prompt string) (string, error) {
	for {
		fmt.Fprint(p.out, prompt)
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		if s := strings.TrimSpace(line); s != "" {
			return s, nil
		}
		fmt.Fprintln(p.out, "Input cannot be empty. Please try again.")
	}
}

// float asks until a valid number is given.
func (p *prompter) float(prompt string) (float64, error) {
	for {
		fmt.Fprint(p.out, prompt)
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(line), 64); err == nil {
			return f, nil
		}
		fmt.Fprintln(p.out, "Invalid input. Please enter a number.")
	}
}

// integer asks until a valid integer is given.
func (p *prompter) integer(prompt string) (int, error) {
	for {
		fmt.Fprint(p.out, prompt)
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if n, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
			return n, nil
		}
		fmt.Fprintln(p.out, "Invalid input. Please enter an integer.")
	}
}

// yesNo asks until 'y' or 'n' is given.
func (p *prompter) yesNo(prompt string) (bool, error) {
	for {
		fmt.Fprint(p.out, prompt)
		line, err := p.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
		fmt.Fprintln(p.out, "Invalid input. Please enter 'y' for yes or 'n' for no.")
	}
}

// waitForEnter blocks until the user presses only Enter.
func (p *prompter) waitForEnter() error {
	for {
		fmt.Fprint(p.out, "Press Enter to continue...")
		line, err := p.readLine()
		if err != nil {
			return err
		}
		if line == "" {
			return nil
		}
	}
}
