package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"EquityLens/internal/analyzer"
)

// prompter reads operator answers line by line. End of input ends prompting.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func (p *prompter) ask(question string) (string, bool) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

func (p *prompter) tickers() []string {
	answer, _ := p.ask("Enter tickers to analyze, separated by commas: ")
	return analyzer.ParseTickers(answer)
}

// peers asks for up to n comparable tickers. A blank answer stops early.
func (p *prompter) peers(ticker string, n int) []string {
	var out []string
	for i := 0; i < n; i++ {
		answer, ok := p.ask(fmt.Sprintf("Enter comparable ticker %d for %s: ", i+1, ticker))
		if !ok || answer == "" {
			break
		}
		out = append(out, strings.ToUpper(answer))
	}
	return out
}

// parsePeerFlags turns ["AAPL=MSFT,GOOGL"] into {"AAPL": ["MSFT", "GOOGL"]}.
func parsePeerFlags(values []string) (map[string][]string, error) {
	out := make(map[string][]string, len(values))
	for _, v := range values {
		ticker, list, ok := strings.Cut(v, "=")
		ticker = strings.ToUpper(strings.TrimSpace(ticker))
		if !ok || ticker == "" {
			return nil, fmt.Errorf("invalid --peers %q, want TICKER=PEER1,PEER2", v)
		}
		out[ticker] = append(out[ticker], analyzer.ParseTickers(list)...)
	}
	return out, nil
}
