package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"EquityLens/internal/analyzer"
	"EquityLens/internal/backfill"
	"EquityLens/internal/collector"
	"EquityLens/internal/config"
	"EquityLens/internal/notifier"
	"EquityLens/internal/recorder"
)

type analyzeFlags struct {
	peers      []string
	htmlPath   string
	noBackfill bool
	noPrompt   bool
	offline    bool
}

func analyzeCmd() *cobra.Command {
	f := &analyzeFlags{}
	cmd := &cobra.Command{
		Use:   "analyze [tickers...]",
		Short: "Analyze tickers against their peers",
		Example: `  lens analyze AAPL --peers AAPL=MSFT,GOOGL,AMZN
  lens analyze AAPL NVDA --html out/report.html
  lens analyze            # prompts for tickers and peers`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, f)
		},
	}
	cmd.Flags().StringArrayVarP(&f.peers, "peers", "p", nil, "Peers as TICKER=PEER1,PEER2 (repeatable)")
	cmd.Flags().StringVar(&f.htmlPath, "html", "", "Also write the report as HTML to this path")
	cmd.Flags().BoolVar(&f.noBackfill, "no-backfill", false, "Do not ask for missing peer metrics")
	cmd.Flags().BoolVar(&f.noPrompt, "no-prompt", false, "Never prompt; missing peers and metrics are skipped")
	cmd.Flags().BoolVar(&f.offline, "offline", false, "Use generated data instead of the network providers")
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, f *analyzeFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	flagPeers, err := parsePeerFlags(f.peers)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	in := bufio.NewReader(cmd.InOrStdin())
	prompter := &prompter{in: in, out: os.Stderr}

	tickers := analyzer.NormalizeTickers(args)
	if len(tickers) == 0 && !f.noPrompt {
		tickers = prompter.tickers()
	}
	if len(tickers) == 0 {
		return fmt.Errorf("no tickers to analyze")
	}

	col, err := buildCollector(cfg, f.offline)
	if err != nil {
		return err
	}

	var resolver backfill.Resolver = backfill.Skip{}
	if !f.noPrompt {
		resolver = backfill.NewPrompt(in, os.Stderr)
	}

	opts := analyzer.Options{
		PeerCount:        cfg.Analysis.PeerCount,
		EarningsQuarters: cfg.Analysis.EarningsQuarters,
		RatingWindow:     cfg.Analysis.RatingWindow,
		ManualBackfill:   cfg.Backfill() && !f.noBackfill,
	}
	a := analyzer.NewAnalyzer(col, resolver, buildRecorder(cfg, cmd, f.htmlPath), opts)

	peers := func(ticker string) []string {
		if p, ok := flagPeers[ticker]; ok {
			return p
		}
		if p := cfg.PeersFor(ticker); len(p) > 0 {
			return p
		}
		if f.noPrompt {
			log.Warn().Str("ticker", ticker).Msg("no peers configured")
			return nil
		}
		return prompter.peers(ticker, cfg.Analysis.PeerCount)
	}

	_, err = a.Run(ctx, tickers, peers)
	return err
}

func buildCollector(cfg *config.Config, offline bool) (*collector.Collector, error) {
	if offline {
		m := &collector.MockFetcher{Price: 100}
		log.Info().Str("source", m.Name()).Msg("offline mode")
		return collector.NewCollector(m, m, cfg.Analysis.LookbackDays, cfg.Analysis.TopHolders), nil
	}

	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, fmt.Errorf("http.timeout: %w", err)
	}
	market := collector.NewYahooFetcher(collector.YahooOptions{
		BaseURL:   cfg.Market.BaseURL,
		Timeout:   timeout,
		Proxy:     cfg.HTTP.Proxy,
		RateLimit: cfg.Market.RateLimit,
	})

	var fundamentals collector.FundamentalsProvider
	if cfg.Fundamentals.APIKey != "" {
		fundamentals = collector.NewFMPFetcher(collector.FMPOptions{
			BaseURL:     cfg.Fundamentals.BaseURL,
			APIKey:      cfg.Fundamentals.APIKey,
			HoldersPath: cfg.Fundamentals.HoldersPath,
			Timeout:     timeout,
			Proxy:       cfg.HTTP.Proxy,
			RateLimit:   cfg.Fundamentals.RateLimit,
		})
	} else {
		log.Warn().Msg("fundamentals.api_key not set, earnings surprises and holder lists unavailable")
	}

	return collector.NewCollector(market, fundamentals, cfg.Analysis.LookbackDays, cfg.Analysis.TopHolders), nil
}

func buildRecorder(cfg *config.Config, cmd *cobra.Command, htmlFlag string) recorder.Recorder {
	recs := recorder.Multi{recorder.NewWriterRecorder(cmd.OutOrStdout())}

	htmlPath := cfg.Report.HTMLPath
	if htmlFlag != "" {
		htmlPath = htmlFlag
	}
	if htmlPath != "" {
		recs = append(recs, recorder.NewHTMLRecorder(htmlPath))
	}
	if cfg.TelegramEnabled() {
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.HTTP.Proxy)
		recs = append(recs, recorder.NewSenderRecorder(tn, 2))
	}
	return recs
}
