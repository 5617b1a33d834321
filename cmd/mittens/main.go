package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/mittens/internal/adapter"
	"github.com/mmcdole/mittens/internal/adapter/catapi"
	"github.com/mmcdole/mittens/internal/deck"
	"github.com/mmcdole/mittens/internal/domain"
	"github.com/mmcdole/mittens/internal/likes"
	"github.com/mmcdole/mittens/internal/metrics"
	"github.com/mmcdole/mittens/internal/search"
	"github.com/mmcdole/mittens/internal/tui"
	"github.com/mmcdole/mittens/internal/tui/styles"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	var (
		showVersion bool
		listLiked   bool
		configPath  string
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&listLiked, "liked", false, "print liked cats and exit")
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	if showVersion {
		fmt.Printf("mittens %s\n", Version)
		return
	}

	if err := run(configPath, listLiked); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, listLiked bool) error {
	var (
		cfg *adapter.Config
		err error
	)
	if configPath != "" {
		cfg, err = adapter.LoadConfigFrom(configPath)
	} else {
		cfg, err = adapter.LoadConfig()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, closeLog, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
		closeLog = func() error { return nil }
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("starting mittens", "version", Version)

	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := metrics.New()
	if cfg.Metrics.Listen != "" {
		go func() {
			if err := m.Serve(ctx, cfg.Metrics.Listen, logger); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	client := catapi.NewClient(catapi.Config{
		BaseURL:  cfg.Server.URL,
		APIKey:   cfg.Server.APIKey,
		Timeout:  cfg.Server.Timeout,
		VotesTTL: cfg.Cache.VotesTTL,
	}, m, logger)

	if !cfg.IsConfigured() && interactive && !listLiked {
		return runSetupFlow(cfg, client, logger)
	}

	paginator := likes.NewPaginator(client, cfg.User.SubID,
		likes.WithPageSize(cfg.Liked.PageSize),
		likes.WithMetrics(m),
		likes.WithLogger(logger),
	)

	if listLiked || !term.IsTerminal(int(os.Stdout.Fd())) {
		return printLiked(ctx, os.Stdout, paginator)
	}

	d := deck.New(client, deck.Config{
		SubID:           paginator.SubjectID(),
		BatchSize:       cfg.Deck.BatchSize,
		RefillThreshold: cfg.Deck.RefillThreshold,
		VoteOnDislike:   cfg.Deck.VoteOnDislike,
	}, deck.WithLogger(logger))
	breeds := search.NewService(client, logger)

	model := tui.NewModel(d, paginator, breeds, logger)

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down", "liked", len(d.Liked()), "disliked", len(d.Disliked()))
	return nil
}

// printLiked writes every liked cat, one page at a time
func printLiked(ctx context.Context, w io.Writer, p *likes.Paginator) error {
	if err := p.Refresh(ctx); err != nil {
		return err
	}
	for {
		more, err := p.LoadMore(ctx)
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}

	state := p.State()
	for _, img := range state.Items {
		breed := "-"
		if b, ok := img.PrimaryBreed(); ok {
			breed = b.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", img.ID, img.Dimensions(), breed, img.URL)
	}
	if dropped := state.TotalCount - len(state.Items); dropped > 0 {
		fmt.Fprintf(w, "# %d liked images are no longer available\n", dropped)
	}
	return nil
}

// runSetupFlow asks for an API key and subject id, checks the key and saves the config
func runSetupFlow(cfg *adapter.Config, client *catapi.Client, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to Mittens!")
	fmt.Println("Get a free API key at https://thecatapi.com")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	fmt.Printf("User id [%s]: ", cfg.User.SubID)
	input, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if subID := strings.TrimSpace(input); subID != "" {
		cfg.User.SubID = subID
	}

	for {
		// Prompt for API key (hidden input)
		fmt.Print("API key: ")
		keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println() // Add newline after hidden input
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
		apiKey := strings.TrimSpace(string(keyBytes))
		if apiKey == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		checked := catapi.NewClient(catapi.Config{
			BaseURL: cfg.Server.URL,
			APIKey:  apiKey,
			Timeout: cfg.Server.Timeout,
		}, nil, logger)

		if err := checkKeyWithSpinner(checked, cfg.User.SubID); err != nil {
			fmt.Printf("✗ %v\n", err)
			fmt.Println("Please check the key and try again.")
			fmt.Println()
			continue
		}

		cfg.Server.APIKey = apiKey
		break
	}

	if err := adapter.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run mittens again to start swiping.")

	return nil
}

// checkKeyWithSpinner lists the subject's votes, which requires a valid key
func checkKeyWithSpinner(client *catapi.Client, subID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)
	go func() {
		_, err := client.ListVotes(ctx, subID)
		resultCh <- err
	}()

	frame := 0
	fmt.Printf("\r%s Checking API key...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			switch {
			case errors.Is(err, domain.ErrAuthFailed):
				return fmt.Errorf("the API key was rejected")
			case err != nil:
				cause := errors.Unwrap(err)
				if cause == nil {
					cause = err
				}
				return fmt.Errorf("could not reach the cat API: %w", cause)
			}
			fmt.Println("✓ API key accepted")
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking API key...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("key check timed out")
		}
	}
}
