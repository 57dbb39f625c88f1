package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/NorthstarWang/fintech-banking-tui/app"
	"github.com/NorthstarWang/fintech-banking-tui/client"
	"github.com/NorthstarWang/fintech-banking-tui/config"
	"github.com/NorthstarWang/fintech-banking-tui/style"
)

var version = "dev"

func main() {
	profileFlag := flag.String("profile", "", "Named profile for state isolation (~/.findash/profiles/<name>)")
	demoFlag := flag.Bool("demo", false, "Run against a generated offline dataset")
	themeFlag := flag.String("theme", "", "Color theme (dark, light, catppuccin)")
	noColor := flag.Bool("no-color", false, "Disable ANSI colors")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.BoolVar(showVersion, "V", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("findash %s\n", version)
		os.Exit(0)
	}

	if *noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	home, _ := os.UserHomeDir()
	if *profileFlag != "" {
		app.ProfileDir = filepath.Join(home, ".findash", "profiles", *profileFlag)
	} else {
		app.ProfileDir = filepath.Join(home, ".findash")
	}
	os.MkdirAll(app.ProfileDir, 0o755)

	cfg := config.Load(app.ProfileDir)

	baseURL := os.Getenv("FINDASH_URL")
	if baseURL == "" {
		baseURL = cfg.BackendURL
	}
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	token := os.Getenv("FINDASH_TOKEN")
	if token == "" {
		if data, err := os.ReadFile(filepath.Join(app.ProfileDir, "token")); err == nil {
			token = strings.TrimSpace(string(data))
		}
	}

	// Theme precedence: flag, saved config, terminal background.
	switch {
	case *themeFlag != "":
		if !style.SetTheme(*themeFlag) {
			fmt.Fprintf(os.Stderr, "findash: unknown theme %q\n", *themeFlag)
			os.Exit(1)
		}
	case cfg.Theme != "" && style.SetTheme(cfg.Theme):
	case lipgloss.HasDarkBackground():
		style.SetTheme("dark")
	default:
		style.SetTheme("light")
	}

	if path := os.Getenv("DASHBOARD_DEBUG"); path != "" {
		f, err := tea.LogToFile(path, "findash")
		if err == nil {
			defer f.Close()
		}
	}

	var m app.Model
	if *demoFlag {
		demo := client.NewDemo(1, 5000)
		m = app.New(demo, demo, cfg)
	} else {
		c := client.New(baseURL)
		if token != "" {
			c.SetToken(token)
		}
		m = app.New(c, nil, cfg)
		m.SetStream(client.NewStream(baseURL, token))
	}

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		p.Send(app.ProgramReady{Program: p})
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "findash: %v\n", err)
		os.Exit(1)
	}
}
