package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"smith/chat"
	"smith/config"
	"smith/provider"
	"smith/tools"
	"smith/tree"
	"smith/ui"
)

const Version = "v0.1.0"

func main() {
	force := flag.BoolP("force", "f", false, "overwrite an existing smith.toml on init")
	showVersion := flag.BoolP("version", "v", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("smith", Version)
		return
	}

	command := "chat"
	if args := flag.Args(); len(args) > 0 {
		command = args[0]
	}

	switch command {
	case "init":
		if err := runInit(*force); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "chat":
		if err := runChat(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q (expected \"init\" or \"chat\")\n", command)
		os.Exit(1)
	}
}

// runInit writes the config template at the project's git root.
func runInit(force bool) error {
	root, err := tree.GetGitRoot()
	if err != nil {
		return err
	}
	if err := config.WriteTemplate(root, force); err != nil {
		return err
	}
	fmt.Printf("Wrote %s/%s\n", root, config.ConfigFileName)
	return nil
}

// runChat wires config, backend, session and dispatcher together and hands
// control to the TUI.
func runChat() error {
	root, err := tree.GetGitRoot()
	if err != nil {
		return err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	config.InitDebugLog(root)

	backend, err := provider.NewProvider(provider.Config{
		Type:            provider.MapProviderIDToType(cfg.Provider),
		BaseURL:         cfg.BaseURL,
		APIKey:          cfg.APIKey,
		Model:           cfg.Model,
		MaxOutputTokens: cfg.MaxOutputTokens,
	})
	if err != nil {
		return err
	}

	session := chat.NewSession(backend, cfg.MaxContext)
	dispatcher := tools.NewDispatcher(root)

	program := tea.NewProgram(
		ui.NewChatView(session, dispatcher),
		tea.WithAltScreen(),
	)
	_, err = program.Run()
	return err
}
