package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"pou/internal/config"
	"pou/internal/memory"
	"pou/internal/pet"
	"pou/internal/scores"
	"pou/internal/ui"
)

// app carries the state shared by every command.
type app struct {
	configPath string
	cfg        config.Config
	logFile    io.Closer
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "pou",
		Short:         "Pou - a virtual pet with a memory minigame",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.play()
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file (default ~/.config/pou/config.toml)")

	rootCmd.AddCommand(a.statsCmd())
	rootCmd.AddCommand(a.memoryCmd())
	rootCmd.AddCommand(a.scoresCmd())
	for _, def := range pet.GetItemDefinitions() {
		rootCmd.AddCommand(a.itemCmd(def))
	}
	rootCmd.AddCommand(a.configCmd())
	return rootCmd
}

// setup loads the configuration and routes log output away from the terminal.
func (a *app) setup() error {
	path, err := config.ResolvePath(a.configPath)
	if err != nil {
		return err
	}
	a.configPath = path

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if cfg.Log.Path == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := tea.LogToFile(cfg.Log.Path, "pou")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	a.logFile = f
	return nil
}

func (a *app) teardown() {
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}

func (a *app) loadPet() (*pet.Pet, error) {
	p, err := pet.LoadState(a.cfg.PetOptions())
	if err != nil {
		return nil, fmt.Errorf("load pet: %w", err)
	}
	return p, nil
}

func (a *app) savePet(p *pet.Pet) error {
	if err := pet.SaveState(p, a.cfg.State.Path); err != nil {
		return fmt.Errorf("save pet: %w", err)
	}
	return nil
}

func (a *app) newGame() (*memory.Game, error) {
	g, err := memory.New(a.cfg.MemoryConfig(), nil)
	if err != nil {
		return nil, fmt.Errorf("memory game: %w", err)
	}
	return g, nil
}

func (a *app) play() error {
	p, err := a.loadPet()
	if err != nil {
		return err
	}
	g, err := a.newGame()
	if err != nil {
		return err
	}

	st, closeStore, err := scores.OpenStore(a.cfg.Scores.Path)
	if err != nil {
		return err
	}
	defer closeStore()

	return ui.Run(ui.Options{
		Pet:                 p,
		Game:                g,
		Recorder:            scores.Recorder{Store: st, PetName: p.Name},
		Weather:             a.cfg.WeatherSource(),
		Save:                a.savePet,
		AutosaveInterval:    a.cfg.AutosaveInterval(),
		WeatherPollInterval: a.cfg.WeatherPollInterval(),
	})
}

func (a *app) statsCmd() *cobra.Command {
	var interactive bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the creature's stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPet()
			if err != nil {
				return err
			}

			best := -1
			st, closeStore, err := scores.OpenStore(a.cfg.Scores.Path)
			if err != nil {
				log.Printf("Scores unavailable: %v", err)
			} else {
				defer closeStore()
				if sc, ok, err := st.Best(cmd.Context()); err == nil && ok {
					best = sc.Score
				}
			}

			if interactive {
				return ui.DisplayStats(p, best)
			}
			fmt.Fprint(cmd.OutOrStdout(), ui.RenderStats(p, best))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Show the stats card full screen")
	return cmd
}

func (a *app) memoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "memory",
		Short: "Play the memory minigame on its own",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.newGame()
			if err != nil {
				return err
			}
			st, closeStore, err := scores.OpenStore(a.cfg.Scores.Path)
			if err != nil {
				return err
			}
			defer closeStore()

			return memory.Run(g, scores.Recorder{Store: st, PetName: a.cfg.Name})
		},
	}
}

func (a *app) scoresCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "List the best memory game results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeStore, err := scores.OpenStore(a.cfg.Scores.Path)
			if err != nil {
				return err
			}
			defer closeStore()

			return printScores(cmd.Context(), cmd.OutOrStdout(), st, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of results to show")
	return cmd
}

func printScores(ctx context.Context, w io.Writer, st *scores.Store, limit int) error {
	top, err := st.Top(ctx, limit)
	if err != nil {
		return err
	}
	if len(top) == 0 {
		fmt.Fprintln(w, "No scores yet. Play with: pou memory")
		return nil
	}

	fmt.Fprintf(w, "%-4s %-12s %5s  %s\n", "#", "Pet", "Score", "Played")
	for i, sc := range top {
		fmt.Fprintf(w, "%-4d %-12s %5d  %s\n", i+1, sc.PetName, sc.Score, sc.PlayedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

// addAmountFlag registers --amount, which overrides the configured item amount.
func addAmountFlag(fs *pflag.FlagSet, target *float64) {
	fs.Float64VarP(target, "amount", "a", 0, "Amount to restore instead of the configured one")
}

func (a *app) itemCmd(def pet.ItemDefinition) *cobra.Command {
	verbs := map[pet.Item]string{
		pet.ItemPizza: "feed",
		pet.ItemBed:   "rest",
		pet.ItemSoap:  "clean",
		pet.ItemPill:  "heal",
	}

	var amount float64
	cmd := &cobra.Command{
		Use:   verbs[def.Item],
		Short: fmt.Sprintf("Give the creature a %s %s", def.Name, def.Emoji),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPet()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("amount") {
				amounts := p.Amounts()
				switch def.Item {
				case pet.ItemPizza:
					amounts.Food = amount
				case pet.ItemBed:
					amounts.Rest = amount
				case pet.ItemSoap:
					amounts.Clean = amount
				case pet.ItemPill:
					amounts.Heal = amount
				}
				p.SetAmounts(amounts)
			}

			result, err := p.Use(def.Item)
			if err != nil {
				return err
			}
			if err := a.savePet(p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s the %s: %s %.0f%% -> %.0f%%\n",
				def.Emoji, p.Name, def.Message, def.Name, result.Need, result.Before, result.After)
			fmt.Fprintf(cmd.OutOrStdout(), "Status: %s\n", pet.GetStatusWithLabel(p))
			return nil
		},
	}
	addAmountFlag(cmd.Flags(), &amount)
	return cmd
}

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(a.configPath); err == nil && !force {
				return fmt.Errorf("config %s already exists (use --force to overwrite)", a.configPath)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("stat config: %w", err)
			}
			if err := config.Save(a.configPath, config.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", a.configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Marshal(a.cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
