package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/muonworks/muontickets/internal/config"
	"github.com/muonworks/muontickets/internal/engine"
	"github.com/muonworks/muontickets/internal/schema"
	"github.com/muonworks/muontickets/internal/store"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create tickets/ and .mt/config.yaml, with an example ticket",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	ticketsDir := filepath.Join(wd, "tickets")
	if _, err := os.Stat(ticketsDir); os.IsNotExist(err) {
		if err := os.MkdirAll(ticketsDir, 0755); err != nil {
			return fmt.Errorf("create tickets dir: %w", err)
		}
		fmt.Printf("created %s\n", ticketsDir)
	} else {
		fmt.Printf("tickets dir exists: %s\n", ticketsDir)
	}

	if _, err := os.Stat(config.Path(wd)); os.IsNotExist(err) {
		if err := config.Save(wd, config.Default()); err != nil {
			return err
		}
		fmt.Printf("created %s\n", config.Path(wd))
	}

	e := &engine.Engine{Store: store.New(ticketsDir), Schema: schema.Default()}
	id, err := e.Seed()
	if err != nil {
		return err
	}
	if id != "" {
		fmt.Printf("created example ticket %s\n", id)
	}
	return nil
}
