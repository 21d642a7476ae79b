package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/promptlab/internal/config"
	"github.com/emiliopalmerini/promptlab/internal/templates"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available prompt templates",
	RunE:  runTemplates,
}

func runTemplates(cmd *cobra.Command, args []string) error {
	appCfg, err := config.LoadApp()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	store, err := newTemplateStore(appCfg)
	if err != nil {
		return err
	}

	ids := store.List()
	if len(ids) == 0 {
		fmt.Println("No templates found")
		return nil
	}

	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}

func newTemplateStore(appCfg *config.App) (*templates.Store, error) {
	store, err := templates.NewStore(appCfg.TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates from %s: %w", appCfg.TemplatesDir, err)
	}
	return store, nil
}
