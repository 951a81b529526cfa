package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/flagring/flagring/pkg/flag"
)

// flagsCommand creates the flags command for browsing the manifest.
func (c *CLI) flagsCommand() *cobra.Command {
	var (
		manifestPath string
		category     string
		interactive  bool
	)

	cmd := &cobra.Command{
		Use:   "flags",
		Short: "List flags in the manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, err := c.loadManifest(manifestPath)
			if err != nil {
				return err
			}
			if len(manifest.Flags) == 0 {
				printInfo("Manifest is empty")
				printNextStep("Build it from a source list", "flagring fetch flags.toml")
				return nil
			}

			flags := manifest.Flags
			if category != "" {
				flags = manifest.FilterCategory(category)
				if len(flags) == 0 {
					printWarning("No flags in category %q", category)
					return nil
				}
			}

			if interactive {
				return runFlagPicker(flags)
			}

			printNewline()
			fmt.Println(StyleTitle.Render("Flags") + " " + StyleDim.Render(fmt.Sprintf("(%d)", len(flags))))
			printNewline()
			for _, f := range flags {
				fmt.Println("  " + flagLine(&f))
			}
			printNewline()
			printDetail("Categories: %v", manifest.Categories())
			return nil
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "manifest file (default: manifest.json)")
	cmd.Flags().StringVar(&category, "category", "", "only show flags in this category")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick a flag interactively")

	return cmd
}

// runFlagPicker starts the interactive flag list and prints a render
// command for the selection.
func runFlagPicker(flags []flag.Flag) error {
	model := newFlagListModel(flags)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return err
	}

	m, ok := final.(flagListModel)
	if !ok || m.selected == nil {
		return nil
	}

	printNewline()
	printSuccess("Selected %s", m.selected.DisplayName)
	printNextStep("Render it", fmt.Sprintf("flagring render --flag %s --photo <photo.png>", m.selected.ID))
	return nil
}
