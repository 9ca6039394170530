package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/planekit/regiontree/pkg/regionio"
)

// treeCommand creates the tree command, an interactive browser over an
// exported partition tree.
func (c *CLI) treeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree [tree.json]",
		Short: "Browse a region tree interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := regionio.ImportTree(args[0])
			if err != nil {
				return err
			}

			model := NewTreeBrowserModel(t.Scene, regionio.ToNode(t.Root))
			program := tea.NewProgram(model, tea.WithAltScreen())
			_, err = program.Run()
			return err
		},
	}
}
