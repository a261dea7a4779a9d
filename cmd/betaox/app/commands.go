package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/betaox/cmd/betaox/cmd/classify"
	"github.com/agentstation/betaox/cmd/betaox/cmd/run"
)

// CreateRunCommand creates the run command with app dependencies.
func (a *App) CreateRunCommand() *cobra.Command {
	return run.NewCommand(a)
}

// CreateClassifyCommand creates the classify command with app dependencies.
func (a *App) CreateClassifyCommand() *cobra.Command {
	return classify.NewCommand(a)
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("betaox %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
