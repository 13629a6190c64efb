package internal

import (
	"github.com/MrSnakeDoc/mcversion/internal/middleware"
	"github.com/spf13/cobra"
)

var defaultCommands = []middleware.CommandFactory{
	middleware.UseMiddlewareChain(middleware.LoadConfig)(NewServeCmd),
	middleware.UseMiddlewareChain(middleware.LoadConfig)(NewListCmd),
	middleware.UseMiddlewareChain(middleware.ExclusiveFlags("json", "table"), middleware.LoadConfig)(NewShowCmd),
	middleware.UseMiddlewareChain(middleware.LoadConfig)(NewWatchCmd),
	NewVersionCmd,
}

func RegisterSubCommands(cmd *cobra.Command) {
	for _, factory := range defaultCommands {
		cmd.AddCommand(factory())
	}
}
