package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	restoreFrom string
	restoreYes  bool
)

// restoreCmd replaces the mirror tree with a backup.
var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace the mirror tree with a JSON backup",
	Long: `Loads a JSON backup and writes it at the mirror root, replacing everything.
The source is a local file, or a snapshot object name when no such file exists.
Without --from, backup.file is used.

Examples:
  restore --from backup.json
  restore --from snapshots/20240501T100000Z.json --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		source := restoreFrom
		if source == "" {
			source = rt.cfg.Backup.File
		}

		if !restoreYes && !confirm(fmt.Sprintf("Replace the whole mirror with %s?", source)) {
			rt.logger.Info("Restore cancelled")
			return nil
		}

		if err := rt.backup().Restore(ctx, source); err != nil {
			return err
		}
		rt.logger.Info("Mirror restored", zap.String("source", source))
		return nil
	},
}

func init() {
	restoreCmd.Flags().StringVar(&restoreFrom, "from", "", "Backup file path or snapshot object name")
	restoreCmd.Flags().BoolVar(&restoreYes, "yes", false, "Auto-confirm (non-interactive)")
	RootCmd.AddCommand(restoreCmd)
}

// confirm prompts on stdin and reports whether the answer was yes.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
