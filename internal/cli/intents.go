package cli

import (
	"fmt"

	"github.com/kampuschat/kampuschat/internal/model"
	"github.com/kampuschat/kampuschat/internal/score"
	"github.com/spf13/cobra"
)

// intentsCmd represents the intents command
var intentsCmd = &cobra.Command{
	Use:   "intents",
	Short: "List the configured intent categories",
	Long: `Display the closed intent set: each intent's partition (knowledge,
conversational, or reserved), its description, and its keyword count.`,
	Run: func(cmd *cobra.Command, args []string) {
		table := score.DefaultTable()

		fmt.Printf("%-16s %-15s %-9s %s\n", "INTENT", "PARTITION", "KEYWORDS", "DESCRIPTION")
		for _, intent := range model.Intents {
			partition := "reserved"
			switch {
			case intent.IsKnowledge():
				partition = "knowledge"
			case intent.IsConversational():
				partition = "conversational"
			}
			fmt.Printf("%-16s %-15s %-9d %s\n",
				intent, partition, len(table.Keywords(intent)), model.Descriptions[intent])
		}
		fmt.Printf("\nTotal: %d intents, %d keywords\n", len(model.Intents), table.TotalKeywords())
	},
}

func init() {
	rootCmd.AddCommand(intentsCmd)
}
