// Package senders implements the sender-listing diagnostic command.
package senders

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/iYassr/projectbudget/cmd/common"
	"github.com/iYassr/projectbudget/cmd/root"
	"github.com/iYassr/projectbudget/internal/logging"
	"github.com/iYassr/projectbudget/internal/msgstore"
)

var financialOnly bool

// Cmd represents the senders command
var Cmd = &cobra.Command{
	Use:   "senders",
	Short: "List distinct message senders in a source",
	Long: `List the distinct senders found in a message source with message counts.
Use this to decide which senders to allow in the configuration.`,
	Run: sendersFunc,
}

func init() {
	Cmd.Flags().BoolVar(&financialOnly, "financial", false, "Only count messages containing financial keywords")
}

func sendersFunc(cmd *cobra.Command, args []string) {
	logger := logging.NewLogrusAdapterFromLogger(root.Log)

	reader, err := common.NewReader(root.SourceDir, root.SourceFormat, logger)
	if err != nil {
		root.Log.Fatalf("Error opening message source: %v", err)
	}

	messages, err := reader.Read()
	if err != nil {
		root.Log.Fatalf("Error reading messages: %v", err)
	}

	if financialOnly {
		messages = msgstore.Apply(messages, msgstore.Filter{Keywords: msgstore.DefaultFinancialKeywords()})
	}

	counts := make(map[string]int)
	for _, msg := range messages {
		counts[msg.Sender]++
	}

	type senderCount struct {
		sender string
		count  int
	}
	sorted := make([]senderCount, 0, len(counts))
	for sender, count := range counts {
		sorted = append(sorted, senderCount{sender, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].sender < sorted[j].sender
	})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d distinct senders, %d messages\n\n", len(sorted), len(messages))
	for _, sc := range sorted {
		fmt.Fprintf(out, "%6d  %s\n", sc.count, sc.sender)
	}
}
