// Command ordermatch extracts line items from purchase-order PDFs and
// reconciles them against a catalog.
package main

import (
	"github.com/matchdesk/ordermatch/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
