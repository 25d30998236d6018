// Command concord samples LLM prompts repeatedly, scores how consistently
// the model answers, and gates outputs on that confidence.
package main

import (
	"os"

	"github.com/Dicklesworthstone/concord/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
