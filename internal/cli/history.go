package cli

import (
	"io"

	"github.com/shopqa/checkout-e2e/internal/services"
)

// ShowHistory prints the most recent recorded runs
func ShowHistory(runs services.RunService, limit int, out io.Writer) error {
	recent, err := runs.RecentRuns(limit)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		io.WriteString(out, "No checkout runs recorded\n")
		return nil
	}
	RenderRuns(out, recent)
	return nil
}
