package cli

import (
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/shopqa/checkout-e2e/internal/models"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// RenderCart prints the extracted line items followed by the subtotals
func RenderCart(w io.Writer, snapshot *models.CartSnapshot) {
	t := newTable(w)
	t.SetTitle("Cart")
	t.AppendHeader(table.Row{"#", "Product", "Qty", "Unit price", "Total"})
	for i, item := range snapshot.Items() {
		t.AppendRow(table.Row{i + 1, item.Name, item.Quantity, item.UnitPrice.String(), item.LineTotal.String()})
	}
	calculated := "overflow"
	if total, err := snapshot.CalculatedTotal(); err == nil {
		calculated = total.String()
	}
	t.AppendFooter(table.Row{"", "", "", "Calculated", calculated})
	t.AppendFooter(table.Row{"", "", "", "Displayed", snapshot.Subtotal().String()})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 5, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	t.Render()
}

// RenderRuns prints one line per checkout run, newest first
func RenderRuns(w io.Writer, runs []*models.CheckoutRun) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Run", "Status", "Started", "Duration", "Items", "Subtotal", "Order", "Failed step"})
	for _, run := range runs {
		duration := ""
		if !run.IsRunning() {
			duration = run.Duration().Round(time.Millisecond).String()
		}
		t.AppendRow(table.Row{
			shortID(run.ID),
			string(run.Status),
			run.StartedAt.Local().Format(time.DateTime),
			duration,
			run.ItemCount,
			run.Subtotal.String(),
			run.OrderNumber,
			run.FailedStep,
		})
	}
	t.Render()
}

// RenderRun prints the outcome of a single run
func RenderRun(w io.Writer, run *models.CheckoutRun) {
	t := newTable(w)
	t.SetTitle("Checkout run")
	t.AppendRow(table.Row{"Run", run.ID})
	t.AppendRow(table.Row{"Status", string(run.Status)})
	t.AppendRow(table.Row{"Shop", run.BaseURL})
	t.AppendRow(table.Row{"Duration", run.Duration().Round(time.Millisecond).String()})
	if run.IsPassed() {
		t.AppendRow(table.Row{"Order number", run.OrderNumber})
		t.AppendRow(table.Row{"Items", run.ItemCount})
		t.AppendRow(table.Row{"Subtotal", run.Subtotal.String()})
	}
	if run.IsFailed() {
		t.AppendRow(table.Row{"Failed step", run.FailedStep})
		t.AppendRow(table.Row{"Reason", run.FailureReason})
		if run.ScreenshotPath != "" {
			t.AppendRow(table.Row{"Screenshot", run.ScreenshotPath})
		}
	}
	t.Render()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
