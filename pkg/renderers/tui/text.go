package tui

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/goliatone/go-formkit/pkg/page"
)

const barWidth = 30

func renderText(p page.Page) ([]byte, error) {
	var buf bytes.Buffer
	switch v := p.(type) {
	case page.Dashboard:
		writeDashboard(&buf, v)
	case *page.Dashboard:
		writeDashboard(&buf, *v)
	case page.Table:
		writeTable(&buf, v)
	case *page.Table:
		writeTable(&buf, *v)
	case page.FormView:
		writeForm(&buf, v)
	case *page.FormView:
		writeForm(&buf, *v)
	case nil:
		return nil, fmt.Errorf("tui: page is nil")
	default:
		return nil, fmt.Errorf("tui: unsupported page %T", p)
	}
	return buf.Bytes(), nil
}

func writeHeading(buf *bytes.Buffer, title, subtitle string) {
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("=", len([]rune(title))))
	if subtitle != "" {
		fmt.Fprintln(buf, subtitle)
	}
	fmt.Fprintln(buf)
}

func writeNotice(buf *bytes.Buffer, n *page.Notice) {
	if n == nil {
		return
	}
	fmt.Fprintf(buf, "[%s] %s\n\n", n.Title, n.Description)
}

func writeDashboard(buf *bytes.Buffer, d page.Dashboard) {
	writeHeading(buf, d.Title, d.Subtitle)

	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	for _, stat := range d.Stats {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", stat.Title, stat.Value, stat.Change)
	}
	_ = tw.Flush()
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "%s\n%s\n", d.Chart.Title, d.Chart.Description)
	if !d.HasChartData() {
		fmt.Fprintln(buf, "  (no chart data)")
	} else {
		var top float64
		for _, pt := range d.Chart.Points {
			top = max(top, pt.Value)
		}
		tw = tabwriter.NewWriter(buf, 0, 0, 1, ' ', 0)
		for _, pt := range d.Chart.Points {
			n := 0
			if top > 0 && pt.Value > 0 {
				n = int(pt.Value / top * barWidth)
			}
			fmt.Fprintf(tw, "  %s\t%s\t%g\n", pt.Label, strings.Repeat("#", n), pt.Value)
		}
		_ = tw.Flush()
	}
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "%s\n%s\n", d.ActivityTitle, d.ActivityDescription)
	tw = tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	for _, item := range d.Activity {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", item.Title, item.Description, item.When)
	}
	_ = tw.Flush()
}

func writeTable(buf *bytes.Buffer, t page.Table) {
	writeNotice(buf, t.Notice)
	writeHeading(buf, t.Title, t.Description)
	if t.Query != "" {
		fmt.Fprintf(buf, "Search: %s\n\n", t.Query)
	}

	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	labels := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		labels[i] = col.Label
	}
	fmt.Fprintln(tw, strings.Join(labels, "\t"))
	for _, row := range t.Rows {
		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			cells[i] = cell.Text
			if cell.Badge != nil {
				cells[i] = cell.Badge.Text
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	_ = tw.Flush()
	if len(t.Rows) == 0 {
		fmt.Fprintln(buf, t.EmptyText)
	}
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, t.Summary())
}

func writeForm(buf *bytes.Buffer, v page.FormView) {
	writeNotice(buf, v.Notice)
	writeHeading(buf, v.Title, v.Description)

	for _, f := range v.Fields {
		marker := ""
		if f.Required {
			marker = " *"
		}
		value := f.Value
		switch f.InputType {
		case page.InputCheckbox:
			value = "[ ]"
			if f.Checked {
				value = "[x]"
			}
		case page.InputSelect:
			value = "(none)"
			for _, opt := range f.Options {
				if opt.Selected {
					value = opt.Label
				}
			}
		case page.InputPassword:
			value = strings.Repeat("*", len([]rune(f.Value)))
		}
		fmt.Fprintf(buf, "%s%s: %s\n", f.Label, marker, value)
		if f.Description != "" {
			fmt.Fprintf(buf, "  %s\n", f.Description)
		}
		if f.MaxLength > 0 {
			fmt.Fprintf(buf, "  %d/%d characters\n", f.Length, f.MaxLength)
		}
		if f.Error != "" {
			fmt.Fprintf(buf, "  ! %s\n", f.Error)
		}
	}
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "Status: %s\n", v.Status)
}
