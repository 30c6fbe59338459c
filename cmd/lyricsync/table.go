package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column describes one table column. Numeric columns align right.
type column struct {
	title   string
	numeric bool
}

func col(title string) column { return column{title: title} }

func numCol(title string) column { return column{title: title, numeric: true} }

// tableView accumulates rows for a rounded go-pretty table. Rows shorter than
// the header are padded; extra cells are dropped.
type tableView struct {
	columns []column
	rows    []table.Row
}

func newTableView(columns ...column) *tableView {
	return &tableView{columns: columns}
}

func (v *tableView) add(cells ...string) {
	row := make(table.Row, len(v.columns))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	v.rows = append(v.rows, row)
}

func (v *tableView) empty() bool { return len(v.rows) == 0 }

func (v *tableView) String() string {
	if len(v.columns) == 0 {
		return ""
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(v.columns))
	configs := make([]table.ColumnConfig, len(v.columns))
	for i, c := range v.columns {
		header[i] = c.title
		align := text.AlignLeft
		if c.numeric {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.AppendRows(v.rows)
	tw.SetColumnConfigs(configs)
	return tw.Render()
}
