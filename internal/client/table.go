package client

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

var tableHeader = []string{"ID", "Name", "Email", "Phone", "Address", "State"}

// Table holds the rows of the last search.
type Table struct {
	Rows []Record
}

func (t *Table) Set(records []Record) {
	t.Rows = append(t.Rows[:0], records...)
}

func (t *Table) Reset() {
	t.Rows = nil
}

func (t *Table) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	writeRow(tw, tableHeader...)
	for _, r := range t.Rows {
		writeRow(tw, strconv.FormatInt(r.ID, 10), r.Name, r.Email, r.PhoneNumber, r.Address, strconv.FormatBool(r.State))
	}
	return tw.Flush()
}

func writeRow(w io.Writer, cells ...string) {
	for i, c := range cells {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c)
	}
	fmt.Fprintln(w)
}
