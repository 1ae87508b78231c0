package app

import (
	"fmt"

	"github.com/andyrewlee/tipkit/internal/tooltip"
)

// item is a labelled element that carries a tooltip.
type item struct {
	id    tooltip.ElementID
	label string
	tip   string
}

func demoToolbar() []item {
	return []item{
		{id: "tb/new", label: "New", tip: "Create an empty document"},
		{id: "tb/open", label: "Open", tip: "Open a document from disk. Recent files are listed below."},
		{id: "tb/save", label: "Save", tip: "Write changes to disk"},
		{id: "tb/share", label: "Share", tip: "Copy a read-only link for this document"},
		// No content: hovering never shows a tooltip.
		{id: "tb/about", label: "About"},
	}
}

var demoExtensions = []string{"go", "md", "yaml", "json", "txt"}

func demoRows(n int) []item {
	rows := make([]item, 0, n)
	for i := 0; i < n; i++ {
		ext := demoExtensions[i%len(demoExtensions)]
		name := fmt.Sprintf("notes-%02d.%s", i+1, ext)
		rows = append(rows, item{
			id:    tooltip.ElementID("row/" + name),
			label: name,
			tip: fmt.Sprintf("%s: %d KB, edited %d minutes ago by someone with a rather long display name",
				name, 4+i*3%29, 5+i*7%55),
		})
	}
	return rows
}
