package web

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/readtrack/internal/adapter/driving/web/viewmodel"
)

// htmlWriter accumulates the first write error so components can emit markup
// without checking every call.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (hw *htmlWriter) raw(parts ...string) {
	for _, p := range parts {
		if hw.err != nil {
			return
		}
		_, hw.err = io.WriteString(hw.w, p)
	}
}

func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

func (hw *htmlWriter) component(c templ.Component) {
	if hw.err == nil {
		hw.err = c.Render(hw.ctx, hw.w)
	}
}

func component(fn func(hw *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{ctx: ctx, w: w}
		fn(hw)
		return hw.err
	})
}

// Layout wraps body in the page chrome: head, navigation and flash messages.
func Layout(page vm.PageViewModel, body templ.Component) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>`)
		hw.text(page.Title)
		hw.raw(` · Reading Tracker</title><link rel="stylesheet" href="/static/style.css"></head><body>`)

		hw.raw(`<aside class="sidebar"><h1>Reading Tracker</h1>`)
		if page.Username != "" {
			hw.component(navigation(page))
		}
		hw.raw(`</aside><main class="container">`)

		if page.Notice != "" {
			hw.raw(`<p class="notice">`)
			hw.text(page.Notice)
			hw.raw(`</p>`)
		}
		if page.Error != "" {
			hw.raw(`<p class="error" role="alert">`)
			hw.text(page.Error)
			hw.raw(`</p>`)
		}

		hw.component(body)
		hw.raw(`</main></body></html>`)
	})
}

func navigation(page vm.PageViewModel) templ.Component {
	links := []struct{ key, href, label string }{
		{"add", "/app/add", "Add Reading"},
		{"view", "/app/readings", "View & Update"},
		{"export", "/app/export", "Export CSV"},
	}

	return component(func(hw *htmlWriter) {
		hw.raw(`<p class="whoami">Signed in as <strong>`)
		hw.text(page.Username)
		hw.raw(`</strong></p><nav><ul>`)
		for _, l := range links {
			class := ""
			if l.key == page.ActiveNav {
				class = ` class="active"`
			}
			hw.raw(`<li><a href="`, l.href, `"`, class, `>`)
			hw.text(l.label)
			hw.raw(`</a></li>`)
		}
		hw.raw(`</ul></nav><form method="post" action="/logout">`)
		hw.component(csrfField(page.CSRFToken))
		hw.raw(`<button type="submit">Log out</button></form>`)
	})
}

func csrfField(token string) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<input type="hidden" name="`, csrfFormField, `" value="`)
		hw.text(token)
		hw.raw(`">`)
	})
}

func selectBox(name, label string, opts []vm.Option) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<label>`)
		hw.text(label)
		hw.raw(` <select name="`, name, `">`)
		for _, o := range opts {
			hw.raw(`<option value="`)
			hw.text(o.Value)
			hw.raw(`"`)
			if o.Selected {
				hw.raw(` selected`)
			}
			hw.raw(`>`)
			hw.text(o.Label)
			hw.raw(`</option>`)
		}
		hw.raw(`</select></label>`)
	})
}

// AuthPage renders the combined login and registration form.
func AuthPage(page vm.AuthPageViewModel) templ.Component {
	body := component(func(hw *htmlWriter) {
		hw.raw(`<h2>Account Access</h2><form method="post" action="/auth" class="auth">`)
		hw.component(csrfField(page.CSRFToken))
		hw.raw(`<label>Username <input type="text" name="username" required value="`)
		hw.text(page.Username)
		hw.raw(`"></label><label>Password <input type="password" name="password" required></label>`,
			`<fieldset><legend>Select Action</legend>`)
		for _, action := range []string{"login", "register"} {
			checked := ""
			if action == page.Action || (page.Action == "" && action == "login") {
				checked = " checked"
			}
			hw.raw(`<label><input type="radio" name="action" value="`, action, `"`, checked, `> `)
			if action == "login" {
				hw.raw(`Login`)
			} else {
				hw.raw(`Register`)
			}
			hw.raw(`</label>`)
		}
		hw.raw(`</fieldset><button type="submit">Proceed</button></form>`)
	})
	return Layout(page.PageViewModel, body)
}

// AddPage renders the add-entry form.
func AddPage(page vm.AddPageViewModel) templ.Component {
	body := component(func(hw *htmlWriter) {
		hw.raw(`<h2>Add New Reading Entry</h2><form method="post" action="/app/readings">`)
		hw.component(csrfField(page.CSRFToken))
		hw.raw(`<label>Title <input type="text" name="title" required value="`)
		hw.text(page.Title)
		hw.raw(`"></label>`)
		hw.component(selectBox("type", "Type", page.Types))
		hw.raw(`<label>Total chapters/episodes (leave blank if ongoing) <input type="text" name="total_parts" inputmode="numeric" value="`)
		hw.text(page.TotalParts)
		hw.raw(`"></label><button type="submit">Add Entry</button></form>`)
	})
	return Layout(page.PageViewModel, body)
}

// ListPage renders the filter/sort controls, the update form and the list.
func ListPage(page vm.ListPageViewModel) templ.Component {
	body := component(func(hw *htmlWriter) {
		hw.raw(`<h2>View and Update Your Readings</h2><form method="get" action="/app/readings" class="controls">`)
		hw.component(selectBox("type", "Filter by Type", page.FilterOptions))
		hw.component(selectBox("sort", "Sort by", page.SortOptions))
		hw.raw(`<button type="submit">Apply</button></form>`)

		if page.Selected != nil {
			hw.raw(`<form method="get" action="/app/readings" class="select-entry">`,
				`<input type="hidden" name="type" value="`)
			hw.text(page.Filter)
			hw.raw(`"><input type="hidden" name="sort" value="`)
			hw.text(page.Sort)
			hw.raw(`">`)
			hw.component(selectBox("selected", "Select Entry to Update", page.SelectOptions))
			hw.raw(`<button type="submit">Select</button></form>`)

			hw.raw(`<form method="post" action="/app/readings/progress" class="update">`)
			hw.component(csrfField(page.CSRFToken))
			hw.raw(`<input type="hidden" name="title" value="`)
			hw.text(page.Selected.Title)
			hw.raw(`"><input type="hidden" name="type" value="`)
			hw.text(page.Filter)
			hw.raw(`"><input type="hidden" name="sort" value="`)
			hw.text(page.Sort)
			hw.raw(`"><label>Update Progress <input type="number" name="current_part" min="0" required value="`,
				strconv.Itoa(page.Selected.CurrentPart),
				`"></label><button type="submit">Save Update</button></form>`)
		}

		hw.raw(`<hr><h3>Your Reading List</h3>`)
		if len(page.Entries) == 0 {
			hw.raw(`<p class="info">No entries to display.</p>`)
			return
		}
		hw.raw(`<ul class="entries">`)
		for _, e := range page.Entries {
			// LineHTML is sanitized by RenderMarkdown.
			hw.raw(`<li>`, e.LineHTML, `</li>`)
		}
		hw.raw(`</ul>`)
	})
	return Layout(page.PageViewModel, body)
}

// ExportPage renders the CSV download link, or a notice when the list is empty.
func ExportPage(page vm.ExportPageViewModel) templ.Component {
	body := component(func(hw *htmlWriter) {
		hw.raw(`<h2>Export Your Reading Data</h2>`)
		if page.EntryCount == 0 {
			hw.raw(`<p class="info">Nothing to export yet.</p>`)
			return
		}
		hw.raw(`<p>`, strconv.Itoa(page.EntryCount), ` entries.</p><a class="button" download href="`)
		hw.text(page.DownloadURL)
		hw.raw(`">Download as CSV</a>`)
	})
	return Layout(page.PageViewModel, body)
}
