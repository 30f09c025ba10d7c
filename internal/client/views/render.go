package views

// StatusKind is the state of an action's status line.
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusProcessing
	StatusSuccess
	StatusError
)

func (k StatusKind) String() string {
	switch k {
	case StatusProcessing:
		return "processing"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

type Status struct {
	Kind    StatusKind
	Message string
}

// ViewKind is the state of a list area.
type ViewKind int

const (
	ViewLoading ViewKind = iota
	ViewError
	ViewEmpty
	ViewTable
)

func (k ViewKind) String() string {
	switch k {
	case ViewLoading:
		return "loading"
	case ViewError:
		return "error"
	case ViewEmpty:
		return "empty"
	default:
		return "table"
	}
}

type Table struct {
	Headers []string
	Rows    [][]string
}

// View is what a list area shows. Message is set for the loading, error
// and empty kinds, Table for the table kind.
type View struct {
	Kind    ViewKind
	Message string
	Table   Table
}

func Loading(msg string) View { return View{Kind: ViewLoading, Message: msg} }
func Failed(msg string) View  { return View{Kind: ViewError, Message: msg} }
func Empty(msg string) View   { return View{Kind: ViewEmpty, Message: msg} }
func Rows(t Table) View       { return View{Kind: ViewTable, Table: t} }

// Renderer receives every state change. Implementations must be safe for
// concurrent use: delayed refreshes render from timer goroutines.
type Renderer interface {
	// PageChanged is called when the router activates page.
	PageChanged(page string)
	// RenderView replaces the content of a list area.
	RenderView(area string, v View)
	// RenderStatus replaces the status line of an action or edit area.
	RenderStatus(area string, s Status)
	// RenderForm fills an edit or profile form.
	RenderForm(area string, f Form)
}
