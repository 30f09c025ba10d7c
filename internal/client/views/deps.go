package views

import (
	"github.com/dmitrijs2005/mybank/internal/client/client"
	"github.com/dmitrijs2005/mybank/internal/logging"
)

// Deps bundles the collaborators shared by the panels and action handlers
// of one dashboard.
type Deps struct {
	Client    client.Client
	Renderer  Renderer
	Router    *Router
	Scheduler Scheduler
	Log       logging.Logger
}

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(prompt string) bool
