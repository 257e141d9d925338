// Package web renders the panel as a single HTML page with plain form posts.
package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"sync"

	"github.com/AlexZinkM/eth-wallet-panel/internal/notify"
	"github.com/AlexZinkM/eth-wallet-panel/internal/panel"

	"go.uber.org/zap"
)

//go:embed templates/page.html
var templates embed.FS

var pageTemplate = template.Must(template.ParseFS(templates, "templates/page.html"))

type pageData struct {
	Contract string
	State    panel.State
	Toasts   []notify.Toast
}

// Page serves the panel page and its form actions
type Page struct {
	panel    *panel.Controller
	toasts   *notify.Center
	contract string
	log      *zap.Logger

	inflight sync.WaitGroup
}

// NewPage creates the page handler
func NewPage(p *panel.Controller, toasts *notify.Center, contract string, log *zap.Logger) *Page {
	if log == nil {
		log = zap.NewNop()
	}
	return &Page{
		panel:    p,
		toasts:   toasts,
		contract: contract,
		log:      log.Named("web"),
	}
}

// Register adds the page routes to mux
func (p *Page) Register(mux *http.ServeMux) {
	mux.HandleFunc("/{$}", p.Index)
	mux.HandleFunc("/refresh", p.action(p.panel.RefreshBalance))
	mux.HandleFunc("/connect", p.action(p.panel.EnsureAccountAccess))
	mux.HandleFunc("/deposit", p.amountAction(p.panel.DepositAmount))
	mux.HandleFunc("/withdraw", p.amountAction(p.panel.WithdrawAmount))
	mux.HandleFunc("/toasts/{id}/dismiss", p.dismiss)
}

// Index renders the panel
func (p *Page) Index(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	data := pageData{
		Contract: p.contract,
		State:    p.panel.State(),
		Toasts:   p.toasts.Active(),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		p.log.Error("failed to render page", zap.Error(err))
	}
}

func (p *Page) action(run func(context.Context) panel.Outcome) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
			return
		}
		run(context.WithoutCancel(r.Context()))
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (p *Page) amountAction(run func(context.Context, string) panel.Outcome) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
			return
		}
		amount := r.FormValue("amount")

		// The page shows the progress toast on the redirect, the transaction finishes in the background
		ctx := context.WithoutCancel(r.Context())
		p.inflight.Add(1)
		go func() {
			defer p.inflight.Done()
			run(ctx, amount)
		}()
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// Wait blocks until transactions started from the page have finished
func (p *Page) Wait() {
	p.inflight.Wait()
}

func (p *Page) dismiss(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}
	p.toasts.Dismiss(r.PathValue("id"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
