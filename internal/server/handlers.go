package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/page"
	"github.com/goliatone/go-formkit/pkg/render"
)

const (
	formAction   = "/items/new"
	deleteAction = "/users"
	versionField = "_version"
)

// ReceiptHeader carries the receipt id of an accepted submission.
const ReceiptHeader = "X-Formkit-Receipt"

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, r, http.StatusOK, s.dashboard)
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, r, http.StatusOK, s.usersTable(r.URL.Query().Get("q"), nil))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	query := r.FormValue("q")

	if !s.store.Remove(id) {
		notice := &page.Notice{
			Title:       "User not found",
			Description: fmt.Sprintf("No user with id %d.", id),
			Variant:     "error",
		}
		s.writePage(w, r, http.StatusNotFound, s.usersTable(query, notice))
		return
	}

	s.metrics.deletions.Inc()
	s.logger.Info("user deleted", "id", id)
	notice := &page.Notice{
		Title:       "User deleted",
		Description: fmt.Sprintf("User %d has been removed.", id),
		Variant:     "success",
	}
	s.writePage(w, r, http.StatusOK, s.usersTable(query, notice))
}

func (s *Server) usersTable(query string, notice *page.Notice) page.Table {
	return page.UsersTable(s.store.All(), query,
		page.WithDeleteAction(deleteAction),
		page.WithTableNotice(notice),
	)
}

func (s *Server) handleNewItem(w http.ResponseWriter, r *http.Request) {
	f, err := form.New(s.schema, form.WithLogger(s.logger))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writePage(w, r, http.StatusOK, s.formView(f, nil, nil))
}

// handleCreateItem applies every posted field to a fresh form and attempts a
// submit. Unchecked checkboxes are absent from the post and read as false.
func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	f, err := form.New(s.schema, form.WithLogger(s.logger))
	if err != nil {
		s.fail(w, err)
		return
	}

	inputErrors := map[string]string{}
	for _, spec := range s.schema.Fields() {
		err := f.SetFieldInput(spec.Name, r.PostForm.Get(spec.Name))
		var inputErr *form.InputError
		switch {
		case errors.As(err, &inputErr):
			inputErrors[spec.Name] = inputErr.Message
		case err != nil:
			s.fail(w, err)
			return
		}
	}

	var submitted form.Values
	accepted := false
	if len(inputErrors) == 0 {
		accepted = f.AttemptSubmit(func(v form.Values) { submitted = v })
	} else {
		f.ValidateAll()
	}

	if !accepted {
		s.metrics.submissions.WithLabelValues("rejected").Inc()
		s.logger.Debug("submission rejected", "errors", len(f.Errors())+len(inputErrors))
		s.writePage(w, r, http.StatusUnprocessableEntity, s.formView(f, nil, inputErrors))
		return
	}

	receipt := uuid.NewString()
	if s.handoff != nil {
		if err := s.handoff(r.Context(), receipt, submitted); err != nil {
			s.fail(w, fmt.Errorf("handoff %s: %w", receipt, err))
			return
		}
	}
	s.metrics.submissions.WithLabelValues("accepted").Inc()
	s.logger.Info("submission accepted", "receipt", receipt, "fields", submitted.Names())

	f.Reset()
	w.Header().Set(ReceiptHeader, receipt)
	s.writePage(w, r, http.StatusOK, s.formView(f, page.SubmittedNotice(), nil))
}

func (s *Server) formView(f *form.Form, notice *page.Notice, inputErrors map[string]string) page.FormView {
	return page.NewFormView(f,
		page.WithFormTitle(s.formTitle, s.formDescription),
		page.WithAction(formAction, "post"),
		page.WithNotice(notice),
		page.WithInputErrors(inputErrors),
	)
}

// writePage renders p with the configured renderer. ?fragment=1 omits the
// layout so the body can be swapped into an existing document.
func (s *Server) writePage(w http.ResponseWriter, r *http.Request, status int, p page.Page) {
	opts := render.RenderOptions{
		Theme:       s.theme,
		Fragment:    r.URL.Query().Get("fragment") == "1",
		AssetPrefix: "/assets",
	}
	if p.Kind() == page.KindForm && s.version != "" {
		opts.Hidden = render.MergeHiddenFields(nil, render.VersionField(versionField, s.version))
	}

	out, err := s.renderer.Render(r.Context(), p, opts)
	if err != nil {
		s.fail(w, fmt.Errorf("render %s: %w", p.Kind(), err))
		return
	}
	s.metrics.pages.WithLabelValues(string(p.Kind())).Inc()
	w.Header().Set("Content-Type", s.renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.logger.Error("request failed", "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
