package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/regform/pkg/domain/model"
	"github.com/secmon-lab/regform/pkg/domain/types"
	"github.com/secmon-lab/regform/pkg/utils/errutil"
	"github.com/secmon-lab/regform/pkg/utils/logging"
	"github.com/secmon-lab/regform/pkg/utils/safe"
)

var errMissingField = goerr.New("field is required")

type ctxFormIDKey struct{}

func formIDFrom(ctx context.Context) types.FormID {
	id, _ := ctx.Value(ctxFormIDKey{}).(types.FormID)
	return id
}

// formIDMiddleware rejects malformed form IDs and binds the ID to the context
func formIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := types.FormID(chi.URLParam(r, "formID"))
		if err := id.Validate(); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		ctx := context.WithValue(r.Context(), ctxFormIDKey{}, id)
		ctx = logging.With(ctx, logging.From(ctx).With("form_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidFormID), errors.Is(err, errMissingField):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) newFormHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/forms/"+types.NewFormID().String(), http.StatusSeeOther)
}

func (s *Server) pageHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := formIDFrom(ctx)

	form, err := s.formUC.LoadForm(ctx, id)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, statusOf(err))
		return
	}

	view := pageView{
		FormID: id,
		Header: model.ErrorListHeader,
		Submit: submitView{Disabled: form.SubmitDisabled()},
	}
	for _, field := range types.AllFieldIDs() {
		input := newInputView(id, field, form.Value(field))
		input.Invalid = form.Invalid(field)
		view.Fields = append(view.Fields, *input)
	}
	for _, e := range form.Errors.Entries() {
		view.Errors = append(view.Errors, itemView{Field: e.Field, Message: e.Message})
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "page.html", view); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to render page"), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	safe.Write(ctx, w, buf.Bytes())
}

// focusOutHandler accepts the field either as the "field" parameter or as
// the name of the triggering element, as sent by htmx.
func (s *Server) focusOutHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := formIDFrom(ctx)

	if err := r.ParseForm(); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse form"), http.StatusBadRequest)
		return
	}

	field := types.FieldID(r.PostForm.Get("field"))
	if field == "" {
		field = types.FieldID(r.Header.Get("HX-Trigger-Name"))
	}
	if field == "" {
		errutil.HandleHTTP(ctx, w, errMissingField, http.StatusBadRequest)
		return
	}

	value := r.PostForm.Get(field.String())
	if r.PostForm.Has("value") {
		value = r.PostForm.Get("value")
	}

	surface := newOOBSurface(s.tmpl, id, map[types.FieldID]string{field: value})
	if _, err := s.formUC.HandleFocusLoss(ctx, id, field, value, surface); err != nil {
		errutil.HandleHTTP(ctx, w, err, statusOf(err))
		return
	}

	s.writeSurface(ctx, w, surface)
}

func (s *Server) submitHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := formIDFrom(ctx)

	if err := r.ParseForm(); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse form"), http.StatusBadRequest)
		return
	}

	values := make(map[types.FieldID]string)
	for _, field := range types.AllFieldIDs() {
		values[field] = r.PostForm.Get(field.String())
	}

	surface := newOOBSurface(s.tmpl, id, values)
	result, err := s.formUC.SubmitForm(ctx, id, values, surface)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, statusOf(err))
		return
	}
	if result.Accepted {
		surface.addFragment("accepted", acceptedView{Name: result.Form.Value(types.FieldFirstName)})
	}

	s.writeSurface(ctx, w, surface)
}

func (s *Server) writeSurface(ctx context.Context, w http.ResponseWriter, surface *oobSurface) {
	var buf bytes.Buffer
	if err := surface.Render(&buf); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	safe.Write(ctx, w, buf.Bytes())
}
