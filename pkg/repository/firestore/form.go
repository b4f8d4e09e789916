package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/regform/pkg/domain/model"
	"github.com/secmon-lab/regform/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FormsCollection is the collection holding form state documents
const FormsCollection = "forms"

type formDocument struct {
	ID        string            `firestore:"id"`
	Errors    []errorDocument   `firestore:"errors"`
	HasErrors bool              `firestore:"has_errors"`
	Values    map[string]string `firestore:"values"`
	CreatedAt time.Time         `firestore:"created_at"`
	UpdatedAt time.Time         `firestore:"updated_at"`
}

type errorDocument struct {
	Field   string `firestore:"field"`
	Message string `firestore:"message"`
}

type formRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newFormRepository(client *firestore.Client) *formRepository {
	return &formRepository{
		client:           client,
		collectionPrefix: "",
	}
}

// FormsCollectionName returns the forms collection name under prefix
func FormsCollectionName(prefix string) string {
	if prefix != "" {
		return prefix + "_" + FormsCollection
	}
	return FormsCollection
}

func (r *formRepository) formsCollection() string {
	return FormsCollectionName(r.collectionPrefix)
}

func formToDocument(form *model.Form) *formDocument {
	entries := form.Errors.Entries()
	doc := &formDocument{
		ID:        string(form.ID),
		Errors:    make([]errorDocument, len(entries)),
		HasErrors: len(entries) > 0,
		Values:    make(map[string]string, len(form.Values)),
		CreatedAt: form.CreatedAt,
		UpdatedAt: form.UpdatedAt,
	}
	for i, e := range entries {
		doc.Errors[i] = errorDocument{Field: string(e.Field), Message: e.Message}
	}
	for k, v := range form.Values {
		doc.Values[string(k)] = v
	}
	return doc
}

func formToModel(doc *formDocument) *model.Form {
	entries := make([]model.ErrorEntry, len(doc.Errors))
	for i, e := range doc.Errors {
		entries[i] = model.ErrorEntry{Field: types.FieldID(e.Field), Message: e.Message}
	}
	form := &model.Form{
		ID:        types.FormID(doc.ID),
		Errors:    model.NewErrorList(entries...),
		Values:    make(map[types.FieldID]string, len(doc.Values)),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	for k, v := range doc.Values {
		form.Values[types.FieldID(k)] = v
	}
	return form
}

func (r *formRepository) Get(ctx context.Context, id types.FormID) (*model.Form, error) {
	docSnap, err := r.client.Collection(r.formsCollection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrFormNotFound, "form not found", goerr.V(model.FormIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get form", goerr.V(model.FormIDKey, id))
	}

	var doc formDocument
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode form", goerr.V(model.FormIDKey, id))
	}

	return formToModel(&doc), nil
}

func (r *formRepository) Put(ctx context.Context, form *model.Form) error {
	if form == nil {
		return goerr.New("form is nil")
	}

	doc := formToDocument(form)
	if _, err := r.client.Collection(r.formsCollection()).Doc(doc.ID).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put form", goerr.V(model.FormIDKey, form.ID))
	}
	return nil
}

func (r *formRepository) Delete(ctx context.Context, id types.FormID) error {
	if _, err := r.client.Collection(r.formsCollection()).Doc(id.String()).Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil
		}
		return goerr.Wrap(err, "failed to delete form", goerr.V(model.FormIDKey, id))
	}
	return nil
}

func (r *formRepository) DeleteStale(ctx context.Context, before time.Time, withErrorsOnly bool) (int, error) {
	query := r.client.Collection(r.formsCollection()).Query
	if withErrorsOnly {
		query = query.Where("has_errors", "==", true)
	}
	iter := query.Where("updated_at", "<", before).Documents(ctx)
	defer iter.Stop()

	deleted := 0
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return deleted, goerr.Wrap(err, "failed to iterate stale forms")
		}

		if _, err := docSnap.Ref.Delete(ctx); err != nil {
			return deleted, goerr.Wrap(err, "failed to delete stale form", goerr.V("doc_id", docSnap.Ref.ID))
		}
		deleted++
	}

	return deleted, nil
}
