package books

import (
	"net/http"

	"github.com/shishobooks/stacks/pkg/hateoas"
	"github.com/shishobooks/stacks/pkg/models"
	"github.com/shishobooks/stacks/pkg/shaping"
)

// Resource is the public representation of a book.
type Resource struct {
	ID          string
	AuthorID    string
	Title       string
	Description *string
}

func NewResource(book *models.Book) *Resource {
	return &Resource{
		ID:          book.ID,
		AuthorID:    book.AuthorID,
		Title:       book.Title,
		Description: book.Description,
	}
}

var Schema = shaping.NewSchema("id",
	shaping.Prop("id", func(b *Resource) any { return b.ID }),
	shaping.Prop("title", func(b *Resource) any { return b.Title }),
	shaping.Prop("description", func(b *Resource) any { return b.Description }),
	shaping.Prop("author_id", func(b *Resource) any { return b.AuthorID }),
)

var Links = hateoas.ResourceLinks{
	SelfRoute: RouteGetBookForAuthor,
	Actions: []hateoas.Action{
		{Rel: "delete_book", Method: http.MethodDelete, Route: RouteDeleteBookForAuthor},
		{Rel: "update_book", Method: http.MethodPut, Route: RouteUpdateBookForAuthor},
		{Rel: "partially_update_book", Method: http.MethodPatch, Route: RoutePartiallyUpdateBookForAuthor},
	},
}

func linkParams(r *Resource) map[string]string {
	return map[string]string{"author_id": r.AuthorID, "book_id": r.ID}
}

// Shape projects r onto fields and attaches its links. The links are built
// from r itself, so they're right even when fields leaves out the ids.
func Shape(lb *hateoas.Builder, r *Resource, fields string) (*shaping.Resource, error) {
	shaped, err := Schema.Shape(r, fields)
	if err != nil {
		return nil, err
	}
	links, err := lb.ForResource(Links, linkParams(r), fields)
	if err != nil {
		return nil, err
	}
	shaped.Set("links", links)
	return shaped, nil
}

// ShapeAll shapes every resource with the same fields.
func ShapeAll(lb *hateoas.Builder, rs []*Resource, fields string) ([]*shaping.Resource, error) {
	out := make([]*shaping.Resource, 0, len(rs))
	for _, r := range rs {
		shaped, err := Shape(lb, r, fields)
		if err != nil {
			return nil, err
		}
		out = append(out, shaped)
	}
	return out, nil
}
