package authors

import (
	"net/http"
	"time"

	"github.com/shishobooks/stacks/pkg/books"
	"github.com/shishobooks/stacks/pkg/hateoas"
	"github.com/shishobooks/stacks/pkg/models"
	"github.com/shishobooks/stacks/pkg/shaping"
)

// Resource is the public representation of an author. Name and age are
// derived from the stored columns.
type Resource struct {
	ID    string
	Name  string
	Age   int
	Genre string
}

func NewResource(author *models.Author) *Resource {
	return newResourceAt(author, time.Now())
}

func newResourceAt(author *models.Author, now time.Time) *Resource {
	return &Resource{
		ID:    author.ID,
		Name:  author.Name(),
		Age:   author.AgeAt(now),
		Genre: author.Genre,
	}
}

var Schema = shaping.NewSchema("id",
	shaping.Prop("id", func(a *Resource) any { return a.ID }),
	shaping.Prop("name", func(a *Resource) any { return a.Name }),
	shaping.Prop("age", func(a *Resource) any { return a.Age }),
	shaping.Prop("genre", func(a *Resource) any { return a.Genre }),
)

var Links = hateoas.ResourceLinks{
	SelfRoute: RouteGetAuthor,
	Actions: []hateoas.Action{
		{Rel: "delete_author", Method: http.MethodDelete, Route: RouteDeleteAuthor},
		{Rel: "create_book_for_author", Method: http.MethodPost, Route: books.RouteCreateBookForAuthor},
		{Rel: "books", Method: http.MethodGet, Route: books.RouteGetBooksForAuthor},
	},
}

func linkParams(r *Resource) map[string]string {
	return map[string]string{"author_id": r.ID}
}

// Shape projects r onto fields and attaches its links.
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
