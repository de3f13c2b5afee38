package authors

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shishobooks/stacks/pkg/database"
	"github.com/shishobooks/stacks/pkg/errcodes"
	"github.com/shishobooks/stacks/pkg/models"
	"github.com/shishobooks/stacks/pkg/sortmap"
	"github.com/uptrace/bun"
)

type RetrieveAuthorOptions struct {
	ID *string
}

type ListAuthorsOptions struct {
	Genre  *string
	Search *string
	Orders []sortmap.Order
	Limit  *int
	Offset *int

	includeTotal bool
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateAuthor inserts author along with any books attached to it.
func (svc *Service) CreateAuthor(ctx context.Context, author *models.Author) error {
	return svc.CreateAuthors(ctx, []*models.Author{author})
}

// CreateAuthors inserts every author and their books in a single transaction,
// so either all of them are created or none are.
func (svc *Service) CreateAuthors(ctx context.Context, authors []*models.Author) error {
	if len(authors) == 0 {
		return nil
	}

	now := time.Now()
	var books []*models.Book
	for _, author := range authors {
		if author.ID == "" {
			author.ID = uuid.New().String()
		}
		author.CreatedAt = now
		author.UpdatedAt = now
		for _, book := range author.Books {
			if book.ID == "" {
				book.ID = uuid.New().String()
			}
			book.AuthorID = author.ID
			book.CreatedAt = now
			book.UpdatedAt = now
			books = append(books, book)
		}
	}

	err := svc.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.
			NewInsert().
			Model(&authors).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		if len(books) == 0 {
			return nil
		}
		_, err = tx.
			NewInsert().
			Model(&books).
			Exec(ctx)
		return errors.WithStack(err)
	})
	return errors.WithStack(err)
}

func (svc *Service) RetrieveAuthor(ctx context.Context, opts RetrieveAuthorOptions) (*models.Author, error) {
	author := &models.Author{}

	q := svc.db.
		NewSelect().
		Model(author)

	if opts.ID != nil {
		q = q.Where("a.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Author")
		}
		return nil, errors.WithStack(err)
	}

	return author, nil
}

// RetrieveAuthors returns the authors with the given ids, in no particular
// order. Ids that don't exist are left out.
func (svc *Service) RetrieveAuthors(ctx context.Context, ids []string) ([]*models.Author, error) {
	var authors []*models.Author
	if len(ids) == 0 {
		return authors, nil
	}

	err := svc.db.
		NewSelect().
		Model(&authors).
		Where("a.id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return authors, nil
}

func (svc *Service) ListAuthors(ctx context.Context, opts ListAuthorsOptions) ([]*models.Author, error) {
	a, _, err := svc.listAuthorsWithTotal(ctx, opts)
	return a, errors.WithStack(err)
}

func (svc *Service) ListAuthorsWithTotal(ctx context.Context, opts ListAuthorsOptions) ([]*models.Author, int, error) {
	opts.includeTotal = true
	return svc.listAuthorsWithTotal(ctx, opts)
}

func (svc *Service) listAuthorsWithTotal(ctx context.Context, opts ListAuthorsOptions) ([]*models.Author, int, error) {
	var authors []*models.Author
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&authors)

	if opts.Genre != nil && *opts.Genre != "" {
		q = q.Where("LOWER(a.genre) = LOWER(?)", *opts.Genre)
	}
	if opts.Search != nil && *opts.Search != "" {
		like := database.ContainsPattern(*opts.Search)
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("a.first_name LIKE ? ESCAPE '\\'", like).
				WhereOr("a.last_name LIKE ? ESCAPE '\\'", like).
				WhereOr("a.genre LIKE ? ESCAPE '\\'", like)
		})
	}
	q = database.ApplyOrder(q, opts.Orders)
	// Keep pages stable when the requested keys tie.
	q = q.Order("a.id ASC")

	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return authors, total, nil
}

func (svc *Service) DeleteAuthor(ctx context.Context, author *models.Author) error {
	_, err := svc.db.
		NewDelete().
		Model(author).
		WherePK().
		Exec(ctx)
	return errors.WithStack(err)
}
