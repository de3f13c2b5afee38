package books

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

type RetrieveBookOptions struct {
	ID       *string
	AuthorID *string
}

type ListBooksOptions struct {
	AuthorID *string
	Search   *string
	Orders   []sortmap.Order
}

type UpdateBookOptions struct {
	Columns []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// AuthorExists reports whether the parent author of a book exists.
func (svc *Service) AuthorExists(ctx context.Context, authorID string) (bool, error) {
	exists, err := svc.db.
		NewSelect().
		Model((*models.Author)(nil)).
		Where("a.id = ?", authorID).
		Exists(ctx)
	return exists, errors.WithStack(err)
}

// BookExists reports whether any author has a book with the given id.
func (svc *Service) BookExists(ctx context.Context, bookID string) (bool, error) {
	exists, err := svc.db.
		NewSelect().
		Model((*models.Book)(nil)).
		Where("b.id = ?", bookID).
		Exists(ctx)
	return exists, errors.WithStack(err)
}

func (svc *Service) CreateBook(ctx context.Context, book *models.Book) error {
	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = book.CreatedAt

	_, err := svc.db.
		NewInsert().
		Model(book).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.Book, error) {
	book := &models.Book{}

	q := svc.db.
		NewSelect().
		Model(book)

	if opts.ID != nil {
		q = q.Where("b.id = ?", *opts.ID)
	}
	if opts.AuthorID != nil {
		q = q.Where("b.author_id = ?", *opts.AuthorID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	return book, nil
}

// ListBooks returns every matching book in the requested order. Books are
// always listed for a single author and that list is small, so paging happens
// on the result rather than in the query.
func (svc *Service) ListBooks(ctx context.Context, opts ListBooksOptions) ([]*models.Book, error) {
	var books []*models.Book

	q := svc.db.
		NewSelect().
		Model(&books)

	if opts.AuthorID != nil {
		q = q.Where("b.author_id = ?", *opts.AuthorID)
	}
	if opts.Search != nil && *opts.Search != "" {
		like := database.ContainsPattern(*opts.Search)
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("b.title LIKE ? ESCAPE '\\'", like).
				WhereOr("b.description LIKE ? ESCAPE '\\'", like)
		})
	}
	q = database.ApplyOrder(q, opts.Orders)
	// Keep pages stable when the requested keys tie.
	q = q.Order("b.id ASC")

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return books, nil
}

func (svc *Service) UpdateBook(ctx context.Context, book *models.Book, opts UpdateBookOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	book.UpdatedAt = time.Now()
	columns := append(opts.Columns, "updated_at")

	res, err := svc.db.
		NewUpdate().
		Model(book).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errcodes.NotFound("Book")
	}
	return nil
}

func (svc *Service) DeleteBook(ctx context.Context, book *models.Book) error {
	_, err := svc.db.
		NewDelete().
		Model(book).
		WherePK().
		Exec(ctx)
	return errors.WithStack(err)
}
