// Package seed loads a small, fixed library of authors and books. It backs the
// `seed` migrations command and the test-only seed endpoint.
package seed

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/pointerutil"
	"github.com/shishobooks/stacks/pkg/authors"
	"github.com/shishobooks/stacks/pkg/models"
	"github.com/uptrace/bun"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// Authors returns fresh copies of the sample authors, books attached.
func Authors() []*models.Author {
	return []*models.Author{
		{
			ID:          "d28888e9-2ba9-473a-a40f-e38cb54f9b35",
			FirstName:   "Berry",
			LastName:    "Griffin Beak Eldritch",
			DateOfBirth: day(1650, time.July, 23),
			Genre:       "Ships",
			Books: []*models.Book{
				{ID: "5b1c2b2d-17c2-43f3-ad3c-0eb4a5b8b7ac", Title: "Commandeering a Ship Without Getting Caught", Description: pointerutil.String("Commandeering a ship in rough waters isn't easy. Commandeering it without getting caught is even harder.")},
			},
		},
		{
			ID:          "da2fd609-d754-4feb-8acd-c4f9ff13ba96",
			FirstName:   "Nancy",
			LastName:    "Swashbuckler Rye",
			DateOfBirth: day(1668, time.May, 21),
			Genre:       "Rum",
			Books: []*models.Book{
				{ID: "d8ec7a11-3b9b-4b3c-9b1a-67d8d3c0f1a2", Title: "Overthrowing Mutiny", Description: pointerutil.String("In this book, the author provides her fellow pirates with the strategies they need to overthrow a mutiny.")},
			},
		},
		{
			ID:          "2902b665-1190-4c70-9915-b9c2d7680450",
			FirstName:   "Eli",
			LastName:    "Ivory Bones Sweet",
			DateOfBirth: day(1701, time.December, 16),
			Genre:       "Singing",
			Books: []*models.Book{
				{ID: "a6f4f3c1-8e8a-4a8b-8c8e-1fd0b3f0c2d9", Title: "Singalong With Eli", Description: pointerutil.String("Eli Ivory Bones Sweet sings about the lives of pirates.")},
				{ID: "7c9f3f3a-1d57-4f6b-9c43-5c3f4d1e0c2b", Title: "Our Lives As Pirates"},
			},
		},
		{
			ID:          "102b566b-ba1f-404c-b2df-e2cde39ade09",
			FirstName:   "Arnold",
			LastName:    "Bloodshot Hero",
			DateOfBirth: day(1702, time.March, 6),
			Genre:       "Singing",
		},
		{
			ID:          "5b3621c0-7b12-4e80-9c8b-3398cba7ee05",
			FirstName:   "Seabury",
			LastName:    "Toxic Reyson",
			DateOfBirth: day(1690, time.November, 23),
			Genre:       "Maps",
			Books: []*models.Book{
				{ID: "0a4c2a2f-0f5f-4f36-9f7c-2f3e8e7c1d4b", Title: "Treasure Maps", Description: pointerutil.String("A guide to drawing maps that lead to treasure, and to reading the ones drawn by others.")},
			},
		},
		{
			ID:          "2aadd2df-7caf-45ab-9355-7f6332985a87",
			FirstName:   "Rippin'",
			LastName:    "Salty Mc Gee",
			DateOfBirth: day(1691, time.December, 16),
			Genre:       "Rum",
		},
		{
			ID:          "2ee49fe3-edf2-4f91-8409-3eb25ce6ca51",
			FirstName:   "Tom",
			LastName:    "Lowfolk Ulysses",
			DateOfBirth: day(1666, time.February, 3),
			Genre:       "Maps",
		},
		{
			ID:          "f74d6899-9ed2-4137-9876-66b070553f8f",
			FirstName:   "Anne",
			LastName:    "Bonny",
			DateOfBirth: day(1697, time.March, 8),
			Genre:       "Ships",
		},
	}
}

// Run inserts the sample authors unless the database already has authors. It
// reports how many authors were inserted.
func Run(ctx context.Context, db *bun.DB) (int, error) {
	count, err := db.NewSelect().Model((*models.Author)(nil)).Count(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	if count > 0 {
		return 0, nil
	}

	all := Authors()
	if err := authors.NewService(db).CreateAuthors(ctx, all); err != nil {
		return 0, errors.WithStack(err)
	}
	return len(all), nil
}
