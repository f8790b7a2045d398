// Package seed populates an empty content catalog with a starter set of
// titles so a fresh instance is browsable before any content is created.
package seed

import (
	"context"
	"errors"
	"log"

	"cassette/internal/models"
	"cassette/internal/repository"
)

// EnsureCatalog inserts the sample catalog when the store holds no content.
// Safe to run on every startup.
func EnsureCatalog(ctx context.Context, repo repository.ContentRepository) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, item := range SampleCatalog() {
		item := item
		if err := repo.Create(ctx, &item); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				continue
			}
			return err
		}
	}
	log.Println("seeded sample content catalog")
	return nil
}

// SampleCatalog returns the starter titles.
func SampleCatalog() []models.Content {
	return []models.Content{
		{
			Title:     "Stranger Things",
			Type:      models.ContentTypeTV,
			Year:      intp(2016),
			PosterURL: strp("https://images.unsplash.com/photo-1626814026160-2237a95fc5a0?auto=format&fit=crop&w=800&h=450"),
			Synopsis:  strp("When a young boy disappears, his mother, a police chief, and his friends must confront terrifying supernatural forces in order to get him back."),
			Genres:    models.StringList{"Sci-Fi", "Horror", "Drama", "Mystery"},
			Cast:      models.StringList{"Millie Bobby Brown", "Finn Wolfhard", "Winona Ryder", "David Harbour"},
			Seasons:   intp(4),
			Episodes:  intp(32),
		},
		{
			Title:     "Succession",
			Type:      models.ContentTypeTV,
			Year:      intp(2018),
			PosterURL: strp("https://images.unsplash.com/photo-1536440136628-849c177e76a1?auto=format&fit=crop&w=800&h=450"),
			Synopsis:  strp("The Roy family is known for controlling the biggest media and entertainment company in the world. However, their world changes when their father steps down from the company."),
			Genres:    models.StringList{"Drama", "Comedy"},
			Cast:      models.StringList{"Brian Cox", "Jeremy Strong", "Sarah Snook", "Kieran Culkin"},
			Seasons:   intp(3),
			Episodes:  intp(29),
		},
		{
			Title:     "Dune",
			Type:      models.ContentTypeMovie,
			Year:      intp(2021),
			PosterURL: strp("https://images.unsplash.com/photo-1594909122845-11baa439b7bf?auto=format&fit=crop&w=800&h=450"),
			Synopsis:  strp("Feature adaptation of Frank Herbert's science fiction novel, about the son of a noble family entrusted with the protection of the most valuable asset and most vital element in the galaxy."),
			Genres:    models.StringList{"Sci-Fi", "Adventure", "Drama"},
			Cast:      models.StringList{"Timothée Chalamet", "Rebecca Ferguson", "Oscar Isaac", "Zendaya"},
			Runtime:   intp(155),
		},
		{
			Title:     "The Queen's Gambit",
			Type:      models.ContentTypeTV,
			Year:      intp(2020),
			PosterURL: strp("https://images.unsplash.com/photo-1440404653325-ab127d49abc1?auto=format&fit=crop&w=800&h=450"),
			Synopsis:  strp("Orphaned at the tender age of nine, prodigious introvert Beth Harmon discovers and masters the game of chess in 1960s USA. But child stardom comes at a price."),
			Genres:    models.StringList{"Drama"},
			Cast:      models.StringList{"Anya Taylor-Joy", "Bill Camp", "Moses Ingram", "Marielle Heller"},
			Seasons:   intp(1),
			Episodes:  intp(7),
		},
		{
			Title:     "Foundation",
			Type:      models.ContentTypeTV,
			Year:      intp(2021),
			PosterURL: strp("https://images.unsplash.com/photo-1626814026160-2237a95fc5a0?auto=format&fit=crop&w=800&h=450"),
			Synopsis:  strp("A complex saga of humans scattered on planets throughout the galaxy all living under the rule of the Galactic Empire."),
			Genres:    models.StringList{"Sci-Fi", "Drama"},
			Cast:      models.StringList{"Jared Harris", "Lee Pace", "Lou Llobell", "Leah Harvey"},
			Seasons:   intp(1),
			Episodes:  intp(10),
		},
		{
			Title:     "Arrival",
			Type:      models.ContentTypeMovie,
			Year:      intp(2016),
			PosterURL: strp("https://images.unsplash.com/photo-1471922694854-ff1b63b20054?auto=format&fit=crop&w=800&h=450"),
			Synopsis:  strp("A linguist works with the military to communicate with alien lifeforms after twelve mysterious spacecraft appear around the world."),
			Genres:    models.StringList{"Sci-Fi", "Drama", "Mystery"},
			Cast:      models.StringList{"Amy Adams", "Jeremy Renner", "Forest Whitaker"},
			Runtime:   intp(116),
		},
		{
			Title:     "Knives Out",
			Type:      models.ContentTypeMovie,
			Year:      intp(2019),
			PosterURL: strp("https://images.unsplash.com/photo-1518834107812-67b0b7c58434?auto=format&fit=crop&w=800&h=450"),
			Synopsis:  strp("A detective investigates the death of a patriarch of an eccentric, combative family."),
			Genres:    models.StringList{"Mystery", "Comedy", "Drama", "Crime"},
			Cast:      models.StringList{"Daniel Craig", "Chris Evans", "Ana de Armas", "Jamie Lee Curtis"},
			Runtime:   intp(130),
		},
	}
}

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }
