package store

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/rushteam/cinerec/core"
)

func TestMemoryCatalog_Interactions(t *testing.T) {
	catalog := NewMemoryCatalog()
	ts := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	catalog.AddInteraction(core.InteractionRecord{UserID: 7, MovieID: 1, Action: core.ActionWatch, Timestamp: ts})
	catalog.AddInteraction(core.InteractionRecord{UserID: 7, MovieID: 2, Action: core.ActionSkip, Timestamp: ts})
	catalog.AddInteraction(core.InteractionRecord{UserID: 8, MovieID: 3, Action: core.ActionWatch, Timestamp: ts})

	records, err := catalog.Interactions(context.Background(), 7)
	if err != nil {
		t.Fatalf("Interactions() error = %v", err)
	}
	if len(records) != 2 || records[0].MovieID != 1 || records[1].MovieID != 2 {
		t.Errorf("Interactions(7) = %+v, want movies [1 2] in insertion order", records)
	}

	records, err = catalog.Interactions(context.Background(), 99)
	if err != nil {
		t.Fatalf("Interactions() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Interactions(99) = %+v, want empty", records)
	}
}

func TestMemoryCatalog_Metadata(t *testing.T) {
	catalog := NewMemoryCatalog()
	catalog.SetMovie(1, []string{"action", "drama"}, 500)

	genres, err := catalog.Genres(context.Background(), 1)
	if err != nil {
		t.Fatalf("Genres() error = %v", err)
	}
	if !reflect.DeepEqual(genres, []string{"action", "drama"}) {
		t.Errorf("Genres(1) = %v, want [action drama]", genres)
	}

	// missing metadata is not an error
	genres, err = catalog.Genres(context.Background(), 99)
	if err != nil || genres != nil {
		t.Errorf("Genres(99) = %v, %v, want nil, nil", genres, err)
	}

	pop, err := catalog.Popularity(context.Background(), 1)
	if err != nil || pop != 500 {
		t.Errorf("Popularity(1) = %v, %v, want 500, nil", pop, err)
	}
	if _, err := catalog.Popularity(context.Background(), 99); !core.IsNotFound(err) {
		t.Errorf("Popularity(99) error = %v, want NOT_FOUND", err)
	}
}

func TestMemoryCatalog_MostPopular(t *testing.T) {
	catalog := NewMemoryCatalog()
	catalog.SetMovie(1, nil, 500)
	catalog.SetMovie(2, nil, 100)
	catalog.SetMovie(3, nil, 300)
	catalog.SetMovie(5, nil, 300) // tie with movie 3, lower id first

	got, err := catalog.MostPopular(context.Background(), 3)
	if err != nil {
		t.Fatalf("MostPopular() error = %v", err)
	}
	if !reflect.DeepEqual(got, []int64{1, 3, 5}) {
		t.Errorf("MostPopular(3) = %v, want [1 3 5]", got)
	}

	// n larger than the catalog returns everything
	got, err = catalog.MostPopular(context.Background(), 10)
	if err != nil {
		t.Fatalf("MostPopular() error = %v", err)
	}
	if !reflect.DeepEqual(got, []int64{1, 3, 5, 2}) {
		t.Errorf("MostPopular(10) = %v, want [1 3 5 2]", got)
	}
}
