package gatheringstore_test

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	gatheringstore "github.com/dalemusser/gatherhub/internal/app/store/gatherings"
	"github.com/dalemusser/gatherhub/internal/domain/models"
	"github.com/dalemusser/gatherhub/internal/testutil"
)

func validGathering(createdBy primitive.ObjectID) models.Gathering {
	now := time.Now().UTC()
	return models.Gathering{
		Title:       "Morning yoga",
		Description: "Bring a mat",
		Location:    models.NewGeoPoint(77.0, 28.0),
		StartTime:   now.Add(time.Hour),
		EndTime:     now.Add(2 * time.Hour),
		CreatedBy:   createdBy,
	}
}

func TestCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := gatheringstore.New(db)

	in := validGathering(primitive.NewObjectID())
	created, err := store.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID.IsZero() {
		t.Error("expected an assigned id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected assigned timestamps")
	}
	if created.Location.Type != "Point" {
		t.Errorf("location type: got %q, want %q", created.Location.Type, "Point")
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != in.Title {
		t.Errorf("title: got %q, want %q", got.Title, in.Title)
	}
	if got.Location.Lng() != 77.0 || got.Location.Lat() != 28.0 {
		t.Errorf("location: got (%v, %v), want (77, 28)", got.Location.Lng(), got.Location.Lat())
	}
}

func TestCreateValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := gatheringstore.New(db)
	creator := primitive.NewObjectID()

	cases := []struct {
		name      string
		mutate    func(g *models.Gathering)
		wantField string
	}{
		{"empty title", func(g *models.Gathering) { g.Title = "  " }, "title"},
		{"empty description", func(g *models.Gathering) { g.Description = "" }, "description"},
		{"zero start", func(g *models.Gathering) { g.StartTime = time.Time{} }, "start_time"},
		{"zero end", func(g *models.Gathering) { g.EndTime = time.Time{} }, "end_time"},
		{"start equals end", func(g *models.Gathering) { g.EndTime = g.StartTime }, "end_time"},
		{"end before start", func(g *models.Gathering) { g.EndTime = g.StartTime.Add(-time.Hour) }, "end_time"},
		{"longitude out of range", func(g *models.Gathering) { g.Location = models.NewGeoPoint(181, 28) }, "location"},
		{"latitude out of range", func(g *models.Gathering) { g.Location = models.NewGeoPoint(77, -91) }, "location"},
		{"missing creator", func(g *models.Gathering) { g.CreatedBy = primitive.NilObjectID }, "created_by"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := validGathering(creator)
			tc.mutate(&g)

			_, err := store.Create(ctx, g)
			var verr *gatheringstore.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.wantField {
				t.Errorf("field: got %q, want %q", verr.Field, tc.wantField)
			}
		})
	}

	// Rejected creates must not persist anything.
	n, err := store.Count(ctx, bson.M{})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("persisted gatherings after rejections: got %d, want 0", n)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := gatheringstore.New(db)

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if err != gatheringstore.ErrNotFound {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestListOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := gatheringstore.New(db)
	creator := primitive.NewObjectID()

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		g := validGathering(creator)
		g.Title = title
		if _, err := store.Create(ctx, g); err != nil {
			t.Fatalf("Create %q failed: %v", title, err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != len(titles) {
		t.Fatalf("gatherings: got %d, want %d", len(got), len(titles))
	}
	for i, title := range titles {
		if got[i].Title != title {
			t.Errorf("position %d: got %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestNearby(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := gatheringstore.New(db)
	creator := primitive.NewObjectID()

	seed := func(title string, lng, lat float64) models.Gathering {
		g := validGathering(creator)
		g.Title = title
		g.Location = models.NewGeoPoint(lng, lat)
		created, err := store.Create(ctx, g)
		if err != nil {
			t.Fatalf("Create %q failed: %v", title, err)
		}
		return created
	}

	near := seed("near", 77.0, 28.0)
	seed("far", 80.0, 30.0)

	// ~74m from the near gathering, hundreds of km from the far one.
	got, err := store.Nearby(ctx, 77.0005, 28.0005, 2000)
	if err != nil {
		t.Fatalf("Nearby failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("results: got %d, want 1", len(got))
	}
	if got[0].ID != near.ID {
		t.Errorf("got %q, want %q", got[0].Title, near.Title)
	}
}

func TestNearbyOrdering(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := gatheringstore.New(db)
	creator := primitive.NewObjectID()

	// Inserted farthest-first so distance order differs from insert order.
	coords := []struct {
		title    string
		lng, lat float64
	}{
		{"farthest", 77.02, 28.02},
		{"middle", 77.01, 28.01},
		{"closest", 77.001, 28.001},
	}
	for _, c := range coords {
		g := validGathering(creator)
		g.Title = c.title
		g.Location = models.NewGeoPoint(c.lng, c.lat)
		if _, err := store.Create(ctx, g); err != nil {
			t.Fatalf("Create %q failed: %v", c.title, err)
		}
	}

	got, err := store.Nearby(ctx, 77.0, 28.0, 10000)
	if err != nil {
		t.Fatalf("Nearby failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("results: got %d, want 3", len(got))
	}
	want := []string{"closest", "middle", "farthest"}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("position %d: got %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestNearbyEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := gatheringstore.New(db)

	got, err := store.Nearby(ctx, 0, 0, 1000)
	if err != nil {
		t.Fatalf("Nearby failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("results: got %d, want 0", len(got))
	}
}

func TestNearbyValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := gatheringstore.New(db)

	cases := []struct {
		name           string
		lng, lat, dist float64
		wantField      string
	}{
		{"bad longitude", 200, 28, 1000, "location"},
		{"bad latitude", 77, 100, 1000, "location"},
		{"zero radius", 77, 28, 0, "max_distance"},
		{"negative radius", 77, 28, -10, "max_distance"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Nearby(ctx, tc.lng, tc.lat, tc.dist)
			var verr *gatheringstore.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.wantField {
				t.Errorf("field: got %q, want %q", verr.Field, tc.wantField)
			}
		})
	}
}
