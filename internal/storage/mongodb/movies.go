package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/nadav5199/persofy/internal/domain/filters"
	"github.com/nadav5199/persofy/internal/domain/models"
	"github.com/nadav5199/persofy/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type movieDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Actors      []string           `bson:"actors"`
	Description string             `bson:"description"`
	PosterURL   string             `bson:"posterUrl"`
	TrailerURL  string             `bson:"trailerUrl,omitempty"`
	Director    string             `bson:"director"`
	Tags        []string           `bson:"tags"`
	Rating      string             `bson:"rating"`
	Date        time.Time          `bson:"date"`
}

func (d movieDoc) toModel() models.Movie {
	return models.Movie{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Actors:      d.Actors,
		Description: d.Description,
		PosterURL:   d.PosterURL,
		TrailerURL:  d.TrailerURL,
		Director:    d.Director,
		Tags:        d.Tags,
		Rating:      d.Rating,
		Date:        d.Date,
	}
}

func movieToDoc(m *models.Movie) (movieDoc, error) {
	doc := movieDoc{
		Name:        m.Name,
		Actors:      m.Actors,
		Description: m.Description,
		PosterURL:   m.PosterURL,
		TrailerURL:  m.TrailerURL,
		Director:    m.Director,
		Tags:        m.Tags,
		Rating:      m.Rating,
		Date:        m.Date,
	}
	if m.ID != "" {
		oid, err := primitive.ObjectIDFromHex(m.ID)
		if err != nil {
			return doc, storage.ErrNotFound
		}
		doc.ID = oid
	}
	return doc, nil
}

type MovieModel struct {
	col *mongo.Collection
}

func (m *MovieModel) Get(ctx context.Context, id string) (*models.Movie, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, storage.ErrNotFound
	}
	var doc movieDoc
	if err := m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	movie := doc.toModel()
	return &movie, nil
}

func (m *MovieModel) List(ctx context.Context, f filters.Catalog) ([]models.Movie, error) {
	filter := bson.M{}
	if f.Search != "" {
		filter["name"] = bson.M{"$regex": f.Search, "$options": "i"}
	}
	if f.Genre != "" {
		filter["tags"] = f.Genre
	}
	opts := options.Find()
	if field, desc := f.SortKey(); field != "" {
		direction := 1
		if desc {
			direction = -1
		}
		opts.SetSort(bson.D{{Key: field, Value: direction}})
	}
	cur, err := m.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var movies []models.Movie
	for cur.Next(ctx) {
		var doc movieDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		movies = append(movies, doc.toModel())
	}
	return movies, cur.Err()
}

// GetByIDs resolves movie ids to full documents. Ids that are malformed or
// no longer in the catalog are skipped, not treated as an error.
func (m *MovieModel) GetByIDs(ctx context.Context, ids []string) ([]models.Movie, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return nil, nil
	}
	cur, err := m.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var movies []models.Movie
	for cur.Next(ctx) {
		var doc movieDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		movies = append(movies, doc.toModel())
	}
	return movies, cur.Err()
}

func (m *MovieModel) Insert(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	doc, err := movieToDoc(movie)
	if err != nil {
		return nil, err
	}
	doc.ID = primitive.NewObjectID()
	if _, err := m.col.InsertOne(ctx, doc); err != nil {
		if isDuplicateKey(err) {
			return nil, storage.ErrConflict
		}
		return nil, err
	}
	inserted := doc.toModel()
	return &inserted, nil
}

func (m *MovieModel) Update(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	doc, err := movieToDoc(movie)
	if err != nil {
		return nil, err
	}
	res, err := m.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, storage.ErrConflict
		}
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, storage.ErrNotFound
	}
	updated := doc.toModel()
	return &updated, nil
}

func (m *MovieModel) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return storage.ErrNotFound
	}
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (m *MovieModel) DistinctTags(ctx context.Context) ([]string, error) {
	values, err := m.col.Distinct(ctx, "tags", bson.M{})
	if err != nil {
		return nil, err
	}
	tags := make([]string, 0, len(values))
	for _, v := range values {
		if tag, ok := v.(string); ok {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}
