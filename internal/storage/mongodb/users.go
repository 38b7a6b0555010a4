package mongodb

import (
	"context"
	"errors"

	"github.com/nadav5199/persofy/internal/domain/models"
	"github.com/nadav5199/persofy/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Name            string             `bson:"name"`
	Email           string             `bson:"email"`
	PasswordHash    []byte             `bson:"passwordHash"`
	Role            string             `bson:"role"`
	Icon            string             `bson:"icon,omitempty"`
	FavoriteGenres  []string           `bson:"favoriteGenres,omitempty"`
	PurchasedMovies []string           `bson:"purchasedMovies,omitempty"`
	Reviews         map[string]int     `bson:"reviews,omitempty"`
	Cart            []string           `bson:"cart,omitempty"`
}

func (d userDoc) toModel() models.User {
	return models.User{
		ID:              d.ID.Hex(),
		Name:            d.Name,
		Email:           d.Email,
		PasswordHash:    d.PasswordHash,
		Role:            d.Role,
		Icon:            d.Icon,
		FavoriteGenres:  d.FavoriteGenres,
		PurchasedMovies: d.PurchasedMovies,
		Reviews:         d.Reviews,
		Cart:            d.Cart,
	}
}

func userToDoc(u *models.User) (userDoc, error) {
	doc := userDoc{
		Name:            u.Name,
		Email:           u.Email,
		PasswordHash:    u.PasswordHash,
		Role:            u.Role,
		Icon:            u.Icon,
		FavoriteGenres:  u.FavoriteGenres,
		PurchasedMovies: u.PurchasedMovies,
		Reviews:         u.Reviews,
		Cart:            u.Cart,
	}
	if u.ID != "" {
		oid, err := primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			return doc, storage.ErrNotFound
		}
		doc.ID = oid
	}
	return doc, nil
}

type UserModel struct {
	col *mongo.Collection
}

func (m *UserModel) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, storage.ErrNotFound
	}
	var doc userDoc
	if err := m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	user := doc.toModel()
	return &user, nil
}

func (m *UserModel) GetByName(ctx context.Context, name string) (*models.User, error) {
	var doc userDoc
	if err := m.col.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	user := doc.toModel()
	return &user, nil
}

func (m *UserModel) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	doc, err := userToDoc(user)
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

func (m *UserModel) Update(ctx context.Context, user *models.User) error {
	doc, err := userToDoc(user)
	if err != nil {
		return err
	}
	res, err := m.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}
