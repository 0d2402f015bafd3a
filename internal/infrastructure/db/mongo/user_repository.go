package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/workforce/identity-service/internal/core/domain"
)

const userCollection = "users"

// joinedOnLayout is the calendar-date storage format for the joined_on field.
const joinedOnLayout = "2006-01-02"

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(userCollection)}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FirstName    string             `bson:"first_name"`
	LastName     string             `bson:"last_name"`
	Role         string             `bson:"role"`
	PhoneNumber  string             `bson:"phone_number"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	FirstTime    bool               `bson:"is_first_time"`
	OTP          string             `bson:"otp"`
	JoinedOn     string             `bson:"joined_on"`
}

func toDoc(u *domain.User) mongoUser {
	return mongoUser{
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role,
		PhoneNumber:  u.PhoneNumber,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstTime:    u.FirstTime,
		OTP:          u.OTP,
		JoinedOn:     u.JoinedOn.Format(joinedOnLayout),
	}
}

func (m mongoUser) toDomain() *domain.User {
	joined, _ := time.Parse(joinedOnLayout, m.JoinedOn)
	return &domain.User{
		ID:           m.ID.Hex(),
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Role:         m.Role,
		PhoneNumber:  m.PhoneNumber,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FirstTime:    m.FirstTime,
		OTP:          m.OTP,
		JoinedOn:     joined,
	}
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	res, err := r.coll.InsertOne(ctx, toDoc(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrPhoneTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"phone_number": phone})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *MongoUserRepository) FindByRole(ctx context.Context, role string) ([]*domain.User, error) {
	return r.findMany(ctx, bson.M{"role": role})
}

func (r *MongoUserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *MongoUserRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.User, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []*domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, mu.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r *MongoUserRepository) Update(ctx context.Context, user *domain.User) error {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, toDoc(user))
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
