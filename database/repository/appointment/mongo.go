package appointmentRepo

import (
	"context"
	"errors"

	"barbershop/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo returns an AppointmentRepository backed by the
// "appointments" collection of db.
func NewMongoAppointmentRepo(db *mongo.Database) AppointmentRepository {
	return &mongoAppointmentRepo{
		coll: db.Collection("appointments"),
	}
}

// EnsureIndexes creates the lookup index used by ListByShop and GetByID.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("appointments").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "shop_id", Value: 1}, {Key: "id", Value: 1}},
	})
	return err
}

func (r *mongoAppointmentRepo) Append(ctx context.Context, appt models.Appointment) error {
	_, err := r.coll.InsertOne(ctx, appt)
	return err
}

func (r *mongoAppointmentRepo) ListByShop(ctx context.Context, shopID string) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"shop_id": shopID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *mongoAppointmentRepo) GetByID(ctx context.Context, shopID, id string) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.coll.FindOne(ctx, bson.M{"shop_id": shopID, "id": id}).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}
