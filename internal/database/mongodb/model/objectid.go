package model

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}

func objectIDs(field string, ids []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid object id %q", field, id)
		}
		out = append(out, objectID)
	}
	return out, nil
}

// optionalObjectID 空字串代表沒有值
func optionalObjectID(field, id string) (*primitive.ObjectID, error) {
	if id == "" {
		return nil, nil
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid object id %q", field, id)
	}
	return &objectID, nil
}

// existingObjectID 空字串時產生新的 id
func existingObjectID(field, id string) (primitive.ObjectID, error) {
	if id == "" {
		return primitive.NewObjectID(), nil
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s: invalid object id %q", field, id)
	}
	return objectID, nil
}

func requiredObjectID(field, id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s: invalid object id %q", field, id)
	}
	return objectID, nil
}
