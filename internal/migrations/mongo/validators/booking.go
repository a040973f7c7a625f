package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"slot_id",
			"activity_id",
			"activity_name",
			"customer_name",
			"customer_email",
			"people",
			"date",
			"time",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"slot_id": bson.M{
				"bsonType": "string",
			},

			"activity_id": bson.M{
				"bsonType": "string",
			},

			"activity_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"customer_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"customer_email": bson.M{
				"bsonType": "string",
				"pattern":  `^[^@\s]+@[^@\s]+\.[^@\s]+$`,
			},

			"customer_phone": bson.M{
				"bsonType": "string",
			},

			"people": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  500,
			},

			"total_price": bson.M{
				"bsonType": []string{"double", "int", "long"},
				"minimum":  0,
			},

			"date": bson.M{
				"bsonType": "string",
			},

			"time": bson.M{
				"bsonType": "string",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
