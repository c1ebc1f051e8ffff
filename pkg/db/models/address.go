package models

// Address is a postal address owned by a user via the user_id back-reference.
type Address struct {
	Base         `bson:",inline"`
	UserID       string `bson:"user_id" json:"user_id"`
	Street       string `bson:"street" json:"street"`
	Number       string `bson:"number" json:"number"`
	Complement   string `bson:"complement,omitempty" json:"complement,omitempty"`
	Neighborhood string `bson:"neighborhood" json:"neighborhood"`
	City         string `bson:"city" json:"city"`
	State        string `bson:"state" json:"state"`
	Country      string `bson:"country" json:"country"`
	ZipCode      string `bson:"zip_code" json:"zip_code"`
}
