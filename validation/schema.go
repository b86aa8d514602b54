package validation

import "vitalmonitor/entities"

// Kind is the primitive type a field must decode to.
type Kind int

const (
	String Kind = iota
	Number
)

// Field describes one declared property of a resource.
type Field struct {
	Kind Kind
	// Identifier marks the primary id field: required on create and,
	// when present, a non-empty string.
	Identifier bool
	// OneOf restricts a string field to an enumerated set of values.
	OneOf []string
}

// Schema is the shape descriptor one generic validator consumes,
// parameterized per resource type.
type Schema struct {
	Resource string
	Fields   map[string]Field
}

// UserSchema describes the user payload accepted by the API. The
// password travels in the create payload only; it never comes back out.
var UserSchema = Schema{
	Resource: "user",
	Fields: map[string]Field{
		"id":         {Kind: String, Identifier: true},
		"first_name": {Kind: String},
		"last_name":  {Kind: String},
		"username":   {Kind: String},
		"password":   {Kind: String},
		"picture":    {Kind: String},
		"email":      {Kind: String},
		"role":       {Kind: String, OneOf: []string{entities.RoleAdmin, entities.RoleUser}},
		"device_id":  {Kind: String},
	},
}

// DeviceSchema describes the device payload accepted by the API.
var DeviceSchema = Schema{
	Resource: "device",
	Fields: map[string]Field{
		"id":        {Kind: String, Identifier: true},
		"room_temp": {Kind: Number},
		"room_rh":   {Kind: Number},
		"user_temp": {Kind: Number},
		"user_spo2": {Kind: Number},
		"user_bpm":  {Kind: Number},
		"condition": {Kind: String},
	},
}
