package types

type CreatePetReq struct {
	Name      string  `json:"name" binding:"required,max=100"`
	Species   string  `json:"species" binding:"max=50"`
	Breed     string  `json:"breed" binding:"max=100"`
	BirthDate string  `json:"birth_date"`
	WeightKg  float64 `json:"weight_kg" binding:"gte=0"`
	Notes     string  `json:"notes"`
}

type UpdatePetReq struct {
	Name      *string  `json:"name" binding:"omitempty,max=100"`
	Species   *string  `json:"species" binding:"omitempty,max=50"`
	Breed     *string  `json:"breed" binding:"omitempty,max=100"`
	BirthDate *string  `json:"birth_date"`
	WeightKg  *float64 `json:"weight_kg" binding:"omitempty,gte=0"`
	Notes     *string  `json:"notes"`
}

type PetResp struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Species   string  `json:"species"`
	Breed     string  `json:"breed"`
	BirthDate string  `json:"birth_date,omitempty"`
	WeightKg  float64 `json:"weight_kg"`
	Notes     string  `json:"notes"`
	PhotoURL  string  `json:"photo_url"`
}

type PetMutationResp struct {
	Pet          PetResp `json:"pet"`
	PointsEarned int64   `json:"points_earned"`
}
