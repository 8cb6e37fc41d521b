package models

type Venue struct {
	ID        int    `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Address   string `json:"address" db:"address"`
	Capacity  int    `json:"capacity" db:"capacity"`
	Available bool   `json:"available" db:"available"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}
