package schema

// ArtistsTable represents the 'public.artists' table
type ArtistsTable struct {
	Table     string
	ID        string
	Nickname  string
	Type      string
	Instagram string
	Telegram  string
	Email     string
	Phone     string
	CreatedAt string
	UpdatedAt string
}

// Artists is the schema definition for public.artists
var Artists = ArtistsTable{
	Table:     "public.artists",
	ID:        "id",
	Nickname:  "nickname",
	Type:      "type",
	Instagram: "instagram",
	Telegram:  "telegram",
	Email:     "email",
	Phone:     "phone",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

// Columns returns every column in select order.
func (t ArtistsTable) Columns() []string {
	return []string{t.ID, t.Nickname, t.Type, t.Instagram, t.Telegram, t.Email, t.Phone, t.CreatedAt, t.UpdatedAt}
}
