package soundfolio

// Profile is the owner record. The profiles table logically holds at most
// one of these: saving always replaces the previous record, and reading
// before any save yields the zero-valued one.
type Profile struct {
	FullName   string `json:"fullName"`
	Occupation string `json:"occupation"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	State      string `json:"state"`
	Country    string `json:"country"`
}

// Post is a published entry. Audio holds a single uploaded file reference
// path and Sources a comma-delimited list of reference paths in upload
// order; both are nil when the post was published without attachments.
type Post struct {
	ID      int64   `json:"id"`
	Heading string  `json:"heading"`
	Audio   *string `json:"audio"`
	Sources *string `json:"sources"`
	Links   *string `json:"links"`
}

// ValidationError reports a missing or malformed required submission field.
// The HTTP error handler translates it into a 400 response carrying the
// message verbatim.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string { return e.Message }
