package domain

// Review is the normalized form of one provider review entry. The provider
// serves schema-less positional arrays, so every field except the identifier
// may be missing; absent fields stay nil and marshal as JSON null.
type Review struct {
	ID       *string    `json:"review_id"`
	Time     Timestamps `json:"time"`
	Author   Author     `json:"author"`
	Content  Content    `json:"review"`
	Images   []Image    `json:"images"`
	Source   *string    `json:"source"`
	Response *Response  `json:"response"`
}

// Timestamps are raw epoch-microsecond values as served by the provider.
type Timestamps struct {
	Published  *int64 `json:"published"`
	LastEdited *int64 `json:"last_edited"`
}

type Author struct {
	Name       *string `json:"name"`
	ProfileURL *string `json:"profile_url"`
	URL        *string `json:"url"`
	ID         *string `json:"id"`
}

type Content struct {
	Rating   *float64 `json:"rating"`
	Text     *string  `json:"text"`
	Language *string  `json:"language"`
}

type Image struct {
	ID       *string       `json:"id"`
	URL      *string       `json:"url"`
	Size     ImageSize     `json:"size"`
	Location ImageLocation `json:"location"`
	Caption  *string       `json:"caption"`
}

type ImageSize struct {
	Width  *int64 `json:"width"`
	Height *int64 `json:"height"`
}

type ImageLocation struct {
	Friendly *string  `json:"friendly"`
	Lat      *float64 `json:"lat"`
	Long     *float64 `json:"long"`
}

// Response is an owner reply. It is non-nil only when the raw entry's
// response-text branch resolves to a non-null value; its own fields may
// still be nil.
type Response struct {
	Text *string    `json:"text"`
	Time Timestamps `json:"time"`
}
