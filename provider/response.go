package provider

// Wire types of the dictionary lookup API.

// Response is the body of GET /lookup.
type Response struct {
	Def []Entry `json:"def"`
}

// Entry is one headword reading.
type Entry struct {
	Text string        `json:"text"`
	Pos  string        `json:"pos,omitempty"`
	Ts   string        `json:"ts,omitempty"`
	Tr   []Translation `json:"tr,omitempty"`
}

// Translation is one rendering of an Entry.
type Translation struct {
	Text string     `json:"text"`
	Pos  string     `json:"pos,omitempty"`
	Gen  string     `json:"gen,omitempty"`
	Syn  []TextItem `json:"syn,omitempty"`
	Mean []TextItem `json:"mean,omitempty"`
	Ex   []Example  `json:"ex,omitempty"`
}

// TextItem is a synonym or meaning.
type TextItem struct {
	Text string `json:"text"`
	Pos  string `json:"pos,omitempty"`
	Gen  string `json:"gen,omitempty"`
}

// Example is a usage example with its translations.
type Example struct {
	Text string     `json:"text"`
	Tr   []TextItem `json:"tr,omitempty"`
}

// ErrorBody is returned with non-200 statuses.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
