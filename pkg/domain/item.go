package domain

// RawItem is an unprocessed unit of text sourced from a website, feed or social post
type RawItem struct {
	Text         string // caption or scraped block text
	Title        string // optional fallback title supplied by the source (feed item, page title)
	SourceHandle string // owner handle or site name
	SourceURL    string // account or page url
	PostURL      string // url of the post or article itself
	ImageURL     string
}

// SourceMeta describes where a batch of raw items comes from
type SourceMeta struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// BatchReport summarizes the outcome of an ingestion batch
type BatchReport struct {
	Found            int `json:"found"`
	Imported         int `json:"imported"`
	SkippedDuplicate int `json:"skipped_duplicate"`
	Failed           int `json:"failed"`
}

// Add accumulates other report into r
func (r *BatchReport) Add(other BatchReport) {
	r.Found += other.Found
	r.Imported += other.Imported
	r.SkippedDuplicate += other.SkippedDuplicate
	r.Failed += other.Failed
}
