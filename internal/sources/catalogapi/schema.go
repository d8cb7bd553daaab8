package catalogapi

// Work is one entry of the catalog document. The same shape is accepted from
// the YAML seed file.
type Work struct {
	ISBN             string   `json:"isbn" yaml:"isbn"`
	Title            string   `json:"title" yaml:"title"`
	Authors          []Author `json:"authors" yaml:"authors"`
	FirstPublishYear int      `json:"first_publish_year" yaml:"first_publish_year"`
	Pages            int      `json:"pages" yaml:"pages"`
	Subject          []string `json:"subject" yaml:"subject"`
}

type Author struct {
	Name string `json:"name" yaml:"name"`
}
