package entities

type AttachmentType string

const (
	AttachmentImage AttachmentType = "image"
	AttachmentFile  AttachmentType = "file"
)

type Attachment struct {
	Name string         `json:"name" yaml:"name"`
	URL  string         `json:"url" yaml:"url"`
	Type AttachmentType `json:"type" yaml:"type"`
}

type BlogPost struct {
	ID          string         `json:"id" yaml:"id"`
	Title       string         `json:"title" yaml:"title"`
	Excerpt     string         `json:"excerpt" yaml:"excerpt"`
	Author      string         `json:"author" yaml:"author"`
	Date        string         `json:"date" yaml:"date"`
	ImageURL    string         `json:"imageUrl" yaml:"imageUrl"`
	Category    string         `json:"category" yaml:"category"`
	Tags        []string       `json:"tags" yaml:"tags"`
	Blocks      []ContentBlock `json:"blocks" yaml:"blocks"`
	Attachments []Attachment   `json:"attachments,omitempty" yaml:"attachments,omitempty"`
}

// Clone returns a copy that shares no slices with p.
func (p BlogPost) Clone() BlogPost {
	c := p
	c.Tags = append([]string(nil), p.Tags...)
	c.Blocks = append([]ContentBlock(nil), p.Blocks...)
	c.Attachments = append([]Attachment(nil), p.Attachments...)
	return c
}
